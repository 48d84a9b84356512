package ui

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
)

// ErrConfirmationRequired is returned by Confirm when no prompt can be shown.
var ErrConfirmationRequired = errors.New("confirmation required, rerun with --yes")

// Confirm asks a yes/no question. assumeYes skips the prompt.
func Confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if Plain() {
		return false, ErrConfirmationRequired
	}

	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not available on this system")
	}
	return clipboard.WriteAll(text)
}
