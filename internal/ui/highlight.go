package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// Theme is the chroma style used by PrintJSON.
var Theme = "monokai"

// PrintJSON pretty prints v as JSON, syntax highlighted unless in plain mode.
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return HighlightJSON(Out, string(data))
}

// HighlightJSON writes source to w, colored with the current theme.
func HighlightJSON(w io.Writer, source string) error {
	if Plain() {
		_, err := fmt.Fprintln(w, source)
		return err
	}
	if err := quick.Highlight(w, source, "json", "terminal256", Theme); err != nil {
		return fmt.Errorf("failed to highlight output: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}
