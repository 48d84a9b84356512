package operations

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/ignitionstack/wasmboard/internal/ui/models/spinner"
)

type OperationFunc func() (interface{}, error)

type DisplayFunc func(result interface{}, elapsed time.Duration)

// WithSpinner runs operation while a spinner is drawn on stderr, then hands
// the result to display. In plain mode the operation runs without a spinner.
func WithSpinner(message string, operation OperationFunc, display DisplayFunc) error {
	if ui.Plain() {
		start := time.Now()
		result, err := operation()
		if err != nil {
			return err
		}
		if display != nil {
			display(result, time.Since(start))
		}
		return nil
	}

	program := tea.NewProgram(spinner.NewSpinnerModelWithMessage(message), tea.WithOutput(os.Stderr))

	go func() {
		start := time.Now()
		result, err := operation()
		if err != nil {
			program.Send(spinner.ErrorMsg{Err: err})
			return
		}
		program.Send(spinner.ResultMsg{Result: result, Elapsed: time.Since(start)})
	}()

	model, err := program.Run()
	if err != nil {
		return err
	}

	finalModel, ok := model.(spinner.SpinnerModel)
	if !ok {
		return fmt.Errorf("program finished with invalid model")
	}

	if finalModel.HasError() {
		return finalModel.GetError()
	}
	if finalModel.Cancelled() {
		return spinner.ErrCancelled
	}

	if display != nil {
		display(finalModel.GetResult(), finalModel.Elapsed())
	}
	return nil
}
