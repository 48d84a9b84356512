package spinner

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ignitionstack/wasmboard/internal/ui"
)

// ErrCancelled is reported when the user quits before the operation ends.
var ErrCancelled = errors.New("operation cancelled")

type SpinnerModel struct {
	spinner   spinner.Model
	step      string
	err       error
	done      bool
	cancelled bool
	result    interface{}
	elapsed   time.Duration
}

type ResultMsg struct {
	Result  interface{}
	Elapsed time.Duration
}

type ErrorMsg struct {
	Err error
}

func NewSpinnerModelWithMessage(message string) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.InfoColor))
	return SpinnerModel{
		spinner: s,
		step:    message,
	}
}

func (m SpinnerModel) HasError() bool {
	return m.err != nil
}

func (m SpinnerModel) GetError() error {
	return m.err
}

func (m SpinnerModel) GetResult() interface{} {
	return m.result
}

func (m SpinnerModel) Elapsed() time.Duration {
	return m.elapsed
}

func (m SpinnerModel) Cancelled() bool {
	return m.cancelled
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit
	case ResultMsg:
		m.result = msg.Result
		m.elapsed = msg.Elapsed
		m.done = true
		return m, tea.Quit
	case string:
		m.step = msg
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.step)
}
