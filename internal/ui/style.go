package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// Out receives everything the print helpers write.
var Out io.Writer = os.Stdout

var (
	plain bool
	width int
)

// Palette
var (
	PrimaryColor = "#7C3AED"

	SuccessColor = "#10B981"
	ErrorColor   = "#EF4444"
	WarningColor = "#F59E0B"
	InfoColor    = "#3B82F6"

	HeaderColor  = "#F9FAFB"
	TextColor    = "#E5E7EB"
	DimTextColor = "#9CA3AF"

	// Background of every other table row
	AlternatingRowDark = "#1F2937"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(HeaderColor)).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ErrorColor))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(WarningColor))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(InfoColor))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(DimTextColor))

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(PrimaryColor)).
			Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(HeaderColor))

	TableRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(TextColor))
)

// SetPlain turns colors, highlighting and spinners off.
func SetPlain(on bool) {
	plain = on
	if on {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Plain reports whether output is in plain mode.
func Plain() bool {
	return plain || IsCI()
}

// SetWidth sets the column used to wrap messages; zero disables wrapping.
func SetWidth(columns int) {
	width = columns
}

// TerminalWidth returns the configured output width, 80 when unset.
func TerminalWidth() int {
	if width > 0 {
		return width
	}
	return 80
}

// Check if we're in a CI environment
func IsCI() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" || os.Getenv("TRAVIS") != ""
}

// Wrap word-wraps text at the configured width.
func Wrap(text string) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// Truncate a string to fit the given width with ellipsis
func TruncateWithEllipsis(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
