package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbols used as message prefixes.
const (
	SuccessSymbol    = "✓"
	ErrorSymbol      = "✗"
	InfoSymbol       = "ℹ"
	WarningSymbol    = "⚠"
	BulletSymbol     = "•"
	ArrowRightSymbol = "→"
)

// PrintSuccess prints a success message.
func PrintSuccess(message string) {
	fmt.Fprintln(Out, lipgloss.NewStyle().
		Foreground(lipgloss.Color(SuccessColor)).
		Bold(true).
		Render(Wrap(SuccessSymbol+" "+message)))
}

// PrintError prints an error message in a bordered box. Plain mode drops the box.
func PrintError(message string) {
	text := ErrorSymbol + " Error: " + message
	if Plain() {
		fmt.Fprintln(Out, Wrap(text))
		return
	}

	errorBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ErrorColor)).
		Padding(0, 1).
		Render(ErrorStyle.Bold(true).Render(Wrap(text)))

	fmt.Fprintln(Out, errorBox)
}

// PrintWarning prints a warning message.
func PrintWarning(message string) {
	fmt.Fprintln(Out, WarningStyle.Bold(true).Render(Wrap(WarningSymbol+" "+message)))
}

// PrintInfo prints a label and value.
func PrintInfo(label, value string) {
	fmt.Fprintf(Out, "%s %s\n",
		DimStyle.Bold(true).Render(label+":"),
		InfoStyle.Render(value))
}

// PrintViolation prints where a document failed validation and why.
func PrintViolation(path, reason string) {
	if path == "" {
		path = "<root>"
	}
	fmt.Fprintf(Out, "%s %s %s %s\n",
		ErrorStyle.Render(ErrorSymbol),
		HeaderStyle.Render(path),
		DimStyle.Render(ArrowRightSymbol),
		ErrorStyle.Render(reason))
}

// PrintHighlight prints highlighted text.
func PrintHighlight(text string) {
	fmt.Fprintln(Out, TitleStyle.Render(text))
}

// PrintEmptyState shows a message when no data is available.
func PrintEmptyState(message string) {
	fmt.Fprintln(Out, DimStyle.Render(BulletSymbol+" "+message))
}

// Table represents a formatted table with headers and rows.
type Table struct {
	Headers     []string
	Rows        [][]string
	ColumnWidth []int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	columnWidth := make([]int, len(headers))
	for i, h := range headers {
		columnWidth[i] = len(h) + 4
	}
	return &Table{
		Headers:     headers,
		Rows:        [][]string{},
		ColumnWidth: columnWidth,
	}
}

// AddRow adds a new row to the table.
func (t *Table) AddRow(values ...string) {
	if len(values) != len(t.Headers) {
		panic(fmt.Sprintf("Row has %d values, expected %d", len(values), len(t.Headers)))
	}

	for i, v := range values {
		if len(v)+4 > t.ColumnWidth[i] {
			t.ColumnWidth[i] = len(v) + 4
		}
	}

	t.Rows = append(t.Rows, values)
}

// RenderTable renders the table. In plain mode columns are tab separated.
func RenderTable(table *Table) string {
	if Plain() {
		lines := []string{strings.Join(table.Headers, "\t")}
		for _, row := range table.Rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
		return strings.Join(lines, "\n")
	}

	rowFormat := ""
	for i, width := range table.ColumnWidth {
		rowFormat += fmt.Sprintf("%%-%ds", width)
		if i < len(table.ColumnWidth)-1 {
			rowFormat += " "
		}
	}

	headerText := fmt.Sprintf(rowFormat, toInterfaceSlice(table.Headers)...)
	tableRows := []string{
		TableHeaderStyle.Render(headerText),
		DimStyle.Render(strings.Repeat("─", len(headerText))),
	}

	for i, row := range table.Rows {
		style := TableRowStyle
		if i%2 == 1 {
			style = style.Background(lipgloss.Color(AlternatingRowDark))
		}
		tableRows = append(tableRows, style.Render(fmt.Sprintf(rowFormat, toInterfaceSlice(row)...)))
	}

	return fmt.Sprintf("\n%s\n", lipgloss.JoinVertical(lipgloss.Left, tableRows...))
}

func toInterfaceSlice(ss []string) []interface{} {
	is := make([]interface{}, len(ss))
	for i, s := range ss {
		is[i] = s
	}
	return is
}
