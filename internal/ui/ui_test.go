package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, prevPlain, prevWidth := Out, plain, width
	Out = &buf
	t.Cleanup(func() {
		Out, plain, width = prev, prevPlain, prevWidth
	})
	return &buf
}

func TestRenderTablePlain(t *testing.T) {
	capture(t)
	SetPlain(true)

	table := NewTable([]string{"ID", "HASH"})
	table.AddRow("1", "aa")
	table.AddRow("2", "bb")

	assert.Equal(t, "ID\tHASH\n1\taa\n2\tbb", RenderTable(table))
}

func TestAddRowPanicsOnWrongArity(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	assert.Panics(t, func() { table.AddRow("only one") })
}

func TestPrintJSONPlain(t *testing.T) {
	buf := capture(t)
	SetPlain(true)

	require.NoError(t, PrintJSON(map[string]any{"jwt": "abc"}))
	assert.Equal(t, "{\n  \"jwt\": \"abc\"\n}\n", buf.String())
}

func TestHighlightJSON(t *testing.T) {
	capture(t)
	plain = false
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("TRAVIS", "")

	var buf bytes.Buffer
	require.NoError(t, HighlightJSON(&buf, `{"id": 1}`))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "id")
}

func TestWrap(t *testing.T) {
	capture(t)

	SetWidth(0)
	long := strings.Repeat("word ", 30)
	assert.Equal(t, long, Wrap(long))

	SetWidth(20)
	for _, line := range strings.Split(Wrap(long), "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
	assert.Equal(t, 20, TerminalWidth())
}

func TestPrintViolation(t *testing.T) {
	buf := capture(t)
	SetPlain(true)

	PrintViolation("modules[0].id", "expected integer")
	PrintViolation("", "invalid JSON")

	out := buf.String()
	assert.Contains(t, out, "modules[0].id")
	assert.Contains(t, out, "expected integer")
	assert.Contains(t, out, "<root>")
}

func TestConfirm(t *testing.T) {
	capture(t)

	ok, err := Confirm("Remove?", true)
	require.NoError(t, err)
	assert.True(t, ok)

	SetPlain(true)
	_, err = Confirm("Remove?", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
}
