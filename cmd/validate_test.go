package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ignitionstack/wasmboard/internal/ui"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidate(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	prev := ui.Out
	ui.Out = &out
	ui.SetPlain(true)
	t.Cleanup(func() {
		ui.Out = prev
		ui.SetPlain(false)
	})

	cmd := NewValidateCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid document from stdin", func(t *testing.T) {
		out, err := runValidate(t, `{"return_value": [5]}`, "result")
		require.NoError(t, err)
		assert.JSONEq(t, `{"return_value": [5]}`, out)
	})

	t.Run("valid document from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "listing.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"modules": []}`), 0o644))

		out, err := runValidate(t, "", "modules", path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"modules": []}`, out)
	})

	t.Run("violation is reported", func(t *testing.T) {
		out, err := runValidate(t, `{"modules": [{"id": 1, "module_hash": "a", "functions": [{"function": ""}]}]}`, "modules", "-")
		require.Error(t, err)
		assert.True(t, isReported(err))
		assert.ErrorIs(t, err, wberrors.ErrInvalidPayload)
		assert.Contains(t, out, "modules[0].functions[0].function")
		assert.Contains(t, out, "expected non-empty string")
	})

	t.Run("unknown schema", func(t *testing.T) {
		_, err := runValidate(t, `{}`, "user")
		require.Error(t, err)
		assert.False(t, isReported(err))
		assert.Contains(t, err.Error(), "unknown schema")
	})

	t.Run("error code from status", func(t *testing.T) {
		out, err := runValidate(t, `{"error": "whatever"}`, "error", "--status", "400")
		require.NoError(t, err)
		assert.Contains(t, out, "wasm_instance")
	})
}

func TestSchemaNames(t *testing.T) {
	assert.Equal(t,
		[]string{"credits", "deploy", "error", "function", "login", "module", "modules", "result"},
		schemaNames())
}
