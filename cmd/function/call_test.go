package function

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoContainer = errors.New("no container")

func TestFunctionCallAcceptsNegativeParams(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "negative integer", args: []string{"1", "add", "-2", "3"}, wantErr: errNoContainer},
		{name: "negative float", args: []string{"./math.wasm", "dbl", "-0.5"}, wantErr: errNoContainer},
		{name: "flag before module", args: []string{"--json", "1", "add", "-2", "3"}, wantErr: errNoContainer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			provide := di.Provider(func(ctx context.Context) (*di.Container, error) {
				reached = true
				return nil, errNoContainer
			})

			cmd := NewFunctionCallCommand(provide)
			cmd.SetArgs(tt.args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)

			err := cmd.ExecuteContext(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, reached)
		})
	}
}

func TestFunctionCallRejectsNonNumericParams(t *testing.T) {
	cmd := NewFunctionCallCommand(func(ctx context.Context) (*di.Container, error) {
		t.Fatal("container requested for invalid parameters")
		return nil, nil
	})
	cmd.SetArgs([]string{"1", "add", "-x"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
