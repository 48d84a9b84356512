package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []float64
		wantErr bool
	}{
		{name: "none", args: nil, want: []float64{}},
		{name: "separate", args: []string{"2", "-3.5"}, want: []float64{2, -3.5}},
		{name: "comma separated", args: []string{"1, 2,3"}, want: []float64{1, 2, 3}},
		{name: "exponent", args: []string{"1e3"}, want: []float64{1000}},
		{name: "not a number", args: []string{"two"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatValues(t *testing.T) {
	assert.Equal(t, "5, -1, 2.5", formatValues([]float64{5, -1, 2.5}))
	assert.Equal(t, "", formatValues(nil))
}
