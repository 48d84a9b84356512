package function

import (
	"fmt"
	"strconv"
	"strings"
)

// parseParams converts command line values to numbers. Values may be given as
// separate arguments or comma separated.
func parseParams(args []string) ([]float64, error) {
	params := []float64{}
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %q is not a number", part)
			}
			params = append(params, v)
		}
	}
	return params, nil
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
