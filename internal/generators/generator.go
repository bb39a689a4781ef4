// Package generators holds the four dataset generators: environmental
// sensor telemetry, business/commerce records, user profiles and job
// logs. Each generator is a pure function of (row count, parameters,
// seeded source) and returns a flat table with a fixed column order.
package generators

import (
	"fmt"
	"time"

	"github.com/mmrzaf/synthgen/internal/domain"
)

func checkRows(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: rows must be positive, got %d", domain.ErrInvalidParameter, n)
	}
	return nil
}

func boxTimes(ts []time.Time) []interface{} {
	out := make([]interface{}, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

func boxFloats(vs []float64) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func boxInts(vs []int) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
