package randutil

import (
	"fmt"
	"strconv"

	"github.com/mmrzaf/synthgen/internal/domain"
)

// IDs returns n sequential identifiers. With a prefix the result is
// prefix + number as a string; without one, bare ints.
func IDs(n int, prefix string, start int) []interface{} {
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		if prefix != "" {
			out[i] = prefix + strconv.Itoa(start+i)
		} else {
			out[i] = start + i
		}
	}
	return out
}

// Categorical draws n samples from categories with replacement. Weights
// need not sum to one but must be non-negative and not all zero; nil
// weights mean uniform.
func (s *Source) Categorical(n int, categories []string, weights []float64) ([]string, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: categorical requires at least one category", domain.ErrInvalidParameter)
	}
	if weights == nil {
		out := make([]string, n)
		for i := range out {
			out[i] = categories[s.rng.Intn(len(categories))]
		}
		return out, nil
	}
	if len(weights) != len(categories) {
		return nil, fmt.Errorf("%w: %d weights for %d categories", domain.ErrInvalidParameter, len(weights), len(categories))
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %v", domain.ErrInvalidParameter, w)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: total weight is zero", domain.ErrInvalidParameter)
	}

	out := make([]string, n)
	for i := range out {
		r := s.rng.Float64() * total
		cum := 0.0
		picked := categories[len(categories)-1]
		for j, w := range weights {
			cum += w
			if r < cum {
				picked = categories[j]
				break
			}
		}
		out[i] = picked
	}
	return out, nil
}

// Distribution names accepted by Numeric.
const (
	DistUniform = "uniform"
	DistNormal  = "normal"
)

// Numeric draws n values in [min, max]. Uniform draws are i.i.d.; normal
// draws use mean=(min+max)/2 and std=(max-min)/6, then clip into range,
// piling tail mass at the boundaries. Values are rounded to decimals
// places; decimals < 0 truncates to int.
func (s *Source) Numeric(n int, min, max float64, distribution string, decimals int) ([]interface{}, error) {
	if max < min {
		return nil, fmt.Errorf("%w: max (%v) below min (%v)", domain.ErrInvalidParameter, max, min)
	}

	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		var v float64
		switch distribution {
		case DistNormal:
			mean := (min + max) / 2
			std := (max - min) / 6
			v = Clip(s.Normal(mean, std), min, max)
		case DistUniform, "":
			v = min + s.rng.Float64()*(max-min)
		default:
			return nil, fmt.Errorf("%w: unknown distribution %q", domain.ErrInvalidParameter, distribution)
		}
		if decimals < 0 {
			out[i] = int(v)
		} else {
			out[i] = Round(v, decimals)
		}
	}
	return out, nil
}

// AddNulls independently replaces each value with nil with the given
// probability. A rate <= 0 returns the input slice untouched; draws are
// per-row Bernoulli, not count-exact.
func (s *Source) AddNulls(column []interface{}, rate float64) []interface{} {
	if rate <= 0 {
		return column
	}
	out := make([]interface{}, len(column))
	for i, v := range column {
		if s.rng.Float64() < rate {
			out[i] = nil
		} else {
			out[i] = v
		}
	}
	return out
}
