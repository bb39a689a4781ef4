package table

import "github.com/mmrzaf/synthgen/internal/domain"

// ColumnStats summarizes one numeric column.
type ColumnStats struct {
	Name      string  `json:"name"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	NullCount int     `json:"null_count"`
}

// Stats computes mean/min/max/null-count for every numeric column, in
// column order. Columns with no numeric values are skipped.
func Stats(t *domain.Table) []ColumnStats {
	var out []ColumnStats
	for idx, name := range t.Columns {
		var (
			sum    float64
			min    float64
			max    float64
			count  int
			nulls  int
			isNum  bool
			seenAn bool
		)
		for _, row := range t.Rows {
			v := row[idx]
			if v == nil {
				nulls++
				continue
			}
			f, ok := asFloat(v)
			if !ok {
				seenAn = true
				continue
			}
			if count == 0 || f < min {
				min = f
			}
			if count == 0 || f > max {
				max = f
			}
			sum += f
			count++
			isNum = true
		}
		if !isNum || seenAn {
			continue
		}
		out = append(out, ColumnStats{
			Name:      name,
			Mean:      sum / float64(count),
			Min:       min,
			Max:       max,
			NullCount: nulls,
		})
	}
	return out
}

func asFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}
