// Package table assembles generated columns into domain.Table values and
// provides the null-injection and summary post-passes over them.
package table

import (
	"fmt"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/randutil"
)

// Builder collects equal-length columns in insertion order.
type Builder struct {
	n       int
	columns []string
	values  [][]interface{}
	err     error
}

func NewBuilder(n int) *Builder {
	return &Builder{n: n}
}

// Add appends a column. Length mismatches are remembered and surfaced by
// Build.
func (b *Builder) Add(name string, values []interface{}) *Builder {
	if b.err == nil && len(values) != b.n {
		b.err = fmt.Errorf("%w: column %q has %d values, want %d",
			domain.ErrInvalidParameter, name, len(values), b.n)
		return b
	}
	b.columns = append(b.columns, name)
	b.values = append(b.values, values)
	return b
}

// AddStrings is Add for string columns.
func (b *Builder) AddStrings(name string, values []string) *Builder {
	boxed := make([]interface{}, len(values))
	for i, v := range values {
		boxed[i] = v
	}
	return b.Add(name, boxed)
}

// Build transposes the collected columns into rows.
func (b *Builder) Build() (*domain.Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	rows := make([][]interface{}, b.n)
	for i := 0; i < b.n; i++ {
		row := make([]interface{}, len(b.columns))
		for j := range b.columns {
			row[j] = b.values[j][i]
		}
		rows[i] = row
	}
	return &domain.Table{Columns: append([]string(nil), b.columns...), Rows: rows}, nil
}

// ApplyNulls replaces values of the named column with nil at the given
// rate, in place. Unknown columns and rates <= 0 are no-ops.
func ApplyNulls(t *domain.Table, column string, rate float64, src *randutil.Source) {
	idx := t.ColumnIndex(column)
	if idx < 0 || rate <= 0 {
		return
	}
	for _, row := range t.Rows {
		if src.Float64() < rate {
			row[idx] = nil
		}
	}
}
