// Package dataset implements the in-memory tabular engine the harmonization
// pipelines run on. A Dataset is an immutable, ordered collection of named
// columns and rows of nullable values; every transformation returns a new
// Dataset and leaves its receiver untouched, so a pipeline produces identical
// results no matter how its steps are fused or re-run.
package dataset

import (
	"strings"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

// keySep separates components of composite grouping and join keys. Unit
// separator: it cannot appear in decoded CSV text.
const keySep = "\x1f"

// Dataset is an immutable table of nullable values.
type Dataset struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// New creates an empty dataset with the given column order.
func New(cols ...string) *Dataset {
	d := &Dataset{
		cols:  append([]string(nil), cols...),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range d.cols {
		d.index[c] = i
	}
	return d
}

// Append adds a row and returns the dataset for chaining. Short rows are
// padded with nulls and long rows truncated, mirroring how ragged source
// extracts are loaded.
func (d *Dataset) Append(values ...Value) *Dataset {
	row := make([]Value, len(d.cols))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		} else {
			row[i] = Null()
		}
	}
	d.rows = append(d.rows, row)
	return d
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.cols...)
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Row is a view over one dataset row.
type Row struct {
	d   *Dataset
	idx int
}

// Get returns the named column's value for this row, or a null if the
// column does not exist.
func (r Row) Get(name string) Value {
	i, ok := r.d.index[name]
	if !ok {
		return Null()
	}
	return r.d.rows[r.idx][i]
}

// Row returns a view over the i-th row.
func (d *Dataset) Row(i int) Row { return Row{d: d, idx: i} }

// clone copies column metadata but not rows.
func (d *Dataset) clone() *Dataset {
	return New(d.cols...)
}

// Filter returns the rows for which pred is true, preserving input order.
func (d *Dataset) Filter(pred func(Row) bool) *Dataset {
	out := d.clone()
	for i := range d.rows {
		if pred(Row{d: d, idx: i}) {
			out.rows = append(out.rows, append([]Value(nil), d.rows[i]...))
		}
	}
	return out
}

// WithColumn returns a dataset with the named column set to fn's result for
// every row. An existing column is replaced in place; a new column is
// appended after the existing ones.
func (d *Dataset) WithColumn(name string, fn func(Row) Value) *Dataset {
	pos, exists := d.index[name]
	var out *Dataset
	if exists {
		out = d.clone()
	} else {
		out = New(append(d.Columns(), name)...)
		pos = len(d.cols)
	}
	for i := range d.rows {
		row := make([]Value, len(out.cols))
		copy(row, d.rows[i])
		row[pos] = fn(Row{d: d, idx: i})
		out.rows = append(out.rows, row)
	}
	return out
}

// WithLiteral returns a dataset with the named column set to a constant.
func (d *Dataset) WithLiteral(name string, v Value) *Dataset {
	return d.WithColumn(name, func(Row) Value { return v })
}

// Rename returns a dataset with column old renamed to new. Renaming a
// column that does not exist is a no-op, matching the engine's lenient
// column semantics.
func (d *Dataset) Rename(old, new string) *Dataset {
	if !d.HasColumn(old) || old == new {
		return d
	}
	cols := d.Columns()
	cols[d.index[old]] = new
	out := New(cols...)
	out.rows = append([][]Value(nil), d.rows...)
	return out
}

// Select returns a dataset with exactly the named columns in the given
// order. A missing column is a schema error.
func (d *Dataset) Select(cols ...string) (*Dataset, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		pos, ok := d.index[c]
		if !ok {
			return nil, pkgerrors.NewSchemaError("select", c, "")
		}
		idx[i] = pos
	}
	out := New(cols...)
	for _, row := range d.rows {
		picked := make([]Value, len(idx))
		for i, pos := range idx {
			picked[i] = row[pos]
		}
		out.rows = append(out.rows, picked)
	}
	return out, nil
}

// CastColumn returns a dataset with the named column cast to the given
// kind. Values that fail to cast become nulls of that kind; a missing
// column is a no-op.
func (d *Dataset) CastColumn(name string, kind Kind) *Dataset {
	pos, ok := d.index[name]
	if !ok {
		return d
	}
	out := d.clone()
	for _, row := range d.rows {
		next := append([]Value(nil), row...)
		next[pos] = next[pos].Cast(kind)
		out.rows = append(out.rows, next)
	}
	return out
}

// DropDuplicates returns a dataset keeping the first row in input order for
// each distinct key. With no keys, entire rows are compared.
func (d *Dataset) DropDuplicates(keys ...string) *Dataset {
	if len(keys) == 0 {
		keys = d.cols
	}
	out := d.clone()
	seen := make(map[string]struct{}, len(d.rows))
	for i, row := range d.rows {
		k := d.groupKey(Row{d: d, idx: i}, keys)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out.rows = append(out.rows, append([]Value(nil), row...))
	}
	return out
}

// groupKey builds a composite grouping key from the named columns. Null
// components are marked distinctly from empty strings so that grouping
// treats them as their own partition.
func (d *Dataset) groupKey(r Row, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		v := r.Get(k)
		if v.IsNull() {
			parts[i] = "\x00"
		} else {
			parts[i] = v.Format()
		}
	}
	return strings.Join(parts, keySep)
}

// Union concatenates two datasets by column name. The result carries this
// dataset's columns followed by columns only the other dataset has; rows
// missing a column are null-filled.
func (d *Dataset) Union(other *Dataset) *Dataset {
	cols := d.Columns()
	for _, c := range other.cols {
		if !d.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	out := New(cols...)
	appendFrom := func(src *Dataset) {
		for i := range src.rows {
			r := src.Row(i)
			row := make([]Value, len(cols))
			for j, c := range cols {
				if src.HasColumn(c) {
					row[j] = r.Get(c)
				} else {
					row[j] = Null()
				}
			}
			out.rows = append(out.rows, row)
		}
	}
	appendFrom(d)
	appendFrom(other)
	return out
}

// Equal reports whether two datasets carry the same columns in the same
// order and the same rows, ignoring row order.
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil || len(d.cols) != len(other.cols) {
		return false
	}
	for i, c := range d.cols {
		if other.cols[i] != c {
			return false
		}
	}
	if len(d.rows) != len(other.rows) {
		return false
	}
	counts := make(map[string]int, len(d.rows))
	for i := range d.rows {
		counts[d.groupKey(Row{d: d, idx: i}, d.cols)]++
	}
	for i := range other.rows {
		k := other.groupKey(Row{d: other, idx: i}, other.cols)
		counts[k]--
		if counts[k] < 0 {
			return false
		}
	}
	return true
}
