package dataset

import (
	"strings"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

// LeftJoin joins two datasets on the named key columns, preserving every
// left row. Rows without a match are null-filled for the right side; rows
// with several matches fan out, one output row per match. A null in any key
// component never matches, on either side.
//
// The join keys appear once in the result, taken from the left side. A
// right column whose name already exists on the left (other than a key) is
// dropped, keeping the left value.
func (d *Dataset) LeftJoin(right *Dataset, keys ...string) (*Dataset, error) {
	for _, k := range keys {
		if !d.HasColumn(k) {
			return nil, pkgerrors.NewSchemaError("left join", k, "left dataset")
		}
		if !right.HasColumn(k) {
			return nil, pkgerrors.NewSchemaError("left join", k, "right dataset")
		}
	}

	// Right-side columns carried into the result.
	var carried []string
	for _, c := range right.cols {
		if !d.HasColumn(c) {
			carried = append(carried, c)
		}
	}

	// Hash the right side by composite key. Rows with a null key component
	// are unmatchable and never indexed.
	matches := make(map[string][]int, right.Len())
	for i := 0; i < right.Len(); i++ {
		k, ok := joinKey(right.Row(i), keys)
		if !ok {
			continue
		}
		matches[k] = append(matches[k], i)
	}

	out := New(append(d.Columns(), carried...)...)
	for i := 0; i < d.Len(); i++ {
		leftRow := d.rows[i]
		k, ok := joinKey(d.Row(i), keys)
		var rightRows []int
		if ok {
			rightRows = matches[k]
		}
		if len(rightRows) == 0 {
			row := make([]Value, 0, len(out.cols))
			row = append(row, leftRow...)
			for range carried {
				row = append(row, Null())
			}
			out.rows = append(out.rows, row)
			continue
		}
		for _, ri := range rightRows {
			row := make([]Value, 0, len(out.cols))
			row = append(row, leftRow...)
			rr := right.Row(ri)
			for _, c := range carried {
				row = append(row, rr.Get(c))
			}
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}

// joinKey builds a composite join key; ok is false when any component is
// null, because null keys never participate in a match.
func joinKey(r Row, keys []string) (string, bool) {
	parts := make([]string, len(keys))
	for i, k := range keys {
		v := r.Get(k)
		if v.IsNull() {
			return "", false
		}
		parts[i] = v.Format()
	}
	return strings.Join(parts, keySep), true
}
