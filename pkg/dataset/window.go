package dataset

import (
	"sort"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

// TopPerPartition keeps, for each distinct combination of the partition
// columns, the single row ranked first by the order column, descending
// when desc is true. Ties keep the earliest row in input order; survivors
// come out in input order. This is the window pass behind the valuation
// dedup rule (highest last-evaluated price wins).
func (d *Dataset) TopPerPartition(partition []string, orderBy string, desc bool) (*Dataset, error) {
	for _, c := range append(append([]string(nil), partition...), orderBy) {
		if !d.HasColumn(c) {
			return nil, pkgerrors.NewSchemaError("window rank", c, "")
		}
	}

	best := make(map[string]int, d.Len())
	for i := 0; i < d.Len(); i++ {
		r := Row{d: d, idx: i}
		k := d.groupKey(r, partition)
		prev, seen := best[k]
		if !seen {
			best[k] = i
			continue
		}
		cmp := d.Row(i).Get(orderBy).Compare(d.Row(prev).Get(orderBy))
		if (desc && cmp > 0) || (!desc && cmp < 0) {
			best[k] = i
		}
	}

	survivors := make([]int, 0, len(best))
	for _, i := range best {
		survivors = append(survivors, i)
	}
	sort.Ints(survivors)

	out := d.clone()
	for _, i := range survivors {
		out.rows = append(out.rows, append([]Value(nil), d.rows[i]...))
	}
	return out, nil
}

// CountOver appends a column holding, for every row, the number of rows
// sharing that row's values in the partition columns.
func (d *Dataset) CountOver(partition []string, as string) (*Dataset, error) {
	for _, c := range partition {
		if !d.HasColumn(c) {
			return nil, pkgerrors.NewSchemaError("window count", c, "")
		}
	}

	counts := make(map[string]int64, d.Len())
	for i := 0; i < d.Len(); i++ {
		counts[d.groupKey(Row{d: d, idx: i}, partition)]++
	}

	return d.WithColumn(as, func(r Row) Value {
		return Int(counts[d.groupKey(r, partition)])
	}), nil
}
