package prepare

import (
	"github.com/erphub/harmonize/pkg/dataset"
	"github.com/erphub/harmonize/pkg/schemas"
)

// Valuation prepares material valuation data. Deletion-flagged rows
// (LVORM set) and split-valuation rows (BWTAR set) are excluded; then, per
// (MATNR, BWKEY), only the row with the highest last-evaluated price
// (LAEPR) survives. Ties keep the earliest row. The surviving rows are
// enforced onto the MBEW schema and any remaining exact duplicates are
// dropped.
func Valuation(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := requireDataset("valuation dataset", ds); err != nil {
		return nil, err
	}

	ds = ds.Filter(func(r dataset.Row) bool {
		return r.Get("LVORM").IsNull()
	})
	ds = ds.Filter(func(r dataset.Row) bool {
		return r.Get("BWTAR").IsNull()
	})

	ds, err := ds.TopPerPartition([]string{"MATNR", "BWKEY"}, "LAEPR", true)
	if err != nil {
		return nil, err
	}

	return schemas.Enforce(ds, schemas.MustSchema(schemas.MBEW)).DropDuplicates(), nil
}
