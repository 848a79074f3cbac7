package prepare

import (
	"github.com/erphub/harmonize/pkg/dataset"
	"github.com/erphub/harmonize/pkg/schemas"
)

// invalidOldMaterialNumbers are BISMT codes marking a material record that
// was archived, duplicated, or renumbered and must not be harmonized.
var invalidOldMaterialNumbers = map[string]struct{}{
	"ARCHIVE":    {},
	"DUPLICATE":  {},
	"RENUMBERED": {},
}

// MaterialOptions toggle the general material data filters. Both checks
// are on by default.
type MaterialOptions struct {
	// CheckOldMaterialNumber keeps only rows whose old material number
	// (BISMT) is null or not one of the invalid codes.
	CheckOldMaterialNumber bool

	// CheckNotDeleted keeps only rows whose deletion flag (LVORM) is null
	// or empty.
	CheckNotDeleted bool
}

// DefaultMaterialOptions returns the standard material filter set.
func DefaultMaterialOptions() MaterialOptions {
	return MaterialOptions{
		CheckOldMaterialNumber: true,
		CheckNotDeleted:        true,
	}
}

// Material prepares general material data: filters out archived/duplicated/
// renumbered and deletion-flagged materials, renames the caller-specified
// global-material-number column to its canonical name, and enforces the
// given schema. The schema differs per pipeline (MARA for local material,
// MARA_ORDER for process order); the global material column name varies
// between source systems and is configuration, not code.
func Material(ds *dataset.Dataset, globalMaterialColumn string, schema schemas.Schema, opts *MaterialOptions) (*dataset.Dataset, error) {
	if err := requireDataset("material dataset", ds); err != nil {
		return nil, err
	}
	if err := requireString("global_material_column", globalMaterialColumn); err != nil {
		return nil, err
	}
	options := DefaultMaterialOptions()
	if opts != nil {
		options = *opts
	}

	if options.CheckOldMaterialNumber {
		ds = ds.Filter(func(r dataset.Row) bool {
			v := r.Get("BISMT")
			if v.IsNull() {
				return true
			}
			_, invalid := invalidOldMaterialNumbers[v.Format()]
			return !invalid
		})
	}

	if options.CheckNotDeleted {
		ds = ds.Filter(func(r dataset.Row) bool {
			return nullOrEmpty(r.Get("LVORM"))
		})
	}

	ds = ds.Rename(globalMaterialColumn, "global_material_number")

	return schemas.Enforce(ds, schema), nil
}
