package prepare

import (
	"github.com/erphub/harmonize/pkg/dataset"
	"github.com/erphub/harmonize/pkg/schemas"
)

// PlantMaterialOptions toggle the plant-material filters.
type PlantMaterialOptions struct {
	// CheckDeletionFlag keeps only rows whose deletion flag (LVORM) is
	// null. On by default.
	CheckDeletionFlag bool

	// DropDuplicates removes exact duplicate rows after enforcement. Off
	// by default.
	DropDuplicates bool
}

// DefaultPlantMaterialOptions returns the standard plant-material filters.
func DefaultPlantMaterialOptions() PlantMaterialOptions {
	return PlantMaterialOptions{CheckDeletionFlag: true}
}

// PlantMaterial prepares plant-level material data (MARC): optional
// deletion-flag filter, MARC schema enforcement, optional duplicate drop.
func PlantMaterial(ds *dataset.Dataset, opts *PlantMaterialOptions) (*dataset.Dataset, error) {
	if err := requireDataset("plant material dataset", ds); err != nil {
		return nil, err
	}
	options := DefaultPlantMaterialOptions()
	if opts != nil {
		options = *opts
	}

	if options.CheckDeletionFlag {
		ds = ds.Filter(func(r dataset.Row) bool {
			return r.Get("LVORM").IsNull()
		})
	}

	ds = schemas.Enforce(ds, schemas.MustSchema(schemas.MARC))

	if options.DropDuplicates {
		ds = ds.DropDuplicates()
	}
	return ds, nil
}
