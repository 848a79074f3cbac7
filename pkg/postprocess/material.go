// Package postprocess derives composite identity keys, resolves field
// precedence, computes the order timing business flags, and deduplicates
// the integrated record sets.
package postprocess

import (
	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

// materialIdentity is the composite key establishing material identity
// across systems: source system, material number, plant.
var materialIdentity = []string{"SOURCE_SYSTEM_ERP", "MATNR", "WERKS"}

// LocalMaterial post-processes the integrated local-material record set:
//
//   - mtl_plant_emd: plant and plant name joined with a hyphen
//   - global_mtl_id: the material number, falling back to the global
//     material number
//   - primary_key_intra / primary_key_inter: hyphen-joined identity keys
//   - no_of_duplicates: raw row count per identity key, stamped on each
//     surviving row
//
// Exactly one row per identity key survives. Which duplicate survives is
// not dictated by the business rules (valuation precedence was already
// resolved upstream); the first row in input order wins, which keeps the
// output deterministic.
func LocalMaterial(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if ds == nil {
		return nil, pkgerrors.NewValidationError("dataset", nil, "expected a dataset")
	}

	ds = ds.WithColumn("mtl_plant_emd", func(r dataset.Row) dataset.Value {
		return dataset.ConcatWS("-", r.Get("WERKS"), r.Get("NAME1"))
	})
	ds = ds.WithColumn("global_mtl_id", func(r dataset.Row) dataset.Value {
		return dataset.Coalesce(r.Get("MATNR"), r.Get("global_material_number"))
	})

	ds = deriveMaterialKeys(ds)

	ds, err := ds.CountOver(materialIdentity, "no_of_duplicates")
	if err != nil {
		return nil, err
	}

	return ds.DropDuplicates(materialIdentity...), nil
}

// deriveMaterialKeys derives the intra-system and inter-system primary
// keys for the material view.
func deriveMaterialKeys(ds *dataset.Dataset) *dataset.Dataset {
	ds = ds.WithColumn("primary_key_intra", func(r dataset.Row) dataset.Value {
		return dataset.ConcatWS("-", r.Get("MATNR"), r.Get("WERKS"))
	})
	return ds.WithColumn("primary_key_inter", func(r dataset.Row) dataset.Value {
		return dataset.ConcatWS("-", r.Get("SOURCE_SYSTEM_ERP"), r.Get("MATNR"), r.Get("WERKS"))
	})
}
