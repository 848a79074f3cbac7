// Package integrate composes prepared entities into one wide record set
// per pipeline through an ordered sequence of left-preserving joins. The
// base entity's rows are never dropped: a missing match null-fills the
// joined entity's fields.
package integrate

import (
	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

// Material integrates the local-material entities, starting from the
// plant-material base:
//
//	plantMaterial ⟕ material            on MATNR
//	              ⟕ plantBranches       on MANDT, WERKS
//	              ⟕ valuation           on MANDT, MATNR, BWKEY
//	              ⟕ valuationAreas      on MANDT, BWKEY
//	              ⟕ companyCodes        on MANDT, BUKRS
//
// The plant-branch join precedes the valuation join because it supplies
// the valuation area (BWKEY) for the plant.
func Material(plantMaterial, material, valuation, plantBranches, valuationAreas, companyCodes *dataset.Dataset) (*dataset.Dataset, error) {
	for name, ds := range map[string]*dataset.Dataset{
		"plant_material":  plantMaterial,
		"material":        material,
		"valuation":       valuation,
		"plant_branches":  plantBranches,
		"valuation_areas": valuationAreas,
		"company_codes":   companyCodes,
	} {
		if ds == nil {
			return nil, pkgerrors.NewValidationError(name, nil, "expected a dataset")
		}
	}

	out, err := plantMaterial.LeftJoin(material, "MATNR")
	if err != nil {
		return nil, err
	}
	out, err = out.LeftJoin(plantBranches, "MANDT", "WERKS")
	if err != nil {
		return nil, err
	}
	out, err = out.LeftJoin(valuation, "MANDT", "MATNR", "BWKEY")
	if err != nil {
		return nil, err
	}
	out, err = out.LeftJoin(valuationAreas, "MANDT", "BWKEY")
	if err != nil {
		return nil, err
	}
	return out.LeftJoin(companyCodes, "MANDT", "BUKRS")
}
