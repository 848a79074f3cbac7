package pipeline

import (
	"context"

	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
	"github.com/erphub/harmonize/pkg/integrate"
	"github.com/erphub/harmonize/pkg/logging"
	"github.com/erphub/harmonize/pkg/output"
	"github.com/erphub/harmonize/pkg/postprocess"
	"github.com/erphub/harmonize/pkg/prepare"
	"github.com/erphub/harmonize/pkg/schemas"
)

// LocalMaterial runs the local-material pipeline: load the MARA, MBEW,
// MARC, T001W, T001K and T001 entities from the data directory, prepare
// each, integrate them from the plant-material base, post-process,
// normalize onto the unified schema, and write a single CSV file. It
// returns the path of the written file.
func LocalMaterial(ctx context.Context, p Params) (string, error) {
	p.applyDefaults(DefaultFileName)
	if err := p.validate(); err != nil {
		return "", err
	}
	ctx = withRun(ctx)

	reg, err := loadEntities(ctx, LocalMaterialPipeline, p.DataDir)
	if err != nil {
		return "", err
	}

	var raw = make(map[string]*dataset.Dataset, 6)
	for _, name := range []string{schemas.MARA, schemas.MBEW, schemas.MARC, schemas.T001W, schemas.T001K, schemas.T001} {
		if raw[name], err = entity(LocalMaterialPipeline, reg, name); err != nil {
			return "", err
		}
	}

	material, err := stage(ctx, LocalMaterialPipeline, schemas.MARA, raw[schemas.MARA], func(ds *dataset.Dataset) (*dataset.Dataset, error) {
		return prepare.Material(ds, p.GlobalMaterialColumn, schemas.MustSchema(schemas.MARA), nil)
	})
	if err != nil {
		return "", err
	}
	valuation, err := stage(ctx, LocalMaterialPipeline, schemas.MBEW, raw[schemas.MBEW], prepare.Valuation)
	if err != nil {
		return "", err
	}
	plantMaterial, err := stage(ctx, LocalMaterialPipeline, schemas.MARC, raw[schemas.MARC], func(ds *dataset.Dataset) (*dataset.Dataset, error) {
		return prepare.PlantMaterial(ds, nil)
	})
	if err != nil {
		return "", err
	}
	plantBranches, err := stage(ctx, LocalMaterialPipeline, schemas.T001W, raw[schemas.T001W], prepare.PlantBranches)
	if err != nil {
		return "", err
	}
	valuationAreas, err := stage(ctx, LocalMaterialPipeline, schemas.T001K, raw[schemas.T001K], prepare.ValuationArea)
	if err != nil {
		return "", err
	}
	companyCodes, err := stage(ctx, LocalMaterialPipeline, schemas.T001, raw[schemas.T001], prepare.CompanyCodes)
	if err != nil {
		return "", err
	}

	integrated, err := integrate.Material(plantMaterial, material, valuation, plantBranches, valuationAreas, companyCodes)
	if err != nil {
		return "", pkgerrors.NewPipelineError(LocalMaterialPipeline, "integrate", "", err)
	}
	logStage(ctx, LocalMaterialPipeline, "integrate", "", plantMaterial.Len(), integrated.Len())

	post, err := postprocess.LocalMaterial(integrated)
	if err != nil {
		return "", pkgerrors.NewPipelineError(LocalMaterialPipeline, "postprocess", "", err)
	}
	logStage(ctx, LocalMaterialPipeline, "postprocess", "", integrated.Len(), post.Len())

	normalized, err := output.Normalize(post, output.MaterialRenames, true, p.SystemName)
	if err != nil {
		return "", pkgerrors.NewPipelineError(LocalMaterialPipeline, "normalize", "", err)
	}

	path, err := dataset.WriteCSV(normalized, p.OutputDir, p.FileName)
	if err != nil {
		return "", pkgerrors.NewPipelineError(LocalMaterialPipeline, "write", "", err)
	}

	logging.Ctx(ctx).Info().
		Str("pipeline", LocalMaterialPipeline).
		Str("path", path).
		Int("rows", normalized.Len()).
		Msg("pipeline complete")
	return path, nil
}
