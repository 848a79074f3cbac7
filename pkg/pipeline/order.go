package pipeline

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
	"github.com/erphub/harmonize/pkg/integrate"
	"github.com/erphub/harmonize/pkg/logging"
	"github.com/erphub/harmonize/pkg/output"
	"github.com/erphub/harmonize/pkg/postprocess"
	"github.com/erphub/harmonize/pkg/prepare"
	"github.com/erphub/harmonize/pkg/schemas"
)

// changeDocumentsEntity is the optional change-document entity joined on
// object number when its file is present in the data directory.
const changeDocumentsEntity = "CDPOS"

// ProcessOrder runs the process-order pipeline: load the AFKO, AFPO,
// AUFK and MARA entities from the data directory, prepare each,
// integrate them from the order-header base, post-process, normalize
// onto the unified schema, and write a single CSV file. A CDPOS entity,
// when present, is joined on object number; its absence is not an error.
// It returns the path of the written file.
func ProcessOrder(ctx context.Context, p Params) (string, error) {
	p.applyDefaults(DefaultOrderFileName)
	if err := p.validate(); err != nil {
		return "", err
	}
	ctx = withRun(ctx)

	reg, err := loadEntities(ctx, ProcessOrderPipeline, p.DataDir)
	if err != nil {
		return "", err
	}

	var raw = make(map[string]*dataset.Dataset, 4)
	for _, name := range []string{schemas.AFKO, schemas.AFPO, schemas.AUFK, schemas.MARA} {
		if raw[name], err = entity(ProcessOrderPipeline, reg, name); err != nil {
			return "", err
		}
	}

	asOf := utc.Now()
	orderHeaders, err := stage(ctx, ProcessOrderPipeline, schemas.AFKO, raw[schemas.AFKO], func(ds *dataset.Dataset) (*dataset.Dataset, error) {
		return prepare.OrderHeader(ds, asOf)
	})
	if err != nil {
		return "", err
	}
	orderItems, err := stage(ctx, ProcessOrderPipeline, schemas.AFPO, raw[schemas.AFPO], prepare.OrderItems)
	if err != nil {
		return "", err
	}
	orderMaster, err := stage(ctx, ProcessOrderPipeline, schemas.AUFK, raw[schemas.AUFK], prepare.OrderMaster)
	if err != nil {
		return "", err
	}
	material, err := stage(ctx, ProcessOrderPipeline, schemas.MARA, raw[schemas.MARA], func(ds *dataset.Dataset) (*dataset.Dataset, error) {
		return prepare.Material(ds, p.GlobalMaterialColumn, schemas.MustSchema(schemas.MARAOrder), nil)
	})
	if err != nil {
		return "", err
	}

	// Optional change documents. nil skips the join.
	changeDocuments := reg[changeDocumentsEntity]

	integrated, err := integrate.Order(orderHeaders, orderItems, orderMaster, material, changeDocuments)
	if err != nil {
		return "", pkgerrors.NewPipelineError(ProcessOrderPipeline, "integrate", "", err)
	}
	logStage(ctx, ProcessOrderPipeline, "integrate", "", orderHeaders.Len(), integrated.Len())

	post, err := postprocess.Order(integrated)
	if err != nil {
		return "", pkgerrors.NewPipelineError(ProcessOrderPipeline, "postprocess", "", err)
	}
	logStage(ctx, ProcessOrderPipeline, "postprocess", "", integrated.Len(), post.Len())

	normalized, err := output.Normalize(post, output.OrderRenames, false, p.SystemName)
	if err != nil {
		return "", pkgerrors.NewPipelineError(ProcessOrderPipeline, "normalize", "", err)
	}

	path, err := dataset.WriteCSV(normalized, p.OutputDir, p.FileName)
	if err != nil {
		return "", pkgerrors.NewPipelineError(ProcessOrderPipeline, "write", "", err)
	}

	logging.Ctx(ctx).Info().
		Str("pipeline", ProcessOrderPipeline).
		Str("path", path).
		Int("rows", normalized.Len()).
		Msg("pipeline complete")
	return path, nil
}
