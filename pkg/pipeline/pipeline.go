// Package pipeline orchestrates the harmonization runs end to end: load
// the source entities from a data directory, prepare each one, integrate
// them through the join graph, post-process, normalize onto the unified
// schema, and write the result as a single CSV file.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
	"github.com/erphub/harmonize/pkg/logging"
)

// Pipeline names, used in logs and error wrapping.
const (
	LocalMaterialPipeline = "local_material"
	ProcessOrderPipeline  = "process_order"
	UnionPipeline         = "union"
)

// Default parameter values.
const (
	DefaultFileName             = "local_material"
	DefaultOrderFileName        = "process_order"
	DefaultGlobalMaterialColumn = "ZZMDGM"
)

// Params configures one pipeline run.
type Params struct {
	// DataDir is the directory holding one CSV file per source entity.
	DataDir string

	// SystemName identifies the source ERP system; it is stamped on
	// every output row.
	SystemName string

	// OutputDir receives the unified output file.
	OutputDir string

	// FileName is the output file's base name, without extension.
	FileName string

	// GlobalMaterialColumn is the source column holding the global
	// material number; it varies between ERP systems.
	GlobalMaterialColumn string
}

func (p *Params) validate() error {
	if p.DataDir == "" {
		return pkgerrors.NewValidationError("data_dir", p.DataDir, "must not be empty")
	}
	if p.SystemName == "" {
		return pkgerrors.NewValidationError("system_name", p.SystemName, "must not be empty")
	}
	if p.OutputDir == "" {
		return pkgerrors.NewValidationError("output_dir", p.OutputDir, "must not be empty")
	}
	return nil
}

func (p *Params) applyDefaults(fileName string) {
	if p.FileName == "" {
		p.FileName = fileName
	}
	if p.GlobalMaterialColumn == "" {
		p.GlobalMaterialColumn = DefaultGlobalMaterialColumn
	}
}

// withRun ensures the context carries a run ID so every stage of a run
// logs the same run_id field.
func withRun(ctx context.Context) context.Context {
	if logging.RunID(ctx) != "" {
		return ctx
	}
	return logging.WithRunID(ctx, uuid.NewString())
}

// loadEntities scans the data directory into an entity registry keyed by
// the last underscore token of each file's base name.
func loadEntities(ctx context.Context, pipeline, dataDir string) (map[string]*dataset.Dataset, error) {
	reg, err := dataset.ReadDir(dataDir)
	if err != nil {
		return nil, pkgerrors.NewPipelineError(pipeline, "load", "", err)
	}

	log := logging.Ctx(ctx)
	for name, ds := range reg {
		log.Debug().
			Str("pipeline", pipeline).
			Str("entity", name).
			Int("rows", ds.Len()).
			Msg("loaded entity")
	}
	return reg, nil
}

// entity fetches one required entity from the registry.
func entity(pipeline string, reg map[string]*dataset.Dataset, name string) (*dataset.Dataset, error) {
	ds, ok := reg[name]
	if !ok {
		return nil, pkgerrors.NewPipelineError(pipeline, "load", name, pkgerrors.NewNotFoundError("entity", name))
	}
	return ds, nil
}

// stage wraps one prepare step: it runs fn, wraps any failure with the
// pipeline and entity names, and logs the row counts.
func stage(ctx context.Context, pipeline, name string, in *dataset.Dataset, fn func(*dataset.Dataset) (*dataset.Dataset, error)) (*dataset.Dataset, error) {
	out, err := fn(in)
	if err != nil {
		return nil, pkgerrors.NewPipelineError(pipeline, "prepare", name, err)
	}
	logStage(ctx, pipeline, "prepare", name, in.Len(), out.Len())
	return out, nil
}

func logStage(ctx context.Context, pipeline, stage, name string, rowsIn, rowsOut int) {
	logging.Ctx(ctx).Info().
		Str("pipeline", pipeline).
		Str("stage", stage).
		Str("entity", name).
		Int("rows_in", rowsIn).
		Int("rows_out", rowsOut).
		Msg("stage complete")
}
