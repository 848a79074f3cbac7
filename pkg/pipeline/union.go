package pipeline

import (
	"context"

	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
	"github.com/erphub/harmonize/pkg/logging"
)

// UnionMany concatenates several already-produced unified output files
// into one CSV file. Column sets are aligned by name; a column missing
// from one file is null-filled for that file's rows. It returns the path
// of the written file.
func UnionMany(ctx context.Context, files []string, outputDir, fileName string) (string, error) {
	if len(files) == 0 {
		return "", pkgerrors.NewValidationError("files", files, "need at least one input file")
	}
	if outputDir == "" {
		return "", pkgerrors.NewValidationError("output_dir", outputDir, "must not be empty")
	}
	if fileName == "" {
		return "", pkgerrors.NewValidationError("file_name", fileName, "must not be empty")
	}
	ctx = withRun(ctx)

	var combined *dataset.Dataset
	for _, file := range files {
		ds, err := dataset.ReadFile(file, "csv", nil)
		if err != nil {
			return "", pkgerrors.NewPipelineError(UnionPipeline, "load", file, err)
		}
		if combined == nil {
			combined = ds
		} else {
			combined = combined.Union(ds)
		}
		logStage(ctx, UnionPipeline, "union", file, ds.Len(), combined.Len())
	}

	path, err := dataset.WriteCSV(combined, outputDir, fileName)
	if err != nil {
		return "", pkgerrors.NewPipelineError(UnionPipeline, "write", "", err)
	}

	logging.Ctx(ctx).Info().
		Str("pipeline", UnionPipeline).
		Str("path", path).
		Int("rows", combined.Len()).
		Int("files", len(files)).
		Msg("pipeline complete")
	return path, nil
}
