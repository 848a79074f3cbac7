package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

const outputDirPermissions = 0o755

// WriteCSV writes the dataset as exactly one delimited text file named
// <fileName>.csv in outputDir, with a header row. A trailing .csv on
// fileName is tolerated. Nulls render as empty fields; dates and
// timestamps use the engine's canonical formats. Returns the written path.
func WriteCSV(d *Dataset, outputDir, fileName string) (string, error) {
	if strings.TrimSpace(outputDir) == "" {
		return "", pkgerrors.NewValidationError("output_dir", outputDir, "must be a non-empty string")
	}
	if strings.TrimSpace(fileName) == "" {
		return "", pkgerrors.NewValidationError("file_name", fileName, "must be a non-empty string")
	}
	fileName = strings.TrimSuffix(fileName, ".csv")

	if err := os.MkdirAll(outputDir, outputDirPermissions); err != nil {
		return "", pkgerrors.WrapIO("create", outputDir, err)
	}

	path := filepath.Join(outputDir, fileName+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", pkgerrors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(d.cols); err != nil {
		return "", pkgerrors.WrapIO("write", path, err)
	}
	record := make([]string, len(d.cols))
	for _, row := range d.rows {
		for i, v := range row {
			record[i] = v.Format()
		}
		if err := w.Write(record); err != nil {
			return "", pkgerrors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", pkgerrors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return "", pkgerrors.WrapIO("close", path, err)
	}
	return path, nil
}
