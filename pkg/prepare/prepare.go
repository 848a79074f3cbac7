// Package prepare implements the per-entity preparation rules: row
// filters, validity checks, the valuation dedup rule, and schema
// enforcement. Every preparer validates its inputs up front and fails the
// run with a validation error before touching any data.
package prepare

import (
	"strings"

	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
	"github.com/erphub/harmonize/pkg/schemas"
)

// requireDataset rejects a nil dataset where an entity extract is required.
func requireDataset(name string, ds *dataset.Dataset) error {
	if ds == nil {
		return pkgerrors.NewValidationError(name, nil, "expected a dataset")
	}
	return nil
}

// requireString rejects an empty configuration string.
func requireString(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return pkgerrors.NewValidationError(name, value, "must be a non-empty string")
	}
	return nil
}

// WithSchema validates the input and enforces the given schema, nothing
// else. Entities without business filters (order item, order master)
// prepare through this directly.
func WithSchema(ds *dataset.Dataset, schema schemas.Schema) (*dataset.Dataset, error) {
	if err := requireDataset("dataset", ds); err != nil {
		return nil, err
	}
	return schemas.Enforce(ds, schema), nil
}

// nullOrEmpty reports whether a value is null or renders as the empty
// string. Deletion flags arrive either way depending on the source system.
func nullOrEmpty(v dataset.Value) bool {
	return v.IsNull() || v.Format() == ""
}
