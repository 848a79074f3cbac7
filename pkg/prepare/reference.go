package prepare

import (
	"github.com/erphub/harmonize/pkg/dataset"
	"github.com/erphub/harmonize/pkg/schemas"
)

// PlantBranches prepares the plant/branch reference data (T001W): schema
// enforcement only.
func PlantBranches(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return WithSchema(ds, schemas.MustSchema(schemas.T001W))
}

// ValuationArea prepares the valuation-area reference data (T001K),
// deduplicated to unique rows so the later join cannot fan out.
func ValuationArea(ds *dataset.Dataset) (*dataset.Dataset, error) {
	prepared, err := WithSchema(ds, schemas.MustSchema(schemas.T001K))
	if err != nil {
		return nil, err
	}
	return prepared.DropDuplicates(), nil
}

// CompanyCodes prepares the company-code reference data (T001): schema
// enforcement only.
func CompanyCodes(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return WithSchema(ds, schemas.MustSchema(schemas.T001))
}
