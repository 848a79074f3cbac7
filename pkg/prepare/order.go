package prepare

import (
	"github.com/agentstation/utc"

	"github.com/erphub/harmonize/pkg/dataset"
	"github.com/erphub/harmonize/pkg/schemas"
)

// yearMonthFormat truncates a date to its year and month.
const yearMonthFormat = "2006-01"

// OrderHeader prepares order header data (AFKO). The derived start_date is
// the first day of the order's basic start month: year-month of GSTRP when
// present, of the processing date asOf when GSTRP is null, with a literal
// day-of-month "01" appended. An unparsable GSTRP leaves the month blank
// and the subsequent date cast turns the remainder into a null start_date
// rather than failing the run.
func OrderHeader(ds *dataset.Dataset, asOf utc.Time) (*dataset.Dataset, error) {
	if err := requireDataset("order header dataset", ds); err != nil {
		return nil, err
	}

	ds = ds.WithColumn("start_date", func(r dataset.Row) dataset.Value {
		v := r.Get("GSTRP")
		if v.IsNull() {
			return dataset.Str(asOf.Format(yearMonthFormat))
		}
		if t, ok := v.Time(); ok {
			return dataset.Str(t.Format(yearMonthFormat))
		}
		return dataset.Null()
	})
	ds = ds.WithColumn("start_date", func(r dataset.Row) dataset.Value {
		return dataset.ConcatWS("-", r.Get("start_date"), dataset.Str("01"))
	})

	return schemas.Enforce(ds, schemas.MustSchema(schemas.AFKO)), nil
}

// OrderItems prepares order item data (AFPO): schema enforcement only.
func OrderItems(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return WithSchema(ds, schemas.MustSchema(schemas.AFPO))
}

// OrderMaster prepares order master data (AUFK): schema enforcement only.
func OrderMaster(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return WithSchema(ds, schemas.MustSchema(schemas.AUFK))
}
