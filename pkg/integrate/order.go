package integrate

import (
	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

// Order integrates the process-order entities, starting from the order
// header base:
//
//	orderHeaders ⟕ orderItems      on AUFNR
//	             ⟕ orderMaster     on AUFNR
//	             ⟕ material        on MATNR
//	             ⟕ changeDocuments on OBJNR   (only when supplied)
//
// After joining, the basic finish date GLTRP is resolved by preferring the
// order master's original finish date (ZZGLTRP_ORIG) when present.
// changeDocuments may be nil; the join is skipped.
func Order(orderHeaders, orderItems, orderMaster, material, changeDocuments *dataset.Dataset) (*dataset.Dataset, error) {
	for name, ds := range map[string]*dataset.Dataset{
		"order_headers": orderHeaders,
		"order_items":   orderItems,
		"order_master":  orderMaster,
		"material":      material,
	} {
		if ds == nil {
			return nil, pkgerrors.NewValidationError(name, nil, "expected a dataset")
		}
	}

	out, err := orderHeaders.LeftJoin(orderItems, "AUFNR")
	if err != nil {
		return nil, err
	}
	out, err = out.LeftJoin(orderMaster, "AUFNR")
	if err != nil {
		return nil, err
	}
	out, err = out.LeftJoin(material, "MATNR")
	if err != nil {
		return nil, err
	}
	if changeDocuments != nil {
		out, err = out.LeftJoin(changeDocuments, "OBJNR")
		if err != nil {
			return nil, err
		}
	}

	out = out.WithColumn("GLTRP", func(r dataset.Row) dataset.Value {
		return dataset.Coalesce(r.Get("ZZGLTRP_ORIG"), r.Get("GLTRP"))
	})
	return out, nil
}
