// Package output normalizes the post-processed record sets onto the
// unified schema: SAP-style field names become business names, the field
// set and order follow the unified catalog entry, fields one pipeline
// never produces are back-filled with typed nulls, and every row is
// stamped with the producing system's name.
package output

import (
	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
	"github.com/erphub/harmonize/pkg/schemas"
)

// RenamePair maps one source field name to its unified output name.
type RenamePair struct {
	From string
	To   string
}

// MaterialRenames maps local-material fields to their unified names, in
// output order. The derived fields already carry their unified names and
// map onto themselves; the material pipeline selects only mapped fields,
// so a derived field without a pair would be lost here.
var MaterialRenames = []RenamePair{
	{"MATNR", "material_number"},
	{"SOURCE_SYSTEM_ERP", "source_system_erp"},
	{"MANDT", "client"},
	{"BUKRS", "company_code"},
	{"BWKEY", "valuation_area"},
	{"WERKS", "plant"},
	{"PLIFZ", "planned_delivery_time"},
	{"DZEIT", "decoupling_time"},
	{"DISLS", "discontinuation_indicator"},
	{"MEINS", "unit_of_measure"},
	{"NAME1", "name_of_plant"},
	{"VPRSV", "price_control_indicator"},
	{"VERPR", "moving_average_price"},
	{"STPRS", "standard_price"},
	{"PEINH", "unit_price"},
	{"BKLAS", "valuation_class"},
	{"WAERS", "currency_key"},
	{"global_material_number", "global_material_number"},
	{"mtl_plant_emd", "mtl_plant_emd"},
	{"global_mtl_id", "global_mtl_id"},
	{"primary_key_intra", "primary_key_intra"},
	{"primary_key_inter", "primary_key_inter"},
	{"no_of_duplicates", "no_of_duplicates"},
}

// OrderRenames maps process-order fields to their unified names, in
// output order.
var OrderRenames = []RenamePair{
	{"MATNR", "material_number"},
	{"AUFNR", "order_number"},
	{"SOURCE_SYSTEM_ERP", "source_system_erp"},
	{"MANDT", "client"},
	{"GLTRP", "start_date_source"},
	{"GSTRI", "order_start_timestamp_source"},
	{"POSNR", "order_item_number"},
	{"DWERK", "plant"},
	{"KDAUF", "sales_order_number"},
	{"LTRMI", "order_finish_timestamp_source"},
	{"OBJNR", "object_number"},
	{"ERDAT", "creation_date"},
	{"ERNAM", "created_by"},
	{"AUART", "order_type"},
	{"ZZGLTRP_ORIG", "original_basic_finish_date"},
	{"ZZPRO_TEXT", "project_text"},
	{"MTART", "material_type"},
	{"NTGEW", "net_weight"},
}

// RenameAndSelect applies the rename pairs in order. With selectOnly the
// result carries only the renamed fields, in pair order; otherwise every
// input field survives, renamed where a pair matches. A pair whose source
// field is absent is skipped.
func RenameAndSelect(ds *dataset.Dataset, pairs []RenamePair, selectOnly bool) (*dataset.Dataset, error) {
	if ds == nil {
		return nil, pkgerrors.NewValidationError("dataset", nil, "expected a dataset")
	}

	out := ds
	for _, p := range pairs {
		out = out.Rename(p.From, p.To)
	}
	if !selectOnly {
		return out, nil
	}

	var keep []string
	for _, p := range pairs {
		if out.HasColumn(p.To) {
			keep = append(keep, p.To)
		}
	}
	return out.Select(keep...)
}

// Normalize renames a post-processed record set onto the unified schema
// and stamps each row with the producing system's name. The result always
// carries the full unified field set in catalog order, with fields this
// pipeline never produced back-filled as typed nulls, plus a trailing
// system_name field.
func Normalize(ds *dataset.Dataset, pairs []RenamePair, selectOnly bool, systemName string) (*dataset.Dataset, error) {
	if systemName == "" {
		return nil, pkgerrors.NewValidationError("system_name", systemName, "must not be empty")
	}

	out, err := RenameAndSelect(ds, pairs, selectOnly)
	if err != nil {
		return nil, err
	}

	unified := schemas.MustSchema(schemas.Unified)
	out = schemas.Enforce(out, unified)
	out = schemas.AddMissingColumns(out, unified)
	// Every unified field now exists, so this pass only restores catalog
	// order for the back-filled ones.
	out = schemas.Enforce(out, unified)

	return out.WithLiteral("system_name", dataset.Str(systemName)), nil
}
