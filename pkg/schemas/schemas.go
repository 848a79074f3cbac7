// Package schemas models the schema catalog and schema enforcement. A
// Schema is an ordered list of named, typed fields; enforcement is the
// single point where every entity's shape is normalized before joining.
package schemas

import (
	"github.com/erphub/harmonize/pkg/dataset"
)

// Catalog schema names.
const (
	// Local material entities
	MARA  = "MARA"  // general material data
	MBEW  = "MBEW"  // material valuation
	MARC  = "MARC"  // plant data for material
	T001W = "T001W" // plants and branches
	T001K = "T001K" // valuation areas
	T001  = "T001"  // company codes

	// Process order entities
	AFKO      = "AFKO" // order header
	AFPO      = "AFPO" // order item
	AUFK      = "AUFK" // order master
	MARAOrder = "MARA_ORDER"

	// Unified output
	Unified = "UNIFIED"
)

// Field is one named, typed schema position.
type Field struct {
	Name string       `yaml:"name"`
	Type dataset.Kind `yaml:"type"`
}

// Schema is an ordered field list for one entity.
type Schema struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Fields      []Field `yaml:"fields"`
}

// FieldNames returns the schema's field names in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Enforce projects the dataset onto the schema: each schema field present
// in the input is included, cast to the field's type, in schema order.
// Schema fields absent from the input are silently omitted and input
// columns not in the schema are silently dropped; this is best-effort
// projection, not validation. Cast failures produce nulls, never errors.
func Enforce(ds *dataset.Dataset, s Schema) *dataset.Dataset {
	var keep []string
	for _, f := range s.Fields {
		if ds.HasColumn(f.Name) {
			keep = append(keep, f.Name)
		}
	}
	// Select cannot fail here: every kept column was just probed.
	out, _ := ds.Select(keep...)
	for _, f := range s.Fields {
		out = out.CastColumn(f.Name, f.Type)
	}
	return out
}

// AddMissingColumns appends, for every schema field the dataset lacks, a
// column of nulls typed per the catalog. Together with Enforce this
// guarantees the unified output always carries the full field set.
func AddMissingColumns(ds *dataset.Dataset, s Schema) *dataset.Dataset {
	out := ds
	for _, f := range s.Fields {
		if !out.HasColumn(f.Name) {
			out = out.WithLiteral(f.Name, dataset.NullOf(f.Type))
		}
	}
	return out
}
