// Package embedded carries the static schema catalog compiled into the
// binary. The catalog is configuration data, not logic: it lists, per
// source entity and for the unified output, the ordered field names and
// semantic types the engine enforces.
package embedded

import (
	_ "embed"
)

//go:embed schemas.yaml
var schemasYAML []byte

// SchemasYAML returns the raw embedded schema catalog.
func SchemasYAML() []byte {
	return schemasYAML
}
