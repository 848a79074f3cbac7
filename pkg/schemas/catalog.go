package schemas

import (
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/erphub/harmonize/internal/embedded"
	"github.com/erphub/harmonize/pkg/dataset"
	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

// Catalog is a versioned, named collection of schemas.
type Catalog struct {
	Version int
	schemas map[string]Schema
	order   []string
}

// catalogFile is the YAML shape of the embedded catalog.
type catalogFile struct {
	Version int      `yaml:"version"`
	Schemas []Schema `yaml:"schemas"`
}

// validKinds are the semantic types the engine can cast to.
var validKinds = map[dataset.Kind]struct{}{
	dataset.KindString:    {},
	dataset.KindDouble:    {},
	dataset.KindInteger:   {},
	dataset.KindDate:      {},
	dataset.KindTimestamp: {},
}

// ParseCatalog parses a YAML schema catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, pkgerrors.WrapParse("yaml", "schema catalog", err)
	}

	c := &Catalog{
		Version: file.Version,
		schemas: make(map[string]Schema, len(file.Schemas)),
	}
	for _, s := range file.Schemas {
		if s.Name == "" {
			return nil, pkgerrors.NewValidationError("schema.name", s.Name, "must not be empty")
		}
		if _, dup := c.schemas[s.Name]; dup {
			return nil, pkgerrors.NewValidationError("schema.name", s.Name, "declared twice")
		}
		for _, f := range s.Fields {
			if _, ok := validKinds[f.Type]; !ok {
				return nil, pkgerrors.NewValidationError(
					fmt.Sprintf("%s.%s.type", s.Name, f.Name), string(f.Type), "unknown semantic type")
			}
		}
		c.schemas[s.Name] = s
		c.order = append(c.order, s.Name)
	}
	return c, nil
}

// Schema returns the named schema.
func (c *Catalog) Schema(name string) (Schema, error) {
	s, ok := c.schemas[name]
	if !ok {
		return Schema{}, pkgerrors.NewNotFoundError("schema", name)
	}
	return s, nil
}

// Names returns the catalog's schema names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the embedded schema catalog. The embedded catalog is
// validated at build time by tests; a corrupt one is a programmer error.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(embedded.SchemasYAML())
		if err != nil {
			panic(fmt.Sprintf("embedded schema catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// MustSchema returns a schema from the embedded catalog, panicking if the
// name is unknown. Callers pass the package-level schema name constants.
func MustSchema(name string) Schema {
	s, err := Default().Schema(name)
	if err != nil {
		panic(err)
	}
	return s
}
