package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, 1, c.Version)

	// Every schema name constant must resolve.
	for _, name := range []string{MARA, MBEW, MARC, T001W, T001K, T001, AFKO, AFPO, AUFK, MARAOrder, Unified} {
		s, err := c.Schema(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, s.Fields, name)
	}
}

func TestCatalogUnknownSchema(t *testing.T) {
	_, err := Default().Schema("NOPE")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestParseCatalog(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, err := ParseCatalog([]byte(`
version: 2
schemas:
  - name: A
    fields:
      - {name: x, type: string}
  - name: B
    fields:
      - {name: y, type: double}
`))
		require.NoError(t, err)
		assert.Equal(t, 2, c.Version)
		assert.Equal(t, []string{"A", "B"}, c.Names())
	})

	t.Run("duplicate schema name", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`
schemas:
  - name: A
    fields: [{name: x, type: string}]
  - name: A
    fields: [{name: y, type: string}]
`))
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("unknown field type", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`
schemas:
  - name: A
    fields: [{name: x, type: decimal}]
`))
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("empty schema name", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`
schemas:
  - fields: [{name: x, type: string}]
`))
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseCatalog([]byte("{{nope"))
		require.Error(t, err)
	})
}

func TestUnifiedSchemaShape(t *testing.T) {
	s := MustSchema(Unified)

	names := s.FieldNames()
	assert.Equal(t, "material_number", names[0])
	assert.Contains(t, names, "no_of_duplicates")
	assert.Contains(t, names, "late_delivery_bucket")
	assert.NotContains(t, names, "system_name",
		"system_name is stamped after normalization, not part of the unified field set")
}
