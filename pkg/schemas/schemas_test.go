package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erphub/harmonize/pkg/dataset"
)

func TestEnforce(t *testing.T) {
	t.Run("projects onto schema fields in schema order", func(t *testing.T) {
		ds := dataset.New("extra", "MATNR", "MANDT").
			Append(dataset.Str("x"), dataset.Str("M1"), dataset.Str("100"))

		out := Enforce(ds, MustSchema(MARA))

		assert.Equal(t, []string{"MANDT", "MATNR"}, out.Columns(),
			"schema fields absent from the input are omitted, extras dropped")
		assert.Equal(t, "100", out.Row(0).Get("MANDT").Format())
	})

	t.Run("casts to declared types, failures become nulls", func(t *testing.T) {
		ds := dataset.New("MATNR", "STPRS").
			Append(dataset.Str("M1"), dataset.Str("12.5")).
			Append(dataset.Str("M2"), dataset.Str("n/a"))

		out := Enforce(ds, MustSchema(MBEW))

		f, ok := out.Row(0).Get("STPRS").Float()
		require.True(t, ok)
		assert.Equal(t, 12.5, f)
		assert.True(t, out.Row(1).Get("STPRS").IsNull())
	})
}

func TestAddMissingColumns(t *testing.T) {
	ds := dataset.New("MANDT").Append(dataset.Str("100"))

	out := AddMissingColumns(ds, MustSchema(T001))

	assert.Equal(t, []string{"MANDT", "BUKRS", "WAERS"}, out.Columns())
	v := out.Row(0).Get("BUKRS")
	assert.True(t, v.IsNull())
	assert.Equal(t, dataset.KindString, v.Kind(), "fill nulls carry the catalog type")
}

func TestFieldNames(t *testing.T) {
	s := MustSchema(T001K)
	assert.Equal(t, []string{"MANDT", "BUKRS", "BWKEY"}, s.FieldNames())
}
