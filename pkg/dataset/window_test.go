package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

func TestTopPerPartition(t *testing.T) {
	t.Run("keeps highest ranked row per partition", func(t *testing.T) {
		ds := New("MATNR", "BWKEY", "LAEPR").
			Append(Str("M1"), Str("V1"), Str("2024-01-01")).
			Append(Str("M1"), Str("V1"), Str("2024-06-01")).
			Append(Str("M2"), Str("V1"), Str("2023-01-01"))

		out, err := ds.TopPerPartition([]string{"MATNR", "BWKEY"}, "LAEPR", true)
		require.NoError(t, err)
		require.Equal(t, 2, out.Len())
		assert.Equal(t, "2024-06-01", out.Row(0).Get("LAEPR").Format())
		assert.Equal(t, "M2", out.Row(1).Get("MATNR").Format())
	})

	t.Run("numeric strings rank by magnitude", func(t *testing.T) {
		ds := New("K", "PRICE").
			Append(Str("a"), Str("90")).
			Append(Str("a"), Str("150"))

		out, err := ds.TopPerPartition([]string{"K"}, "PRICE", true)
		require.NoError(t, err)
		require.Equal(t, 1, out.Len())
		assert.Equal(t, "150", out.Row(0).Get("PRICE").Format())
	})

	t.Run("ties keep earliest row in input order", func(t *testing.T) {
		ds := New("K", "ORD", "V").
			Append(Str("a"), Str("1"), Str("first")).
			Append(Str("a"), Str("1"), Str("second"))

		out, err := ds.TopPerPartition([]string{"K"}, "ORD", true)
		require.NoError(t, err)
		require.Equal(t, 1, out.Len())
		assert.Equal(t, "first", out.Row(0).Get("V").Format())
	})

	t.Run("null order value loses to any concrete value", func(t *testing.T) {
		ds := New("K", "ORD").
			Append(Str("a"), Null()).
			Append(Str("a"), Str("2020-01-01"))

		out, err := ds.TopPerPartition([]string{"K"}, "ORD", true)
		require.NoError(t, err)
		assert.Equal(t, "2020-01-01", out.Row(0).Get("ORD").Format())
	})

	t.Run("missing column is a schema error", func(t *testing.T) {
		ds := New("K").Append(Str("a"))
		_, err := ds.TopPerPartition([]string{"K"}, "missing", true)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsSchemaMismatch(err))
	})
}

func TestCountOver(t *testing.T) {
	ds := New("SOURCE_SYSTEM_ERP", "MATNR").
		Append(Str("S1"), Str("M1")).
		Append(Str("S1"), Str("M1")).
		Append(Str("S1"), Str("M2"))

	out, err := ds.CountOver([]string{"SOURCE_SYSTEM_ERP", "MATNR"}, "no_of_duplicates")
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())

	n, ok := out.Row(0).Get("no_of_duplicates").Int64()
	require.True(t, ok)
	assert.Equal(t, int64(2), n)

	n, ok = out.Row(2).Get("no_of_duplicates").Int64()
	require.True(t, ok)
	assert.Equal(t, int64(1), n)
}
