package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

func TestFilter(t *testing.T) {
	ds := New("MATNR", "LVORM").
		Append(Str("M1"), Null()).
		Append(Str("M2"), Str("X")).
		Append(Str("M3"), Null())

	kept := ds.Filter(func(r Row) bool { return r.Get("LVORM").IsNull() })

	assert.Equal(t, 3, ds.Len(), "receiver must be untouched")
	require.Equal(t, 2, kept.Len())
	assert.Equal(t, "M1", kept.Row(0).Get("MATNR").Format())
	assert.Equal(t, "M3", kept.Row(1).Get("MATNR").Format())
}

func TestWithColumn(t *testing.T) {
	t.Run("replaces existing column in place", func(t *testing.T) {
		ds := New("A", "B").Append(Str("a"), Str("b"))
		out := ds.WithColumn("A", func(Row) Value { return Str("z") })
		assert.Equal(t, []string{"A", "B"}, out.Columns())
		assert.Equal(t, "z", out.Row(0).Get("A").Format())
		assert.Equal(t, "a", ds.Row(0).Get("A").Format(), "receiver must be untouched")
	})

	t.Run("appends new column after existing ones", func(t *testing.T) {
		ds := New("A").Append(Str("a"))
		out := ds.WithColumn("B", func(r Row) Value { return Str(r.Get("A").Format() + "!") })
		assert.Equal(t, []string{"A", "B"}, out.Columns())
		assert.Equal(t, "a!", out.Row(0).Get("B").Format())
	})
}

func TestRename(t *testing.T) {
	ds := New("ZZMDGM", "MATNR").Append(Str("G1"), Str("M1"))

	out := ds.Rename("ZZMDGM", "global_material_number")
	assert.Equal(t, []string{"global_material_number", "MATNR"}, out.Columns())
	assert.Equal(t, "G1", out.Row(0).Get("global_material_number").Format())

	t.Run("missing column is a no-op", func(t *testing.T) {
		same := ds.Rename("NOPE", "anything")
		assert.Equal(t, ds.Columns(), same.Columns())
	})
}

func TestSelect(t *testing.T) {
	ds := New("A", "B", "C").Append(Str("a"), Str("b"), Str("c"))

	out, err := ds.Select("C", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, out.Columns())
	assert.Equal(t, "c", out.Row(0).Get("C").Format())

	_, err = ds.Select("A", "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsSchemaMismatch(err))
}

func TestDropDuplicates(t *testing.T) {
	ds := New("K", "V").
		Append(Str("a"), Str("first")).
		Append(Str("b"), Str("only")).
		Append(Str("a"), Str("second"))

	t.Run("keeps first row per key", func(t *testing.T) {
		out := ds.DropDuplicates("K")
		require.Equal(t, 2, out.Len())
		assert.Equal(t, "first", out.Row(0).Get("V").Format())
		assert.Equal(t, "only", out.Row(1).Get("V").Format())
	})

	t.Run("no keys compares whole rows", func(t *testing.T) {
		dup := New("A").Append(Str("x")).Append(Str("x")).Append(Str("y"))
		assert.Equal(t, 2, dup.DropDuplicates().Len())
	})

	t.Run("null and empty string are distinct keys", func(t *testing.T) {
		mixed := New("K").Append(Null()).Append(Str("")).Append(Null())
		assert.Equal(t, 2, mixed.DropDuplicates("K").Len())
	})
}

func TestUnion(t *testing.T) {
	a := New("X", "Y").Append(Str("1"), Str("2"))
	b := New("Y", "Z").Append(Str("3"), Str("4"))

	out := a.Union(b)
	assert.Equal(t, []string{"X", "Y", "Z"}, out.Columns())
	require.Equal(t, 2, out.Len())
	assert.True(t, out.Row(0).Get("Z").IsNull())
	assert.True(t, out.Row(1).Get("X").IsNull())
	assert.Equal(t, "3", out.Row(1).Get("Y").Format())
}

func TestEqual(t *testing.T) {
	a := New("A", "B").Append(Str("1"), Str("2")).Append(Str("3"), Str("4"))
	b := New("A", "B").Append(Str("3"), Str("4")).Append(Str("1"), Str("2"))

	assert.True(t, a.Equal(b), "row order must not matter")

	c := New("A", "B").Append(Str("1"), Str("2")).Append(Str("1"), Str("2"))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(New("B", "A")))
	assert.False(t, a.Equal(nil))
}

func TestAppendPadsShortRows(t *testing.T) {
	ds := New("A", "B", "C").Append(Str("only"))
	assert.True(t, ds.Row(0).Get("B").IsNull())
	assert.True(t, ds.Row(0).Get("C").IsNull())
}

func TestRowGetMissingColumn(t *testing.T) {
	ds := New("A").Append(Str("a"))
	assert.True(t, ds.Row(0).Get("missing").IsNull())
}
