package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv with header", func(t *testing.T) {
		path := writeTestFile(t, dir, "basic.csv", []byte("MATNR,WERKS\nM1,P1\nM2,P2\n"))
		ds, err := ReadFile(path, "csv", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"MATNR", "WERKS"}, ds.Columns())
		require.Equal(t, 2, ds.Len())
		assert.Equal(t, "M1", ds.Row(0).Get("MATNR").Format())
	})

	t.Run("empty cells load as nulls", func(t *testing.T) {
		path := writeTestFile(t, dir, "nulls.csv", []byte("A,B\n,x\n"))
		ds, err := ReadFile(path, "csv", nil)
		require.NoError(t, err)
		assert.True(t, ds.Row(0).Get("A").IsNull())
		assert.Equal(t, "x", ds.Row(0).Get("B").Format())
	})

	t.Run("utf-8 BOM is stripped", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("A\nv\n")...)
		path := writeTestFile(t, dir, "bom.csv", data)
		ds, err := ReadFile(path, "csv", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, ds.Columns())
	})

	t.Run("utf-16le decodes", func(t *testing.T) {
		// "A\nv\n" in UTF-16LE with BOM
		data := []byte{0xFF, 0xFE, 'A', 0, '\n', 0, 'v', 0, '\n', 0}
		path := writeTestFile(t, dir, "utf16.csv", data)
		ds, err := ReadFile(path, "csv", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, ds.Columns())
		assert.Equal(t, "v", ds.Row(0).Get("A").Format())
	})

	t.Run("latin-1 fallback", func(t *testing.T) {
		// 0xE9 is é in ISO 8859-1 and invalid as standalone UTF-8.
		path := writeTestFile(t, dir, "latin1.csv", []byte{'A', '\n', 0xE9, '\n'})
		ds, err := ReadFile(path, "csv", nil)
		require.NoError(t, err)
		assert.Equal(t, "é", ds.Row(0).Get("A").Format())
	})

	t.Run("custom delimiter", func(t *testing.T) {
		path := writeTestFile(t, dir, "pipes.csv", []byte("A|B\n1|2\n"))
		ds, err := ReadFile(path, "csv", &ReadOptions{Delimiter: '|'})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, ds.Columns())
	})

	t.Run("no header synthesizes column names", func(t *testing.T) {
		path := writeTestFile(t, dir, "raw.csv", []byte("1,2\n3,4\n"))
		ds, err := ReadFile(path, "csv", &ReadOptions{NoHeader: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"_c0", "_c1"}, ds.Columns())
		assert.Equal(t, 2, ds.Len())
	})

	t.Run("json array of objects", func(t *testing.T) {
		path := writeTestFile(t, dir, "data.json", []byte(`[{"b":"2","a":"1"},{"a":"3","c":4.5}]`))
		ds, err := ReadFile(path, "json", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ds.Columns())
		require.Equal(t, 2, ds.Len())
		assert.True(t, ds.Row(0).Get("c").IsNull())
		f, ok := ds.Row(1).Get("c").Float()
		require.True(t, ok)
		assert.Equal(t, 4.5, f)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ReadFile("", "csv", nil)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := ReadFile("whatever.parquet", "parquet", nil)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsUnsupportedFormat(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "nope.csv"), "csv", nil)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("duplicate header column", func(t *testing.T) {
		path := writeTestFile(t, dir, "dup.csv", []byte("A,A\n1,2\n"))
		_, err := ReadFile(path, "csv", nil)
		require.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTestFile(t, dir, "empty.csv", nil)
		_, err := ReadFile(path, "csv", nil)
		require.Error(t, err)
	})
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "PRE_MARA.csv", []byte("MATNR\nM1\n"))
	writeTestFile(t, dir, "SYS1_EXTRACT_MBEW.csv", []byte("MATNR\nM1\n"))
	writeTestFile(t, dir, "notes.txt", []byte("ignored"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	reg, err := ReadDir(dir)
	require.NoError(t, err)

	assert.Len(t, reg, 2)
	assert.Contains(t, reg, "MARA", "entity key is the last underscore token")
	assert.Contains(t, reg, "MBEW")
	require.NotNil(t, reg["MARA"])
	assert.Equal(t, 1, reg["MARA"].Len())
}

func TestReadDirMissing(t *testing.T) {
	_, err := ReadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
