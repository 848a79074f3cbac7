package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	pkgerrors "github.com/erphub/harmonize/pkg/errors"
)

// ReadOptions configure the file loader.
type ReadOptions struct {
	// Delimiter is the CSV field separator; comma when zero.
	Delimiter rune

	// NoHeader treats the first CSV record as data, synthesizing _c0.._cN
	// column names.
	NoHeader bool
}

// supportedFormats lists what ReadFile accepts when a file is read by
// explicit path.
var supportedFormats = []string{"csv", "json"}

// ReadFile loads a single file of the given format into a dataset. Cell
// values load as strings (empty cells as nulls); typing happens later at
// schema enforcement.
func ReadFile(path, format string, opts *ReadOptions) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return nil, pkgerrors.NewValidationError("file_path", path, "must be a non-empty string")
	}
	format = strings.ToLower(format)
	supported := false
	for _, f := range supportedFormats {
		if f == format {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("file format %q (supported: %s): %w",
			format, strings.Join(supportedFormats, ", "), pkgerrors.ErrUnsupportedFormat)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, pkgerrors.NewNotFoundError("file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.WrapIO("read", path, err)
	}

	switch format {
	case "json":
		return parseJSON(data, path)
	default:
		return parseCSV(data, path, opts)
	}
}

// ReadDir scans a directory and loads every delimited text file into a
// registry keyed by canonical entity name: the base file name minus
// extension, after taking the last underscore-delimited token. A file named
// SYS1_MARA.csv loads under the key MARA. Only .csv files participate in
// directory scanning; other formats must be read explicitly by path.
func ReadDir(dir string) (map[string]*Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pkgerrors.WrapIO("read", dir, err)
	}

	registry := make(map[string]*Dataset)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		tokens := strings.Split(base, "_")
		entity := tokens[len(tokens)-1]

		ds, err := ReadFile(filepath.Join(dir, name), "csv", nil)
		if err != nil {
			return nil, err
		}
		registry[entity] = ds
	}
	return registry, nil
}

// parseCSV decodes the bytes to UTF-8 and parses them as delimited text.
func parseCSV(data []byte, path string, opts *ReadOptions) (*Dataset, error) {
	decoded, err := decodeToUTF8(data)
	if err != nil {
		return nil, pkgerrors.NewParseError("csv", path, "encoding detection failed", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	if opts != nil && opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	// Ragged rows are padded/truncated below rather than rejected.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	first, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, pkgerrors.NewParseError("csv", path, "empty file: no header row", nil)
		}
		return nil, pkgerrors.WrapParse("csv", path, err)
	}

	var header []string
	var pending [][]string
	if opts != nil && opts.NoHeader {
		header = make([]string, len(first))
		for i := range first {
			header[i] = fmt.Sprintf("_c%d", i)
		}
		pending = append(pending, first)
	} else {
		header = make([]string, len(first))
		seen := make(map[string]struct{}, len(first))
		for i, h := range first {
			h = strings.TrimSpace(h)
			if _, dup := seen[h]; dup {
				return nil, pkgerrors.NewParseError("csv", path,
					fmt.Sprintf("duplicate column %q in header", h), nil)
			}
			seen[h] = struct{}{}
			header[i] = h
		}
	}

	ds := New(header...)
	appendRecord := func(record []string) {
		values := make([]Value, len(header))
		for i := range header {
			if i >= len(record) || record[i] == "" {
				values[i] = NullOf(KindString)
			} else {
				values[i] = Str(record[i])
			}
		}
		ds.Append(values...)
	}
	for _, record := range pending {
		appendRecord(record)
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.WrapParse("csv", path, err)
		}
		appendRecord(record)
	}
	return ds, nil
}

// parseJSON loads an array of flat objects. Column order follows first
// appearance; keys first seen in later objects sort after those.
func parseJSON(data []byte, path string) (*Dataset, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, pkgerrors.WrapParse("json", path, err)
	}

	var cols []string
	seen := make(map[string]struct{})
	for _, record := range records {
		keys := make([]string, 0, len(record))
		for k := range record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				cols = append(cols, k)
			}
		}
	}

	ds := New(cols...)
	for _, record := range records {
		values := make([]Value, len(cols))
		for i, c := range cols {
			values[i] = jsonValue(record[c])
		}
		ds.Append(values...)
	}
	return ds, nil
}

// jsonValue maps a decoded JSON scalar onto a dataset value.
func jsonValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case string:
		if x == "" {
			return NullOf(KindString)
		}
		return Str(x)
	case float64:
		return Double(x)
	case bool:
		if x {
			return Str("true")
		}
		return Str("false")
	default:
		return Str(fmt.Sprint(x))
	}
}

// BOM prefixes for encoding detection.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeToUTF8 detects the input encoding, strips any byte-order mark, and
// returns UTF-8 bytes. Extracts arrive as UTF-8, UTF-16 (either order,
// BOM-marked), or legacy Latin-1; anything that is not valid UTF-8 and
// carries no BOM falls back to Latin-1, which cannot fail.
func decodeToUTF8(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], nil
	case bytes.HasPrefix(data, bomUTF16LE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		return dec.Bytes(data[len(bomUTF16LE):])
	case bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		return dec.Bytes(data[len(bomUTF16BE):])
	case utf8.Valid(data):
		return data, nil
	default:
		return charmap.ISO8859_1.NewDecoder().Bytes(data)
	}
}
