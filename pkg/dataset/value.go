package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the semantic type of a column or value. Kinds use the
// catalog's spelling so they can be read directly from the schema YAML.
type Kind string

// Supported kinds.
const (
	KindString    Kind = "string"
	KindDouble    Kind = "double"
	KindInteger   Kind = "integer"
	KindDate      Kind = "date"
	KindTimestamp Kind = "timestamp"
)

// Output formats for temporal values.
const (
	DateFormat      = "2006-01-02"
	TimestampFormat = "2006-01-02 15:04:05"
)

// timestampLayouts are the layouts tried when casting text to a timestamp.
var timestampLayouts = []string{
	TimestampFormat,
	"2006-01-02T15:04:05",
	DateFormat,
}

// Value is a single nullable cell. The zero Value is a null of no
// particular kind.
type Value struct {
	kind Kind
	null bool
	str  string
	num  float64
	i    int64
	t    time.Time
}

// Str returns a string value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Double returns a double value.
func Double(f float64) Value { return Value{kind: KindDouble, num: f} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Date returns a date value truncated to midnight UTC.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Timestamp returns a timestamp value.
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, t: t} }

// Null returns an untyped null.
func Null() Value { return Value{null: true} }

// NullOf returns a null carrying the given kind, used when a schema field
// must be present but no source value exists.
func NullOf(kind Kind) Value { return Value{kind: kind, null: true} }

// IsNull reports whether the value is null. The zero Value is null, and so
// is any Value produced by a failed cast.
func (v Value) IsNull() bool { return v.null }

// Kind returns the value's kind. Untyped nulls report an empty kind.
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric interpretation of the value. String values are
// parsed; non-numeric values report ok=false.
func (v Value) Float() (float64, bool) {
	if v.null {
		return 0, false
	}
	switch v.kind {
	case KindDouble:
		return v.num, true
	case KindInteger:
		return float64(v.i), true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int64 returns the integer interpretation of the value.
func (v Value) Int64() (int64, bool) {
	if v.null {
		return 0, false
	}
	switch v.kind {
	case KindInteger:
		return v.i, true
	case KindDouble:
		return int64(v.num), true
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// Time returns the temporal interpretation of the value. String values are
// parsed with the supported timestamp layouts.
func (v Value) Time() (time.Time, bool) {
	if v.null {
		return time.Time{}, false
	}
	switch v.kind {
	case KindDate, KindTimestamp:
		return v.t, true
	case KindString:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v.str)); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Format renders the value in its canonical text form. Nulls render as the
// empty string; this is also the CSV sink representation.
func (v Value) Format() string {
	if v.null {
		return ""
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindDouble:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindDate:
		return v.t.Format(DateFormat)
	case KindTimestamp:
		return v.t.Format(TimestampFormat)
	default:
		return ""
	}
}

// Equal reports whether two values are equal. Nulls compare equal to nulls
// regardless of their declared kind.
func (v Value) Equal(other Value) bool {
	if v.null || other.null {
		return v.null && other.null
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindDate, KindTimestamp:
		return v.t.Equal(other.t)
	default:
		return v == other
	}
}

// Compare orders two values: nulls sort before any concrete value, values
// that both carry a numeric interpretation compare numerically, temporal
// values chronologically, everything else lexically. Used by window
// operations so that text columns holding numbers (a common shape in raw
// extracts) rank by magnitude rather than by string order.
func (v Value) Compare(other Value) int {
	switch {
	case v.null && other.null:
		return 0
	case v.null:
		return -1
	case other.null:
		return 1
	}
	if vf, ok := v.Float(); ok {
		if of, ok := other.Float(); ok {
			switch {
			case vf < of:
				return -1
			case vf > of:
				return 1
			default:
				return 0
			}
		}
	}
	if vt, ok := v.Time(); ok {
		if ot, ok := other.Time(); ok {
			return vt.Compare(ot)
		}
	}
	return strings.Compare(v.Format(), other.Format())
}

// Cast converts the value to the target kind. Casting is total: a value
// that cannot be represented in the target kind becomes a null of that
// kind, never an error.
func (v Value) Cast(kind Kind) Value {
	if v.null {
		return NullOf(kind)
	}
	if v.kind == kind {
		return v
	}
	switch kind {
	case KindString:
		return Str(v.Format())
	case KindDouble:
		if f, ok := v.Float(); ok {
			return Double(f)
		}
	case KindInteger:
		if i, ok := v.Int64(); ok {
			return Int(i)
		}
	case KindDate:
		if t, ok := v.Time(); ok {
			return Date(t)
		}
	case KindTimestamp:
		if t, ok := v.Time(); ok {
			return Timestamp(t)
		}
	}
	return NullOf(kind)
}

// Coalesce returns the first non-null value, or a null if all are null.
func Coalesce(values ...Value) Value {
	for _, v := range values {
		if !v.IsNull() {
			return v
		}
	}
	return Null()
}

// ConcatWS concatenates the non-null values with the separator, skipping
// nulls entirely (no dangling separators).
func ConcatWS(sep string, values ...Value) Value {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if !v.IsNull() {
			parts = append(parts, v.Format())
		}
	}
	return Str(strings.Join(parts, sep))
}
