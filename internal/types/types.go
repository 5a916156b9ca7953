// =============================================================================
// RT Systems to CHIRP Converter - Shared Types
// =============================================================================
//
// This package contains the record types passed between the input readers,
// the transformer and the output writer. Keeping them here avoids import
// cycles between:
//   - converter
//   - csvparser / xlsxparser
//   - chirpwriter
//
// =============================================================================

package types

import (
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// SOURCE RECORD
// =============================================================================

// SourceRecord is one data row of an RT Systems export.
type SourceRecord struct {
	// Columns is the header row, in file order.
	Columns []string

	// Values maps header -> raw cell text. Headers without a cell in this
	// row map to the empty string.
	Values map[string]string

	// RowNumber is the 1-based position of this record among the data rows.
	// Used for diagnostics only.
	RowNumber int
}

// NewSourceRecord pairs a header with one row of cells. Missing trailing
// cells become empty strings; surplus cells are dropped.
func NewSourceRecord(columns, cells []string, rowNumber int) SourceRecord {
	values := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(cells) {
			values[col] = cells[i]
		} else {
			values[col] = ""
		}
	}
	return SourceRecord{Columns: columns, Values: values, RowNumber: rowNumber}
}

// Get returns the value of column, or "" if the column is absent.
func (r SourceRecord) Get(column string) string {
	return r.Values[column]
}

// =============================================================================
// VALUES
// =============================================================================

// ValueKind tags the representation held by a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
)

// Value is a destination cell: text, an integer or a float.
type Value struct {
	Kind  ValueKind
	Text  string
	Int   int
	Float float64
}

// StringValue wraps s.
func StringValue(s string) Value { return Value{Kind: KindString, Text: s} }

// IntValue wraps n.
func IntValue(n int) Value { return Value{Kind: KindInt, Int: n} }

// FloatValue wraps f.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// String renders the value as it appears in the CHIRP CSV.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindFloat:
		return FormatFloat(v.Float)
	default:
		return v.Text
	}
}

// FormatFloat renders f in shortest round-trip form and always keeps a
// fractional part ("5.0", "0.6"). Very large or small magnitudes switch to
// exponent form ("1e-05").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// =============================================================================
// DESTINATION RECORD
// =============================================================================

// DestinationRecord is one CHIRP channel row. Keys keep insertion order.
type DestinationRecord struct {
	keys   []string
	fields map[string]Value
}

// NewDestinationRecord returns an empty record.
func NewDestinationRecord() *DestinationRecord {
	return &DestinationRecord{fields: make(map[string]Value)}
}

// Set stores v under key. Re-setting a key keeps its original position.
func (r *DestinationRecord) Set(key string, v Value) {
	if _, exists := r.fields[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = v
}

// SetDefault stores v only if key is not present yet.
func (r *DestinationRecord) SetDefault(key string, v Value) {
	if _, exists := r.fields[key]; !exists {
		r.Set(key, v)
	}
}

// Get returns the value for key.
func (r *DestinationRecord) Get(key string) (Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Text returns the rendered value for key, or "" when absent.
func (r *DestinationRecord) Text(key string) string {
	if v, ok := r.fields[key]; ok {
		return v.String()
	}
	return ""
}
