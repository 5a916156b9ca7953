// =============================================================================
// RT Systems to CHIRP Converter - Schema Mapper
// =============================================================================
//
// This module holds the static translation tables between the RT Systems
// export format and the CHIRP import format. Every table is a total lookup:
// an unknown key resolves to the table's fallback (always the empty string
// here), never to an error.
//
// TABLES:
//   - ColumnMapping : source column header -> destination column header
//   - ModeMapping   : Operating Mode       -> CHIRP Mode
//   - DuplexMapping : Offset Direction     -> CHIRP Duplex
//   - ToneMapping   : Tone Mode            -> CHIRP Tone
//   - SkipMapping   : Skip                 -> CHIRP Skip
//
// =============================================================================

package schema

// =============================================================================
// MAPPING TABLE
// =============================================================================

// MappingTable is an immutable string-to-string table with an explicit
// fallback for keys it does not know.
type MappingTable struct {
	entries  map[string]string
	fallback string
}

// NewMappingTable copies entries into a new table. Lookups for keys that are
// not present return fallback.
func NewMappingTable(entries map[string]string, fallback string) MappingTable {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return MappingTable{entries: copied, fallback: fallback}
}

// Lookup returns the mapped value for key, or the fallback.
func (m MappingTable) Lookup(key string) string {
	if v, ok := m.entries[key]; ok {
		return v
	}
	return m.fallback
}

// Contains reports whether key has an explicit entry.
func (m MappingTable) Contains(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// =============================================================================
// DESTINATION COLUMNS
// =============================================================================

// Destination column names written by the CHIRP CSV importer.
const (
	DestLocation   = "Location"
	DestName       = "Name"
	DestFrequency  = "Frequency"
	DestDuplex     = "Duplex"
	DestOffset     = "Offset"
	DestTone       = "Tone"
	DestRToneFreq  = "rToneFreq"
	DestCToneFreq  = "cToneFreq"
	DestDtcsCode   = "DtcsCode"
	DestRxDtcsCode = "RxDtcsCode"
	DestMode       = "Mode"
	DestTStep      = "TStep"
	DestSkip       = "Skip"
	DestPower      = "Power"
	DestComment    = "Comment"
)

// DerivedColumns are always present in every destination record, filled from
// the CTCSS and DCS source columns or left empty.
var DerivedColumns = []string{DestRToneFreq, DestCToneFreq, DestDtcsCode, DestRxDtcsCode}

// =============================================================================
// STATIC TABLES
// =============================================================================

// ColumnMapping maps RT Systems headers to CHIRP headers. An empty value
// suppresses the column from the derived header; CTCSS and DCS feed the
// derived tone columns instead. Comment has no entry; it is appended after
// the derived columns.
var ColumnMapping = NewMappingTable(map[string]string{
	"Name":              DestName,
	"Receive Frequency": DestFrequency,
	"Offset Frequency":  DestOffset,
	"Offset Direction":  DestDuplex,
	"Tone Mode":         DestTone,
	"Operating Mode":    DestMode,
	"CTCSS":             "",
	"DCS":               "",
	"Step":              DestTStep,
	"Skip":              DestSkip,
	"TX Power":          DestPower,
}, "")

// ModeMapping translates RT Systems operating modes.
var ModeMapping = NewMappingTable(map[string]string{
	"WFM":       "WFM",
	"FM":        "FM",
	"FM Narrow": "NFM",
	"AM":        "AM",
	"NAM":       "NAM",
	"DN":        "DIG",
	"USB":       "USB",
	"LSB":       "LSB",
	"CW":        "CW",
	"RTTY":      "RTTY",
	"DIG":       "DIG",
	"PKT":       "PKT",
}, "")

// DuplexMapping translates the offset direction.
var DuplexMapping = NewMappingTable(map[string]string{
	"Simplex": "off",
	"Minus":   "-",
	"Plus":    "+",
}, "")

// ToneMapping translates the squelch tone mode.
var ToneMapping = NewMappingTable(map[string]string{
	"Tone":      "Tone",
	"T Sql":     "TSQL",
	"DCS":       "DTCS",
	"Rev CTCSS": "DTCS-R",
}, "")

// SkipMapping translates the scan behavior.
var SkipMapping = NewMappingTable(map[string]string{
	"Skip":   "S",
	"Scan":   "P",
	"P Scan": "P",
}, "")

// DestinationColumn returns the CHIRP header for a source header and whether
// it contributes a column of its own.
func DestinationColumn(source string) (string, bool) {
	name := ColumnMapping.Lookup(source)
	return name, name != ""
}
