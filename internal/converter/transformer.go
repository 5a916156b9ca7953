// =============================================================================
// RT Systems to CHIRP Converter - Row Transformer
// =============================================================================
//
// This module turns RT Systems channel records into CHIRP channel records.
// It derives the destination header once, then transforms each source
// record into zero or one destination record.
//
// PER-RECORD RULES (first match wins, by source column):
//   - Operating Mode   -> Mode   via ModeMapping
//   - Offset Direction -> Duplex via DuplexMapping
//   - Tone Mode        -> Tone   via ToneMapping
//   - Skip             -> Skip   via SkipMapping
//   - Offset Frequency -> Offset in MHz
//   - Step             -> TStep  in kHz
//   - CTCSS            -> rToneFreq and cToneFreq, verbatim
//   - DCS              -> DtcsCode and RxDtcsCode, verbatim
//   - Comment          -> Comment, or the record's Name when empty
//   - any other mapped column is copied verbatim under its CHIRP name
//   - unmapped columns are ignored
//
// NUMBERING:
//   Every record examined advances the row counter, including records that
//   are dropped for lacking a receive frequency. Location is the counter
//   value, so it is the record's position in the source file.
//
// =============================================================================

package converter

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/rtsys2chirp/internal/logging"
	"github.com/ginjaninja78/rtsys2chirp/internal/schema"
	"github.com/ginjaninja78/rtsys2chirp/internal/types"
	"github.com/ginjaninja78/rtsys2chirp/internal/units"
	"github.com/ginjaninja78/rtsys2chirp/internal/validation"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer holds the state of one conversion run: the row counter and
// the degradation report. Use a new Transformer per input file.
type Transformer struct {
	seen   int
	report *validation.Report
	logger *log.Logger
}

// NewTransformer creates a Transformer. report may be nil to discard
// degradation issues; logger may be nil to discard log output.
func NewTransformer(report *validation.Report, logger *log.Logger) *Transformer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Transformer{
		report: report,
		logger: logger,
	}
}

// Seen returns the number of source records examined so far.
func (t *Transformer) Seen() int {
	return t.seen
}

// =============================================================================
// HEADER DERIVATION
// =============================================================================

// Header derives the CHIRP column list from the source header. The first
// source column is replaced by Location.
func Header(sourceColumns []string) []string {
	header := []string{schema.DestLocation}

	if len(sourceColumns) > 1 {
		for _, col := range sourceColumns[1:] {
			if name, ok := schema.DestinationColumn(col); ok {
				header = append(header, name)
			}
		}
	}

	header = append(header, schema.DerivedColumns...)

	for _, col := range header {
		if col == schema.DestComment {
			return header
		}
	}
	return append(header, schema.DestComment)
}

// =============================================================================
// RECORD TRANSFORMATION
// =============================================================================

// Transform converts one source record. The second result is false when
// the record was dropped.
func (t *Transformer) Transform(rec types.SourceRecord) (*types.DestinationRecord, bool) {
	t.seen++

	if rec.Get(schema.ColumnReceiveFrequency.String()) == "" {
		t.report.DroppedRow(rec.RowNumber)
		t.logger.Debug("Skipping row without receive frequency", "row", rec.RowNumber, "location", t.seen)
		return nil, false
	}

	out := types.NewDestinationRecord()
	out.Set(schema.DestLocation, types.IntValue(t.seen))

	for _, col := range rec.Columns {
		t.apply(out, rec, col, rec.Get(col))
	}

	// Post-pass: the derived tone columns are always present.
	for _, col := range schema.DerivedColumns {
		out.SetDefault(col, types.StringValue(""))
	}

	return out, true
}

// apply writes the destination field(s) for one source cell.
func (t *Transformer) apply(out *types.DestinationRecord, rec types.SourceRecord, column, value string) {
	switch schema.ParseSourceColumn(column) {
	case schema.ColumnOperatingMode:
		out.Set(schema.DestMode, types.StringValue(t.lookup(schema.ModeMapping, rec, column, value)))

	case schema.ColumnOffsetDirection:
		out.Set(schema.DestDuplex, types.StringValue(t.lookup(schema.DuplexMapping, rec, column, value)))

	case schema.ColumnToneMode:
		out.Set(schema.DestTone, types.StringValue(t.lookup(schema.ToneMapping, rec, column, value)))

	case schema.ColumnSkip:
		out.Set(schema.DestSkip, types.StringValue(t.lookup(schema.SkipMapping, rec, column, value)))

	case schema.ColumnOffsetFrequency:
		out.Set(schema.DestOffset, types.FloatValue(t.frequencyMHz(rec, column, value)))

	case schema.ColumnStep:
		// The step is read as MHz unless it carries a unit, then scaled to kHz.
		out.Set(schema.DestTStep, types.FloatValue(t.frequencyMHz(rec, column, value)*1000))

	case schema.ColumnCTCSS:
		out.Set(schema.DestRToneFreq, types.StringValue(value))
		out.Set(schema.DestCToneFreq, types.StringValue(value))

	case schema.ColumnDCS:
		out.Set(schema.DestDtcsCode, types.StringValue(value))
		out.Set(schema.DestRxDtcsCode, types.StringValue(value))

	case schema.ColumnComment:
		if value == "" {
			value = rec.Get(schema.ColumnName.String())
		}
		out.Set(schema.DestComment, types.StringValue(value))

	default:
		if name, ok := schema.DestinationColumn(column); ok {
			out.Set(name, types.StringValue(value))
		}
	}
}

// lookup resolves value in table and records a non-empty value the table
// does not know.
func (t *Transformer) lookup(table schema.MappingTable, rec types.SourceRecord, column, value string) string {
	if value != "" && !table.Contains(value) {
		t.report.UnknownValue(rec.RowNumber, column, value)
		t.logger.Debug("Unrecognized value left empty", "row", rec.RowNumber, "column", column, "value", value)
	}
	return table.Lookup(value)
}

// frequencyMHz normalizes value and records a non-empty value that could
// not be parsed.
func (t *Transformer) frequencyMHz(rec types.SourceRecord, column, value string) float64 {
	mhz, err := units.ParseMHz(value)
	if err != nil {
		if !errors.Is(err, units.ErrEmpty) {
			t.report.UnparseableFrequency(rec.RowNumber, column, value)
			t.logger.Debug("Unparseable frequency written as 0.0", "row", rec.RowNumber, "column", column, "value", value)
		}
		return units.NormalizeMHz(value)
	}
	return mhz
}
