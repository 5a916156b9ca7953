// =============================================================================
// RT Systems to CHIRP Converter - CSV Parser Module
// =============================================================================
//
// This module reads RT Systems CSV exports one record at a time. It handles:
//   - Different delimiters (comma, pipe, tab, etc.)
//   - Input encodings (UTF-8 with or without BOM, Windows-1252, ISO-8859-1)
//   - Rows shorter or longer than the header
//
// ROW SEMANTICS:
//   Completely blank lines are not records. A row whose cells are all empty
//   (",,,,") IS a record: it is handed to the transformer, which drops it
//   but still spends a Location number on it.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/rtsys2chirp/internal/config"
	"github.com/ginjaninja78/rtsys2chirp/internal/types"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads a CSV export record by record.
//
// USAGE:
//
//	parser, err := NewStreamingParser(filePath, settings)
//	if err != nil {
//	    return err
//	}
//	defer parser.Close()
//
//	for parser.Next() {
//	    rec := parser.Record()
//	    // Process the record...
//	}
//
//	if err := parser.Err(); err != nil {
//	    return err
//	}
type StreamingParser struct {
	closer    io.Closer
	reader    *csv.Reader
	headers   []string
	current   types.SourceRecord
	rowNumber int
	err       error
	settings  config.CSVSettings
}

// NewStreamingParser opens filePath and reads its header row.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV settings from the configuration.
//
// RETURNS:
//   - A pointer to the StreamingParser.
//   - An error if the file cannot be opened or its header cannot be read.
func NewStreamingParser(filePath string, settings config.CSVSettings) (*StreamingParser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	parser, err := NewReader(file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}
	parser.closer = file
	return parser, nil
}

// NewReader builds a parser over r. The caller owns r.
func NewReader(r io.Reader, settings config.CSVSettings) (*StreamingParser, error) {
	decoded, err := decodingReader(bufio.NewReader(r), settings.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	if err := configureReader(reader, settings); err != nil {
		return nil, err
	}

	parser := &StreamingParser{
		reader:   reader,
		settings: settings,
	}

	if err := parser.readHeaders(); err != nil {
		return nil, err
	}

	return parser, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Exports are not always rectangular.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	reader.TrimLeadingSpace = settings.TrimSpace
	return nil
}

// decodingReader wraps r so that it yields UTF-8.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch config.CanonicalEncoding(encoding) {
	case "UTF-8":
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	case "Windows-1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "ISO-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %q", encoding)
	}
}

// readHeaders reads the header row. An empty input yields no columns and
// no records rather than an error.
func (p *StreamingParser) readHeaders() error {
	row, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading header row: %w", err)
	}

	p.headers = p.clean(row)
	return nil
}

// clean applies the TrimSpace setting to a row.
func (p *StreamingParser) clean(row []string) []string {
	if !p.settings.TrimSpace {
		return row
	}
	cleaned := make([]string, len(row))
	for i, cell := range row {
		cleaned[i] = strings.TrimSpace(cell)
	}
	return cleaned
}

// Next advances to the next record. Returns false when there are no more
// records or an error occurred.
func (p *StreamingParser) Next() bool {
	if p.err != nil || p.headers == nil {
		return false
	}

	row, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		return false
	}
	if err != nil {
		p.err = fmt.Errorf("error reading row %d: %w", p.rowNumber+1, err)
		return false
	}

	p.rowNumber++
	p.current = types.NewSourceRecord(p.headers, p.clean(row), p.rowNumber)
	return true
}

// Record returns the current record.
func (p *StreamingParser) Record() types.SourceRecord {
	return p.current
}

// Columns returns the parsed header row.
func (p *StreamingParser) Columns() []string {
	return p.headers
}

// Err returns any error that occurred during parsing.
func (p *StreamingParser) Err() error {
	return p.err
}

// Close closes the underlying file, if the parser opened one.
func (p *StreamingParser) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
