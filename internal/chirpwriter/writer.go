// =============================================================================
// RT Systems to CHIRP Converter - CHIRP CSV Writer
// =============================================================================
//
// This module writes destination records in the layout the CHIRP CSV
// importer expects:
//
//   Location,Name,Frequency,Duplex,Offset,Tone,...,rToneFreq,cToneFreq,DtcsCode,RxDtcsCode,Comment
//   1,Call,146.520,off,0.0,,...,,,,,Call
//   3,W1AW,147.000,+,0.6,Tone,...,100.0,100.0,,,Club net
//
// WRITE RULES:
//   - The header is written exactly once, before any record
//   - Every record is written in header order
//   - A header column the record lacks is written as an empty cell
//   - A record key outside the header is not written
//
// =============================================================================

package chirpwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ginjaninja78/rtsys2chirp/internal/types"
)

// ErrHeaderNotWritten is returned by Write before WriteHeader.
var ErrHeaderNotWritten = errors.New("header must be written before records")

// ErrHeaderWritten is returned by a second WriteHeader call.
var ErrHeaderWritten = errors.New("header already written")

// =============================================================================
// WRITER
// =============================================================================

// Options controls the output format.
type Options struct {
	// UseCRLF ends lines with "\r\n" instead of "\n".
	UseCRLF bool
}

// Writer writes CHIRP CSV rows to an io.Writer.
type Writer struct {
	csv     *csv.Writer
	header  []string
	written bool
}

// New returns a Writer on w.
func New(w io.Writer, opts Options) *Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = opts.UseCRLF
	return &Writer{csv: cw}
}

// WriteHeader writes the column list and fixes the column order for every
// later record.
func (w *Writer) WriteHeader(columns []string) error {
	if w.written {
		return ErrHeaderWritten
	}

	w.header = append([]string(nil), columns...)
	w.written = true

	if err := w.csv.Write(w.header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// Write writes one record in header order.
func (w *Writer) Write(rec *types.DestinationRecord) error {
	if !w.written {
		return ErrHeaderNotWritten
	}

	row := make([]string, len(w.header))
	for i, col := range w.header {
		row[i] = rec.Text(col)
	}

	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// Flush flushes buffered output and reports any write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
