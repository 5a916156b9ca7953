// =============================================================================
// RT Systems to CHIRP Converter - XLSX Export Reader
// =============================================================================
//
// This module reads RT Systems memory lists that were saved as Excel
// workbooks instead of CSV. The first row of the selected sheet is the
// header; every following row is one channel record:
//   - Empty rows between channels are records with every cell empty, as
//     an all-empty CSV line (",,,") is
//   - Empty rows after the last channel are not records
//   - Missing trailing cells read as empty strings
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/rtsys2chirp/internal/config"
	"github.com/ginjaninja78/rtsys2chirp/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// SHEET READER
// =============================================================================

// SheetReader iterates the channel rows of one worksheet.
type SheetReader struct {
	file      *excelize.File
	sheetName string
	headers   []string
	rows      [][]string
	next      int
	current   types.SourceRecord
	rowNumber int
	trim      bool
}

// Open opens an .xlsx file and selects the sheet named in settings, or the
// first sheet when none is named.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - settings: The XLSX settings from the configuration.
//   - trimSpace: Strip surrounding whitespace from every cell.
//
// RETURNS:
//   - A pointer to the SheetReader.
//   - An error if the workbook or sheet cannot be read.
func Open(filePath string, settings config.XLSXSettings, trimSpace bool) (*SheetReader, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	reader, err := newSheetReader(f, settings.SheetName, trimSpace)
	if err != nil {
		f.Close()
		return nil, err
	}
	return reader, nil
}

func newSheetReader(f *excelize.File, sheetName string, trimSpace bool) (*SheetReader, error) {
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	r := &SheetReader{
		file:      f,
		sheetName: sheetName,
		trim:      trimSpace,
	}

	// The header is the first row that has any cells.
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		r.headers = r.clean(row)
		r.rows = trimTrailingEmpty(rows[i+1:])
		break
	}

	return r, nil
}

// clean applies the trim setting to a row.
func (r *SheetReader) clean(row []string) []string {
	if !r.trim {
		return row
	}
	cleaned := make([]string, len(row))
	for i, cell := range row {
		cleaned[i] = strings.TrimSpace(cell)
	}
	return cleaned
}

// trimTrailingEmpty drops the empty rows after the last row with cells.
func trimTrailingEmpty(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	return rows[:end]
}

// Next advances to the next record.
func (r *SheetReader) Next() bool {
	if r.next >= len(r.rows) {
		return false
	}

	row := r.rows[r.next]
	r.next++

	r.rowNumber++
	r.current = types.NewSourceRecord(r.headers, r.clean(row), r.rowNumber)
	return true
}

// Record returns the current record.
func (r *SheetReader) Record() types.SourceRecord {
	return r.current
}

// Columns returns the header row.
func (r *SheetReader) Columns() []string {
	return r.headers
}

// SheetName returns the sheet being read.
func (r *SheetReader) SheetName() string {
	return r.sheetName
}

// Err always returns nil; all rows are read when the reader is opened.
func (r *SheetReader) Err() error {
	return nil
}

// Close closes the workbook.
func (r *SheetReader) Close() error {
	return r.file.Close()
}
