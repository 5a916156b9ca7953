// =============================================================================
// RT Systems to CHIRP Converter - Converter Module
// =============================================================================
//
// This module drives a conversion run. The core loop (Convert) only sees
// record sources and sinks; the Converter type wires it to files.
//
// CONVERSION PIPELINE:
//   1. Open the RT Systems export (.csv, or .xlsx)
//   2. Derive and write the CHIRP header
//   3. For each source record: transform, then write or drop
//   4. Flush the output
//   5. Report statistics and degradation issues
//
// CONCURRENCY:
//   A Converter handles one file. Separate Converters share nothing and may
//   run in parallel; the batch command relies on that.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/rtsys2chirp/internal/chirpwriter"
	"github.com/ginjaninja78/rtsys2chirp/internal/config"
	"github.com/ginjaninja78/rtsys2chirp/internal/csvparser"
	"github.com/ginjaninja78/rtsys2chirp/internal/logging"
	"github.com/ginjaninja78/rtsys2chirp/internal/types"
	"github.com/ginjaninja78/rtsys2chirp/internal/validation"
	"github.com/ginjaninja78/rtsys2chirp/internal/xlsxparser"
)

// =============================================================================
// RECORD STREAMS
// =============================================================================

// RecordSource supplies the source header followed by source records.
type RecordSource interface {
	Columns() []string
	Next() bool
	Record() types.SourceRecord
	Err() error
}

// RecordSink consumes the destination header followed by destination records.
type RecordSink interface {
	WriteHeader(columns []string) error
	Write(rec *types.DestinationRecord) error
	Flush() error
}

// recordReader is a RecordSource backed by an open file.
type recordReader interface {
	RecordSource
	Close() error
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated CHIRP file.
	// This is empty if processing failed before the file was created.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats

	// Issues lists every value that was replaced by a fallback and every
	// dropped row.
	Issues []*validation.Issue
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of source records examined.
	RowsRead int

	// ChannelsWritten is the number of CHIRP records written.
	ChannelsWritten int

	// RowsDropped is the number of records skipped for lacking a receive
	// frequency.
	RowsDropped int

	// Warnings is the number of values replaced by a fallback.
	Warnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CORE LOOP
// =============================================================================

// Convert reads every record from src, transforms it with t and writes the
// accepted records to dst. It stops at the first read or write error.
func Convert(src RecordSource, dst RecordSink, t *Transformer) (ProcessingStats, error) {
	var stats ProcessingStats

	if err := dst.WriteHeader(Header(src.Columns())); err != nil {
		return stats, err
	}

	for src.Next() {
		stats.RowsRead++

		rec, ok := t.Transform(src.Record())
		if !ok {
			stats.RowsDropped++
			continue
		}

		if err := dst.Write(rec); err != nil {
			return stats, err
		}
		stats.ChannelsWritten++
	}

	if err := src.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}

	if err := dst.Flush(); err != nil {
		return stats, err
	}

	return stats, nil
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single export file.
type Converter struct {
	// inputPath is the path to the RT Systems export.
	inputPath string

	// outputPath is the path of the CHIRP file to create.
	outputPath string

	// config is the application configuration.
	config *config.MainConfig

	logger *log.Logger
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the RT Systems export.
//   - outputPath: The path of the CHIRP CSV to create.
//   - cfg: The application configuration; nil means defaults.
//   - logger: Destination for progress logging; nil discards it.
//
// RETURNS:
//   - A new Converter instance.
func New(inputPath, outputPath string, cfg *config.MainConfig, logger *log.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Converter{
		inputPath:  inputPath,
		outputPath: outputPath,
		config:     cfg,
		logger:     logging.WithFile(logger, filepath.Base(inputPath)),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.inputPath,
	}

	if sameFile(c.inputPath, c.outputPath) {
		result.Error = fmt.Errorf("output path %s is the input file", c.outputPath)
		return result
	}

	// =========================================================================
	// STEP 1: OPEN THE EXPORT
	// =========================================================================

	c.logger.Info("Converting", "output", c.outputPath)

	src, err := c.openSource()
	if err != nil {
		result.Error = fmt.Errorf("failed to open input: %w", err)
		return result
	}
	defer src.Close()

	c.logger.Debug("Read source header", "columns", len(src.Columns()))

	// =========================================================================
	// STEP 2: CREATE THE OUTPUT
	// =========================================================================

	out, err := os.Create(c.outputPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to create output: %w", err)
		return result
	}
	result.OutputFile = c.outputPath

	writer := chirpwriter.New(out, chirpwriter.Options{
		UseCRLF: c.config.CSVSettings.UseCRLF(),
	})

	// =========================================================================
	// STEP 3: TRANSFORM AND WRITE
	// =========================================================================

	var report validation.Report
	transformer := NewTransformer(&report, c.logger)

	stats, err := Convert(src, writer, transformer)
	closeErr := out.Close()

	stats.Warnings = report.Count(validation.SeverityWarning)
	stats.ProcessingTime = time.Since(startTime)
	result.Stats = stats
	result.Issues = report.Issues

	if err != nil {
		result.Error = fmt.Errorf("failed to convert: %w", err)
		return result
	}
	if closeErr != nil {
		result.Error = fmt.Errorf("failed to close output: %w", closeErr)
		return result
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	c.logger.Info("Converted",
		"rows", stats.RowsRead,
		"channels", stats.ChannelsWritten,
		"dropped", stats.RowsDropped,
		"issues", report.Len(),
	)
	if stats.Warnings > 0 {
		c.logger.Warn("Some values were replaced by fallbacks", "count", stats.Warnings)
	}

	result.Success = true
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// openSource picks a reader by file extension.
func (c *Converter) openSource() (recordReader, error) {
	switch strings.ToLower(filepath.Ext(c.inputPath)) {
	case ".xlsx", ".xlsm":
		return xlsxparser.Open(c.inputPath, c.config.XLSXSettings, c.config.CSVSettings.TrimSpace)
	default:
		return csvparser.NewStreamingParser(c.inputPath, c.config.CSVSettings)
	}
}

// IsSupportedInput reports whether path has an extension the converter reads.
func IsSupportedInput(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// sameFile reports whether a and b name the same existing file.
func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
