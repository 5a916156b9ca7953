// =============================================================================
// RT Systems to CHIRP Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts every export in
// the configured input directory.
//
// COMMAND USAGE:
//   rtsys2chirp process [flags]
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover .csv and .xlsx exports in the input directory
//   3. Convert each file, at most max_concurrency at a time
//   4. Archive converted files (when archive_on_success is set)
//   5. Write the summary log, and the issue log if anything was replaced
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/rtsys2chirp/internal/config"
	"github.com/ginjaninja78/rtsys2chirp/internal/converter"
	"github.com/ginjaninja78/rtsys2chirp/pkg/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// inputExtensions are the export types picked up from the input directory.
var inputExtensions = []string{".csv", ".xlsx", ".xlsm"}

// errSkipped marks files not attempted after a failure with
// continue_on_error disabled.
var errSkipped = errors.New("skipped after an earlier failure")

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert every export in the input directory",
	Long: `The process command scans input_dir for RT Systems exports (.csv and
.xlsx) and writes one CHIRP file per export to output_dir, named by
output_name_format.

Files are converted concurrently, up to max_concurrency at a time. Each file
is converted independently; with continue_on_error disabled the first failure
stops files that have not started yet.

On successful processing:
  - The CHIRP file is placed in the output directory
  - With archive_on_success, the export is moved to input_archive_dir and
    the CHIRP file is copied to output_archive_dir

After the run:
  - A processing summary is written to the output directory
  - An issue log lists every replaced value, dropped row and failed file`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the batch conversion.
func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(
		cfg.InputDir,
		cfg.OutputDir,
		cfg.InputArchiveDir,
		cfg.OutputArchiveDir,
		cfg.ArchiveOnSuccess,
	)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	inputFiles, err := fm.DiscoverInputFiles(inputExtensions...)
	if err != nil {
		return err
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No exports found in the input directory.")
		return nil
	}

	logger.Info("Found exports", "count", len(inputFiles), "dir", cfg.InputDir)

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outputs := planOutputs(inputFiles, cfg, logger)
	results := convertAll(ctx, inputFiles, outputs, cfg, logger)

	// =========================================================================
	// STEP 4: ARCHIVE AND COLLECT RESULTS
	// =========================================================================

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}
	var entries []utils.ErrorLogEntry

	for _, result := range results {
		name := filepath.Base(result.FilePath)
		entries = append(entries, issueEntries(name, result)...)

		if !result.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: result.Error.Error(),
			})
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
			continue
		}

		info := utils.ProcessedFileInfo{
			InputFile:   result.FilePath,
			OutputFile:  result.OutputFile,
			Channels:    result.Stats.ChannelsWritten,
			Dropped:     result.Stats.RowsDropped,
			ProcessTime: result.Stats.ProcessingTime,
		}

		if cfg.ArchiveOnSuccess {
			archived, err := fm.ArchiveInputFile(result.FilePath)
			if err != nil {
				logger.Error("Archival failed", "file", name, "err", err)
			} else {
				info.ArchivePath = archived
			}
			if _, err := fm.ArchiveOutputFile(result.OutputFile); err != nil {
				logger.Error("Archival failed", "file", filepath.Base(result.OutputFile), "err", err)
			}
		}

		summary.SuccessfulFiles++
		summary.RowsRead += result.Stats.RowsRead
		summary.ChannelsWritten += result.Stats.ChannelsWritten
		summary.RowsDropped += result.Stats.RowsDropped
		summary.Warnings += result.Stats.Warnings
		summary.ProcessedFiles = append(summary.ProcessedFiles, info)
		fmt.Fprintf(out, "  ✓ %s -> %s\n", name, result.OutputFile)
	}

	summary.EndTime = time.Now()

	// =========================================================================
	// STEP 5: WRITE LOGS AND PRINT SUMMARY
	// =========================================================================

	if path, err := utils.WriteSummaryLog(summary, cfg.OutputDir); err != nil {
		logger.Error("Could not write summary", "err", err)
	} else {
		logger.Debug("Wrote summary", "path", path)
	}

	issueLog, err := utils.WriteErrorLog(entries, cfg.OutputDir)
	if err != nil {
		logger.Error("Could not write issue log", "err", err)
	}

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:      %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:       %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:           %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Channels written: %d\n", summary.ChannelsWritten)
	fmt.Fprintf(out, "Time elapsed:     %s\n", summary.EndTime.Sub(startTime))
	if issueLog != "" {
		fmt.Fprintf(out, "\nIssues have been logged to %s\n", issueLog)
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// planOutputs names the output of every file before any conversion starts.
// Exports that share a name stem ("FT-60.csv", "FT-60.xlsx") get distinct
// outputs.
func planOutputs(files []string, cfg *config.MainConfig, logger *log.Logger) []string {
	taken := make(map[string]bool, len(files))
	outputs := make([]string, len(files))

	for i, file := range files {
		name := utils.GenerateOutputFileName(cfg.OutputNameFormat, map[string]string{
			"original": utils.OriginalName(file),
		})
		claimed := utils.ClaimOutputName(name, taken)
		if claimed != name {
			logger.Warn("Output name already used", "file", filepath.Base(file), "output", claimed)
		}
		outputs[i] = filepath.Join(cfg.OutputDir, claimed)
	}

	return outputs
}

// convertAll converts files with at most cfg.MaxConcurrency in flight.
// Results are returned in input order.
func convertAll(ctx context.Context, files, outputs []string, cfg *config.MainConfig, logger *log.Logger) []converter.Result {
	results := make([]converter.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if gctx.Err() != nil {
				results[i] = converter.Result{FilePath: file, Error: errSkipped}
				return nil
			}

			result := converter.New(file, outputs[i], cfg, logger).Run()
			results[i] = result

			if !result.Success {
				logger.Error("Conversion failed", "file", filepath.Base(file), "err", result.Error)
				if !cfg.ShouldContinueOnError() {
					return result.Error
				}
			}
			return nil
		})
	}

	// Failures are carried in results.
	_ = g.Wait()

	return results
}

// issueEntries turns a result's failure and degradation issues into issue
// log entries.
func issueEntries(fileName string, result converter.Result) []utils.ErrorLogEntry {
	now := time.Now()
	var entries []utils.ErrorLogEntry

	if !result.Success && result.Error != nil {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp: now,
			FileName:  fileName,
			Severity:  "ERROR",
			Message:   result.Error.Error(),
		})
	}

	for _, issue := range result.Issues {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp: now,
			FileName:  fileName,
			Severity:  strings.ToUpper(string(issue.Severity)),
			Rule:      issue.Rule,
			Message:   issue.Message,
			RowNumber: issue.RowNumber,
			Column:    issue.Column,
			Value:     issue.Value,
		})
	}

	return entries
}
