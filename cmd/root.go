// =============================================================================
// RT Systems to CHIRP Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with an input
// and an output path, the root command converts one RT Systems export into a
// CHIRP import file. Batch conversion lives in the 'process' subcommand.
//
// COBRA CLI STRUCTURE:
//   rootCmd (rtsys2chirp -i export.csv -o chirp.csv)
//   ├── processCmd (rtsys2chirp process)
//   └── versionCmd (rtsys2chirp version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/rtsys2chirp/internal/config"
	"github.com/ginjaninja78/rtsys2chirp/internal/converter"
	"github.com/ginjaninja78/rtsys2chirp/internal/logging"
	"github.com/ginjaninja78/rtsys2chirp/internal/validation"
	"github.com/spf13/cobra"
)

// completionMessage is printed after a successful single-file conversion.
const completionMessage = "Conversion from rtsystems to chirp format completed successfully."

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// inputPath is the RT Systems export to convert.
var inputPath string

// outputPath is the CHIRP file to create.
var outputPath string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rtsys2chirp",
	Short: "Convert RT Systems channel exports to CHIRP CSV",

	Long: `rtsys2chirp converts radio channel lists exported from RT Systems
programming software into the CSV layout imported by CHIRP.

Rows without a receive frequency are skipped. Unrecognized modes, tone
modes, offset directions and scan settings are left empty, and frequencies
that cannot be read are written as 0.0; every such replacement is logged.

Example Usage:
  rtsys2chirp -i FT-60.csv -o FT-60_chirp.csv   # Convert one export
  rtsys2chirp -i FT-60.xlsx -o FT-60_chirp.csv  # Spreadsheet exports work too
  rtsys2chirp process                           # Convert every export in input_dir`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		if inputPath == "" && outputPath == "" {
			return cmd.Help()
		}
		if inputPath == "" || outputPath == "" {
			return errors.New("both --input and --output are required")
		}
		return runConvert(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global and root-only flags.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file; built-in defaults are used if the default file is missing",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "RT Systems export to convert (.csv or .xlsx)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "CHIRP CSV file to create")
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadRuntime loads the configuration and builds the logger for a command.
// A config file named explicitly with --config must exist.
func loadRuntime(cmd *cobra.Command) (*config.MainConfig, *log.Logger, error) {
	cfg, err := config.LoadOrDefault(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

// =============================================================================
// SINGLE FILE CONVERSION
// =============================================================================

// runConvert converts inputPath to outputPath.
func runConvert(cmd *cobra.Command) error {
	cfg, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	result := converter.New(inputPath, outputPath, cfg, logger).Run()
	if verbose && len(result.Issues) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), validation.FormatIssues(result.Issues))
	}
	if !result.Success {
		return result.Error
	}

	fmt.Fprintln(cmd.OutOrStdout(), completionMessage)
	return nil
}
