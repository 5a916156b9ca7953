// =============================================================================
// RT Systems to CHIRP Converter - Configuration Module
// =============================================================================
//
// This module loads the application configuration. A config file is only
// needed for batch processing (the 'process' command) or to change how
// exports are read and written; single-file conversion runs on defaults.
//
// CONFIGURATION FILE (config.yaml):
//   input_dir: ./input
//   output_dir: ./output
//   output_name_format: "{original}_chirp.csv"
//   csv_settings:
//     delimiter: ","
//     encoding: UTF-8
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for .csv and .xlsx exports by 'process'.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the generated CHIRP files.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives processed exports when ArchiveOnSuccess is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of each generated file when
	// ArchiveOnSuccess is set.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat names batch output files.
	// Placeholders:
	//   {original}  - Input file name without extension
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	// Default: "{original}_chirp.csv"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files converted at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps 'process' going after a file fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	// ArchiveOnSuccess moves converted exports to InputArchiveDir and copies
	// their output to OutputArchiveDir.
	// Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success"`

	// CSVSettings controls how CSV exports are read and CHIRP files written.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// XLSXSettings controls how spreadsheet exports are read.
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`
}

// ShouldContinueOnError reports the effective ContinueOnError value.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for reading exports and writing CHIRP files.
type CSVSettings struct {
	// Delimiter separates fields in the input file.
	// Common values: "," (comma), "|" (pipe), "\t" or "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the input file. Output is
	// always UTF-8.
	// Valid values: "UTF-8", "Windows-1252", "ISO-8859-1"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// TrimSpace strips surrounding whitespace from every input cell.
	// Default: false
	TrimSpace bool `yaml:"trim_space"`

	// LineEnding of the CHIRP output: "crlf" or "lf".
	// Default: "crlf"
	LineEnding string `yaml:"line_ending"`
}

// XLSXSettings contains settings for spreadsheet exports.
type XLSXSettings struct {
	// SheetName selects the sheet to read. Empty means the first sheet.
	SheetName string `yaml:"sheet_name"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMainConfig(data)
}

// LoadOrDefault loads configPath, falling back to Default when the file does
// not exist and required is false.
func LoadOrDefault(configPath string, required bool) (*MainConfig, error) {
	config, err := LoadMainConfig(configPath)
	if err != nil && !required && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// ParseMainConfig parses YAML configuration data.
func ParseMainConfig(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_chirp.csv"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}

	// CSV settings defaults.
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}
	if config.CSVSettings.LineEnding == "" {
		config.CSVSettings.LineEnding = "crlf"
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if _, err := log.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	if _, err := config.CSVSettings.Comma(); err != nil {
		return err
	}

	if !IsSupportedEncoding(config.CSVSettings.Encoding) {
		return fmt.Errorf("csv_settings.encoding: unsupported encoding %q", config.CSVSettings.Encoding)
	}

	switch strings.ToLower(config.CSVSettings.LineEnding) {
	case "crlf", "lf":
	default:
		return fmt.Errorf("csv_settings.line_ending must be \"crlf\" or \"lf\", got %q", config.CSVSettings.LineEnding)
	}

	return nil
}

// =============================================================================
// CSV SETTINGS HELPERS
// =============================================================================

// Comma resolves Delimiter to the rune used by the CSV reader.
func (s CSVSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "", ",":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	runes := []rune(s.Delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("csv_settings.delimiter must be a single character, got %q", s.Delimiter)
	}
	if runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' {
		return 0, fmt.Errorf("csv_settings.delimiter %q is not allowed", s.Delimiter)
	}
	return runes[0], nil
}

// UseCRLF reports whether output lines end in "\r\n".
func (s CSVSettings) UseCRLF() bool {
	return !strings.EqualFold(s.LineEnding, "lf")
}

// IsSupportedEncoding reports whether name is an accepted input encoding.
func IsSupportedEncoding(name string) bool {
	_, ok := encodingAliases[normalizeEncodingName(name)]
	return ok
}

// CanonicalEncoding returns the canonical spelling of a supported encoding,
// or "" if it is not supported.
func CanonicalEncoding(name string) string {
	return encodingAliases[normalizeEncodingName(name)]
}

var encodingAliases = map[string]string{
	"utf8":        "UTF-8",
	"windows1252": "Windows-1252",
	"cp1252":      "Windows-1252",
	"iso88591":    "ISO-8859-1",
	"latin1":      "ISO-8859-1",
}

func normalizeEncodingName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}
