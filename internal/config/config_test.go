package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "{original}_chirp.csv", cfg.OutputNameFormat)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.True(t, cfg.ShouldContinueOnError())
	assert.False(t, cfg.ArchiveOnSuccess)
	assert.Equal(t, ",", cfg.CSVSettings.Delimiter)
	assert.Equal(t, "UTF-8", cfg.CSVSettings.Encoding)
	assert.True(t, cfg.CSVSettings.UseCRLF())
}

func TestParseMainConfig_Overrides(t *testing.T) {
	data := []byte(`
input_dir: /data/rt
output_dir: /data/chirp
log_level: debug
max_concurrency: 2
continue_on_error: false
archive_on_success: true
output_name_format: "{original}_{uuid}.csv"
csv_settings:
  delimiter: tab
  encoding: windows-1252
  trim_space: true
  line_ending: lf
xlsx_settings:
  sheet_name: Memories
`)

	cfg, err := ParseMainConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "/data/rt", cfg.InputDir)
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.False(t, cfg.ShouldContinueOnError())
	assert.True(t, cfg.ArchiveOnSuccess)
	assert.True(t, cfg.CSVSettings.TrimSpace)
	assert.False(t, cfg.CSVSettings.UseCRLF())
	assert.Equal(t, "Memories", cfg.XLSXSettings.SheetName)

	comma, err := cfg.CSVSettings.Comma()
	require.NoError(t, err)
	assert.Equal(t, '\t', comma)
	assert.Equal(t, "Windows-1252", CanonicalEncoding(cfg.CSVSettings.Encoding))
}

func TestParseMainConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"log level":   "log_level: loud\n",
		"concurrency": "max_concurrency: -1\n",
		"delimiter":   "csv_settings:\n  delimiter: ab\n",
		"encoding":    "csv_settings:\n  encoding: EBCDIC\n",
		"line ending": "csv_settings:\n  line_ending: cr\n",
		"yaml":        "input_dir: [unclosed\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMainConfig([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadOrDefault(missing, false)
	require.NoError(t, err)
	assert.Equal(t, "./input", cfg.InputDir)

	_, err = LoadOrDefault(missing, true)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: out\n"), 0644))
	cfg, err = LoadOrDefault(path, true)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestComma(t *testing.T) {
	for delim, want := range map[string]rune{",": ',', "|": '|', "pipe": '|', ";": ';', "\t": '\t', "\\t": '\t', "#": '#'} {
		got, err := CSVSettings{Delimiter: delim}.Comma()
		require.NoError(t, err, delim)
		assert.Equal(t, want, got, delim)
	}

	_, err := CSVSettings{Delimiter: "\""}.Comma()
	assert.Error(t, err)
}
