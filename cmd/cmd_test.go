package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExport = "Channel Number,Receive Frequency,Offset Direction,Name,Comment\n" +
	"1,146.52000,Simplex,Call,\n" +
	"2,,,,\n" +
	"3,147.00000,Plus,W1AW,Club net\n"

const testChirp = "Location,Frequency,Duplex,Name,rToneFreq,cToneFreq,DtcsCode,RxDtcsCode,Comment\r\n" +
	"1,146.52000,off,Call,,,,,Call\r\n" +
	"3,147.00000,+,W1AW,,,,,Club net\r\n"

// execute runs the command tree with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile, verbose, inputPath, outputPath = "config.yaml", false, "", ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\n"+body), 0644))
	return path
}

func TestRoot_ConvertsOneFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	input := filepath.Join(dir, "export.csv")
	output := filepath.Join(dir, "chirp.csv")
	require.NoError(t, os.WriteFile(input, []byte(testExport), 0644))

	out, err := execute(t, "--config", cfg, "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Equal(t, completionMessage+"\n", out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, testChirp, string(data))
}

func TestRoot_RequiresBothPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")

	_, err := execute(t, "--config", cfg, "-i", filepath.Join(dir, "export.csv"))
	assert.Error(t, err)
}

func TestRoot_MissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")

	out, err := execute(t, "--config", cfg, "-i", filepath.Join(dir, "missing.csv"), "-o", filepath.Join(dir, "out.csv"))
	assert.Error(t, err)
	assert.NotContains(t, out, completionMessage)
}

func TestRoot_ExplicitConfigMustExist(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(input, []byte(testExport), 0644))

	_, err := execute(t, "--config", filepath.Join(dir, "nope.yaml"), "-i", input, "-o", filepath.Join(dir, "out.csv"))
	assert.Error(t, err)
}

func TestProcess_ConvertsDirectory(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	outDir := filepath.Join(dir, "out")
	inArchive := filepath.Join(dir, "in_archive")
	outArchive := filepath.Join(dir, "out_archive")
	require.NoError(t, os.Mkdir(in, 0755))

	cfg := writeConfig(t, dir, fmt.Sprintf(
		"input_dir: %q\noutput_dir: %q\ninput_archive_dir: %q\noutput_archive_dir: %q\narchive_on_success: true\nmax_concurrency: 2\n",
		in, outDir, inArchive, outArchive))

	require.NoError(t, os.WriteFile(filepath.Join(in, "good.csv"), []byte(testExport), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.xlsx"), []byte("not a workbook"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("ignored"), 0644))

	out, err := execute(t, "--config", cfg, "process")
	assert.EqualError(t, err, "1 of 2 file(s) failed")
	assert.Contains(t, out, "Total files:      2")
	assert.Contains(t, out, "Successful:       1")

	data, err := os.ReadFile(filepath.Join(outDir, "good_chirp.csv"))
	require.NoError(t, err)
	assert.Equal(t, testChirp, string(data))

	assert.FileExists(t, filepath.Join(inArchive, "good.csv"))
	assert.FileExists(t, filepath.Join(outArchive, "good_chirp.csv"))
	assert.NoFileExists(t, filepath.Join(in, "good.csv"))
	assert.FileExists(t, filepath.Join(in, "broken.xlsx"))

	summaries, err := filepath.Glob(filepath.Join(outDir, "processing_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	issueLogs, err := filepath.Glob(filepath.Join(outDir, "issue_log_*.txt"))
	require.NoError(t, err)
	assert.Len(t, issueLogs, 1)
}

func TestProcess_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	require.NoError(t, os.Mkdir(in, 0755))
	cfg := writeConfig(t, dir, fmt.Sprintf("input_dir: %q\noutput_dir: %q\n", in, filepath.Join(dir, "out")))

	out, err := execute(t, "--config", cfg, "process")
	require.NoError(t, err)
	assert.Contains(t, out, "No exports found")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "RT Systems to CHIRP Converter")
	assert.Contains(t, out, "Version:    "+Version)
}

func TestProcess_SharedStemGetsDistinctOutputs(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(in, 0755))
	cfg := writeConfig(t, dir, fmt.Sprintf("input_dir: %q\noutput_dir: %q\nmax_concurrency: 2\n", in, outDir))

	header := "Channel Number,Receive Frequency,Offset Direction,Name,Comment\n"
	require.NoError(t, os.WriteFile(filepath.Join(in, "FT-60.csv"), []byte(header+"1,146.52000,Simplex,A,\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "FT-60.CSV"), []byte(header+"1,147.00000,Simplex,B,\n"), 0644))

	out, err := execute(t, "--config", cfg, "process")
	require.NoError(t, err)
	assert.Contains(t, out, "Successful:       2")

	chirpHeader := "Location,Frequency,Duplex,Name,rToneFreq,cToneFreq,DtcsCode,RxDtcsCode,Comment\r\n"

	// Inputs are taken in name order, so FT-60.CSV claims the plain name.
	data, err := os.ReadFile(filepath.Join(outDir, "FT-60_chirp.csv"))
	require.NoError(t, err)
	assert.Equal(t, chirpHeader+"1,147.00000,off,B,,,,,B\r\n", string(data))

	data, err = os.ReadFile(filepath.Join(outDir, "FT-60_chirp_2.csv"))
	require.NoError(t, err)
	assert.Equal(t, chirpHeader+"1,146.52000,off,A,,,,,A\r\n", string(data))
}
