package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/rtsys2chirp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpen_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Channel Number", "Receive Frequency", "Name"},
		{"1", "146.520", "Call"},
		{"2", "", ""},
		{"3", "147.000"},
	})

	r, err := Open(path, config.XLSXSettings{}, false)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "Sheet1", r.SheetName())
	assert.Equal(t, []string{"Channel Number", "Receive Frequency", "Name"}, r.Columns())

	var names []string
	var rows []int
	for r.Next() {
		names = append(names, r.Record().Get("Name"))
		rows = append(rows, r.Record().RowNumber)
	}
	require.NoError(t, r.Err())

	assert.Equal(t, []string{"Call", "", ""}, names)
	assert.Equal(t, []int{1, 2, 3}, rows)
}

func TestOpen_EmptyRowBetweenChannelsIsARecord(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Channel Number", "Receive Frequency", "Name"},
		{"1", "146.520", "Call"},
		{},
		{"3", "147.000", "Rpt"},
		{},
	})

	r, err := Open(path, config.XLSXSettings{}, false)
	require.NoError(t, err)
	defer r.Close()

	var freqs []string
	for r.Next() {
		freqs = append(freqs, r.Record().Get("Receive Frequency"))
	}
	require.NoError(t, r.Err())

	assert.Equal(t, []string{"146.520", "", "147.000"}, freqs)
}

func TestOpen_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Memories", [][]interface{}{
		{"Name", "Receive Frequency"},
		{" Rpt ", "145.230"},
	})

	r, err := Open(path, config.XLSXSettings{SheetName: "Memories"}, true)
	require.NoError(t, err)
	defer r.Close()

	require.True(t, r.Next())
	assert.Equal(t, "Rpt", r.Record().Get("Name"))
	assert.False(t, r.Next())
}

func TestOpen_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{{"Name"}})

	_, err := Open(path, config.XLSXSettings{SheetName: "Nope"}, false)
	assert.Error(t, err)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), config.XLSXSettings{}, false)
	assert.Error(t, err)
}
