package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	header = []string{"Date", "Name", "Check Out"}
	rows   = [][]string{
		{"2024-03-04", "Ana, Jr.", "17:00:00"},
		{"2024-03-05", "Budi", ""},
	}
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, header, rows))

	assert.Equal(t, "Date,Name,Check Out\n2024-03-04,\"Ana, Jr.\",17:00:00\n2024-03-05,Budi,\n", buf.String())
}

func TestWriteCSV_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, header, nil))

	assert.Equal(t, "Date,Name,Check Out\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	cells := [][]interface{}{
		{"2024-03-04", "Ana, Jr.", "17:00:00"},
		{"2024-03-05", "Budi", ""},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Attendance", header, cells))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance"}, f.GetSheetList())

	got, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, header, got[0])
	assert.Equal(t, rows[0], got[1])
	require.GreaterOrEqual(t, len(got[2]), 2)
	assert.Equal(t, []string{"2024-03-05", "Budi"}, got[2][:2])
}

func TestWriteXLSX_NumbersStayNumeric(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Attendance", []string{"Name", "Total Hours"}, [][]interface{}{
		{"Ana", 8.5},
		{"Budi", ""},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	typ, err := f.GetCellType("Attendance", "B2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeUnset, typ)

	raw, err := f.GetCellValue("Attendance", "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "8.5", raw)

	typ, err = f.GetCellType("Attendance", "A2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, typ)
}
