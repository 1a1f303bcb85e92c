package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Register Number", "Hall", "Seat"},
		Rows: []map[string]string{
			{"Register Number": "000000000001", "Hall": "T1", "Seat": "1"},
			{"Register Number": "000000000002", "Hall": "T1", "Seat": "2"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Register Number,Hall,Seat\n000000000001,T1,1\n000000000002,T1,2\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Seating")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	grids, err := NewPDFExporter().RenderGrids("Seating", []GridSheet{{Name: "T1", Title: "T1", Cells: [][]string{{"a", "b"}, {"c", ""}}}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(grids, []byte("%PDF")))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset(), "Students", "Student Allocation")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Students", "A3")
	require.NoError(t, err)
	assert.Equal(t, "000000000001", value)
	header, err := f.GetCellValue("Students", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Hall", header)
}

func TestXLSXExporterRenderGridsOneSheetPerHall(t *testing.T) {
	out, err := NewXLSXExporter().RenderGrids("Seating", []GridSheet{
		{Name: "T1", Title: "Hall T1", Cells: [][]string{{"000000000001", "000000000002"}}},
		{Name: "AH1/Drawing", Title: "Hall AH1", Cells: [][]string{{"000000000003"}}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"T1", "AH1-Drawing"}, f.GetSheetList())
	value, err := f.GetCellValue("T1", "B4")
	require.NoError(t, err)
	assert.Equal(t, "000000000002", value)
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "Sheet3", sanitizeSheetName("", 3))
	assert.Len(t, []rune(sanitizeSheetName("a very long hall name that keeps going", 1)), 31)
	used := map[string]struct{}{}
	assert.Equal(t, "T1", uniqueSheetName("T1", used))
	assert.Equal(t, "T1 (2)", uniqueSheetName("T1", used))
}
