package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter renders spreadsheets with excelize.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render writes the dataset to a single sheet with a title row above the header.
func (e *XLSXExporter) Render(data Dataset, sheetName, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sanitizeSheetName(sheetName, 1)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	row := 1
	if title != "" {
		_ = f.SetCellValue(sheet, cell(1, row), title)
		last := cell(len(data.Headers), row)
		if len(data.Headers) > 1 {
			_ = f.MergeCell(sheet, cell(1, row), last)
		}
		_ = f.SetCellStyle(sheet, cell(1, row), last, headerStyle)
		row++
	}
	for i, header := range data.Headers {
		_ = f.SetCellValue(sheet, cell(i+1, row), header)
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, 18)
	}
	_ = f.SetCellStyle(sheet, cell(1, row), cell(len(data.Headers), row), headerStyle)
	row++

	for _, values := range data.Rows {
		for i, value := range data.record(values) {
			_ = f.SetCellValue(sheet, cell(i+1, row), value)
		}
		row++
	}
	return write(f)
}

// RenderGrids writes one sheet per grid, laying each seat out where it sits in the hall.
func (e *XLSXExporter) RenderGrids(title string, sheets []GridSheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one sheet")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	seatStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("seat style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}

	used := make(map[string]struct{}, len(sheets))
	for i, grid := range sheets {
		name := uniqueSheetName(sanitizeSheetName(grid.Name, i+1), used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}

		cols := 1
		for _, row := range grid.Cells {
			if len(row) > cols {
				cols = len(row)
			}
		}
		lines := []string{title, grid.Title, grid.Subtitle}
		row := 1
		for _, line := range lines {
			if line == "" {
				continue
			}
			_ = f.SetCellValue(name, cell(1, row), line)
			if cols > 1 {
				_ = f.MergeCell(name, cell(1, row), cell(cols, row))
			}
			_ = f.SetCellStyle(name, cell(1, row), cell(cols, row), titleStyle)
			row++
		}
		row++

		lastCol, _ := excelize.ColumnNumberToName(cols)
		_ = f.SetColWidth(name, "A", lastCol, 16)
		for _, cells := range grid.Cells {
			for c, value := range cells {
				_ = f.SetCellValue(name, cell(c+1, row), value)
			}
			_ = f.SetCellStyle(name, cell(1, row), cell(cols, row), seatStyle)
			_ = f.SetRowHeight(name, row, 32)
			row++
		}
	}
	f.SetActiveSheet(0)
	return write(f)
}

func write(f *excelize.File) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// sanitizeSheetName strips characters Excel forbids and enforces the 31 rune limit.
func sanitizeSheetName(name string, fallback int) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case '\\', '/', '?', '*', '[', ']', ':':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	if len(out) > 31 {
		out = out[:31]
	}
	if len(out) == 0 {
		return fmt.Sprintf("Sheet%d", fallback)
	}
	return string(out)
}

func uniqueSheetName(name string, used map[string]struct{}) string {
	candidate := name
	for i := 2; ; i++ {
		if _, taken := used[candidate]; !taken {
			used[candidate] = struct{}{}
			return candidate
		}
		suffix := fmt.Sprintf(" (%d)", i)
		base := []rune(name)
		if len(base)+len(suffix) > 31 {
			base = base[:31-len(suffix)]
		}
		candidate = string(base) + suffix
	}
}
