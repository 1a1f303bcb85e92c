package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/export"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeCSV  = "text/csv"
)

var studentWiseHeaders = []string{"Registration Number", "Subject", "Department", "Hall", "Seat Number", "Row", "Column"}

var rowNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

type exportSeatingSource interface {
	ResolveSession(session string) (*models.SeatingResult, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	RenderGrids(title string, sheets []export.GridSheet) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheetName, title string) ([]byte, error)
	RenderGrids(title string, sheets []export.GridSheet) ([]byte, error)
}

// ExportConfig tunes export rendering.
type ExportConfig struct {
	InstitutionTitle string
}

// ExportService renders the published seating as downloadable documents.
type ExportService struct {
	seating exportSeatingSource
	csv     csvRenderer
	pdf     pdfRenderer
	xlsx    xlsxRenderer
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(seating exportSeatingSource, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, xlsx xlsxRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	if cfg.InstitutionTitle == "" {
		cfg.InstitutionTitle = "UNIVERSITY EXAMINATIONS"
	}
	return &ExportService{seating: seating, csv: csv, pdf: pdf, xlsx: xlsx, logger: logger, cfg: cfg}
}

// HallWise renders the hall sketch of a session, one sheet or page per hall.
func (s *ExportService) HallWise(ctx context.Context, req dto.ExportRequest) (*dto.ExportFile, error) {
	format, err := exportFormat(req.Format, dto.ExportFormatXLSX, dto.ExportFormatXLSX, dto.ExportFormatPDF)
	if err != nil {
		return nil, err
	}
	result, err := s.seating.ResolveSession(req.Session)
	if err != nil {
		return nil, err
	}

	title := s.cfg.InstitutionTitle + " - HALL SKETCH"
	sheets := make([]export.GridSheet, 0, len(result.Halls))
	for _, hall := range result.Halls {
		sheets = append(sheets, hallSketch(hall, result))
	}
	if len(sheets) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session has no seated halls")
	}

	var content []byte
	switch format {
	case dto.ExportFormatPDF:
		content, err = s.pdf.RenderGrids(title, sheets)
	default:
		content, err = s.xlsx.RenderGrids(title, sheets)
	}
	if err != nil {
		s.logger.Error("hall-wise export failed", zap.String("session", result.SessionKey), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render hall sketch")
	}
	return exportFile("Hall Sketch", result, format, content), nil
}

// StudentWise renders every allocation of a session sorted by register number.
func (s *ExportService) StudentWise(ctx context.Context, req dto.ExportRequest) (*dto.ExportFile, error) {
	format, err := exportFormat(req.Format, dto.ExportFormatXLSX, dto.ExportFormatXLSX, dto.ExportFormatCSV, dto.ExportFormatPDF)
	if err != nil {
		return nil, err
	}
	result, err := s.seating.ResolveSession(req.Session)
	if err != nil {
		return nil, err
	}

	data := studentWiseDataset(result)
	var content []byte
	switch format {
	case dto.ExportFormatCSV:
		content, err = s.csv.Render(data)
	case dto.ExportFormatPDF:
		content, err = s.pdf.Render(data, s.cfg.InstitutionTitle+" - STUDENT ALLOCATION "+sessionLabel(result))
	default:
		content, err = s.xlsx.Render(data, "Student Allocations", s.cfg.InstitutionTitle+" - "+sessionLabel(result))
	}
	if err != nil {
		s.logger.Error("student-wise export failed", zap.String("session", result.SessionKey), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render student allocation")
	}
	return exportFile("Student Allocation", result, format, content), nil
}

// hallSketch lays physical rows out as column pairs of register number and seat number.
func hallSketch(hall models.HallSeating, result *models.SeatingResult) export.GridSheet {
	rows := len(hall.Grid)
	cols := 0
	for _, row := range hall.Grid {
		if len(row) > cols {
			cols = len(row)
		}
	}

	cells := make([][]string, cols+1)
	cells[0] = make([]string, rows*2)
	for r := 0; r < rows; r++ {
		numeral := strconv.Itoa(r + 1)
		if r < len(rowNumerals) {
			numeral = rowNumerals[r]
		}
		cells[0][r*2] = numeral + " - ROW"
		cells[0][r*2+1] = "Seat No"
	}
	for c := 0; c < cols; c++ {
		line := make([]string, rows*2)
		for r := 0; r < rows; r++ {
			if c >= len(hall.Grid[r]) {
				continue
			}
			seat := hall.Grid[r][c]
			if !seat.Usable {
				continue
			}
			if seat.Student != nil {
				line[r*2] = seat.Student.RegisterNumber
			}
			line[r*2+1] = strconv.Itoa(seat.SeatNumber)
		}
		cells[c+1] = line
	}

	return export.GridSheet{
		Name:     hall.Hall.Name,
		Title:    "HALL NO : " + hall.Hall.Name,
		Subtitle: "Date & Session : " + sessionLabel(result),
		Cells:    cells,
	}
}

func studentWiseDataset(result *models.SeatingResult) export.Dataset {
	allocations := make([]models.StudentAllocation, len(result.StudentAllocation))
	copy(allocations, result.StudentAllocation)
	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].RegisterNumber < allocations[j].RegisterNumber
	})

	rows := make([]map[string]string, 0, len(allocations))
	for _, a := range allocations {
		rows = append(rows, map[string]string{
			"Registration Number": a.RegisterNumber,
			"Subject":             a.Subject,
			"Department":          a.Department,
			"Hall":                a.HallName,
			"Seat Number":         strconv.Itoa(a.SeatNumber),
			"Row":                 strconv.Itoa(a.Row + 1),
			"Column":              strconv.Itoa(a.Col + 1),
		})
	}
	return export.Dataset{Headers: studentWiseHeaders, Rows: rows}
}

func exportFormat(requested, fallback dto.ExportFormat, allowed ...dto.ExportFormat) (dto.ExportFormat, error) {
	format := dto.ExportFormat(strings.ToLower(strings.TrimSpace(string(requested))))
	if format == "" {
		return fallback, nil
	}
	for _, candidate := range allowed {
		if candidate == format {
			return format, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", requested))
}

func exportFile(prefix string, result *models.SeatingResult, format dto.ExportFormat, content []byte) *dto.ExportFile {
	contentType := contentTypeXLSX
	switch format {
	case dto.ExportFormatPDF:
		contentType = contentTypePDF
	case dto.ExportFormatCSV:
		contentType = contentTypeCSV
	}
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("%s %s.%s", prefix, sessionLabel(result), format),
		ContentType: contentType,
		Content:     content,
	}
}

func sessionLabel(result *models.SeatingResult) string {
	if result.ExamDate == "" {
		return strings.ReplaceAll(result.SessionKey, "_", " ")
	}
	return result.ExamDate + " " + string(result.Session)
}
