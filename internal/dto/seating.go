package dto

import "github.com/noah-isme/exam-seating-api/internal/models"

// GenerateSeatingRequest optionally carries an inline batch; when empty the stored
// batch is used.
type GenerateSeatingRequest struct {
	Students []models.Student `json:"students"`
}

// SessionsResponse lists the sessions of the published seating.
type SessionsResponse struct {
	Success  bool     `json:"success"`
	Version  string   `json:"version,omitempty"`
	Sessions []string `json:"sessions"`
}

// SearchStudentRequest looks up a register number across published sessions.
type SearchStudentRequest struct {
	RegisterNumber string `json:"registerNumber" validate:"required,len=12,numeric"`
}

// ExportFormat identifies a download encoding.
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatCSV  ExportFormat = "csv"
)

// ExportRequest selects the session and format of a seating download.
type ExportRequest struct {
	Session string       `form:"session"`
	Format  ExportFormat `form:"format"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
