package models

import "time"

// SubjectKind classifies a subject code for seating purposes.
type SubjectKind string

const (
	SubjectKindPriority SubjectKind = "PRIORITY"
	SubjectKindDrawing  SubjectKind = "DRAWING"
	SubjectKindNormal   SubjectKind = "NORMAL"
)

// Valid reports whether the kind can be stored as configuration.
func (k SubjectKind) Valid() bool {
	return k == SubjectKindPriority || k == SubjectKindDrawing
}

// SubjectConfig marks a subject code as Priority or Drawing.
type SubjectConfig struct {
	SubjectCode string      `db:"subject_code" json:"subjectCode"`
	Kind        SubjectKind `db:"kind" json:"kind"`
	IsDefault   bool        `db:"-" json:"isDefault"`
	CreatedBy   *string     `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
}

// SubjectConfigSet is the effective configuration used by a generation run.
type SubjectConfigSet struct {
	Priority []SubjectConfig `json:"prioritySubjects"`
	Drawing  []SubjectConfig `json:"drawingSubjects"`
}

// Codes returns the subject codes of the given kind.
func (s SubjectConfigSet) Codes(kind SubjectKind) []string {
	var source []SubjectConfig
	switch kind {
	case SubjectKindPriority:
		source = s.Priority
	case SubjectKindDrawing:
		source = s.Drawing
	}
	codes := make([]string, 0, len(source))
	for _, cfg := range source {
		codes = append(codes, cfg.SubjectCode)
	}
	return codes
}
