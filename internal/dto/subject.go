package dto

import "github.com/noah-isme/exam-seating-api/internal/models"

// SubjectConfigRequest adds a custom Priority or Drawing subject code.
type SubjectConfigRequest struct {
	SubjectCode string             `json:"subjectCode" validate:"required,max=32"`
	Kind        models.SubjectKind `json:"type" validate:"required,oneof=PRIORITY DRAWING"`
}
