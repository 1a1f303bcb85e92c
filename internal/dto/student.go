package dto

import "github.com/noah-isme/exam-seating-api/internal/models"

// UploadStudentsRequest replaces the stored student batch.
type UploadStudentsRequest struct {
	Students []models.Student `json:"students"`
}

// UploadStudentsResponse summarises an accepted batch.
type UploadStudentsResponse struct {
	Total    int      `json:"total"`
	Sessions []string `json:"sessions"`
	Subjects int      `json:"subjects"`
}

// PhysicallyChallengedRequest toggles accessibility seating for a register number.
type PhysicallyChallengedRequest struct {
	IsPhysicallyChallenged *bool `json:"isPhysicallyChallenged" validate:"required"`
}

// PhysicallyChallengedResponse reports how many exam entries changed.
type PhysicallyChallengedResponse struct {
	RegisterNumber         string `json:"registerNumber"`
	IsPhysicallyChallenged bool   `json:"isPhysicallyChallenged"`
	Updated                int64  `json:"updated"`
}
