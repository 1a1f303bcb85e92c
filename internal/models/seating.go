package models

import "time"

// Seat is one grid cell of a hall. Cells beyond the hall capacity are not usable.
type Seat struct {
	Row        int      `json:"row"`
	Col        int      `json:"col"`
	SeatNumber int      `json:"seatNumber"`
	Usable     bool     `json:"usable"`
	Flagged    bool     `json:"flagged,omitempty"`
	Student    *Student `json:"student,omitempty"`
}

// HallSeating is one hall's populated grid.
type HallSeating struct {
	Hall           Hall     `json:"hall"`
	Grid           [][]Seat `json:"grid"`
	StudentsCount  int      `json:"studentsCount"`
	SoftViolations int      `json:"softViolations"`
}

// StudentAllocation is the flattened seat record used by search and exports.
type StudentAllocation struct {
	RegisterNumber string `json:"registerNumber"`
	Department     string `json:"department"`
	Subject        string `json:"subject"`
	HallName       string `json:"hallName"`
	Row            int    `json:"row"`
	Col            int    `json:"col"`
	SeatNumber     int    `json:"seatNumber"`
}

// SeatingResult is the allocation of one session.
type SeatingResult struct {
	SessionKey        string              `json:"sessionKey"`
	ExamDate          string              `json:"examDate"`
	Session           ExamSession         `json:"session"`
	Halls             []HallSeating       `json:"halls"`
	StudentAllocation []StudentAllocation `json:"studentAllocation"`
	TotalStudents     int                 `json:"totalStudents"`
	HallsUsed         int                 `json:"hallsUsed"`
	SoftViolations    int                 `json:"softViolations"`
}

// SessionFailure reports why one session could not be seated.
type SessionFailure struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Shortfall int    `json:"shortfall,omitempty"`
}

// GenerateResponse aggregates one generation run.
type GenerateResponse struct {
	Success  bool                      `json:"success"`
	Message  string                    `json:"message,omitempty"`
	Version  string                    `json:"version,omitempty"`
	Sessions []string                  `json:"sessions"`
	Results  map[string]*SeatingResult `json:"results"`
	Failures map[string]SessionFailure `json:"failures,omitempty"`
}

// SeatingSnapshot is an immutable published generation result.
type SeatingSnapshot struct {
	Version     string                    `json:"version"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Sessions    []string                  `json:"sessions"`
	Results     map[string]*SeatingResult `json:"results"`
}

// SearchHit is one allocation of a student in a published session.
type SearchHit struct {
	Session    string            `json:"session"`
	Allocation StudentAllocation `json:"allocation"`
}
