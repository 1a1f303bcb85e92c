package allocator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyBatch is returned when a generation run has no students to seat.
var ErrEmptyBatch = errors.New("no students available for seating")

// Problem describes one malformed student record.
type Problem struct {
	Index          int    `json:"index"`
	RegisterNumber string `json:"registerNumber,omitempty"`
	Reason         string `json:"reason"`
}

// ValidationError rejects a batch before any session is built.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid student batch"
	}
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("record %d: %s", p.Index+1, p.Reason))
	}
	return fmt.Sprintf("invalid student batch: %s", strings.Join(parts, "; "))
}

// CapacityExceededError aborts a single session when its demand cannot be seated.
type CapacityExceededError struct {
	SessionKey string
	Demand     int
	Supply     int
	Shortfall  int
	Reason     string
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("session %s: %s: %d student(s) could not be seated (demand %d, seats %d)",
		e.SessionKey, e.Reason, e.Shortfall, e.Demand, e.Supply)
}

// ConfigConflictError reports a subject code configured as both Priority and Drawing.
type ConfigConflictError struct {
	SubjectCode string
}

func (e *ConfigConflictError) Error() string {
	return fmt.Sprintf("subject code %s is configured as both priority and drawing", e.SubjectCode)
}
