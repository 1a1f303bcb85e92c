package allocator

import (
	"sort"
	"strings"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// Classifier resolves subject codes to their seating kind.
type Classifier struct {
	priority map[string]struct{}
	drawing  map[string]struct{}
}

// NewClassifier builds a classifier from the configured code sets. A code present
// in both sets yields a ConfigConflictError.
func NewClassifier(priority, drawing []string) (*Classifier, error) {
	c := &Classifier{
		priority: make(map[string]struct{}, len(priority)),
		drawing:  make(map[string]struct{}, len(drawing)),
	}
	for _, code := range drawing {
		if normalized := NormalizeSubjectCode(code); normalized != "" {
			c.drawing[normalized] = struct{}{}
		}
	}
	conflicts := make([]string, 0)
	for _, code := range priority {
		normalized := NormalizeSubjectCode(code)
		if normalized == "" {
			continue
		}
		if _, clash := c.drawing[normalized]; clash {
			conflicts = append(conflicts, normalized)
			continue
		}
		c.priority[normalized] = struct{}{}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return nil, &ConfigConflictError{SubjectCode: conflicts[0]}
	}
	return c, nil
}

// Classify returns the kind of a subject code. Unknown codes are Normal.
func (c *Classifier) Classify(code string) models.SubjectKind {
	normalized := NormalizeSubjectCode(code)
	if _, ok := c.drawing[normalized]; ok {
		return models.SubjectKindDrawing
	}
	if _, ok := c.priority[normalized]; ok {
		return models.SubjectKindPriority
	}
	return models.SubjectKindNormal
}

// NormalizeSubjectCode trims and upper-cases a subject code.
func NormalizeSubjectCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
