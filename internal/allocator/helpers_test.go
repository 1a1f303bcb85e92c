package allocator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

const testDate = "2024-11-20"

func examStudent(reg int, subject, department string) models.Student {
	return models.Student{
		RegisterNumber: fmt.Sprintf("%012d", reg),
		SubjectCode:    subject,
		Department:     department,
		ExamDate:       testDate,
		Session:        models.SessionForenoon,
	}
}

func challenged(s models.Student) models.Student {
	s.IsPhysicallyChallenged = true
	return s
}

func inSession(s models.Student, date string, session models.ExamSession) models.Student {
	s.ExamDate = date
	s.Session = session
	return s
}

func hall(name, block string, rows, cols int) models.Hall {
	return models.Hall{ID: "hall-" + name, Name: name, Block: block, Rows: rows, Columns: cols, Capacity: rows * cols}
}

func mustEngine(t *testing.T, snapshot Snapshot) *Engine {
	t.Helper()
	engine, err := NewEngine(snapshot, Options{Workers: 2})
	require.NoError(t, err)
	return engine
}

func hallOf(result *models.SeatingResult, name string) *models.HallSeating {
	for i := range result.Halls {
		if result.Halls[i].Hall.Name == name {
			return &result.Halls[i]
		}
	}
	return nil
}
