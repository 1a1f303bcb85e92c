package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

var studentRowColumns = []string{"register_number", "subject_code", "department", "exam_date", "session", "is_physically_challenged", "position"}

func TestStudentRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newSeatingMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM exam_students").WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectExec("INSERT INTO exam_students").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	students := []models.Student{
		{RegisterNumber: "111111111111", SubjectCode: "CS3451", Department: "CSE", ExamDate: "2024-11-20", Session: models.SessionForenoon},
		{RegisterNumber: "222222222222", SubjectCode: "EC3452", Department: "ECE", ExamDate: "2024-11-20", Session: models.SessionForenoon},
	}
	require.NoError(t, repo.ReplaceAll(context.Background(), students))
	assert.Equal(t, 1, students[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newSeatingMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + studentColumns + " FROM exam_students ORDER BY position ASC")).
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow("111111111111", "CS3451", "CSE", "2024-11-20", "FN", true, 0))

	students, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.True(t, students[0].IsPhysicallyChallenged)
	assert.Equal(t, models.SessionForenoon, students[0].Session)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListFiltersBySession(t *testing.T) {
	db, mock, cleanup := newSeatingMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + studentColumns + " FROM exam_students WHERE 1=1 AND exam_date || '_' || session = $1 ORDER BY position ASC LIMIT 100 OFFSET 0")).
		WithArgs("2024-11-20_FN").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow("111111111111", "CS3451", "CSE", "2024-11-20", "FN", false, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM exam_students WHERE 1=1 AND exam_date || '_' || session = $1")).
		WithArgs("2024-11-20_FN").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.StudentFilter{SessionKey: "2024-11-20_FN"})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySetPhysicallyChallenged(t *testing.T) {
	db, mock, cleanup := newSeatingMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE exam_students SET is_physically_challenged = $1 WHERE register_number = $2")).
		WithArgs(true, "111111111111").
		WillReturnResult(sqlmock.NewResult(0, 3))

	affected, err := repo.SetPhysicallyChallenged(context.Background(), "111111111111", true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
