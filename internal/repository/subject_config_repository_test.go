package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

func TestSubjectConfigRepositoryList(t *testing.T) {
	db, mock, cleanup := newSeatingMock(t)
	defer cleanup()
	repo := NewSubjectConfigRepository(db)

	mock.ExpectQuery("SELECT subject_code, kind, created_by, created_at FROM subject_configs ORDER BY").
		WillReturnRows(sqlmock.NewRows([]string{"subject_code", "kind", "created_by", "created_at"}).
			AddRow("CS3451", "PRIORITY", "admin-1", time.Now()).
			AddRow("ME3392", "DRAWING", nil, time.Now()))

	configs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, models.SubjectKindDrawing, configs[1].Kind)
	assert.Nil(t, configs[1].CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectConfigRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newSeatingMock(t)
	defer cleanup()
	repo := NewSubjectConfigRepository(db)

	mock.ExpectExec("INSERT INTO subject_configs").
		WithArgs("CS3451", models.SubjectKindPriority, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), &models.SubjectConfig{SubjectCode: "CS3451", Kind: models.SubjectKindPriority}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectConfigRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newSeatingMock(t)
	defer cleanup()
	repo := NewSubjectConfigRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subject_configs WHERE subject_code = $1 AND kind = $2")).
		WithArgs("CS3451", models.SubjectKindDrawing).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "CS3451", models.SubjectKindDrawing)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
