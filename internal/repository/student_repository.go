package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

const (
	studentColumns     = `register_number, subject_code, department, exam_date, session, is_physically_challenged, position`
	studentInsertChunk = 500
)

// StudentRepository stores the current examination student batch.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ReplaceAll discards the stored batch and inserts the new one, keeping upload order.
func (r *StudentRepository) ReplaceAll(ctx context.Context, students []models.Student) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace students tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM exam_students"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear students: %w", err)
	}
	for i := range students {
		students[i].Position = i
	}
	const query = `INSERT INTO exam_students (` + studentColumns + `)
VALUES (:register_number, :subject_code, :department, :exam_date, :session, :is_physically_challenged, :position)`
	for start := 0; start < len(students); start += studentInsertChunk {
		end := start + studentInsertChunk
		if end > len(students) {
			end = len(students)
		}
		if _, err := tx.NamedExecContext(ctx, query, students[start:end]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert students: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace students tx: %w", err)
	}
	return nil
}

// ListAll returns the whole batch in upload order.
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, "SELECT "+studentColumns+" FROM exam_students ORDER BY position ASC"); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// List returns one page of the batch.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	if filter.SessionKey != "" {
		conditions = append(conditions, fmt.Sprintf("exam_date || '_' || session = $%d", len(args)+1))
		args = append(args, filter.SessionKey)
	}
	if filter.RegisterNumber != "" {
		conditions = append(conditions, fmt.Sprintf("register_number = $%d", len(args)+1))
		args = append(args, filter.RegisterNumber)
	}
	where := strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM exam_students WHERE %s ORDER BY position ASC LIMIT %d OFFSET %d", studentColumns, where, size, offset)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM exam_students WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// SetPhysicallyChallenged updates every entry of a register number and returns how
// many entries changed.
func (r *StudentRepository) SetPhysicallyChallenged(ctx context.Context, registerNumber string, value bool) (int64, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE exam_students SET is_physically_challenged = $1 WHERE register_number = $2", value, registerNumber)
	if err != nil {
		return 0, fmt.Errorf("update physically challenged: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// DeleteAll clears the batch.
func (r *StudentRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM exam_students"); err != nil {
		return fmt.Errorf("delete students: %w", err)
	}
	return nil
}
