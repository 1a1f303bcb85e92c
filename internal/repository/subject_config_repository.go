package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// SubjectConfigRepository persists custom Priority and Drawing subject codes.
// Built-in codes are not stored.
type SubjectConfigRepository struct {
	db *sqlx.DB
}

// NewSubjectConfigRepository constructs the repository.
func NewSubjectConfigRepository(db *sqlx.DB) *SubjectConfigRepository {
	return &SubjectConfigRepository{db: db}
}

// List returns every custom subject code.
func (r *SubjectConfigRepository) List(ctx context.Context) ([]models.SubjectConfig, error) {
	const query = `SELECT subject_code, kind, created_by, created_at FROM subject_configs ORDER BY kind ASC, subject_code ASC`
	var configs []models.SubjectConfig
	if err := r.db.SelectContext(ctx, &configs, query); err != nil {
		return nil, fmt.Errorf("list subject configs: %w", err)
	}
	return configs, nil
}

// FindByCode returns the stored entries for a subject code.
func (r *SubjectConfigRepository) FindByCode(ctx context.Context, code string) ([]models.SubjectConfig, error) {
	const query = `SELECT subject_code, kind, created_by, created_at FROM subject_configs WHERE subject_code = $1`
	var configs []models.SubjectConfig
	if err := r.db.SelectContext(ctx, &configs, query, code); err != nil {
		return nil, fmt.Errorf("find subject config: %w", err)
	}
	return configs, nil
}

// Create stores a subject code. The table's unique subject_code constraint keeps a
// code in at most one kind.
func (r *SubjectConfigRepository) Create(ctx context.Context, cfg *models.SubjectConfig) error {
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO subject_configs (subject_code, kind, created_by, created_at)
VALUES (:subject_code, :kind, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cfg); err != nil {
		return fmt.Errorf("create subject config: %w", err)
	}
	return nil
}

// Delete removes a subject code of the given kind.
func (r *SubjectConfigRepository) Delete(ctx context.Context, code string, kind models.SubjectKind) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM subject_configs WHERE subject_code = $1 AND kind = $2", code, kind)
	if err != nil {
		return fmt.Errorf("delete subject config: %w", err)
	}
	return requireAffected(res)
}
