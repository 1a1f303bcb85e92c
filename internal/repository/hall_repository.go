package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

const hallColumns = `id, name, block, row_count, column_count, capacity, priority, is_drawing, is_ground_floor, created_at, updated_at`

const insertHallQuery = `INSERT INTO halls (id, name, block, row_count, column_count, capacity, priority, is_drawing, is_ground_floor, created_at, updated_at)
VALUES (:id, :name, :block, :row_count, :column_count, :capacity, :priority, :is_drawing, :is_ground_floor, :created_at, :updated_at)`

// HallPriority assigns a fill priority to one hall.
type HallPriority struct {
	ID       string `db:"id"`
	Priority int    `db:"priority"`
}

// HallRepository persists examination halls.
type HallRepository struct {
	db *sqlx.DB
}

// NewHallRepository constructs a HallRepository.
func NewHallRepository(db *sqlx.DB) *HallRepository {
	return &HallRepository{db: db}
}

// List returns halls ordered by block, priority and name.
func (r *HallRepository) List(ctx context.Context, filter models.HallFilter) ([]models.Hall, error) {
	query := "SELECT " + hallColumns + " FROM halls"
	args := []interface{}{}
	if filter.Block != "" {
		query += " WHERE block = $1"
		args = append(args, filter.Block)
	}
	query += " ORDER BY block ASC, priority ASC, name ASC"

	var halls []models.Hall
	if err := r.db.SelectContext(ctx, &halls, query, args...); err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}
	return halls, nil
}

// FindByID fetches one hall.
func (r *HallRepository) FindByID(ctx context.Context, id string) (*models.Hall, error) {
	var hall models.Hall
	if err := r.db.GetContext(ctx, &hall, "SELECT "+hallColumns+" FROM halls WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &hall, nil
}

// ExistsByName checks for a hall with the given name, optionally excluding one ID.
func (r *HallRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	query := "SELECT 1 FROM halls WHERE UPPER(name) = UPPER($1)"
	args := []interface{}{name}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check hall name: %w", err)
	}
	return true, nil
}

// Create inserts a hall.
func (r *HallRepository) Create(ctx context.Context, hall *models.Hall) error {
	stampHall(hall)
	if _, err := r.db.NamedExecContext(ctx, insertHallQuery, hall); err != nil {
		return fmt.Errorf("create hall: %w", err)
	}
	return nil
}

// Update modifies an existing hall.
func (r *HallRepository) Update(ctx context.Context, hall *models.Hall) error {
	hall.UpdatedAt = time.Now().UTC()
	const query = `UPDATE halls SET name = :name, block = :block, row_count = :row_count, column_count = :column_count,
capacity = :capacity, priority = :priority, is_drawing = :is_drawing, is_ground_floor = :is_ground_floor, updated_at = :updated_at
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, hall)
	if err != nil {
		return fmt.Errorf("update hall: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a hall.
func (r *HallRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM halls WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete hall: %w", err)
	}
	return requireAffected(res)
}

// ReplaceAll swaps the whole hall and block configuration in one transaction.
func (r *HallRepository) ReplaceAll(ctx context.Context, halls []models.Hall, blocks []models.Block) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace halls tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM halls"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear halls: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM hall_blocks"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear hall blocks: %w", err)
	}
	for i := range blocks {
		blocks[i].UpdatedAt = time.Now().UTC()
		if _, err := tx.NamedExecContext(ctx, upsertBlockQuery, blocks[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert hall block: %w", err)
		}
	}
	for i := range halls {
		stampHall(&halls[i])
		if _, err := tx.NamedExecContext(ctx, insertHallQuery, halls[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert hall %s: %w", halls[i].Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace halls tx: %w", err)
	}
	return nil
}

// UpdatePriorities stores block and hall fill priorities in one transaction.
func (r *HallRepository) UpdatePriorities(ctx context.Context, blocks []models.Block, halls []HallPriority) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin hall order tx: %w", err)
	}
	now := time.Now().UTC()
	for i := range blocks {
		blocks[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, upsertBlockQuery, blocks[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("update block priority: %w", err)
		}
	}
	for _, hall := range halls {
		if _, err := tx.ExecContext(ctx, tx.Rebind("UPDATE halls SET priority = ?, updated_at = ? WHERE id = ?"), hall.Priority, now, hall.ID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("update hall priority: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit hall order tx: %w", err)
	}
	return nil
}

func stampHall(hall *models.Hall) {
	if hall.ID == "" {
		hall.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if hall.CreatedAt.IsZero() {
		hall.CreatedAt = now
	}
	hall.UpdatedAt = now
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
