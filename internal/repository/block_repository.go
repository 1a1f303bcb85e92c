package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

const upsertBlockQuery = `INSERT INTO hall_blocks (name, priority, updated_at) VALUES (:name, :priority, :updated_at)
ON CONFLICT (name) DO UPDATE SET priority = EXCLUDED.priority, updated_at = EXCLUDED.updated_at`

// BlockRepository persists hall blocks and their fill priority.
type BlockRepository struct {
	db *sqlx.DB
}

// NewBlockRepository constructs a BlockRepository.
func NewBlockRepository(db *sqlx.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// List returns blocks in fill order.
func (r *BlockRepository) List(ctx context.Context) ([]models.Block, error) {
	var blocks []models.Block
	if err := r.db.SelectContext(ctx, &blocks, "SELECT name, priority, updated_at FROM hall_blocks ORDER BY priority ASC, name ASC"); err != nil {
		return nil, fmt.Errorf("list hall blocks: %w", err)
	}
	return blocks, nil
}

// Upsert creates a block or updates its priority.
func (r *BlockRepository) Upsert(ctx context.Context, block *models.Block) error {
	block.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, upsertBlockQuery, block); err != nil {
		return fmt.Errorf("upsert hall block: %w", err)
	}
	return nil
}
