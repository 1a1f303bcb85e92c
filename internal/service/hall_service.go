package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/allocator"
	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/repository"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type hallRepository interface {
	List(ctx context.Context, filter models.HallFilter) ([]models.Hall, error)
	FindByID(ctx context.Context, id string) (*models.Hall, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, hall *models.Hall) error
	Update(ctx context.Context, hall *models.Hall) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, halls []models.Hall, blocks []models.Block) error
	UpdatePriorities(ctx context.Context, blocks []models.Block, halls []repository.HallPriority) error
}

type blockRepository interface {
	List(ctx context.Context) ([]models.Block, error)
	Upsert(ctx context.Context, block *models.Block) error
}

// HallService manages hall and block configuration.
type HallService struct {
	halls       hallRepository
	blocks      blockRepository
	designation allocator.HallDesignation
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewHallService constructs a HallService.
func NewHallService(halls hallRepository, blocks blockRepository, designation allocator.HallDesignation, validate *validator.Validate, logger *zap.Logger) *HallService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HallService{halls: halls, blocks: blocks, designation: designation, validator: validate, logger: logger}
}

// List returns configured halls in fill order.
func (s *HallService) List(ctx context.Context, filter models.HallFilter) ([]models.Hall, error) {
	halls, blocks, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Block != "" {
		filtered := halls[:0]
		for _, hall := range halls {
			if hall.Block == filter.Block {
				filtered = append(filtered, hall)
			}
		}
		halls = filtered
	}
	return allocator.ResolveHalls(halls, blocks, s.designation).Order, nil
}

// Get returns a hall by id.
func (s *HallService) Get(ctx context.Context, id string) (*models.Hall, error) {
	hall, err := s.halls.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "hall not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hall")
	}
	return hall, nil
}

// Create registers a hall, creating its block when unknown.
func (s *HallService) Create(ctx context.Context, req dto.HallRequest) (*models.Hall, error) {
	hall, err := s.buildHall(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, hall.Name, ""); err != nil {
		return nil, err
	}
	if err := s.ensureBlock(ctx, hall.Block); err != nil {
		return nil, err
	}
	if err := s.halls.Create(ctx, hall); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create hall")
	}
	s.logger.Info("hall created", zap.String("hall", hall.Name), zap.String("block", hall.Block))
	return hall, nil
}

// Update replaces a hall's layout and flags.
func (s *HallService) Update(ctx context.Context, id string, req dto.HallRequest) (*models.Hall, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	hall, err := s.buildHall(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, hall.Name, id); err != nil {
		return nil, err
	}
	if err := s.ensureBlock(ctx, hall.Block); err != nil {
		return nil, err
	}
	hall.ID = existing.ID
	hall.CreatedAt = existing.CreatedAt
	if err := s.halls.Update(ctx, hall); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "hall not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update hall")
	}
	return hall, nil
}

// Delete removes a hall.
func (s *HallService) Delete(ctx context.Context, id string) error {
	if err := s.halls.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "hall not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete hall")
	}
	s.logger.Info("hall deleted", zap.String("hall_id", id))
	return nil
}

// InitializeDefaults replaces every hall and block with the campus default table.
func (s *HallService) InitializeDefaults(ctx context.Context) ([]models.Hall, error) {
	halls, blocks := defaultHallLayout(s.designation)
	if err := s.halls.ReplaceAll(ctx, halls, blocks); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to initialize halls")
	}
	s.logger.Info("default halls initialized", zap.Int("halls", len(halls)), zap.Int("blocks", len(blocks)))
	return allocator.ResolveHalls(halls, blocks, s.designation).Order, nil
}

// UpdateOrder stores block priorities and the priorities of the halls listed under each block.
func (s *HallService) UpdateOrder(ctx context.Context, req dto.HallOrderRequest) ([]models.Hall, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hall order payload")
	}
	current, err := s.halls.List(ctx, models.HallFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list halls")
	}
	byID := make(map[string]models.Hall, len(current))
	for _, hall := range current {
		byID[hall.ID] = hall
	}

	blocks := make([]models.Block, 0, len(req.Blocks))
	var priorities []repository.HallPriority
	seenBlocks := make(map[string]struct{}, len(req.Blocks))
	for _, entry := range req.Blocks {
		name := strings.TrimSpace(entry.Name)
		if _, dup := seenBlocks[name]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, "block "+name+" listed twice")
		}
		seenBlocks[name] = struct{}{}
		blocks = append(blocks, models.Block{Name: name, Priority: entry.Priority})
		for _, item := range entry.Halls {
			hall, ok := byID[item.ID]
			if !ok {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "hall "+item.ID+" not found")
			}
			if hall.Block != name {
				return nil, appErrors.Clone(appErrors.ErrValidation, "hall "+hall.Name+" does not belong to block "+name)
			}
			priorities = append(priorities, repository.HallPriority{ID: item.ID, Priority: item.Priority})
		}
	}

	if err := s.halls.UpdatePriorities(ctx, blocks, priorities); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update hall order")
	}
	return s.List(ctx, models.HallFilter{})
}

// ListBlocks returns blocks in fill order.
func (s *HallService) ListBlocks(ctx context.Context) ([]models.Block, error) {
	blocks, err := s.blocks.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list blocks")
	}
	if blocks == nil {
		blocks = []models.Block{}
	}
	return blocks, nil
}

// Snapshot reads the hall and block configuration used by a generation run.
func (s *HallService) Snapshot(ctx context.Context) ([]models.Hall, []models.Block, error) {
	halls, err := s.halls.List(ctx, models.HallFilter{})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list halls")
	}
	blocks, err := s.ListBlocks(ctx)
	if err != nil {
		return nil, nil, err
	}
	return halls, blocks, nil
}

// Designation returns the hall naming convention used when no hall carries explicit flags.
func (s *HallService) Designation() allocator.HallDesignation {
	return s.designation
}

func (s *HallService) buildHall(req dto.HallRequest) (*models.Hall, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hall payload")
	}
	name := strings.TrimSpace(req.Name)
	block := strings.TrimSpace(req.Block)
	if name == "" || block == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name and block are required")
	}
	cells := req.Rows * req.Columns
	capacity := cells
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity > cells {
		return nil, appErrors.Clone(appErrors.ErrValidation, "capacity cannot exceed rows x columns")
	}
	return &models.Hall{
		Name:          name,
		Block:         block,
		Rows:          req.Rows,
		Columns:       req.Columns,
		Capacity:      capacity,
		Priority:      req.Priority,
		IsDrawing:     req.IsDrawing,
		IsGroundFloor: req.IsGroundFloor,
	}, nil
}

func (s *HallService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	exists, err := s.halls.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate hall name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "hall name already exists")
	}
	return nil
}

// ensureBlock appends an unknown block after the existing ones.
func (s *HallService) ensureBlock(ctx context.Context, name string) error {
	blocks, err := s.ListBlocks(ctx)
	if err != nil {
		return err
	}
	last := 0
	for _, block := range blocks {
		if block.Name == name {
			return nil
		}
		if block.Priority > last {
			last = block.Priority
		}
	}
	if err := s.blocks.Upsert(ctx, &models.Block{Name: name, Priority: last + 1}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create block")
	}
	return nil
}
