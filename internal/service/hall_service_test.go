package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/allocator"
	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/repository"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type hallRepoStub struct {
	items      []models.Hall
	blocks     []models.Block
	priorities []repository.HallPriority
	seq        int
}

func (s *hallRepoStub) List(ctx context.Context, filter models.HallFilter) ([]models.Hall, error) {
	return append([]models.Hall(nil), s.items...), nil
}

func (s *hallRepoStub) FindByID(ctx context.Context, id string) (*models.Hall, error) {
	for _, hall := range s.items {
		if hall.ID == id {
			cp := hall
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *hallRepoStub) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	for _, hall := range s.items {
		if hall.Name == name && hall.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *hallRepoStub) Create(ctx context.Context, hall *models.Hall) error {
	s.seq++
	hall.ID = fmt.Sprintf("hall-%d", s.seq)
	s.items = append(s.items, *hall)
	return nil
}

func (s *hallRepoStub) Update(ctx context.Context, hall *models.Hall) error {
	for i := range s.items {
		if s.items[i].ID == hall.ID {
			s.items[i] = *hall
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *hallRepoStub) Delete(ctx context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *hallRepoStub) ReplaceAll(ctx context.Context, halls []models.Hall, blocks []models.Block) error {
	s.items = append([]models.Hall(nil), halls...)
	s.blocks = append([]models.Block(nil), blocks...)
	return nil
}

func (s *hallRepoStub) UpdatePriorities(ctx context.Context, blocks []models.Block, halls []repository.HallPriority) error {
	s.priorities = halls
	for _, block := range blocks {
		_ = (&blockRepoStub{parent: s}).Upsert(ctx, &block)
	}
	for _, p := range halls {
		for i := range s.items {
			if s.items[i].ID == p.ID {
				s.items[i].Priority = p.Priority
			}
		}
	}
	return nil
}

type blockRepoStub struct {
	parent *hallRepoStub
}

func (b *blockRepoStub) List(ctx context.Context) ([]models.Block, error) {
	return append([]models.Block(nil), b.parent.blocks...), nil
}

func (b *blockRepoStub) Upsert(ctx context.Context, block *models.Block) error {
	for i := range b.parent.blocks {
		if b.parent.blocks[i].Name == block.Name {
			b.parent.blocks[i].Priority = block.Priority
			return nil
		}
	}
	b.parent.blocks = append(b.parent.blocks, *block)
	return nil
}

func newHallServiceForTest() (*HallService, *hallRepoStub) {
	repo := &hallRepoStub{}
	svc := NewHallService(repo, &blockRepoStub{parent: repo}, allocator.DefaultHallDesignation(), validator.New(), zap.NewNop())
	return svc, repo
}

func intPtr(v int) *int {
	return &v
}

func TestHallServiceCreateDefaultsCapacityAndCreatesBlock(t *testing.T) {
	svc, repo := newHallServiceForTest()
	repo.blocks = []models.Block{{Name: "Civil Block", Priority: 3}}

	hall, err := svc.Create(context.Background(), dto.HallRequest{Name: " T1 ", Block: "Mech Block", Rows: 4, Columns: 5})
	require.NoError(t, err)
	assert.Equal(t, "T1", hall.Name)
	assert.Equal(t, 20, hall.Capacity)
	require.Len(t, repo.blocks, 2)
	assert.Equal(t, models.Block{Name: "Mech Block", Priority: 4}, repo.blocks[1])
}

func TestHallServiceCreateRejectsCapacityAboveGrid(t *testing.T) {
	svc, _ := newHallServiceForTest()

	_, err := svc.Create(context.Background(), dto.HallRequest{Name: "AUD1", Block: "Auditorium", Rows: 9, Columns: 3, Capacity: intPtr(28)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestHallServiceCreateRejectsDuplicateName(t *testing.T) {
	svc, repo := newHallServiceForTest()
	repo.items = []models.Hall{{ID: "h1", Name: "T1", Block: "Civil Block", Rows: 5, Columns: 5, Capacity: 25}}

	_, err := svc.Create(context.Background(), dto.HallRequest{Name: "T1", Block: "Civil Block", Rows: 5, Columns: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestHallServiceUpdateAndDelete(t *testing.T) {
	svc, repo := newHallServiceForTest()
	repo.blocks = []models.Block{{Name: "Civil Block", Priority: 1}}
	repo.items = []models.Hall{{ID: "h1", Name: "T1", Block: "Civil Block", Rows: 5, Columns: 5, Capacity: 25}}

	hall, err := svc.Update(context.Background(), "h1", dto.HallRequest{Name: "T1", Block: "Civil Block", Rows: 5, Columns: 5, Capacity: intPtr(20), IsDrawing: true})
	require.NoError(t, err)
	assert.Equal(t, "h1", hall.ID)
	assert.Equal(t, 20, repo.items[0].Capacity)
	assert.True(t, repo.items[0].IsDrawing)

	_, err = svc.Update(context.Background(), "missing", dto.HallRequest{Name: "X", Block: "Civil Block", Rows: 1, Columns: 1})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), "h1"))
	err = svc.Delete(context.Background(), "h1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestHallServiceInitializeDefaults(t *testing.T) {
	svc, repo := newHallServiceForTest()

	halls, err := svc.InitializeDefaults(context.Background())
	require.NoError(t, err)
	require.Len(t, halls, len(defaultHallTable))
	assert.Len(t, repo.blocks, len(defaultBlocks))
	assert.Equal(t, "I1", halls[0].Name)
	assert.True(t, halls[0].IsGroundFloor)
	assert.Equal(t, "AUD4", halls[len(halls)-1].Name)

	for _, hall := range halls {
		if hall.Block == "Auditorium" {
			assert.Equal(t, 25, hall.Capacity)
			assert.True(t, hall.IsDrawing)
			continue
		}
		assert.Equal(t, 25, hall.Capacity)
	}
}

func TestHallServiceUpdateOrder(t *testing.T) {
	svc, repo := newHallServiceForTest()
	repo.blocks = []models.Block{{Name: "A", Priority: 1}, {Name: "B", Priority: 2}}
	repo.items = []models.Hall{
		{ID: "a1", Name: "A1", Block: "A", Rows: 1, Columns: 1, Capacity: 1, Priority: 1},
		{ID: "b1", Name: "B1", Block: "B", Rows: 1, Columns: 1, Capacity: 1, Priority: 1},
		{ID: "b2", Name: "B2", Block: "B", Rows: 1, Columns: 1, Capacity: 1, Priority: 2},
	}

	halls, err := svc.UpdateOrder(context.Background(), dto.HallOrderRequest{Blocks: []dto.BlockOrder{
		{Name: "B", Priority: 1, Halls: []dto.HallOrder{{ID: "b2", Priority: 1}, {ID: "b1", Priority: 2}}},
		{Name: "A", Priority: 2},
	}})
	require.NoError(t, err)
	names := make([]string, len(halls))
	for i, hall := range halls {
		names[i] = hall.Name
	}
	assert.Equal(t, []string{"B2", "B1", "A1"}, names)
	assert.Len(t, repo.priorities, 2)
}

func TestHallServiceUpdateOrderRejectsForeignHall(t *testing.T) {
	svc, repo := newHallServiceForTest()
	repo.items = []models.Hall{{ID: "a1", Name: "A1", Block: "A", Rows: 1, Columns: 1, Capacity: 1}}

	_, err := svc.UpdateOrder(context.Background(), dto.HallOrderRequest{Blocks: []dto.BlockOrder{
		{Name: "B", Priority: 1, Halls: []dto.HallOrder{{ID: "a1", Priority: 1}}},
	}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateOrder(context.Background(), dto.HallOrderRequest{Blocks: []dto.BlockOrder{
		{Name: "A", Priority: 1, Halls: []dto.HallOrder{{ID: "zz", Priority: 1}}},
	}})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
