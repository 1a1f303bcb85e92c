package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type hallServiceMock struct {
	halls      []models.Hall
	lastFilter models.HallFilter
	lastOrder  *dto.HallOrderRequest
	deleteErr  error
	orderErr   error
}

func (m *hallServiceMock) List(ctx context.Context, filter models.HallFilter) ([]models.Hall, error) {
	m.lastFilter = filter
	return m.halls, nil
}

func (m *hallServiceMock) Create(ctx context.Context, req dto.HallRequest) (*models.Hall, error) {
	return &models.Hall{ID: "hall-1", Name: req.Name, Block: req.Block, Rows: req.Rows, Columns: req.Columns}, nil
}

func (m *hallServiceMock) Update(ctx context.Context, id string, req dto.HallRequest) (*models.Hall, error) {
	return &models.Hall{ID: id, Name: req.Name, Block: req.Block, Rows: req.Rows, Columns: req.Columns}, nil
}

func (m *hallServiceMock) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func (m *hallServiceMock) InitializeDefaults(ctx context.Context) ([]models.Hall, error) {
	return m.halls, nil
}

func (m *hallServiceMock) UpdateOrder(ctx context.Context, req dto.HallOrderRequest) ([]models.Hall, error) {
	m.lastOrder = &req
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	return m.halls, nil
}

func (m *hallServiceMock) ListBlocks(ctx context.Context) ([]models.Block, error) {
	return []models.Block{{Name: "I Block", Priority: 1}}, nil
}

func TestHallHandlerListPassesBlockFilter(t *testing.T) {
	svc := &hallServiceMock{halls: []models.Hall{{ID: "h1", Name: "I1", Block: "I Block"}}}
	handler := NewHallHandler(svc)
	c, w := newJSONContext(http.MethodGet, "/halls?block=I%20Block", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "I Block", svc.lastFilter.Block)
	assert.Contains(t, w.Body.String(), `"name":"I1"`)
}

func TestHallHandlerCreate(t *testing.T) {
	handler := NewHallHandler(&hallServiceMock{})
	c, w := newJSONContext(http.MethodPost, "/halls", []byte(`{"name":"K1","block":"K Block","rows":5,"columns":6}`))

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"K1"`)
}

func TestHallHandlerCreateInvalidBody(t *testing.T) {
	handler := NewHallHandler(&hallServiceMock{})
	c, w := newJSONContext(http.MethodPost, "/halls", []byte(`{"rows":"five"}`))

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHallHandlerUpdateUsesPathID(t *testing.T) {
	handler := NewHallHandler(&hallServiceMock{})
	c, w := newJSONContext(http.MethodPut, "/halls/hall-9", []byte(`{"name":"K1","block":"K Block","rows":5,"columns":6}`))
	c.Params = gin.Params{{Key: "id", Value: "hall-9"}}

	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"hall-9"`)
}

func TestHallHandlerDelete(t *testing.T) {
	handler := NewHallHandler(&hallServiceMock{})
	c, w := newJSONContext(http.MethodDelete, "/halls/hall-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "hall-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)

	missing := NewHallHandler(&hallServiceMock{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "hall not found")})
	c, w = newJSONContext(http.MethodDelete, "/halls/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	missing.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHallHandlerUpdateOrder(t *testing.T) {
	svc := &hallServiceMock{}
	handler := NewHallHandler(svc)
	body := []byte(`{"blocks":[{"name":"K Block","priority":1,"halls":[{"id":"h1","priority":2}]}]}`)
	c, w := newJSONContext(http.MethodPut, "/halls/order", body)

	handler.UpdateOrder(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastOrder)
	require.Len(t, svc.lastOrder.Blocks, 1)
	assert.Equal(t, "K Block", svc.lastOrder.Blocks[0].Name)
	require.Len(t, svc.lastOrder.Blocks[0].Halls, 1)
	assert.Equal(t, 2, svc.lastOrder.Blocks[0].Halls[0].Priority)
}

func TestHallHandlerUpdateOrderValidationError(t *testing.T) {
	handler := NewHallHandler(&hallServiceMock{orderErr: appErrors.Clone(appErrors.ErrValidation, "duplicate block")})
	c, w := newJSONContext(http.MethodPut, "/halls/order", []byte(`{"blocks":[]}`))

	handler.UpdateOrder(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHallHandlerInitializeAndBlocks(t *testing.T) {
	handler := NewHallHandler(&hallServiceMock{halls: []models.Hall{{Name: "I1"}}})

	c, w := newJSONContext(http.MethodPost, "/halls/initialize", nil)
	handler.Initialize(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newJSONContext(http.MethodGet, "/blocks", nil)
	handler.ListBlocks(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "I Block")
}
