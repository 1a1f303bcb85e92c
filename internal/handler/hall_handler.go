package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

type hallService interface {
	List(ctx context.Context, filter models.HallFilter) ([]models.Hall, error)
	Create(ctx context.Context, req dto.HallRequest) (*models.Hall, error)
	Update(ctx context.Context, id string, req dto.HallRequest) (*models.Hall, error)
	Delete(ctx context.Context, id string) error
	InitializeDefaults(ctx context.Context) ([]models.Hall, error)
	UpdateOrder(ctx context.Context, req dto.HallOrderRequest) ([]models.Hall, error)
	ListBlocks(ctx context.Context) ([]models.Block, error)
}

// HallHandler exposes hall and block configuration endpoints.
type HallHandler struct {
	service hallService
}

// NewHallHandler builds a HallHandler.
func NewHallHandler(service hallService) *HallHandler {
	return &HallHandler{service: service}
}

// List godoc
// @Summary List halls in fill order
// @Tags Halls
// @Produce json
// @Param block query string false "Block name"
// @Success 200 {object} response.Envelope
// @Router /halls [get]
func (h *HallHandler) List(c *gin.Context) {
	halls, err := h.service.List(c.Request.Context(), models.HallFilter{Block: strings.TrimSpace(c.Query("block"))})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, halls, nil)
}

// Create godoc
// @Summary Create hall
// @Tags Halls
// @Accept json
// @Produce json
// @Param payload body dto.HallRequest true "Hall payload"
// @Success 201 {object} response.Envelope
// @Router /halls [post]
func (h *HallHandler) Create(c *gin.Context) {
	var req dto.HallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hall payload"))
		return
	}
	hall, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, hall)
}

// Update godoc
// @Summary Update hall
// @Tags Halls
// @Accept json
// @Produce json
// @Param id path string true "Hall ID"
// @Param payload body dto.HallRequest true "Hall payload"
// @Success 200 {object} response.Envelope
// @Router /halls/{id} [put]
func (h *HallHandler) Update(c *gin.Context) {
	var req dto.HallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hall payload"))
		return
	}
	hall, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hall, nil)
}

// Delete godoc
// @Summary Delete hall
// @Tags Halls
// @Param id path string true "Hall ID"
// @Success 204
// @Router /halls/{id} [delete]
func (h *HallHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Initialize godoc
// @Summary Reset halls to the campus default table
// @Tags Halls
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /halls/initialize [post]
func (h *HallHandler) Initialize(c *gin.Context) {
	halls, err := h.service.InitializeDefaults(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, halls, nil)
}

// UpdateOrder godoc
// @Summary Store block and hall fill priorities
// @Tags Halls
// @Accept json
// @Produce json
// @Param payload body dto.HallOrderRequest true "Ordering payload"
// @Success 200 {object} response.Envelope
// @Router /halls/order [put]
func (h *HallHandler) UpdateOrder(c *gin.Context) {
	var req dto.HallOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hall order payload"))
		return
	}
	halls, err := h.service.UpdateOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, halls, nil)
}

// ListBlocks godoc
// @Summary List blocks in fill order
// @Tags Halls
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blocks [get]
func (h *HallHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.service.ListBlocks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, nil)
}
