package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/middleware"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

type seatingService interface {
	Generate(ctx context.Context, req dto.GenerateSeatingRequest) (*models.GenerateResponse, error)
	Get(ctx context.Context, session string) (*models.SeatingResult, error)
	Sessions(ctx context.Context) *dto.SessionsResponse
	Search(ctx context.Context, req dto.SearchStudentRequest) ([]models.SearchHit, bool, error)
}

// SeatingHandler exposes seating generation and lookup endpoints.
type SeatingHandler struct {
	service seatingService
}

// NewSeatingHandler builds a SeatingHandler.
func NewSeatingHandler(service seatingService) *SeatingHandler {
	return &SeatingHandler{service: service}
}

// Generate godoc
// @Summary Generate seating for every exam session
// @Description Seats the stored student batch, or the inline batch when provided, and publishes the result.
// @Tags Seating
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.GenerateSeatingRequest false "Optional inline batch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /generate [post]
func (h *SeatingHandler) Generate(c *gin.Context) {
	var req dto.GenerateSeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get the seating of one session
// @Tags Seating
// @Produce json
// @Param session path string true "Session key, e.g. 2024-11-20_FN"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /seating/{session} [get]
func (h *SeatingHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("session"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Sessions godoc
// @Summary List published sessions
// @Tags Seating
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sessions [get]
func (h *SeatingHandler) Sessions(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Sessions(c.Request.Context()), nil)
}

// Search godoc
// @Summary Find a student's seats across published sessions
// @Tags Seating
// @Accept json
// @Produce json
// @Param payload body dto.SearchStudentRequest true "Register number"
// @Success 200 {object} response.Envelope
// @Router /search [post]
func (h *SeatingHandler) Search(c *gin.Context) {
	var req dto.SearchStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search payload"))
		return
	}
	hits, cacheHit, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, hits, nil, middleware.ExtractMeta(c))
}
