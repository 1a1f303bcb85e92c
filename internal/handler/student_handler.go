package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

type studentService interface {
	Upload(ctx context.Context, req dto.UploadStudentsRequest) (*dto.UploadStudentsResponse, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error)
	SetPhysicallyChallenged(ctx context.Context, registerNumber string, req dto.PhysicallyChallengedRequest) (*dto.PhysicallyChallengedResponse, error)
	Reset(ctx context.Context) error
}

// StudentHandler exposes the examination batch endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler builds a StudentHandler.
func NewStudentHandler(service studentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// Upload godoc
// @Summary Replace the student batch
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.UploadStudentsRequest true "Student batch"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Upload(c *gin.Context) {
	var req dto.UploadStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student batch"))
		return
	}
	summary, err := h.service.Upload(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, summary)
}

// List godoc
// @Summary List the stored student batch
// @Tags Students
// @Produce json
// @Param session query string false "Session key"
// @Param registerNumber query string false "Register number"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		SessionKey:     strings.TrimSpace(c.Query("session")),
		RegisterNumber: strings.TrimSpace(c.Query("registerNumber")),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.PageSize = size
	}
	students, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// SetPhysicallyChallenged godoc
// @Summary Toggle accessibility seating for a register number
// @Tags Students
// @Accept json
// @Produce json
// @Param registerNumber path string true "Register number"
// @Param payload body dto.PhysicallyChallengedRequest true "Flag payload"
// @Success 200 {object} response.Envelope
// @Router /students/{registerNumber}/physically-challenged [put]
func (h *StudentHandler) SetPhysicallyChallenged(c *gin.Context) {
	var req dto.PhysicallyChallengedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid physically challenged payload"))
		return
	}
	result, err := h.service.SetPhysicallyChallenged(c.Request.Context(), c.Param("registerNumber"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Reset godoc
// @Summary Remove the student batch and the published seating
// @Tags Students
// @Success 204
// @Router /reset [delete]
func (h *StudentHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
