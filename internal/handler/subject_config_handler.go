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

type subjectConfigService interface {
	Effective(ctx context.Context) (*models.SubjectConfigSet, error)
	Add(ctx context.Context, req dto.SubjectConfigRequest, actor string) (*models.SubjectConfig, error)
	Remove(ctx context.Context, code string, kind models.SubjectKind) error
}

// SubjectConfigHandler exposes Priority and Drawing subject configuration.
type SubjectConfigHandler struct {
	service subjectConfigService
}

// NewSubjectConfigHandler builds a SubjectConfigHandler.
func NewSubjectConfigHandler(service subjectConfigService) *SubjectConfigHandler {
	return &SubjectConfigHandler{service: service}
}

// List godoc
// @Summary List effective subject configuration
// @Tags Subject Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /config/subjects [get]
func (h *SubjectConfigHandler) List(c *gin.Context) {
	set, err := h.service.Effective(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, set, nil)
}

// Create godoc
// @Summary Add a custom Priority or Drawing subject code
// @Tags Subject Configuration
// @Accept json
// @Produce json
// @Param payload body dto.SubjectConfigRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /config/subjects [post]
func (h *SubjectConfigHandler) Create(c *gin.Context) {
	var req dto.SubjectConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject configuration payload"))
		return
	}
	req.Kind = models.SubjectKind(strings.ToUpper(strings.TrimSpace(string(req.Kind))))
	actor := ""
	if claims := claimsFromContext(c); claims != nil {
		actor = claims.UserID
	}
	cfg, err := h.service.Add(c.Request.Context(), req, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cfg)
}

// Delete godoc
// @Summary Remove a custom subject code
// @Tags Subject Configuration
// @Param code path string true "Subject code"
// @Param type query string true "PRIORITY or DRAWING"
// @Success 204
// @Router /config/subjects/{code} [delete]
func (h *SubjectConfigHandler) Delete(c *gin.Context) {
	kind := models.SubjectKind(strings.ToUpper(strings.TrimSpace(c.Query("type"))))
	if err := h.service.Remove(c.Request.Context(), c.Param("code"), kind); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
