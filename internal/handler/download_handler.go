package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

type exportService interface {
	HallWise(ctx context.Context, req dto.ExportRequest) (*dto.ExportFile, error)
	StudentWise(ctx context.Context, req dto.ExportRequest) (*dto.ExportFile, error)
}

// DownloadHandler streams seating documents.
type DownloadHandler struct {
	service exportService
}

// NewDownloadHandler builds a DownloadHandler.
func NewDownloadHandler(service exportService) *DownloadHandler {
	return &DownloadHandler{service: service}
}

// HallWise godoc
// @Summary Download the hall sketch of a session
// @Tags Downloads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param session query string false "Session key; optional when a single session is published"
// @Param format query string false "xlsx (default) or pdf"
// @Success 200 {file} file
// @Router /download/hall-wise [get]
func (h *DownloadHandler) HallWise(c *gin.Context) {
	h.serve(c, h.service.HallWise)
}

// StudentWise godoc
// @Summary Download the student-wise allocation of a session
// @Tags Downloads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param session query string false "Session key; optional when a single session is published"
// @Param format query string false "xlsx (default), csv or pdf"
// @Success 200 {file} file
// @Router /download/student-wise [get]
func (h *DownloadHandler) StudentWise(c *gin.Context) {
	h.serve(c, h.service.StudentWise)
}

func (h *DownloadHandler) serve(c *gin.Context, render func(context.Context, dto.ExportRequest) (*dto.ExportFile, error)) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid download query"))
		return
	}
	file, err := render(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
