package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type exportServiceMock struct {
	lastReq dto.ExportRequest
	err     error
}

func (m *exportServiceMock) HallWise(ctx context.Context, req dto.ExportRequest) (*dto.ExportFile, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ExportFile{Filename: "Hall Sketch 2024-11-20 FN.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.3")}, nil
}

func (m *exportServiceMock) StudentWise(ctx context.Context, req dto.ExportRequest) (*dto.ExportFile, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ExportFile{Filename: "Student Allocation 2024-11-20 FN.csv", ContentType: "text/csv", Content: []byte("S.No,Register Number\n")}, nil
}

func TestDownloadHandlerHallWise(t *testing.T) {
	svc := &exportServiceMock{}
	handler := NewDownloadHandler(svc)
	c, w := newJSONContext(http.MethodGet, "/download/hall-wise?session=2024-11-20_FN&format=pdf", nil)

	handler.HallWise(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-11-20_FN", svc.lastReq.Session)
	assert.Equal(t, dto.ExportFormatPDF, svc.lastReq.Format)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Hall Sketch 2024-11-20 FN.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", w.Body.String())
}

func TestDownloadHandlerStudentWiseWithoutSession(t *testing.T) {
	svc := &exportServiceMock{}
	handler := NewDownloadHandler(svc)
	c, w := newJSONContext(http.MethodGet, "/download/student-wise?format=csv", nil)

	handler.StudentWise(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.lastReq.Session)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
}

func TestDownloadHandlerPropagatesErrors(t *testing.T) {
	handler := NewDownloadHandler(&exportServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "no seating has been generated")})
	c, w := newJSONContext(http.MethodGet, "/download/hall-wise", nil)

	handler.HallWise(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}
