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

type studentServiceMock struct {
	uploadErr  error
	uploaded   int
	lastFilter models.StudentFilter
	flagReg    string
	flagValue  bool
	resets     int
}

func (m *studentServiceMock) Upload(ctx context.Context, req dto.UploadStudentsRequest) (*dto.UploadStudentsResponse, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.uploaded = len(req.Students)
	return &dto.UploadStudentsResponse{Total: len(req.Students), Sessions: []string{"2024-11-20_FN"}, Subjects: 1}, nil
}

func (m *studentServiceMock) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	m.lastFilter = filter
	return []models.Student{{RegisterNumber: "111111111111"}}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: 1}, nil
}

func (m *studentServiceMock) SetPhysicallyChallenged(ctx context.Context, registerNumber string, req dto.PhysicallyChallengedRequest) (*dto.PhysicallyChallengedResponse, error) {
	m.flagReg = registerNumber
	m.flagValue = *req.IsPhysicallyChallenged
	return &dto.PhysicallyChallengedResponse{RegisterNumber: registerNumber, IsPhysicallyChallenged: m.flagValue, Updated: 2}, nil
}

func (m *studentServiceMock) Reset(ctx context.Context) error {
	m.resets++
	return nil
}

func TestStudentHandlerUpload(t *testing.T) {
	svc := &studentServiceMock{}
	handler := NewStudentHandler(svc)
	body := []byte(`{"students":[{"registerNumber":"111111111111","subjectCode":"CS3451","department":"CSE","examDate":"2024-11-20","session":"FN"}]}`)
	c, w := newJSONContext(http.MethodPost, "/students", body)

	handler.Upload(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, svc.uploaded)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestStudentHandlerUploadValidationDetails(t *testing.T) {
	problems := []string{"row 1: registerNumber must be 12 digits"}
	svc := &studentServiceMock{uploadErr: appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid student batch"), problems)}
	handler := NewStudentHandler(svc)
	c, w := newJSONContext(http.MethodPost, "/students", []byte(`{"students":[{"registerNumber":"1"}]}`))

	handler.Upload(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "registerNumber must be 12 digits")
}

func TestStudentHandlerListParsesQuery(t *testing.T) {
	svc := &studentServiceMock{}
	handler := NewStudentHandler(svc)
	c, w := newJSONContext(http.MethodGet, "/students?session=2024-11-20_FN&registerNumber=111111111111&page=2&limit=50", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-11-20_FN", svc.lastFilter.SessionKey)
	assert.Equal(t, "111111111111", svc.lastFilter.RegisterNumber)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 50, svc.lastFilter.PageSize)
	assert.Contains(t, w.Body.String(), `"pagination"`)
}

func TestStudentHandlerSetPhysicallyChallenged(t *testing.T) {
	svc := &studentServiceMock{}
	handler := NewStudentHandler(svc)
	c, w := newJSONContext(http.MethodPut, "/students/111111111111/physically-challenged", []byte(`{"isPhysicallyChallenged":true}`))
	c.Params = gin.Params{{Key: "registerNumber", Value: "111111111111"}}

	handler.SetPhysicallyChallenged(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "111111111111", svc.flagReg)
	assert.True(t, svc.flagValue)
}

func TestStudentHandlerReset(t *testing.T) {
	svc := &studentServiceMock{}
	handler := NewStudentHandler(svc)
	c, w := newJSONContext(http.MethodDelete, "/reset", nil)

	handler.Reset(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, svc.resets)
}
