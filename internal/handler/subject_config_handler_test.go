package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/middleware"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type subjectConfigServiceMock struct {
	lastReq   dto.SubjectConfigRequest
	lastActor string
	lastCode  string
	lastKind  models.SubjectKind
	addErr    error
	removeErr error
}

func (m *subjectConfigServiceMock) Effective(ctx context.Context) (*models.SubjectConfigSet, error) {
	return &models.SubjectConfigSet{
		Drawing:  []models.SubjectConfig{{SubjectCode: "ME3491", Kind: models.SubjectKindDrawing, IsDefault: true}},
		Priority: []models.SubjectConfig{},
	}, nil
}

func (m *subjectConfigServiceMock) Add(ctx context.Context, req dto.SubjectConfigRequest, actor string) (*models.SubjectConfig, error) {
	m.lastReq = req
	m.lastActor = actor
	if m.addErr != nil {
		return nil, m.addErr
	}
	return &models.SubjectConfig{SubjectCode: req.SubjectCode, Kind: req.Kind, CreatedBy: &actor}, nil
}

func (m *subjectConfigServiceMock) Remove(ctx context.Context, code string, kind models.SubjectKind) error {
	m.lastCode = code
	m.lastKind = kind
	return m.removeErr
}

func TestSubjectConfigHandlerList(t *testing.T) {
	handler := NewSubjectConfigHandler(&subjectConfigServiceMock{})
	c, w := newJSONContext(http.MethodGet, "/config/subjects", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ME3491")
}

func TestSubjectConfigHandlerCreateRecordsActor(t *testing.T) {
	svc := &subjectConfigServiceMock{}
	handler := NewSubjectConfigHandler(svc)
	c, w := newJSONContext(http.MethodPost, "/config/subjects", []byte(`{"subjectCode":"cs9999","type":" priority "}`))
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "root", Role: models.RoleSuperAdmin})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.SubjectKindPriority, svc.lastReq.Kind)
	assert.Equal(t, "root", svc.lastActor)
}

func TestSubjectConfigHandlerCreateConflict(t *testing.T) {
	svc := &subjectConfigServiceMock{addErr: appErrors.Clone(appErrors.ErrConfigConflict, "ME3491 is already a drawing subject")}
	handler := NewSubjectConfigHandler(svc)
	c, w := newJSONContext(http.MethodPost, "/config/subjects", []byte(`{"subjectCode":"ME3491","type":"PRIORITY"}`))

	handler.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIG_CONFLICT")
}

func TestSubjectConfigHandlerDeleteNormalisesKind(t *testing.T) {
	svc := &subjectConfigServiceMock{}
	handler := NewSubjectConfigHandler(svc)
	c, w := newJSONContext(http.MethodDelete, "/config/subjects/CS9999?type=drawing", nil)
	c.Params = gin.Params{{Key: "code", Value: "CS9999"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "CS9999", svc.lastCode)
	assert.Equal(t, models.SubjectKindDrawing, svc.lastKind)
}

func TestSubjectConfigHandlerDeleteDefaultForbidden(t *testing.T) {
	handler := NewSubjectConfigHandler(&subjectConfigServiceMock{removeErr: appErrors.Clone(appErrors.ErrForbidden, "default subjects cannot be removed")})
	c, w := newJSONContext(http.MethodDelete, "/config/subjects/ME3491?type=DRAWING", nil)
	c.Params = gin.Params{{Key: "code", Value: "ME3491"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
