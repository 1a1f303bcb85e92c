package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

func TestAuditLogsSuccessfulChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{UserID: "root", Role: models.RoleSuperAdmin})
		c.Next()
	})
	router.POST("/generate", Audit(zap.New(core), "seating.generate"), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.DELETE("/reset", Audit(zap.New(core), "students.reset"), func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/generate", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/reset", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "seating.generate", entries[0].Message)
	assert.Equal(t, "root", entries[0].ContextMap()["actor"])
	assert.Equal(t, "/generate", entries[0].ContextMap()["path"])
}
