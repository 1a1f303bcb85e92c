package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveHTTPRequest("GET", "/api/v1/sessions", 200, 20*time.Millisecond)
	metrics.ObserveHTTPRequest("GET", "/api/v1/sessions", 200, 40*time.Millisecond)
	metrics.ObserveGeneration(150*time.Millisecond, 3, 1, 2)
	metrics.ObserveDBQuery("seating_snapshot", 5*time.Millisecond)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(2), snapshot.RequestsTotal)
	assert.InDelta(t, 30, snapshot.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(1), snapshot.GenerationsTotal)
	assert.InDelta(t, 150, snapshot.LastGenerationMs, 0.001)
	assert.Equal(t, uint64(3), snapshot.SessionsSeated)
	assert.Equal(t, uint64(1), snapshot.SessionsFailed)
	assert.Equal(t, uint64(1), snapshot.DBQueryCount)
}

func TestMetricsServiceHandlerExposesSeatingCollectors(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveGeneration(time.Second, 1, 0, 4)
	metrics.SetPublishedStudents(42)
	metrics.RecordEvent("delivered")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "seating_generation_duration_seconds"))
	assert.True(t, strings.Contains(body, `seating_sessions_total{outcome="seated"} 1`))
	assert.True(t, strings.Contains(body, "seating_soft_violations_total 4"))
	assert.True(t, strings.Contains(body, "seating_published_students 42"))
	assert.True(t, strings.Contains(body, `seating_events_total{result="delivered"} 1`))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var metrics *MetricsService
	metrics.ObserveGeneration(time.Second, 1, 1, 1)
	metrics.SetPublishedStudents(1)
	metrics.RecordEvent("failed")
	assert.Zero(t, metrics.Snapshot().RequestsTotal)
}
