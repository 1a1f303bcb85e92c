package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesSeatingDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 10*time.Second, cfg.Seating.GenerationBudget)
	assert.Equal(t, []string{"I1", "I2"}, cfg.Seating.GroundFloorHalls)
	assert.Contains(t, cfg.Seating.DrawingHalls, "AUD4")
	assert.Equal(t, "seating.published", cfg.Events.Queue)
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	t.Setenv("SEATING_GENERATION_BUDGET", "3s")
	t.Setenv("SEATING_GROUND_FLOOR_HALLS", " G1 , G2 ,")
	t.Setenv("ENABLE_EVENTS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Seating.GenerationBudget)
	assert.Equal(t, []string{"G1", "G2"}, cfg.Seating.GroundFloorHalls)
	assert.True(t, cfg.Events.Enabled)
}

func TestParseDurationFallsBack(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 90*time.Second, parseDuration("90s", time.Minute))
}
