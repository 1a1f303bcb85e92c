package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

type publisherStub struct {
	mu       sync.Mutex
	failures int
	queues   []string
	bodies   [][]byte
}

func (p *publisherStub) Publish(ctx context.Context, queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("broker unavailable")
	}
	p.queues = append(p.queues, queue)
	p.bodies = append(p.bodies, body)
	return nil
}

func (p *publisherStub) delivered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bodies)
}

func publishedSnapshot() *models.SeatingSnapshot {
	return &models.SeatingSnapshot{
		Version:     "v1",
		GeneratedAt: time.Now().UTC(),
		Sessions:    []string{"2024-11-20_FN"},
		Results: map[string]*models.SeatingResult{
			"2024-11-20_FN": {SessionKey: "2024-11-20_FN", TotalStudents: 12},
		},
	}
}

func TestEventServiceDeliversSeatingPublished(t *testing.T) {
	publisher := &publisherStub{failures: 1}
	svc := NewEventService(publisher, EventConfig{Queue: "seating.events", Workers: 1, MaxRetries: 2, RetryDelay: 10 * time.Millisecond}, NewMetricsService(), zap.NewNop())
	svc.Start(context.Background())
	defer svc.Stop()

	require.NoError(t, svc.SeatingPublished(publishedSnapshot(), []string{"2024-11-21_FN"}))
	require.Eventually(t, func() bool { return publisher.delivered() == 1 }, 2*time.Second, 10*time.Millisecond)

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	assert.Equal(t, []string{"seating.events"}, publisher.queues)
	var event SeatingPublishedEvent
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.Equal(t, EventSeatingPublished, event.Type)
	assert.Equal(t, "v1", event.Version)
	assert.Equal(t, 12, event.TotalStudents)
	assert.Equal(t, []string{"2024-11-21_FN"}, event.FailedSessions)
	assert.NotEmpty(t, event.ID)
}

func TestEventServiceDisabledWithoutPublisher(t *testing.T) {
	svc := NewEventService(nil, EventConfig{}, nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	assert.False(t, svc.Enabled())
	assert.NoError(t, svc.SeatingPublished(publishedSnapshot(), nil))
	assert.Equal(t, int64(0), svc.Stats().Processed)
}

func TestEventServiceRejectsBeforeStart(t *testing.T) {
	svc := NewEventService(&publisherStub{}, EventConfig{}, nil, zap.NewNop())

	assert.Error(t, svc.SeatingPublished(publishedSnapshot(), nil))
}
