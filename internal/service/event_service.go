package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/pkg/jobs"
)

// EventSeatingPublished is emitted after a generation run publishes a seating.
const EventSeatingPublished = "seating.published"

type eventPublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// EventConfig tunes asynchronous event delivery.
type EventConfig struct {
	Queue      string
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// SeatingPublishedEvent notifies downstream consumers that a new seating is available.
type SeatingPublishedEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Version        string    `json:"version"`
	GeneratedAt    time.Time `json:"generatedAt"`
	Sessions       []string  `json:"sessions"`
	FailedSessions []string  `json:"failedSessions,omitempty"`
	TotalStudents  int       `json:"totalStudents"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// EventService delivers seating events to the broker through a retrying worker queue.
type EventService struct {
	publisher eventPublisher
	queue     *jobs.Queue
	cfg       EventConfig
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewEventService constructs an EventService. A nil publisher disables delivery.
func NewEventService(publisher eventPublisher, cfg EventConfig, metrics *MetricsService, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Queue == "" {
		cfg.Queue = "seating.events"
	}
	svc := &EventService{publisher: publisher, cfg: cfg, metrics: metrics, logger: logger}
	if publisher != nil {
		svc.queue = jobs.NewQueue("seating-events", svc.deliver, jobs.QueueConfig{
			Workers:    cfg.Workers,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
			Logger:     logger,
			OnDeadLetter: func(job jobs.Job, err error) {
				metrics.RecordEvent("dropped")
			},
		})
	}
	return svc
}

// Enabled reports whether events are delivered.
func (s *EventService) Enabled() bool {
	return s != nil && s.queue != nil
}

// Start launches the delivery workers.
func (s *EventService) Start(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains pending deliveries.
func (s *EventService) Stop() {
	if !s.Enabled() {
		return
	}
	s.queue.Stop()
}

// Stats exposes queue counters.
func (s *EventService) Stats() jobs.Stats {
	if !s.Enabled() {
		return jobs.Stats{}
	}
	return s.queue.Stats()
}

// SeatingPublished schedules the publication event of a snapshot.
func (s *EventService) SeatingPublished(snapshot *models.SeatingSnapshot, failed []string) error {
	if !s.Enabled() || snapshot == nil {
		return nil
	}
	total := 0
	for _, result := range snapshot.Results {
		total += result.TotalStudents
	}
	event := SeatingPublishedEvent{
		ID:             uuid.NewString(),
		Type:           EventSeatingPublished,
		Version:        snapshot.Version,
		GeneratedAt:    snapshot.GeneratedAt,
		Sessions:       snapshot.Sessions,
		FailedSessions: failed,
		TotalStudents:  total,
		OccurredAt:     time.Now().UTC(),
	}
	if err := s.queue.Enqueue(jobs.Job{ID: event.ID, Type: event.Type, Payload: event}); err != nil {
		s.metrics.RecordEvent("rejected")
		return fmt.Errorf("enqueue %s event: %w", event.Type, err)
	}
	return nil
}

func (s *EventService) deliver(ctx context.Context, job jobs.Job) error {
	body, err := json.Marshal(job.Payload)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", job.ID, err)
	}
	if err := s.publisher.Publish(ctx, s.cfg.Queue, body); err != nil {
		s.metrics.RecordEvent("failed")
		return err
	}
	s.metrics.RecordEvent("delivered")
	s.logger.Debug("seating event delivered", zap.String("event_id", job.ID), zap.String("queue", s.cfg.Queue))
	return nil
}
