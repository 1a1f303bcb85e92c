package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/allocator"
	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type seatingStudentSource interface {
	ListAll(ctx context.Context) ([]models.Student, error)
}

type seatingHallSource interface {
	Snapshot(ctx context.Context) ([]models.Hall, []models.Block, error)
	Designation() allocator.HallDesignation
}

type seatingSubjectSource interface {
	Effective(ctx context.Context) (*models.SubjectConfigSet, error)
}

type seatingEventSink interface {
	SeatingPublished(snapshot *models.SeatingSnapshot, failed []string) error
}

// SeatingConfig tunes generation runs.
type SeatingConfig struct {
	Workers          int
	GenerationBudget time.Duration
	SearchCacheTTL   time.Duration
}

// SeatingService generates seating and serves the published result.
type SeatingService struct {
	students  seatingStudentSource
	halls     seatingHallSource
	subjects  seatingSubjectSource
	cache     *CacheService
	events    seatingEventSink
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       SeatingConfig

	mu      sync.Mutex
	current atomic.Pointer[models.SeatingSnapshot]
	now     func() time.Time

	// pubMu orders publication against Reset; epoch counts resets so a run
	// that read a replaced batch never publishes.
	pubMu sync.Mutex
	epoch uint64
}

// NewSeatingService constructs a SeatingService. cache, events and metrics may be nil.
func NewSeatingService(
	students seatingStudentSource,
	halls seatingHallSource,
	subjects seatingSubjectSource,
	cache *CacheService,
	events seatingEventSink,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg SeatingConfig,
) *SeatingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.GenerationBudget <= 0 {
		cfg.GenerationBudget = 10 * time.Second
	}
	return &SeatingService{
		students:  students,
		halls:     halls,
		subjects:  subjects,
		cache:     cache,
		events:    events,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Generate seats the stored batch, or the inline batch when one is supplied, and
// publishes the successful sessions. Runs are serialized.
func (s *SeatingService) Generate(ctx context.Context, req dto.GenerateSeatingRequest) (*models.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	epoch := s.currentEpoch()
	students, err := s.batch(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return &models.GenerateResponse{
			Success:  false,
			Message:  appErrors.ErrNoStudents.Message,
			Sessions: []string{},
			Results:  map[string]*models.SeatingResult{},
		}, nil
	}

	engine, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationBudget)
	defer cancel()

	start := s.now()
	outcome, err := engine.Allocate(runCtx, students)
	if err != nil {
		return nil, translateAllocatorError(err)
	}
	elapsed := s.now().Sub(start)

	resp := &models.GenerateResponse{
		Sessions: outcome.Sessions,
		Results:  outcome.Results,
		Failures: make(map[string]models.SessionFailure, len(outcome.Failures)),
	}
	published := make([]string, 0, len(outcome.Results))
	var failed []string
	softViolations := 0
	for _, key := range outcome.Sessions {
		if failure, ok := outcome.Failures[key]; ok {
			resp.Failures[key] = sessionFailure(failure)
			failed = append(failed, key)
			s.logger.Warn("session seating failed",
				zap.String("session", key),
				zap.Int("shortfall", resp.Failures[key].Shortfall),
				zap.Error(failure),
			)
			continue
		}
		result := outcome.Results[key]
		published = append(published, key)
		softViolations += result.SoftViolations
		s.logger.Info("session seated",
			zap.String("session", key),
			zap.Int("students", result.TotalStudents),
			zap.Int("halls_used", result.HallsUsed),
			zap.Int("soft_violations", result.SoftViolations),
		)
	}
	s.metrics.ObserveGeneration(elapsed, len(published), len(failed), softViolations)

	resp.Success = len(published) > 0
	if !resp.Success {
		resp.Message = "no session could be seated"
		return resp, nil
	}
	if len(failed) > 0 {
		resp.Message = fmt.Sprintf("%d of %d sessions seated", len(published), len(outcome.Sessions))
	}

	snapshot := &models.SeatingSnapshot{
		Version:     uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Sessions:    published,
		Results:     outcome.Results,
	}
	if !s.publish(ctx, snapshot, epoch) {
		s.logger.Warn("seating discarded, batch replaced during generation", zap.String("version", snapshot.Version))
		return nil, appErrors.Clone(appErrors.ErrConflict, "student batch was replaced during generation")
	}
	resp.Version = snapshot.Version

	if s.events != nil {
		if err := s.events.SeatingPublished(snapshot, failed); err != nil {
			s.logger.Warn("failed to schedule seating event", zap.String("version", snapshot.Version), zap.Error(err))
		}
	}
	s.logger.Info("seating published",
		zap.String("version", snapshot.Version),
		zap.Int("sessions", len(published)),
		zap.Int("failed_sessions", len(failed)),
		zap.Duration("elapsed", elapsed),
	)
	return resp, nil
}

// Current returns the published snapshot or nil.
func (s *SeatingService) Current() *models.SeatingSnapshot {
	return s.current.Load()
}

// Get returns the published result of one session.
func (s *SeatingService) Get(ctx context.Context, session string) (*models.SeatingResult, error) {
	snapshot := s.current.Load()
	if snapshot == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no seating has been generated")
	}
	result, ok := snapshot.Results[strings.TrimSpace(session)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return result, nil
}

// Sessions lists the published session keys.
func (s *SeatingService) Sessions(ctx context.Context) *dto.SessionsResponse {
	snapshot := s.current.Load()
	if snapshot == nil {
		return &dto.SessionsResponse{Success: true, Sessions: []string{}}
	}
	return &dto.SessionsResponse{Success: true, Version: snapshot.Version, Sessions: snapshot.Sessions}
}

// ResolveSession picks the session of a download. An empty or unknown key falls
// back to the only published session when exactly one exists.
func (s *SeatingService) ResolveSession(session string) (*models.SeatingResult, error) {
	snapshot := s.current.Load()
	if snapshot == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no seating has been generated")
	}
	if result, ok := snapshot.Results[strings.TrimSpace(session)]; ok {
		return result, nil
	}
	if len(snapshot.Sessions) == 1 {
		return snapshot.Results[snapshot.Sessions[0]], nil
	}
	if strings.TrimSpace(session) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session parameter required")
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
}

// Search returns every published allocation of a register number in session order
// and reports whether the answer came from the cache.
func (s *SeatingService) Search(ctx context.Context, req dto.SearchStudentRequest) ([]models.SearchHit, bool, error) {
	req.RegisterNumber = strings.TrimSpace(req.RegisterNumber)
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search payload")
	}
	snapshot := s.current.Load()
	if snapshot == nil {
		return []models.SearchHit{}, false, nil
	}

	key := SearchKey(snapshot.Version, req.RegisterNumber)
	var cached []models.SearchHit
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}

	hits := make([]models.SearchHit, 0)
	for _, session := range snapshot.Sessions {
		for _, allocation := range snapshot.Results[session].StudentAllocation {
			if allocation.RegisterNumber == req.RegisterNumber {
				hits = append(hits, models.SearchHit{Session: session, Allocation: allocation})
			}
		}
	}
	if err := s.cache.Set(ctx, key, hits, s.cfg.SearchCacheTTL); err != nil {
		s.logger.Warn("cache search result", zap.String("register_number", req.RegisterNumber), zap.Error(err))
	}
	return hits, false, nil
}

// Reset discards the published seating. A generation run in flight when Reset is
// called does not publish its result.
func (s *SeatingService) Reset(ctx context.Context) {
	s.pubMu.Lock()
	s.epoch++
	previous := s.current.Swap(nil)
	s.pubMu.Unlock()

	if previous != nil {
		s.logger.Info("seating discarded", zap.String("version", previous.Version))
	}
	s.metrics.SetPublishedStudents(0)
	s.invalidate(ctx)
}

func (s *SeatingService) currentEpoch() uint64 {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	return s.epoch
}

// publish stores snapshot unless a Reset happened since epoch was read.
func (s *SeatingService) publish(ctx context.Context, snapshot *models.SeatingSnapshot, epoch uint64) bool {
	s.pubMu.Lock()
	if s.epoch != epoch {
		s.pubMu.Unlock()
		return false
	}
	s.current.Store(snapshot)
	s.pubMu.Unlock()

	total := 0
	for _, result := range snapshot.Results {
		total += result.TotalStudents
	}
	s.metrics.SetPublishedStudents(total)
	s.invalidate(ctx)
	return true
}

func (s *SeatingService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateSeating(ctx); err != nil {
		s.logger.Warn("invalidate seating cache", zap.Error(err))
	}
}

func (s *SeatingService) batch(ctx context.Context, req dto.GenerateSeatingRequest) ([]models.Student, error) {
	if len(req.Students) > 0 {
		students := NormalizeStudents(req.Students)
		if err := allocator.ValidateStudents(students); err != nil {
			return nil, translateAllocatorError(err)
		}
		return students, nil
	}
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	return students, nil
}

// engine reads the hall and subject configuration once for the whole run.
func (s *SeatingService) engine(ctx context.Context) (*allocator.Engine, error) {
	start := time.Now()
	halls, blocks, err := s.halls.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := s.subjects.Effective(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("seating_snapshot", time.Since(start))
	if len(halls) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no halls configured")
	}

	engine, err := allocator.NewEngine(allocator.Snapshot{
		Halls:       halls,
		Blocks:      blocks,
		Subjects:    *subjects,
		Designation: s.halls.Designation(),
	}, allocator.Options{Workers: s.cfg.Workers})
	if err != nil {
		return nil, translateAllocatorError(err)
	}
	return engine, nil
}
