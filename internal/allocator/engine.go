package allocator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// Snapshot is the configuration read once at the start of a generation run and
// shared read-only by every session.
type Snapshot struct {
	Halls       []models.Hall
	Blocks      []models.Block
	Subjects    models.SubjectConfigSet
	Designation HallDesignation
}

// Options tunes engine execution.
type Options struct {
	// Workers bounds how many sessions are allocated concurrently.
	Workers int
}

// Outcome is the per-session result of Allocate. Every key in Sessions has an
// entry in exactly one of Results or Failures.
type Outcome struct {
	Sessions []string
	Results  map[string]*models.SeatingResult
	Failures map[string]error
}

// Engine seats students into halls for a fixed configuration snapshot.
type Engine struct {
	classifier *Classifier
	plan       HallPlan
	workers    int
}

// NewEngine resolves the hall plan and subject classification for a snapshot.
func NewEngine(snapshot Snapshot, opts Options) (*Engine, error) {
	classifier, err := NewClassifier(snapshot.Subjects.Codes(models.SubjectKindPriority), snapshot.Subjects.Codes(models.SubjectKindDrawing))
	if err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{
		classifier: classifier,
		plan:       ResolveHalls(snapshot.Halls, snapshot.Blocks, snapshot.Designation),
		workers:    opts.Workers,
	}, nil
}

// Plan exposes the resolved hall order.
func (e *Engine) Plan() HallPlan { return e.plan }

// Classifier exposes the subject classifier of the snapshot.
func (e *Engine) Classifier() *Classifier { return e.classifier }

// Allocate validates the batch and seats every session. A failing session does not
// affect its siblings; batch-level problems are returned as errors.
func (e *Engine) Allocate(ctx context.Context, students []models.Student) (*Outcome, error) {
	if len(students) == 0 {
		return nil, ErrEmptyBatch
	}
	if err := ValidateStudents(students); err != nil {
		return nil, err
	}

	groups := GroupSessions(students)
	results := make([]*models.SeatingResult, len(groups))
	failures := make([]error, len(groups))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := range groups {
		i := i
		g.Go(func() error {
			results[i], failures[i] = e.AllocateSession(ctx, groups[i])
			return nil
		})
	}
	_ = g.Wait()

	outcome := &Outcome{
		Sessions: make([]string, len(groups)),
		Results:  make(map[string]*models.SeatingResult),
		Failures: make(map[string]error),
	}
	for i, group := range groups {
		outcome.Sessions[i] = group.Key
		if failures[i] != nil {
			outcome.Failures[group.Key] = failures[i]
			continue
		}
		outcome.Results[group.Key] = results[i]
	}
	return outcome, nil
}

// AllocateSession seats one session. Partial seating is discarded on failure.
func (e *Engine) AllocateSession(ctx context.Context, group SessionGroup) (*models.SeatingResult, error) {
	queues := BuildQueues(group.Students, e.classifier)
	f := newFiller(ctx, group.Key, e.plan, queues)
	if err := f.run(); err != nil {
		return nil, err
	}
	return buildResult(group, f.grids), nil
}
