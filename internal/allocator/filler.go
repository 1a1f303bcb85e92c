package allocator

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

type fillPhase int

const (
	phaseInit fillPhase = iota
	phaseGroundFloor
	phaseDrawing
	phaseNormal
	phaseDone
	phaseFailed
)

func (p fillPhase) String() string {
	switch p {
	case phaseInit:
		return "init"
	case phaseGroundFloor:
		return "ground_floor"
	case phaseDrawing:
		return "drawing"
	case phaseNormal:
		return "normal"
	case phaseDone:
		return "done"
	default:
		return "failed"
	}
}

// hallGrid is a hall being filled. Seats are always taken as a row-major prefix
// of the usable cells, so only the left and top neighbours of the next cell can
// already be occupied.
type hallGrid struct {
	hall        models.Hall
	drawing     bool
	groundFloor bool
	seats       [][]models.Seat
	usable      int
	cursor      int
	flagged     int
}

func newHallGrid(hall models.Hall, drawing, groundFloor bool) *hallGrid {
	g := &hallGrid{hall: hall, drawing: drawing, groundFloor: groundFloor, usable: hall.UsableSeats()}
	if g.usable == 0 {
		return g
	}
	g.seats = make([][]models.Seat, hall.Rows)
	for r := range g.seats {
		g.seats[r] = make([]models.Seat, hall.Columns)
		for c := range g.seats[r] {
			idx := r*hall.Columns + c
			g.seats[r][c] = models.Seat{Row: r, Col: c, SeatNumber: idx + 1, Usable: idx < g.usable}
		}
	}
	return g
}

func (g *hallGrid) full() bool { return g.cursor >= g.usable }

func (g *hallGrid) free() int { return g.usable - g.cursor }

func (g *hallGrid) next() (int, int) {
	return g.cursor / g.hall.Columns, g.cursor % g.hall.Columns
}

func (g *hallGrid) neighbours(r, c int) (left, top *models.Student) {
	if c > 0 {
		left = g.seats[r][c-1].Student
	}
	if r > 0 {
		top = g.seats[r-1][c].Student
	}
	return left, top
}

func (g *hallGrid) place(student models.Student, flagged bool) {
	r, c := g.next()
	seat := &g.seats[r][c]
	seated := student
	seat.Student = &seated
	seat.Flagged = flagged
	if flagged {
		g.flagged++
	}
	g.cursor++
}

// queueFilter decides which queues may supply the seat being filled.
type queueFilter func(q *subjectQueue) bool

// filler runs the seat passes of one session.
type filler struct {
	ctx    context.Context
	key    string
	grids  []*hallGrid
	queues *QueueSet
	phase  fillPhase
}

func newFiller(ctx context.Context, key string, plan HallPlan, queues *QueueSet) *filler {
	grids := make([]*hallGrid, len(plan.Order))
	for i, hall := range plan.Order {
		grids[i] = newHallGrid(hall, plan.IsDrawing(i), plan.IsGroundFloor(i))
	}
	return &filler{ctx: ctx, key: key, grids: grids, queues: queues, phase: phaseInit}
}

func (f *filler) drawingFree() int {
	return f.supply(func(g *hallGrid) bool { return g.drawing })
}

func (f *filler) supply(member func(*hallGrid) bool) int {
	total := 0
	for _, g := range f.grids {
		if member(g) {
			total += g.free()
		}
	}
	return total
}

// run executes ground-floor, drawing and normal passes in that order.
func (f *filler) run() error {
	demand := f.queues.Remaining()
	supply := f.supply(func(*hallGrid) bool { return true })
	if demand > supply {
		return f.fail(&CapacityExceededError{
			SessionKey: f.key, Demand: demand, Supply: supply, Shortfall: demand - supply,
			Reason: "not enough seats",
		})
	}
	drawingDemand := f.queues.RemainingOfKind(models.SubjectKindDrawing)
	drawingSupply := f.drawingFree()
	if drawingDemand > drawingSupply {
		return f.fail(&CapacityExceededError{
			SessionKey: f.key, Demand: drawingDemand, Supply: drawingSupply, Shortfall: drawingDemand - drawingSupply,
			Reason: "not enough drawing hall seats",
		})
	}

	f.phase = phaseGroundFloor
	for _, g := range f.grids {
		if !g.groundFloor {
			continue
		}
		if err := f.checkBudget(); err != nil {
			return err
		}
		hall := g
		f.fillHall(g, func(q *subjectQueue) bool {
			head := q.peek()
			if head == nil || !head.IsPhysicallyChallenged {
				return false
			}
			if q.kind == models.SubjectKindDrawing {
				return hall.drawing
			}
			// A seat in a drawing hall goes to a non-drawing student only while
			// the drawing halls still hold every remaining drawing student.
			return !hall.drawing || f.drawingFree() > f.queues.RemainingOfKind(models.SubjectKindDrawing)
		})
	}

	f.phase = phaseDrawing
	drawingDemand = f.queues.RemainingOfKind(models.SubjectKindDrawing)
	drawingSupply = f.drawingFree()
	for _, g := range f.grids {
		if !g.drawing {
			continue
		}
		if f.queues.RemainingOfKind(models.SubjectKindDrawing) == 0 {
			break
		}
		if err := f.checkBudget(); err != nil {
			return err
		}
		f.fillHall(g, func(q *subjectQueue) bool { return q.kind == models.SubjectKindDrawing })
	}
	if left := f.queues.RemainingOfKind(models.SubjectKindDrawing); left > 0 {
		return f.fail(&CapacityExceededError{
			SessionKey: f.key, Demand: drawingDemand, Supply: drawingSupply, Shortfall: left,
			Reason: "drawing halls exhausted",
		})
	}

	f.phase = phaseNormal
	for _, g := range f.grids {
		if f.queues.Remaining() == 0 {
			break
		}
		if err := f.checkBudget(); err != nil {
			return err
		}
		f.fillHall(g, func(q *subjectQueue) bool { return q.kind != models.SubjectKindDrawing })
	}
	if left := f.queues.Remaining(); left > 0 {
		return f.fail(&CapacityExceededError{
			SessionKey: f.key, Demand: demand, Supply: supply, Shortfall: left,
			Reason: "halls exhausted",
		})
	}

	f.phase = phaseDone
	return nil
}

func (f *filler) fail(err error) error {
	f.phase = phaseFailed
	return err
}

func (f *filler) checkBudget() error {
	if err := f.ctx.Err(); err != nil {
		return f.fail(fmt.Errorf("session %s: generation budget exhausted during %s pass: %w", f.key, f.phase, err))
	}
	return nil
}

// fillHall seats students row-major until the hall is full or no allowed queue remains.
func (f *filler) fillHall(g *hallGrid, allowed queueFilter) {
	for !g.full() {
		q, flagged := f.pick(g, allowed)
		if q == nil {
			return
		}
		g.place(q.pop(), flagged)
	}
}

// pick applies the seat selection rule at the grid's next cell. A queue is
// eligible when its head's department differs from the left and top neighbours.
// Ordering among candidates: priority kind, most remaining, no subject clash with
// the neighbours, subject code. The drawing pass ranks the subject clash ahead of
// the remaining count. When nothing is eligible the best candidate is used anyway
// and the seat is flagged.
func (f *filler) pick(g *hallGrid, allowed queueFilter) (*subjectQueue, bool) {
	r, c := g.next()
	left, top := g.neighbours(r, c)

	var best, bestEligible *subjectQueue
	for _, q := range f.queues.queues {
		if q.remaining() == 0 || !allowed(q) {
			continue
		}
		head := q.peek()
		if best == nil || f.better(q, best, left, top) {
			best = q
		}
		if departmentClash(head, left, top) {
			continue
		}
		if bestEligible == nil || f.better(q, bestEligible, left, top) {
			bestEligible = q
		}
	}
	if bestEligible != nil {
		return bestEligible, false
	}
	return best, best != nil
}

func (f *filler) better(a, b *subjectQueue, left, top *models.Student) bool {
	ap, bp := a.kind == models.SubjectKindPriority, b.kind == models.SubjectKindPriority
	if ap != bp {
		return ap
	}
	ac, bc := subjectClash(a.code, left, top), subjectClash(b.code, left, top)
	if f.phase == phaseDrawing && ac != bc {
		return !ac
	}
	if a.remaining() != b.remaining() {
		return a.remaining() > b.remaining()
	}
	if ac != bc {
		return !ac
	}
	return a.code < b.code
}

func departmentClash(student, left, top *models.Student) bool {
	if left != nil && strings.EqualFold(left.Department, student.Department) {
		return true
	}
	return top != nil && strings.EqualFold(top.Department, student.Department)
}

func subjectClash(code string, left, top *models.Student) bool {
	if left != nil && NormalizeSubjectCode(left.SubjectCode) == code {
		return true
	}
	return top != nil && NormalizeSubjectCode(top.SubjectCode) == code
}
