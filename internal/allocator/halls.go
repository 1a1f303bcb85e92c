package allocator

import (
	"sort"
	"strings"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// HallDesignation holds the naming conventions used when no hall carries an explicit
// drawing or ground-floor flag.
type HallDesignation struct {
	DrawingHalls     []string
	GroundFloorHalls []string
}

// DefaultHallDesignation returns the campus naming convention.
func DefaultHallDesignation() HallDesignation {
	return HallDesignation{
		DrawingHalls:     []string{"AH1", "AH2", "AH3", "T6A", "T6B", "AUD1", "AUD2", "AUD3", "AUD4"},
		GroundFloorHalls: []string{"I1", "I2"},
	}
}

// HallPlan is the resolved fill order with drawing and ground-floor membership.
type HallPlan struct {
	Order       []models.Hall
	drawing     []bool
	groundFloor []bool
}

// IsDrawing reports whether the hall at position i hosts drawing subjects.
func (p HallPlan) IsDrawing(i int) bool { return p.drawing[i] }

// IsGroundFloor reports whether the hall at position i is an accessibility hall.
func (p HallPlan) IsGroundFloor(i int) bool { return p.groundFloor[i] }

// DrawingHalls lists drawing halls in fill order.
func (p HallPlan) DrawingHalls() []models.Hall { return p.subset(p.drawing) }

// GroundFloorHalls lists ground-floor halls in fill order.
func (p HallPlan) GroundFloorHalls() []models.Hall { return p.subset(p.groundFloor) }

func (p HallPlan) subset(member []bool) []models.Hall {
	halls := make([]models.Hall, 0)
	for i, hall := range p.Order {
		if member[i] {
			halls = append(halls, hall)
		}
	}
	return halls
}

// ResolveHalls orders halls by block priority, then hall priority, then name.
// Halls in blocks missing from the block list come after every listed block.
func ResolveHalls(halls []models.Hall, blocks []models.Block, designation HallDesignation) HallPlan {
	orderedBlocks := make([]models.Block, len(blocks))
	copy(orderedBlocks, blocks)
	sort.SliceStable(orderedBlocks, func(i, j int) bool {
		if orderedBlocks[i].Priority != orderedBlocks[j].Priority {
			return orderedBlocks[i].Priority < orderedBlocks[j].Priority
		}
		return orderedBlocks[i].Name < orderedBlocks[j].Name
	})
	blockIndex := make(map[string]int, len(orderedBlocks))
	for i, block := range orderedBlocks {
		if _, seen := blockIndex[block.Name]; !seen {
			blockIndex[block.Name] = i
		}
	}
	rank := func(block string) int {
		if idx, ok := blockIndex[block]; ok {
			return idx
		}
		return len(orderedBlocks)
	}

	order := make([]models.Hall, len(halls))
	copy(order, halls)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		ra, rb := rank(a.Block), rank(b.Block)
		if ra != rb {
			return ra < rb
		}
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	plan := HallPlan{
		Order:       order,
		drawing:     designate(order, func(h models.Hall) bool { return h.IsDrawing }, designation.DrawingHalls),
		groundFloor: designate(order, func(h models.Hall) bool { return h.IsGroundFloor }, designation.GroundFloorHalls),
	}
	return plan
}

// designate uses explicit flags when any hall carries one, otherwise the naming convention.
func designate(order []models.Hall, flagged func(models.Hall) bool, names []string) []bool {
	member := make([]bool, len(order))
	explicit := false
	for i, hall := range order {
		if flagged(hall) {
			member[i] = true
			explicit = true
		}
	}
	if explicit {
		return member
	}
	convention := make(map[string]struct{}, len(names))
	for _, name := range names {
		convention[strings.ToUpper(strings.TrimSpace(name))] = struct{}{}
	}
	for i, hall := range order {
		if _, ok := convention[strings.ToUpper(strings.TrimSpace(hall.Name))]; ok {
			member[i] = true
		}
	}
	return member
}
