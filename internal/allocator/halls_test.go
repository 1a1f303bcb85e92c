package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

func hallNames(halls []models.Hall) []string {
	names := make([]string, len(halls))
	for i, h := range halls {
		names[i] = h.Name
	}
	return names
}

func TestResolveHallsOrdersByBlockThenHallPriority(t *testing.T) {
	t1 := hall("T1", "Civil Block", 5, 5)
	t1.Priority = 2
	t2 := hall("T2", "Civil Block", 5, 5)
	t2.Priority = 1
	i1 := hall("I1", "Maths Block", 5, 5)
	m2 := hall("M2", "Mech Block", 5, 5)
	x1 := hall("X1", "Annex", 5, 5)

	blocks := []models.Block{
		{Name: "Mech Block", Priority: 3},
		{Name: "Civil Block", Priority: 1},
		{Name: "Maths Block", Priority: 2},
	}

	plan := ResolveHalls([]models.Hall{x1, m2, i1, t1, t2}, blocks, DefaultHallDesignation())
	assert.Equal(t, []string{"T2", "T1", "I1", "M2", "X1"}, hallNames(plan.Order))
}

func TestResolveHallsUsesNamingConventionWithoutFlags(t *testing.T) {
	plan := ResolveHalls([]models.Hall{
		hall("I1", "Maths", 5, 5),
		hall("AH1", "Mech", 5, 5),
		hall("T1", "Civil", 5, 5),
	}, nil, DefaultHallDesignation())

	assert.Equal(t, []string{"AH1"}, hallNames(plan.DrawingHalls()))
	assert.Equal(t, []string{"I1"}, hallNames(plan.GroundFloorHalls()))
}

func TestResolveHallsPrefersExplicitFlags(t *testing.T) {
	custom := hall("LAB9", "Annex", 3, 3)
	custom.IsDrawing = true
	ground := hall("T1", "Civil", 3, 3)
	ground.IsGroundFloor = true

	plan := ResolveHalls([]models.Hall{hall("AH1", "Mech", 5, 5), hall("I1", "Maths", 5, 5), custom, ground}, nil, DefaultHallDesignation())

	assert.Equal(t, []string{"LAB9"}, hallNames(plan.DrawingHalls()))
	assert.Equal(t, []string{"T1"}, hallNames(plan.GroundFloorHalls()))
	assert.Len(t, plan.Order, 4)
}
