package service

import (
	"github.com/noah-isme/exam-seating-api/internal/allocator"
	"github.com/noah-isme/exam-seating-api/internal/models"
)

var defaultDrawingSubjects = []string{
	"AU3501", "ME3491", "GE3251", "PR8451", "ME8492", "ME8594", "GE8152", "ME25C01",
}

// Codes that are also drawing defaults are omitted so every code keeps a single kind.
var defaultPrioritySubjects = []string{
	"ME3591", "ME3691", "ME3391", "ME3451", "CME384", "CME385", "MA3251", "ST25120",
	"ST25103", "CE3601", "CE3501", "CE3405", "CE3403", "ST4201", "ST4102", "AU3301",
	"AU3701", "ST4202", "ST4091", "ME8651", "ME8792", "ME8071", "ME8493", "ME8693",
	"ME8391", "ME8593", "MA8452", "CE8601", "CE8501", "CE8404", "CE8604", "CE8703",
	"AT8503", "AT8602", "AT8601",
}

var defaultBlocks = []string{
	"Maths / 1st Year Block",
	"Civil Block",
	"EEE Block",
	"ECE Block",
	"Mech Block",
	"Auto Block",
	"Auditorium",
}

type defaultHallEntry struct {
	name     string
	block    string
	rows     int
	columns  int
	capacity int
}

var defaultHallTable = []defaultHallEntry{
	{"I1", "Maths / 1st Year Block", 5, 5, 0},
	{"I2", "Maths / 1st Year Block", 5, 5, 0},
	{"I5", "Maths / 1st Year Block", 5, 5, 0},
	{"I6", "Maths / 1st Year Block", 5, 5, 0},
	{"I7", "Maths / 1st Year Block", 5, 5, 0},
	{"I8", "Maths / 1st Year Block", 5, 5, 0},
	{"T1", "Civil Block", 5, 5, 0},
	{"T2", "Civil Block", 5, 5, 0},
	{"T3", "Civil Block", 5, 5, 0},
	{"T6A", "Civil Block", 5, 5, 0},
	{"T6B", "Civil Block", 5, 5, 0},
	{"EEE1", "EEE Block", 5, 5, 0},
	{"EEE2", "EEE Block", 5, 5, 0},
	{"EEE3", "EEE Block", 5, 5, 0},
	{"CT10", "ECE Block", 5, 5, 0},
	{"CT11", "ECE Block", 5, 5, 0},
	{"CT12", "ECE Block", 5, 5, 0},
	{"M2", "Mech Block", 5, 5, 0},
	{"M3", "Mech Block", 5, 5, 0},
	{"M6", "Mech Block", 5, 5, 0},
	{"AH1", "Mech Block", 5, 5, 0},
	{"AH2", "Mech Block", 5, 5, 0},
	{"AH3", "Mech Block", 5, 5, 0},
	{"A4", "Auto Block", 5, 5, 0},
	{"AUD1", "Auditorium", 9, 3, 25},
	{"AUD2", "Auditorium", 9, 3, 25},
	{"AUD3", "Auditorium", 9, 3, 25},
	{"AUD4", "Auditorium", 9, 3, 25},
}

// defaultHallLayout returns the campus hall table with drawing and ground-floor
// flags taken from the given naming convention.
func defaultHallLayout(designation allocator.HallDesignation) ([]models.Hall, []models.Block) {
	drawing := nameSet(designation.DrawingHalls)
	ground := nameSet(designation.GroundFloorHalls)

	blocks := make([]models.Block, len(defaultBlocks))
	for i, name := range defaultBlocks {
		blocks[i] = models.Block{Name: name, Priority: i + 1}
	}

	halls := make([]models.Hall, 0, len(defaultHallTable))
	position := make(map[string]int)
	for _, def := range defaultHallTable {
		position[def.block]++
		capacity := def.capacity
		if capacity == 0 {
			capacity = def.rows * def.columns
		}
		_, isDrawing := drawing[def.name]
		_, isGround := ground[def.name]
		halls = append(halls, models.Hall{
			Name:          def.name,
			Block:         def.block,
			Rows:          def.rows,
			Columns:       def.columns,
			Capacity:      capacity,
			Priority:      position[def.block],
			IsDrawing:     isDrawing,
			IsGroundFloor: isGround,
		})
	}
	return halls, blocks
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[allocator.NormalizeSubjectCode(name)] = struct{}{}
	}
	return set
}
