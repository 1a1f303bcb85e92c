package models

import "time"

// Hall is an examination room laid out as a rows x columns seat grid.
type Hall struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Block         string    `db:"block" json:"block"`
	Rows          int       `db:"row_count" json:"rows"`
	Columns       int       `db:"column_count" json:"columns"`
	Capacity      int       `db:"capacity" json:"capacity"`
	Priority      int       `db:"priority" json:"priority"`
	IsDrawing     bool      `db:"is_drawing" json:"isDrawing"`
	IsGroundFloor bool      `db:"is_ground_floor" json:"isGroundFloor"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// UsableSeats returns how many grid cells may be occupied. Usable cells are
// always the leading cells of the grid in row-major order.
func (h Hall) UsableSeats() int {
	if h.Rows <= 0 || h.Columns <= 0 || h.Capacity <= 0 {
		return 0
	}
	cells := h.Rows * h.Columns
	if h.Capacity < cells {
		return h.Capacity
	}
	return cells
}

// Block groups halls, usually a physical building, and carries its own fill priority.
type Block struct {
	Name      string    `db:"name" json:"name"`
	Priority  int       `db:"priority" json:"priority"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// HallFilter narrows hall listings.
type HallFilter struct {
	Block string
}
