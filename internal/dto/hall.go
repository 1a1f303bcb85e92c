package dto

// HallRequest creates or updates a hall.
type HallRequest struct {
	Name          string `json:"name" validate:"required,max=32"`
	Block         string `json:"block" validate:"required,max=64"`
	Rows          int    `json:"rows" validate:"required,min=1,max=100"`
	Columns       int    `json:"columns" validate:"required,min=1,max=100"`
	Capacity      *int   `json:"capacity" validate:"omitempty,min=0"`
	Priority      int    `json:"priority" validate:"min=0"`
	IsDrawing     bool   `json:"isDrawing"`
	IsGroundFloor bool   `json:"isGroundFloor"`
}

// HallOrderRequest stores block and hall fill priorities in one call.
type HallOrderRequest struct {
	Blocks []BlockOrder `json:"blocks" validate:"required,min=1,dive"`
}

// BlockOrder positions one block and, optionally, the halls inside it.
type BlockOrder struct {
	Name     string      `json:"name" validate:"required"`
	Priority int         `json:"priority" validate:"min=0"`
	Halls    []HallOrder `json:"halls" validate:"omitempty,dive"`
}

// HallOrder positions one hall within its block.
type HallOrder struct {
	ID       string `json:"id" validate:"required"`
	Priority int    `json:"priority" validate:"min=0"`
}
