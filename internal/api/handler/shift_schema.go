package handler

import "time"

type createShiftRequest struct {
	UserID    string    `json:"user_id"    validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time"   validate:"required,gtfield=StartTime"`
	Position  string    `json:"position"   validate:"required"`
	Notes     string    `json:"notes"`
}

// updateShiftRequest carries a partial update; absent fields stay untouched.
type updateShiftRequest struct {
	UserID    *string    `json:"user_id"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Position  *string    `json:"position"`
	Notes     *string    `json:"notes"`
}
