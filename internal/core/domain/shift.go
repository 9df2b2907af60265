package domain

import (
	"errors"
	"time"
)

var ErrShiftNotFound = errors.New("shift not found")
var ErrInvalidShiftRange = errors.New("shift end must be after start")

// Shift is a single scheduled work period assigned to one user.
type Shift struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	StartTime time.Time `json:"start_time" bson:"start_time"`
	EndTime   time.Time `json:"end_time" bson:"end_time"`
	Position  string    `json:"position" bson:"position"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ValidRange reports whether the shift covers a positive time span.
func (s *Shift) ValidRange() bool {
	return s.EndTime.After(s.StartTime)
}
