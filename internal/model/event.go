package model

import "time"

// Event is an admin-created, secret-gated bonus award opportunity. A member
// may claim it at most once; the point value is authoritative and overrides
// whatever amount the claim request carries. The secret code is stored as a
// bcrypt hash and never serialized.
type Event struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	PointsAmount int       `json:"points_amount"`
	Link         string    `json:"link"`
	CreatedAt    time.Time `json:"created_at"`
}
