package model

import "time"

// PushSubscription is a member's registered web-push endpoint.
type PushSubscription struct {
	ID        int64     `json:"id"`
	MemberID  string    `json:"member_id"`
	Endpoint  string    `json:"endpoint"`
	P256dhKey string    `json:"-"`
	AuthKey   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
