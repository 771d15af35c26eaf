package model

import "time"

// Reserved award categories. Any other category string is a manual award
// with no additional policy attached.
const (
	CategoryEvent   = "Event"
	CategoryDiscord = "Discord"
)

// DiscordDailyLimit caps self-reported Discord activity awards per member
// per server-local calendar day.
const DiscordDailyLimit = 5

// Award is a single immutable ledger entry. EventID is set only for
// event-claim awards. CreatedAt is assigned by the store at commit time.
type Award struct {
	ID         int64     `json:"id"`
	AssigneeID string    `json:"assignee_id"`
	Amount     int       `json:"amount"`
	Category   string    `json:"category"`
	EventID    *int64    `json:"event_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
