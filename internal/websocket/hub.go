package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"podpoints/internal/model"
)

// Message is a live-feed notification pushed to connected clients.
type Message struct {
	Type       string `json:"type"`
	MemberID   string `json:"member_id,omitempty"`
	MemberName string `json:"member_name,omitempty"`
	Amount     int    `json:"amount,omitempty"`
	Category   string `json:"category,omitempty"`
	Total      int    `json:"total,omitempty"`
	Pod        string `json:"pod,omitempty"`
}

// AwardCommitted builds the feed message for a freshly committed award.
// Total is the member's points_total after the commit.
func AwardCommitted(member *model.Member, a *model.Award, total int) Message {
	return Message{
		Type:       "award_committed",
		MemberID:   member.ID,
		MemberName: member.Name,
		Amount:     a.Amount,
		Category:   a.Category,
		Total:      total,
		Pod:        member.Role,
	}
}

// Hub tracks connected feed clients and fans messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to every connected client. Clients whose send
// buffer is full miss the message rather than stalling the award path.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
