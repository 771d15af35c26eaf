package push

import (
	"errors"
	"fmt"
	"log/slog"

	"podpoints/internal/model"
	"podpoints/internal/store"
)

// Notifier tells a member about awards credited to them. Failures never
// propagate to the award path; expired subscriptions are pruned as they
// surface.
type Notifier struct {
	svc    *Service
	subs   *store.PushStore
	logger *slog.Logger
}

func NewNotifier(svc *Service, subs *store.PushStore, logger *slog.Logger) *Notifier {
	return &Notifier{svc: svc, subs: subs, logger: logger}
}

// AwardCommitted notifies the assignee about a committed award.
func (n *Notifier) AwardCommitted(member *model.Member, a *model.Award) {
	subs, err := n.subs.ListByMember(member.ID)
	if err != nil {
		n.logger.Error("list subscriptions", "member", member.ID, "error", err)
		return
	}

	payload := Payload{
		Title: "Points awarded",
		Body:  fmt.Sprintf("You earned %d points for %s", a.Amount, a.Category),
		Tag:   "award",
	}

	for i := range subs {
		err := n.svc.Send(&subs[i], payload)
		if errors.Is(err, ErrExpired) {
			if err := n.subs.DeleteByEndpoint(subs[i].Endpoint); err != nil {
				n.logger.Error("prune subscription", "error", err)
			}
			continue
		}
		if err != nil {
			n.logger.Warn("send push", "member", member.ID, "error", err)
		}
	}
}
