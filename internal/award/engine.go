package award

import (
	"errors"
	"time"

	"podpoints/internal/model"
	"podpoints/internal/store"
)

// Request describes one award to validate and commit. AssigneeRef may be a
// stable directory id or a unique display name. EventID and SecretCode are
// consulted only on the Event path; Amount is ignored there because the
// event's point value is authoritative.
type Request struct {
	AssigneeRef string
	Category    string
	Amount      int
	EventID     *int64
	SecretCode  string
}

// Engine validates award requests, applies category policy, and commits them
// atomically against the ledger. It returns typed rejections and leaves
// logging and response rendering to its callers.
type Engine struct {
	members *store.MemberStore
	awards  *store.AwardStore
	events  *store.EventStore
	locks   *memberLocks
	now     func() time.Time
}

func NewEngine(members *store.MemberStore, awards *store.AwardStore, events *store.EventStore) *Engine {
	return &Engine{
		members: members,
		awards:  awards,
		events:  events,
		locks:   newMemberLocks(),
		now:     time.Now,
	}
}

// Award resolves the assignee, classifies the request by category, enforces
// the category's policy, and commits the resulting ledger entry. The member's
// critical section spans from the first policy read through the commit, so
// check-then-commit on claims and daily counts is race-free.
func (e *Engine) Award(req Request) (*model.Award, error) {
	member, err := e.members.Resolve(req.AssigneeRef)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if member == nil {
		return nil, &MemberNotFoundError{Ref: req.AssigneeRef}
	}

	e.locks.acquire(member.ID)
	defer e.locks.release(member.ID)

	entry := model.Award{
		AssigneeID: member.ID,
		Amount:     req.Amount,
		Category:   req.Category,
	}

	switch req.Category {
	case model.CategoryEvent:
		amount, err := e.checkClaim(member, req)
		if err != nil {
			return nil, err
		}
		entry.Amount = amount
		entry.EventID = req.EventID

	case model.CategoryDiscord:
		count, err := e.awards.CountToday(member.ID, model.CategoryDiscord, e.now())
		if err != nil {
			return nil, &PersistenceError{Err: err}
		}
		if count >= model.DiscordDailyLimit {
			return nil, &RateLimitError{
				MemberID: member.ID,
				Category: model.CategoryDiscord,
				Limit:    model.DiscordDailyLimit,
			}
		}

	default:
		// Manual award: any other category string, amount credited as-is.
	}

	committed, err := e.awards.Commit(&entry)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateClaim) && req.EventID != nil {
			return nil, &AlreadyClaimedError{MemberID: member.ID, EventID: *req.EventID}
		}
		return nil, &PersistenceError{Err: err}
	}
	return committed, nil
}

// checkClaim enforces the event-claim policy and returns the authoritative
// amount to credit. Caller holds the member lock.
func (e *Engine) checkClaim(member *model.Member, req Request) (int, error) {
	if req.EventID == nil {
		return 0, &MissingInputError{Field: "event_id"}
	}
	if req.SecretCode == "" {
		return 0, &MissingInputError{Field: "secret_code"}
	}

	claim, err := e.awards.FindClaim(member.ID, *req.EventID)
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}
	if claim != nil {
		return 0, &AlreadyClaimedError{MemberID: member.ID, EventID: *req.EventID}
	}

	event, err := e.events.GetByID(*req.EventID)
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}
	if event == nil {
		return 0, &EventNotFoundError{EventID: *req.EventID}
	}

	ok, err := e.events.CheckCode(event.ID, req.SecretCode)
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}
	if !ok {
		return 0, &InvalidCodeError{Code: req.SecretCode, EventName: event.Name}
	}

	return event.PointsAmount, nil
}
