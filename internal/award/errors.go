package award

import "fmt"

// Rejection types returned by the engine. Each carries the identifiers the
// transport layer needs to render a message without re-reading state. The
// engine never partially applies an award: when any of these is returned, no
// ledger entry exists and no total changed.

// MemberNotFoundError means the assignee reference resolved to no member.
type MemberNotFoundError struct {
	Ref string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("member %q not found", e.Ref)
}

// MissingInputError means a field required by the selected category is absent.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input %q", e.Field)
}

// EventNotFoundError means the referenced event id does not exist.
type EventNotFoundError struct {
	EventID int64
}

func (e *EventNotFoundError) Error() string {
	return fmt.Sprintf("event %d not found", e.EventID)
}

// InvalidCodeError echoes the offending input and the event name for operator
// diagnosis. It never carries the correct code.
type InvalidCodeError struct {
	Code      string
	EventName string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("the code %q is incorrect for event %q", e.Code, e.EventName)
}

// AlreadyClaimedError means the member has already been credited for the event.
type AlreadyClaimedError struct {
	MemberID string
	EventID  int64
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("event %d already claimed by member %s", e.EventID, e.MemberID)
}

// RateLimitError means the member hit the daily cap for the category. The
// limit resets at the next server-local calendar day.
type RateLimitError struct {
	MemberID string
	Category string
	Limit    int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("daily limit of %d %s awards reached for member %s", e.Limit, e.Category, e.MemberID)
}

// PodNotFoundError means no member carries the requested pod label.
type PodNotFoundError struct {
	Pod string
}

func (e *PodNotFoundError) Error() string {
	return fmt.Sprintf("pod %q not found", e.Pod)
}

// PersistenceError wraps a store failure. Nothing was applied, so callers may
// safely retry the whole operation.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
