package award

import "podpoints/internal/model"

// PodSummary aggregates point totals over all members carrying a pod label.
type PodSummary struct {
	Pod     string `json:"pod"`
	Points  int    `json:"points"`
	Members int    `json:"members"`
}

// MemberPoints returns a member's point summary. Non-admin requesters always
// get their own record; admins may name any resolvable target reference.
func (e *Engine) MemberPoints(requesterID, requesterRole, targetRef string) (*model.Member, error) {
	ref := requesterID
	if requesterRole == model.RoleAdmin && targetRef != "" {
		ref = targetRef
	}

	member, err := e.members.Resolve(ref)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if member == nil {
		return nil, &MemberNotFoundError{Ref: ref}
	}
	return member, nil
}

// PodPoints sums points_total over all members whose role equals the pod
// label. It is a reporting view and is not serialized against in-flight
// awards.
func (e *Engine) PodPoints(pod string) (*PodSummary, error) {
	total, count, err := e.members.PodTotal(pod)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if count == 0 {
		return nil, &PodNotFoundError{Pod: pod}
	}
	return &PodSummary{Pod: pod, Points: total, Members: count}, nil
}
