package auth

import (
	"context"

	"podpoints/internal/model"
)

type contextKey struct{}

// Context carries the authenticated member through a request. Role is the
// directory-resolved role loaded fresh from the ledger, not the token.
type Context struct {
	MemberID string
	Role     string
}

func WithAuth(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}

func MemberID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.MemberID
}

func Role(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.Role
}

func IsAdmin(ctx context.Context) bool {
	return Role(ctx) == model.RoleAdmin
}
