package middleware

import (
	"net/http"
	"strings"

	"podpoints/internal/auth"
	"podpoints/internal/store"
)

// RequireAuth verifies the bearer token, loads the member it names, and
// populates auth.Context for downstream handlers. The role always comes from
// the ledger so a stale token cannot carry a stale role.
func RequireAuth(issuer *auth.TokenIssuer, members *store.MemberStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			memberID, err := issuer.Verify(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			member, err := members.GetByID(memberID)
			if err != nil || member == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ac := auth.Context{
				MemberID: member.ID,
				Role:     member.Role,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithAuth(r.Context(), ac)))
		})
	}
}

// RequireAdmin gates a route on the admin role. Must run inside RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	// Fallback for WebSocket clients that cannot set headers.
	return r.URL.Query().Get("token")
}
