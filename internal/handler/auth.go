package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"podpoints/internal/auth"
	"podpoints/internal/directory"
	"podpoints/internal/store"
)

type AuthHandler struct {
	dir         *directory.Client
	members     *store.MemberStore
	issuer      *auth.TokenIssuer
	frontendURL string
	logger      *slog.Logger
}

func NewAuthHandler(dir *directory.Client, members *store.MemberStore, issuer *auth.TokenIssuer, frontendURL string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		dir:         dir,
		members:     members,
		issuer:      issuer,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Login redirects the browser to the directory's OAuth consent page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.dir.AuthorizeURL(), http.StatusFound)
}

// Callback completes the OAuth exchange: resolve the profile, check guild
// membership, resolve the role, register the member on first login, and hand
// a token back to the frontend.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectError(w, r, "missing authorization code")
		return
	}

	accessToken, err := h.dir.ExchangeCode(ctx, code)
	if err != nil {
		h.logger.Warn("oauth exchange", "error", err)
		h.redirectError(w, r, "login failed")
		return
	}

	profile, err := h.dir.FetchProfile(ctx, accessToken)
	if err != nil {
		h.logger.Warn("fetch profile", "error", err)
		h.redirectError(w, r, "login failed")
		return
	}

	inGuild, err := h.dir.InGuild(ctx, accessToken)
	if err != nil {
		h.logger.Warn("guild check", "error", err)
		h.redirectError(w, r, "login failed")
		return
	}
	if !inGuild {
		h.redirectError(w, r, directory.ErrNotInGuild.Error())
		return
	}

	role, err := h.dir.ResolveMemberRole(ctx, profile.ID)
	if err != nil {
		h.logger.Warn("resolve role", "error", err)
		h.redirectError(w, r, "login failed")
		return
	}

	member, err := h.members.GetByID(profile.ID)
	if err != nil {
		h.logger.Error("lookup member", "error", err)
		h.redirectError(w, r, "login failed")
		return
	}

	message := "logged in"
	if member == nil {
		if _, err := h.members.Create(profile.ID, profile.DisplayName(), profile.Email, role.Name, profile.Avatar); err != nil {
			h.logger.Error("register member", "error", err)
			h.redirectError(w, r, "login failed")
			return
		}
		message = "member registered"
	} else if member.Role != role.Name {
		if err := h.members.UpdateRole(member.ID, role.Name); err != nil {
			h.logger.Error("refresh role", "error", err)
		}
	}

	token, err := h.issuer.Issue(profile.ID)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		h.redirectError(w, r, "login failed")
		return
	}

	q := url.Values{}
	q.Set("token", token)
	q.Set("msg", message)
	http.Redirect(w, r, h.frontendURL+"?"+q.Encode(), http.StatusFound)
}

func (h *AuthHandler) redirectError(w http.ResponseWriter, r *http.Request, message string) {
	q := url.Values{}
	q.Set("error", "true")
	q.Set("msg", message)
	http.Redirect(w, r, h.frontendURL+"?"+q.Encode(), http.StatusFound)
}
