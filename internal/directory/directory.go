package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const defaultBaseURL = "https://discord.com/api/v10"

// ErrNotInGuild is returned when the authenticated user is not a member of
// the configured guild.
var ErrNotInGuild = errors.New("user is not a member of the program guild")

// Config holds every setting the adapter needs. Guild id and the current
// cohort marker are explicit here rather than ambient globals.
type Config struct {
	ClientID      string
	ClientSecret  string
	RedirectURI   string
	BotToken      string
	GuildID       string
	CurrentCohort string

	// BaseURL overrides the Discord API root; tests point it at a local server.
	BaseURL string
}

// Profile is the identity the directory yields for a bearer credential.
type Profile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Email         string `json:"email"`
	Avatar        string `json:"avatar"`
}

// DisplayName is the unique "user#1234" form used as the member name.
func (p *Profile) DisplayName() string {
	return p.Username + "#" + p.Discriminator
}

// Client talks to the Discord API on behalf of the service.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		baseURL:    base,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL is the OAuth consent URL the login handler redirects to.
func (c *Client) AuthorizeURL() string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "identify email guilds")
	return c.baseURL + "/oauth2/authorize?" + q.Encode()
}

// ExchangeCode trades an OAuth authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/oauth2/token", map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}, []byte(form.Encode()), &out)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	if out.AccessToken == "" {
		return "", errors.New("exchange code: empty access token")
	}
	return out.AccessToken, nil
}

// FetchProfile returns the identity behind an access token.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var p Profile
	err := c.doJSON(ctx, http.MethodGet, "/users/@me", map[string]string{
		"Authorization": "Bearer " + accessToken,
	}, nil, &p)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &p, nil
}

// InGuild reports whether the token's user belongs to the configured guild.
func (c *Client) InGuild(ctx context.Context, accessToken string) (bool, error) {
	var guilds []struct {
		ID string `json:"id"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/users/@me/guilds", map[string]string{
		"Authorization": "Bearer " + accessToken,
	}, nil, &guilds)
	if err != nil {
		return false, fmt.Errorf("list guilds: %w", err)
	}
	for _, g := range guilds {
		if g.ID == c.cfg.GuildID {
			return true, nil
		}
	}
	return false, nil
}

// ResolveMemberRole looks up the member's guild roles with the bot credential
// and resolves them to a single typed role.
func (c *Client) ResolveMemberRole(ctx context.Context, userID string) (Role, error) {
	var member struct {
		Roles []string `json:"roles"`
	}
	botAuth := map[string]string{"Authorization": "Bot " + c.cfg.BotToken}

	path := "/guilds/" + c.cfg.GuildID + "/members/" + userID
	if err := c.doJSON(ctx, http.MethodGet, path, botAuth, nil, &member); err != nil {
		return Role{}, fmt.Errorf("fetch guild member: %w", err)
	}

	var guildRoles []GuildRole
	path = "/guilds/" + c.cfg.GuildID + "/roles"
	if err := c.doJSON(ctx, http.MethodGet, path, botAuth, nil, &guildRoles); err != nil {
		return Role{}, fmt.Errorf("fetch guild roles: %w", err)
	}

	return ResolveRole(member.Roles, guildRoles, c.cfg.CurrentCohort), nil
}

// doJSON performs one API call with bounded exponential-backoff retries on
// network failures and 5xx responses.
func (c *Client) doJSON(ctx context.Context, method, path string, headers map[string]string, body []byte, out any) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = strings.NewReader(string(body))
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("directory returned %d", resp.StatusCode))
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("directory returned %d", resp.StatusCode)
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}
