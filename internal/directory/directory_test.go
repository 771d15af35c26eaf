package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		RedirectURI:   "http://localhost/callback",
		BotToken:      "bot-token",
		GuildID:       "guild-1",
		CurrentCohort: "0",
		BaseURL:       baseURL,
	})
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/oauth2/token" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("code"); got != "abc" {
			t.Errorf("code = %q, want abc", got)
		}
		if got := r.PostForm.Get("grant_type"); got != "authorization_code" {
			t.Errorf("grant_type = %q", got)
		}
		w.Write([]byte(`{"access_token":"tok-1"}`))
	}))
	defer srv.Close()

	token, err := testClient(srv.URL).ExchangeCode(context.Background(), "abc")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("token = %q, want tok-1", token)
	}
}

func TestExchangeCodeEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).ExchangeCode(context.Background(), "abc"); err == nil {
		t.Fatal("expected error on empty access token")
	}
}

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("authorization = %q", got)
		}
		w.Write([]byte(`{"id":"42","username":"alice","discriminator":"1234"}`))
	}))
	defer srv.Close()

	p, err := testClient(srv.URL).FetchProfile(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	if p.ID != "42" {
		t.Errorf("id = %q, want 42", p.ID)
	}
	if p.DisplayName() != "alice#1234" {
		t.Errorf("display name = %q, want alice#1234", p.DisplayName())
	}
}

func TestInGuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"other"},{"id":"guild-1"}]`))
	}))
	defer srv.Close()

	ok, err := testClient(srv.URL).InGuild(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("in guild: %v", err)
	}
	if !ok {
		t.Error("expected membership in guild-1")
	}
}

func TestInGuildAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"other"}]`))
	}))
	defer srv.Close()

	ok, err := testClient(srv.URL).InGuild(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("in guild: %v", err)
	}
	if ok {
		t.Error("expected absence from guild-1")
	}
}

func TestResolveMemberRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bot bot-token" {
			t.Errorf("authorization = %q", got)
		}
		switch r.URL.Path {
		case "/guilds/guild-1/members/42":
			w.Write([]byte(`{"roles":["10"]}`))
		case "/guilds/guild-1/roles":
			w.Write([]byte(`[{"id":"10","name":"Pod 0.1.1"},{"id":"11","name":"admin"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	role, err := testClient(srv.URL).ResolveMemberRole(context.Background(), "42")
	if err != nil {
		t.Fatalf("resolve role: %v", err)
	}
	if role.Name != "Pod 0.1.1" || role.Admin {
		t.Errorf("role = %+v, want Pod 0.1.1", role)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":"42","username":"alice","discriminator":"1234"}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchProfile(context.Background(), "tok-1"); err != nil {
		t.Fatalf("fetch profile after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchProfile(context.Background(), "bad"); err == nil {
		t.Fatal("expected error on 401")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (4xx is not retried)", got)
	}
}
