package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestAuthorizationURLIsDeterministic(t *testing.T) {
	client := NewClient("client-1", "secret", "http://localhost:8080/callback")

	first := client.AuthorizationURL()
	second := client.AuthorizationURL()
	if first != second {
		t.Fatalf("expected deterministic URL, got %q and %q", first, second)
	}

	parsed, err := url.Parse(first)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}
	q := parsed.Query()
	if q.Get("response_type") != "code" {
		t.Fatalf("expected response_type=code, got %q", q.Get("response_type"))
	}
	if q.Get("client_id") != "client-1" {
		t.Fatalf("expected client_id=client-1, got %q", q.Get("client_id"))
	}
	if q.Get("redirect_uri") != "http://localhost:8080/callback" {
		t.Fatalf("unexpected redirect_uri %q", q.Get("redirect_uri"))
	}
	if !strings.Contains(q.Get("scope"), "w_member_social") {
		t.Fatalf("expected publish scope, got %q", q.Get("scope"))
	}
}

func TestExchangeCodeReturnsAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("code"); got != "codeXYZ" {
			t.Fatalf("expected code codeXYZ, got %q", got)
		}
		if got := r.FormValue("grant_type"); got != "authorization_code" {
			t.Fatalf("expected grant_type authorization_code, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok123",
			"expires_in":   5184000,
		})
	}))
	defer srv.Close()

	client := NewClient("client-1", "secret", "http://localhost:8080/callback")
	client.oauth.Endpoint.TokenURL = srv.URL

	token, err := client.ExchangeCode(context.Background(), "codeXYZ")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if token != "tok123" {
		t.Fatalf("expected tok123, got %q", token)
	}
}

func TestExchangeCodeFailureIsAuthExchangeFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	client := NewClient("client-1", "secret", "http://localhost:8080/callback")
	client.oauth.Endpoint.TokenURL = srv.URL

	_, err := client.ExchangeCode(context.Background(), "bad-code")
	if !errors.Is(err, ErrAuthExchangeFailed) {
		t.Fatalf("expected ErrAuthExchangeFailed, got %v", err)
	}
}

func TestMeReturnsMember(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/me" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Fatalf("unexpected Authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","localizedFirstName":"Ada","localizedLastName":"L"}`))
	}))
	defer srv.Close()

	client := NewClient("client-1", "secret", "http://localhost:8080/callback")
	client.apiBase = srv.URL

	member, err := client.Me(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if member.ID != "u1" {
		t.Fatalf("expected member id u1, got %q", member.ID)
	}
}

func TestPublishCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/ugcPosts" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		var body ugcPostRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Author != "urn:li:person:u1" {
			t.Fatalf("unexpected author %q", body.Author)
		}
		if body.LifecycleState != "PUBLISHED" {
			t.Fatalf("unexpected lifecycleState %q", body.LifecycleState)
		}
		share, ok := body.SpecificContent["com.linkedin.ugc.ShareContent"]
		if !ok {
			t.Fatalf("missing ShareContent")
		}
		if share.ShareCommentary.Text != "hello world" {
			t.Fatalf("unexpected text %q", share.ShareCommentary.Text)
		}
		if share.ShareMediaCategory != "NONE" {
			t.Fatalf("unexpected media category %q", share.ShareMediaCategory)
		}
		if got := body.Visibility["com.linkedin.ugc.MemberNetworkVisibility"]; got != "PUBLIC" {
			t.Fatalf("unexpected visibility %q", got)
		}
		w.Header().Set("X-RestLi-Created-Entity-Id", "urn:li:share:42")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient("client-1", "secret", "http://localhost:8080/callback")
	client.apiBase = srv.URL

	id, err := client.Publish(context.Background(), "tok123", "urn:li:person:u1", "hello world")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if id != "urn:li:share:42" {
		t.Fatalf("expected created entity id, got %q", id)
	}
}

func TestPublishNonCreatedIsPublishFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"duplicate share"}`))
	}))
	defer srv.Close()

	client := NewClient("client-1", "secret", "http://localhost:8080/callback")
	client.apiBase = srv.URL

	_, err := client.Publish(context.Background(), "tok123", "urn:li:person:u1", "hello world")
	if !errors.Is(err, ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}
}
