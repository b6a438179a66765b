package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	oauthlinkedin "golang.org/x/oauth2/linkedin"
)

const defaultAPIBase = "https://api.linkedin.com"

var (
	// ErrAuthExchangeFailed indicates LinkedIn rejected the authorization
	// code exchange.
	ErrAuthExchangeFailed = errors.New("linkedin: authorization code exchange failed")
	// ErrPublishFailed indicates LinkedIn did not report the share as created.
	ErrPublishFailed = errors.New("linkedin: publish rejected")
)

// Client wraps LinkedIn's OAuth endpoints and the UGC posts API.
type Client struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	apiBase    string
}

// NewClient constructs a LinkedIn client for the given OAuth application.
func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"r_liteprofile", "w_member_social"},
			Endpoint:     oauthlinkedin.Endpoint,
		},
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiBase: defaultAPIBase,
	}
}

// AuthorizationURL returns the member-facing authorization URL. Pure string
// construction; no network call.
func (c *Client) AuthorizationURL() string {
	return c.oauth.AuthCodeURL("")
}

// ExchangeCode trades a one-time authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: empty code", ErrAuthExchangeFailed)
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuthExchangeFailed)
	}
	return token.AccessToken, nil
}

// Member is the subset of the /v2/me profile this service uses.
type Member struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
}

// Me fetches the authenticated member's profile.
func (c *Client) Me(ctx context.Context, accessToken string) (Member, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/v2/me", nil)
	if err != nil {
		return Member{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Member{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Member{}, fmt.Errorf("linkedin me: status %d", resp.StatusCode)
	}

	var member Member
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		return Member{}, fmt.Errorf("linkedin me: decode: %w", err)
	}
	return member, nil
}

type shareCommentary struct {
	Text string `json:"text"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
}

type ugcPostRequest struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

type ugcPostResponse struct {
	ID string `json:"id"`
}

// Publish creates a public plain-text share on behalf of authorURN and
// returns the id LinkedIn assigned to it. Anything but a created outcome is
// ErrPublishFailed.
func (c *Client) Publish(ctx context.Context, accessToken, authorURN, text string) (string, error) {
	body := ugcPostRequest{
		Author:         authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]shareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    shareCommentary{Text: text},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v2/ugcPosts", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: status %d: %s", ErrPublishFailed, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if id := resp.Header.Get("X-RestLi-Created-Entity-Id"); id != "" {
		return id, nil
	}
	var parsed ugcPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.ID != "" {
		return parsed.ID, nil
	}
	// Created but no id reported; the publish itself still succeeded.
	return "", nil
}
