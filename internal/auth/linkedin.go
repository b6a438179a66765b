package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"linkedin-backend/internal/linkedin"
	"linkedin-backend/internal/shared/server/respond"
	"linkedin-backend/internal/shared/telemetry"
	"linkedin-backend/internal/tokens"
)

// tokenTTL bounds how long an exchanged access token stays cached. After
// expiry the member re-runs the OAuth flow.
const tokenTTL = time.Hour

// PlatformClient is the subset of the LinkedIn client the auth flow uses.
type PlatformClient interface {
	AuthorizationURL() string
	ExchangeCode(ctx context.Context, code string) (string, error)
	Me(ctx context.Context, accessToken string) (linkedin.Member, error)
}

// LinkedInService handles the LinkedIn OAuth flow and token caching.
type LinkedInService struct {
	platform PlatformClient
	tokens   tokens.Store
	clientID string
}

// NewLinkedInService builds a LinkedInService.
func NewLinkedInService(platform PlatformClient, tokenStore tokens.Store, clientID string) *LinkedInService {
	return &LinkedInService{
		platform: platform,
		tokens:   tokenStore,
		clientID: clientID,
	}
}

// RegisterRoutes attaches LinkedIn auth routes.
func (s *LinkedInService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/linkedin", s.start)
	rg.GET("/auth/linkedin/callback", s.callback)
}

func (s *LinkedInService) start(c *gin.Context) {
	if strings.TrimSpace(s.clientID) == "" {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "LinkedIn auth not configured", nil)
		return
	}
	respond.OK(c, gin.H{"auth_url": s.platform.AuthorizationURL()})
}

func (s *LinkedInService) callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing code", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.CompleteAuth(ctx, code)
	if err != nil {
		if errors.Is(err, linkedin.ErrAuthExchangeFailed) {
			respond.Error(c, http.StatusBadRequest, "auth_exchange_failed", "failed to exchange code", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to cache token", nil)
		return
	}

	respond.OK(c, gin.H{"access_token": token})
}

// CompleteAuth exchanges the one-time code and caches the resulting token
// under the code and, when the member lookup succeeds, under the member id so
// later publishes can find it by user. A failed exchange caches nothing.
func (s *LinkedInService) CompleteAuth(ctx context.Context, code string) (string, error) {
	token, err := s.platform.ExchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	if err := s.tokens.Put(ctx, code, token, tokenTTL); err != nil {
		return "", err
	}

	member, err := s.platform.Me(ctx, token)
	if err != nil || member.ID == "" {
		// The exchange succeeded; the token is cached under the code and
		// still returned. Publishing for this member will require re-auth.
		telemetry.Error("auth.member_lookup_failed", map[string]any{
			"error": errString(err),
		})
		return token, nil
	}
	if err := s.tokens.Put(ctx, member.ID, token, tokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

func errString(err error) string {
	if err == nil {
		return "empty member id"
	}
	return err.Error()
}
