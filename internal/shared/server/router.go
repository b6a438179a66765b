package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"linkedin-backend/internal/auth"
	"linkedin-backend/internal/posts"
	"linkedin-backend/internal/profiles"
	"linkedin-backend/internal/shared/config"
	"linkedin-backend/internal/shared/server/middleware"
	"linkedin-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	LinkedInAuth    *auth.LinkedInService
	ProfilesHandler *profiles.Handler
	PostsHandler    *posts.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(llmRateLimit()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.LinkedInAuth != nil {
		deps.LinkedInAuth.RegisterRoutes(api)
	}
	if deps.ProfilesHandler != nil {
		deps.ProfilesHandler.RegisterRoutes(api)
	}
	if deps.PostsHandler != nil {
		deps.PostsHandler.RegisterRoutes(api)
	}

	return r
}

// llmRateLimit throttles the two endpoints that spend model tokens.
func llmRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"LLM": {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			if strings.HasSuffix(path, "/generate_post") || strings.HasSuffix(path, "/analyze_profile") {
				return "LLM"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
