package posts

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"linkedin-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the posts service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches post routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate_post", h.generatePost)
	rg.POST("/schedule_post", h.schedulePost)
	rg.GET("/analytics/:user_id", h.analytics)
}

type generatePostRequest struct {
	UserID     string   `json:"user_id" binding:"required"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Interests  []string `json:"interests"`
	Trends     []string `json:"trends"`
}

func (h *Handler) generatePost(c *gin.Context) {
	var req generatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "user_id is required", nil)
		return
	}
	c.Set("userId", req.UserID)

	post, err := h.Svc.Generate(c.Request.Context(), GenerateInput{
		UserID:     req.UserID,
		Skills:     req.Skills,
		Experience: req.Experience,
		Interests:  req.Interests,
		Trends:     req.Trends,
	})
	if err != nil {
		if errors.Is(err, ErrGenerationFailed) {
			respond.Error(c, http.StatusBadGateway, "generation_failed", "failed to generate post", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to store post", nil)
		return
	}
	c.Set("postId", post.ID)

	respond.OK(c, gin.H{
		"post_id":      post.ID,
		"post_content": post.Content,
	})
}

type schedulePostRequest struct {
	UserID        string    `json:"user_id" binding:"required"`
	PostID        int64     `json:"post_id" binding:"required"`
	ScheduledTime time.Time `json:"scheduled_time" binding:"required"`
}

func (h *Handler) schedulePost(c *gin.Context) {
	var req schedulePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "user_id, post_id and scheduled_time are required", nil)
		return
	}
	c.Set("userId", req.UserID)
	c.Set("postId", req.PostID)

	err := h.Svc.Schedule(c.Request.Context(), req.UserID, req.PostID, req.ScheduledTime)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoValidToken):
			respond.Error(c, http.StatusUnauthorized, "no_valid_token", "no valid access token; authenticate first", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "post not found", nil)
		case errors.Is(err, ErrAlreadyPosted):
			respond.Error(c, http.StatusConflict, "already_posted", "post already published", nil)
		case errors.Is(err, ErrInvalidScheduleTime):
			respond.Error(c, http.StatusBadRequest, "invalid_request", "scheduled_time precedes post creation", nil)
		case errors.Is(err, ErrPublishFailed):
			respond.Error(c, http.StatusBadGateway, "publish_failed", "platform rejected the publish", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to schedule post", nil)
		}
		return
	}

	respond.OK(c, gin.H{"status": "scheduled"})
}

type analyticsEntry struct {
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	PostedAt  *time.Time `json:"posted_at"`
}

func (h *Handler) analytics(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "user id is required", nil)
		return
	}
	c.Set("userId", userID)

	list, err := h.Svc.Analytics(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load analytics", nil)
		return
	}

	entries := make([]analyticsEntry, 0, len(list))
	for _, post := range list {
		entries = append(entries, analyticsEntry{
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			PostedAt:  post.PostedAt,
		})
	}
	respond.OK(c, gin.H{"analytics": entries})
}
