package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkedin-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the profiles service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze_profile", h.analyzeProfile)
}

type analyzeProfileRequest struct {
	UserID     string   `json:"user_id" binding:"required"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Interests  []string `json:"interests"`
}

func (h *Handler) analyzeProfile(c *gin.Context) {
	var req analyzeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "user_id is required", nil)
		return
	}
	c.Set("userId", req.UserID)

	summary, err := h.Svc.Analyze(c.Request.Context(), Profile{
		UserID:     req.UserID,
		Skills:     req.Skills,
		Experience: req.Experience,
		Interests:  req.Interests,
	})
	if err != nil {
		if errors.Is(err, ErrGenerationFailed) {
			respond.Error(c, http.StatusBadGateway, "generation_failed", "failed to summarize profile", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to store profile", nil)
		return
	}

	respond.OK(c, gin.H{"summary": summary})
}
