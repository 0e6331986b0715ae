package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/divagicha/microblog/internal/models"
	"github.com/divagicha/microblog/internal/service"
	"github.com/divagicha/microblog/pkg/logging"
)

// FollowHandler exposes follow/unfollow endpoints
type FollowHandler struct {
	follows *service.FollowService
	logger  *zap.Logger
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(follows *service.FollowService) *FollowHandler {
	return &FollowHandler{
		follows: follows,
		logger:  logging.WithComponent("api-follows"),
	}
}

type followRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

type followerResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user"`
	FollowingUserID int64     `json:"following_user"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newFollowerResponse(edge *models.Follower) followerResponse {
	return followerResponse{
		ID:              edge.ID,
		UserID:          edge.UserID,
		FollowingUserID: edge.FollowingUserID,
		IsActive:        edge.IsActive,
		CreatedAt:       edge.CreatedAt,
		UpdatedAt:       edge.UpdatedAt,
	}
}

// Follow handles POST /api/follow. The authenticated user becomes the
// follower of the user named in the body.
func (h *FollowHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "invalid follow request", err)
		return
	}

	edge, err := h.follows.Follow(c.Request.Context(), currentUserID(c), req.UserID)
	if err != nil {
		respondError(c, "invalid follow request", err)
		return
	}

	c.JSON(http.StatusOK, newFollowerResponse(edge))
}

// Unfollow handles POST /api/unfollow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "invalid unfollow request", err)
		return
	}

	edge, err := h.follows.Unfollow(c.Request.Context(), currentUserID(c), req.UserID)
	if err != nil {
		respondError(c, "invalid unfollow request", err)
		return
	}

	c.JSON(http.StatusOK, newFollowerResponse(edge))
}
