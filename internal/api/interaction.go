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

// InteractionHandler exposes post-interaction endpoints
type InteractionHandler struct {
	interactions *service.InteractionService
	logger       *zap.Logger
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(interactions *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		interactions: interactions,
		logger:       logging.WithComponent("api-interactions"),
	}
}

type createInteractionRequest struct {
	Post     int64  `json:"post" binding:"required"`
	Activity string `json:"activity" binding:"required"`
}

type interactionResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	PostID    int64     `json:"post"`
	Activity  string    `json:"activity"`
	CreatedAt time.Time `json:"created_at"`
}

func newInteractionResponse(in *models.Interaction) interactionResponse {
	return interactionResponse{
		ID:        in.ID,
		UserID:    in.UserID,
		PostID:    in.PostID,
		Activity:  in.Activity.String(),
		CreatedAt: in.CreatedAt,
	}
}

// Create handles POST /api/activity. The authenticated user is the one
// interacting with the post.
func (h *InteractionHandler) Create(c *gin.Context) {
	var req createInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "invalid post interaction request", err)
		return
	}

	interaction, err := h.interactions.Create(c.Request.Context(), currentUserID(c), req.Post, req.Activity)
	if err != nil {
		respondError(c, "invalid post interaction request", err)
		return
	}

	c.JSON(http.StatusCreated, newInteractionResponse(interaction))
}
