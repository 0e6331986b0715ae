package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/divagicha/microblog/internal/service"
	"github.com/divagicha/microblog/pkg/logging"
)

// TimelineHandler exposes the timeline endpoint
type TimelineHandler struct {
	timeline *service.TimelineService
	logger   *zap.Logger
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(timeline *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{
		timeline: timeline,
		logger:   logging.WithComponent("api-timeline"),
	}
}

// Get handles GET /api/timeline for the authenticated user. The
// update_cache flag (case-insensitive "true") forces a refresh.
func (h *TimelineHandler) Get(c *gin.Context) {
	forceRefresh := strings.EqualFold(c.Query("update_cache"), "true")

	snapshot, err := h.timeline.Get(c.Request.Context(), currentUserID(c), forceRefresh)
	if err != nil {
		respondError(c, "failed to retrieve timeline", err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
