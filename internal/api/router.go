package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/divagicha/microblog/internal/cache"
	"github.com/divagicha/microblog/internal/db"
	"github.com/divagicha/microblog/internal/service"
	"github.com/divagicha/microblog/pkg/logging"
)

// userIDKey is the gin context key carrying the authenticated user id
const userIDKey = "userID"

// Router sets up API routes
type Router struct {
	users        *UserHandler
	posts        *PostHandler
	interactions *InteractionHandler
	follows      *FollowHandler
	timeline     *TimelineHandler
	database     *db.DB
	cache        *cache.Cache
	logger       *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, timelineTTL time.Duration) *Router {
	repo := db.NewRepository(database.DB)

	return &Router{
		users:        NewUserHandler(service.NewUserService(repo)),
		posts:        NewPostHandler(service.NewPostService(repo)),
		interactions: NewInteractionHandler(service.NewInteractionService(repo)),
		follows:      NewFollowHandler(service.NewFollowService(repo)),
		timeline:     NewTimelineHandler(service.NewTimelineService(repo, redisCache, timelineTTL)),
		database:     database,
		cache:        redisCache,
		logger:       logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	api := engine.Group("/api", requireUser())
	{
		api.POST("/users", r.users.Create)
		api.GET("/users", r.users.List)
		api.GET("/users/:id", r.users.Get)

		api.POST("/posts", r.posts.Create)
		api.GET("/posts", r.posts.List)
		api.GET("/posts/:id", r.posts.Get)

		api.POST("/activity", r.interactions.Create)

		api.POST("/follow", r.follows.Follow)
		api.POST("/unfollow", r.follows.Unfollow)

		api.GET("/timeline", r.timeline.Get)
	}
}

// requireUser resolves the authenticated user id. Authentication itself
// is an external collaborator; the verified identity arrives in the
// X-User-ID header.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, FailedResponse{
				Status:  "failed",
				Message: "authentication required",
				Errors:  map[string][]string{"detail": {"missing or invalid X-User-ID header"}},
			})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// currentUserID returns the authenticated user id from the context
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	code := http.StatusOK

	if err := r.database.Health(c.Request.Context()); err != nil {
		r.logger.Warn("database health check failed", zap.Error(err))
		status = "DEGRADED"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "microblog-api",
	})
}
