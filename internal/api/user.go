package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/divagicha/microblog/internal/models"
	"github.com/divagicha/microblog/internal/service"
	"github.com/divagicha/microblog/pkg/logging"
)

// UserHandler exposes user endpoints
type UserHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logging.WithComponent("api-users"),
	}
}

type createUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(p *service.UserProfile) userResponse {
	return userResponse{
		ID:        p.User.ID,
		Username:  p.User.Username,
		Email:     p.User.Email,
		FirstName: p.User.FirstName.String,
		LastName:  p.User.LastName.String,
		Followers: p.Followers,
		Following: p.Following,
		CreatedAt: p.User.CreatedAt,
	}
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "invalid user request", err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, "invalid user request", err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(&service.UserProfile{User: user}))
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list users", err)
		return
	}

	out := make([]userResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, newUserResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, "invalid user id", models.NewValidationError("id", "must be an integer"))
		return
	}

	profile, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to retrieve user", err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(profile))
}
