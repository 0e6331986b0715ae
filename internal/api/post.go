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

// PostHandler exposes post endpoints
type PostHandler struct {
	posts  *service.PostService
	logger *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{
		posts:  posts,
		logger: logging.WithComponent("api-posts"),
	}
}

type createPostRequest struct {
	Headline string `json:"headline"`
	Body     string `json:"body" binding:"required"`
	Parent   *int64 `json:"parent"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	Slug      string    `json:"slug"`
	Headline  string    `json:"headline,omitempty"`
	Body      string    `json:"body"`
	Parent    *int64    `json:"parent"`
	IsActive  bool      `json:"is_active"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Likes     int64     `json:"likes"`
	Comments  int64     `json:"comment"`
	Shares    int64     `json:"share"`
	Reposts   int64     `json:"repost"`
}

func newPostResponse(post *models.Post, counts *service.PostCounts) postResponse {
	resp := postResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Slug:      post.Slug,
		Headline:  post.Headline.String,
		Body:      post.Body,
		IsActive:  post.IsActive,
		IsDeleted: post.IsDeleted,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if post.ParentID.Valid {
		parent := post.ParentID.Int64
		resp.Parent = &parent
	}
	if counts != nil {
		resp.Likes = counts.Likes
		resp.Comments = counts.Comments
		resp.Shares = counts.Shares
		resp.Reposts = counts.Reposts
	}
	return resp
}

// Create handles POST /api/posts. The authenticated user is the author.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "invalid post request", err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		Headline: req.Headline,
		Body:     req.Body,
		ParentID: req.Parent,
	})
	if err != nil {
		respondError(c, "invalid post request", err)
		return
	}

	c.JSON(http.StatusCreated, newPostResponse(post, nil))
}

// List handles GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list posts", err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		counts, err := h.posts.Counts(c.Request.Context(), post.ID)
		if err != nil {
			respondError(c, "failed to list posts", err)
			return
		}
		out = append(out, newPostResponse(post, counts))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, "invalid post id", models.NewValidationError("id", "must be an integer"))
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to retrieve post", err)
		return
	}

	counts, err := h.posts.Counts(c.Request.Context(), post.ID)
	if err != nil {
		h.logger.Error("failed to compute post counts", zap.Int64("post", post.ID), zap.Error(err))
		respondError(c, "failed to retrieve post", err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post, counts))
}
