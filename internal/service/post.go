package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/divagicha/microblog/internal/db"
	"github.com/divagicha/microblog/internal/models"
	"github.com/divagicha/microblog/pkg/logging"
)

// PostCounts holds the per-post derived interaction counts
type PostCounts struct {
	Likes    int64
	Comments int64
	Shares   int64
	Reposts  int64
}

// PostService manages posts and comments
type PostService struct {
	users        *db.UserRepository
	posts        *db.PostRepository
	interactions *db.InteractionRepository
	logger       *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(repo *db.Repository) *PostService {
	return &PostService{
		users:        db.NewUserRepository(repo),
		posts:        db.NewPostRepository(repo),
		interactions: db.NewInteractionRepository(repo),
		logger:       logging.WithComponent("post-service"),
	}
}

// CreatePostInput carries the fields for a new post or comment
type CreatePostInput struct {
	AuthorID int64
	Headline string
	Body     string
	ParentID *int64
}

// Create validates and persists a post. A comment's slug embeds the
// row's own id, so comments are written in two phases: insert with a
// provisional slug, then rewrite the slug once the id is assigned.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("body", "body is required")
	}

	author, err := s.users.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("user", in.AuthorID)
	}

	post := &models.Post{
		UserID:   in.AuthorID,
		Body:     in.Body,
		IsActive: true,
	}
	if in.Headline != "" {
		post.Headline = sql.NullString{String: in.Headline, Valid: true}
	}

	if in.ParentID != nil {
		parent, err := s.posts.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.IsDeleted {
			return nil, models.NewNotFoundError("post", *in.ParentID)
		}
		if !parent.IsActive {
			return nil, models.NewValidationError("parent", "can't post comment on an inactive post")
		}
		post.ParentID = sql.NullInt64{Int64: parent.ID, Valid: true}
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if post.IsComment() {
		// Provisional slug keeps the unique index satisfied until the
		// assigned id is known.
		post.Slug = "pending-" + uuid.NewString()
	} else {
		post.Slug = post.DeriveSlug()
	}

	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConstraintViolationError("blog_posts_ux1", err)
		}
		return nil, err
	}

	if post.IsComment() {
		post.Slug = post.DeriveSlug()
		if err := s.posts.UpdateSlug(ctx, post); err != nil {
			return nil, err
		}
	}

	s.logger.Info("post created",
		zap.Int64("id", post.ID), zap.Int64("author", post.UserID), zap.Bool("comment", post.IsComment()))
	return post, nil
}

// Get retrieves a post by id. Deleted posts are hidden.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted {
		return nil, models.NewNotFoundError("post", id)
	}
	return post, nil
}

// List retrieves non-deleted top-level posts, newest first
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.posts.ListTopLevel(ctx)
}

// Comments retrieves the active comments on a post
func (s *PostService) Comments(ctx context.Context, postID int64) ([]*models.Post, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.ListActiveComments(ctx, postID)
}

// Counts computes the derived counts for a post
func (s *PostService) Counts(ctx context.Context, postID int64) (*PostCounts, error) {
	return postCounts(ctx, s.posts, s.interactions, postID)
}

func postCounts(ctx context.Context, posts *db.PostRepository, interactions *db.InteractionRepository, postID int64) (*PostCounts, error) {
	likes, err := interactions.CountByActivity(ctx, postID, models.ActivityLike)
	if err != nil {
		return nil, err
	}
	comments, err := posts.CountActiveComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	shares, err := interactions.CountByActivity(ctx, postID, models.ActivityShare)
	if err != nil {
		return nil, err
	}
	reposts, err := interactions.CountByActivity(ctx, postID, models.ActivityRepost)
	if err != nil {
		return nil, err
	}
	return &PostCounts{Likes: likes, Comments: comments, Shares: shares, Reposts: reposts}, nil
}
