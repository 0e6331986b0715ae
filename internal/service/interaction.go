package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/divagicha/microblog/internal/db"
	"github.com/divagicha/microblog/internal/models"
	"github.com/divagicha/microblog/pkg/logging"
)

// InteractionService records likes, shares and reposts
type InteractionService struct {
	users        *db.UserRepository
	posts        *db.PostRepository
	interactions *db.InteractionRepository
	logger       *zap.Logger
}

// NewInteractionService creates a new interaction service
func NewInteractionService(repo *db.Repository) *InteractionService {
	return &InteractionService{
		users:        db.NewUserRepository(repo),
		posts:        db.NewPostRepository(repo),
		interactions: db.NewInteractionRepository(repo),
		logger:       logging.WithComponent("interaction-service"),
	}
}

// Create validates and persists an interaction. All checks run before
// the write, so a failure leaves no side effects.
func (s *InteractionService) Create(ctx context.Context, userID, postID int64, activity string) (*models.Interaction, error) {
	act, err := models.ParseActivity(activity)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", userID)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted {
		return nil, models.NewNotFoundError("post", postID)
	}

	interaction := &models.Interaction{
		UserID:   userID,
		PostID:   postID,
		Activity: act,
	}
	if err := interaction.ValidateAgainst(post); err != nil {
		return nil, err
	}

	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, err
	}

	s.logger.Info("interaction created",
		zap.Int64("post", postID), zap.Int64("user", userID), zap.String("activity", act.String()))
	return interaction, nil
}

// ListByPost retrieves interactions on a post, optionally filtered to a
// named activity; an unrecognized name returns all interactions.
func (s *InteractionService) ListByPost(ctx context.Context, postID int64, activity string) ([]*models.Interaction, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted {
		return nil, models.NewNotFoundError("post", postID)
	}
	return s.interactions.ListByPost(ctx, postID, activity)
}
