package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/divagicha/microblog/internal/db"
	"github.com/divagicha/microblog/internal/models"
	"github.com/divagicha/microblog/pkg/logging"
)

// FollowService runs the follow/unfollow state machine. Per ordered
// pair the edge moves NoEdge -> Active -> Inactive -> Active -> ...;
// once created a row is never deleted, only flipped.
type FollowService struct {
	users   *db.UserRepository
	follows *db.FollowRepository
	logger  *zap.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(repo *db.Repository) *FollowService {
	return &FollowService{
		users:   db.NewUserRepository(repo),
		follows: db.NewFollowRepository(repo),
		logger:  logging.WithComponent("follow-service"),
	}
}

// Follow makes requesterID follow targetID. The requester becomes the
// edge's following_user and the target its user. Re-follow on an
// inactive edge reuses the row; follow on an already-active edge is an
// idempotent no-op. A concurrent duplicate insert loses with a
// ConstraintViolation.
func (s *FollowService) Follow(ctx context.Context, requesterID, targetID int64) (*models.Follower, error) {
	edge := &models.Follower{UserID: targetID, FollowingUserID: requesterID, IsActive: true}
	if err := edge.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.follows.FindPair(ctx, targetID, requesterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsActive {
			return existing, nil
		}
		existing.IsActive = true
		if err := s.follows.Save(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("follow edge re-activated",
			zap.Int64("user", targetID), zap.Int64("following_user", requesterID))
		return existing, nil
	}

	if err := s.requireUser(ctx, targetID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	if err := s.follows.Create(ctx, edge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConstraintViolationError("blog_followers_ux1", err)
		}
		return nil, err
	}

	s.logger.Info("follow edge created",
		zap.Int64("user", targetID), zap.Int64("following_user", requesterID))
	return edge, nil
}

// Unfollow makes requesterID stop following targetID by flipping the
// existing edge inactive. Unfollowing an already-inactive edge is a
// no-op; unfollowing without any edge is NotFound.
func (s *FollowService) Unfollow(ctx context.Context, requesterID, targetID int64) (*models.Follower, error) {
	edge, err := s.follows.FindPair(ctx, targetID, requesterID)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, models.NewNotFoundError("follower", targetID)
	}
	if !edge.IsActive {
		return edge, nil
	}

	edge.IsActive = false
	if err := s.follows.Save(ctx, edge); err != nil {
		return nil, err
	}

	s.logger.Info("follow edge deactivated",
		zap.Int64("user", targetID), zap.Int64("following_user", requesterID))
	return edge, nil
}

func (s *FollowService) requireUser(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("user", id)
	}
	return nil
}
