package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/divagicha/microblog/internal/db"
	"github.com/divagicha/microblog/internal/models"
	"github.com/divagicha/microblog/pkg/logging"
)

// UserProfile is a user with the derived active-edge counts attached
type UserProfile struct {
	User      *models.User
	Followers int64
	Following int64
}

// UserService manages platform users
type UserService struct {
	users   *db.UserRepository
	follows *db.FollowRepository
	logger  *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(repo *db.Repository) *UserService {
	return &UserService{
		users:   db.NewUserRepository(repo),
		follows: db.NewFollowRepository(repo),
		logger:  logging.WithComponent("user-service"),
	}
}

// CreateUserInput carries the fields for a new user
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// Create registers a new user
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, models.NewValidationError("username", "username is required")
	}

	user := &models.User{
		Username:  username,
		Email:     in.Email,
		FirstName: nullString(in.FirstName),
		LastName:  nullString(in.LastName),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConstraintViolationError("blog_users_ux1", err)
		}
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Get retrieves a user with derived follower/following counts
func (s *UserService) Get(ctx context.Context, id int64) (*UserProfile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", id)
	}
	return s.profile(ctx, user)
}

// List retrieves all users with derived counts, newest first
func (s *UserService) List(ctx context.Context) ([]*UserProfile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]*UserProfile, 0, len(users))
	for _, user := range users {
		p, err := s.profile(ctx, user)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (s *UserService) profile(ctx context.Context, user *models.User) (*UserProfile, error) {
	followers, err := s.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &UserProfile{User: user, Followers: followers, Following: following}, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
