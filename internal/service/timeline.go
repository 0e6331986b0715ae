package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/divagicha/microblog/internal/cache"
	"github.com/divagicha/microblog/internal/db"
	"github.com/divagicha/microblog/internal/models"
	"github.com/divagicha/microblog/pkg/logging"
	"github.com/divagicha/microblog/pkg/telemetry"
)

// TimelineSnapshot is the materialized timeline cached per user
type TimelineSnapshot struct {
	UserID    int64          `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name,omitempty"`
	LastName  string         `json:"last_name,omitempty"`
	Posts     []TimelinePost `json:"posts"`
}

// TimelinePost is a feed post with its derived counts
type TimelinePost struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	Headline  string    `json:"headline,omitempty"`
	Body      string    `json:"body"`
	IsActive  bool      `json:"is_active"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Likes     int64     `json:"likes"`
	Comments  int64     `json:"comment"`
	Shares    int64     `json:"share"`
	Reposts   int64     `json:"repost"`
}

// TimelineService assembles user timelines with cache read-through.
// The cache is authoritative on hit; it is never invalidated on post or
// interaction writes, so a stale feed refreshes only via TTL expiry or
// an explicit force flag.
type TimelineService struct {
	users        *db.UserRepository
	follows      *db.FollowRepository
	posts        *db.PostRepository
	interactions *db.InteractionRepository
	cache        *cache.Cache
	ttl          time.Duration
	logger       *zap.Logger
}

// NewTimelineService creates a new timeline service
func NewTimelineService(repo *db.Repository, redisCache *cache.Cache, ttl time.Duration) *TimelineService {
	return &TimelineService{
		users:        db.NewUserRepository(repo),
		follows:      db.NewFollowRepository(repo),
		posts:        db.NewPostRepository(repo),
		interactions: db.NewInteractionRepository(repo),
		cache:        redisCache,
		ttl:          ttl,
		logger:       logging.WithComponent("timeline-service"),
	}
}

func timelineKey(userID int64) string {
	return "timeline:" + strconv.FormatInt(userID, 10)
}

// Get returns the user's timeline snapshot. A cached snapshot is
// returned verbatim unless forceRefresh is set; otherwise the feed is
// recomputed and written back with the configured TTL. Concurrent
// refreshes for the same key are not coordinated; last write wins.
func (s *TimelineService) Get(ctx context.Context, userID int64, forceRefresh bool) (*TimelineSnapshot, error) {
	ctx, span := telemetry.StartSpan(ctx, "timeline.get")
	defer span.End()

	key := timelineKey(userID)

	if !forceRefresh {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var snapshot TimelineSnapshot
			if err := json.Unmarshal([]byte(raw), &snapshot); err == nil {
				return &snapshot, nil
			}
			s.logger.Warn("discarding unreadable timeline snapshot", zap.Int64("user", userID))
		case errors.Is(err, cache.ErrCacheMiss), errors.Is(err, cache.ErrCacheDisabled):
			// recompute below
		default:
			s.logger.Warn("timeline cache read failed", zap.Int64("user", userID), zap.Error(err))
		}
	}

	snapshot, err := s.assemble(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		// Serving the fresh snapshot matters more than caching it
		s.logger.Warn("timeline cache write failed", zap.Int64("user", userID), zap.Error(err))
	}

	return snapshot, nil
}

// assemble computes a fresh snapshot: profile fields plus top-level,
// active, non-deleted posts from actively-followed users and the
// requester, most recently updated first, with per-post counts.
func (s *TimelineService) assemble(ctx context.Context, userID int64) (*TimelineSnapshot, error) {
	ctx, span := telemetry.StartSpan(ctx, "timeline.assemble")
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", userID)
	}

	authorIDs, err := s.follows.ActiveFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Self-inclusive feed
	authorIDs = append(authorIDs, userID)

	posts, err := s.posts.TimelinePosts(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	snapshot := &TimelineSnapshot{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName.String,
		LastName:  user.LastName.String,
		Posts:     make([]TimelinePost, 0, len(posts)),
	}

	for _, post := range posts {
		counts, err := postCounts(ctx, s.posts, s.interactions, post.ID)
		if err != nil {
			return nil, err
		}
		snapshot.Posts = append(snapshot.Posts, TimelinePost{
			ID:        post.ID,
			UserID:    post.UserID,
			Headline:  post.Headline.String,
			Body:      post.Body,
			IsActive:  post.IsActive,
			IsDeleted: post.IsDeleted,
			CreatedAt: post.CreatedAt,
			UpdatedAt: post.UpdatedAt,
			Likes:     counts.Likes,
			Comments:  counts.Comments,
			Shares:    counts.Shares,
			Reposts:   counts.Reposts,
		})
	}

	return snapshot, nil
}
