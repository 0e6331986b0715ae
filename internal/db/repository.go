package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/divagicha/microblog/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// List retrieves users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// FindPair retrieves the edge for an ordered (followed, follower) pair,
// active or not. At most one such row can exist.
func (r *FollowRepository) FindPair(ctx context.Context, userID, followingUserID int64) (*models.Follower, error) {
	var edge models.Follower
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND following_user_id = ?", userID, followingUserID).
		First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &edge, nil
}

// Create creates a new follow edge
func (r *FollowRepository) Create(ctx context.Context, edge *models.Follower) error {
	return r.db.WithContext(ctx).Create(edge).Error
}

// Save persists changes to an existing edge
func (r *FollowRepository) Save(ctx context.Context, edge *models.Follower) error {
	return r.db.WithContext(ctx).Save(edge).Error
}

// CountFollowers counts active followers of a user
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// CountFollowing counts users a user actively follows
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).
		Where("following_user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// ActiveFollowingIDs returns the ids of users that followerID actively follows
func (r *FollowRepository) ActiveFollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).
		Where("following_user_id = ? AND is_active = ?", followerID, true).
		Pluck("user_id", &ids).Error
	return ids, err
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// UpdateSlug rewrites the slug of an existing post. Comment slugs embed
// the row's own id, so they are written in a second pass after insert.
func (r *PostRepository) UpdateSlug(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Model(post).Update("slug", post.Slug).Error
}

// ListTopLevel retrieves non-deleted top-level posts, newest first
func (r *PostRepository) ListTopLevel(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL AND is_deleted = ?", false).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// TimelinePosts retrieves active, non-deleted top-level posts authored
// by any of the given users, most recently updated first.
func (r *PostRepository) TimelinePosts(ctx context.Context, authorIDs []int64) ([]*models.Post, error) {
	var posts []*models.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id IN ? AND parent_id IS NULL AND is_active = ? AND is_deleted = ?",
			authorIDs, true, false).
		Order("updated_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListActiveComments retrieves the active comments on a post
func (r *PostRepository) ListActiveComments(ctx context.Context, postID int64) ([]*models.Post, error) {
	var comments []*models.Post
	if err := r.db.WithContext(ctx).
		Where("parent_id = ? AND is_active = ?", postID, true).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CountActiveComments counts the active comments on a post
func (r *PostRepository) CountActiveComments(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("parent_id = ? AND is_active = ?", postID, true).
		Count(&count).Error
	return count, err
}

// InteractionRepository provides interaction database operations
type InteractionRepository struct {
	*Repository
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(repo *Repository) *InteractionRepository {
	return &InteractionRepository{Repository: repo}
}

// Create creates a new interaction
func (r *InteractionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

// ListByPost retrieves interactions on a post, optionally filtered to a
// named activity. An unrecognized activity name falls back to unfiltered.
func (r *InteractionRepository) ListByPost(ctx context.Context, postID int64, activity string) ([]*models.Interaction, error) {
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if parsed, err := models.ParseActivity(activity); err == nil {
		q = q.Where("activity = ?", parsed)
	}
	var interactions []*models.Interaction
	if err := q.Find(&interactions).Error; err != nil {
		return nil, err
	}
	return interactions, nil
}

// CountByActivity counts interactions of one activity on a post
func (r *InteractionRepository) CountByActivity(ctx context.Context, postID int64, activity models.Activity) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("post_id = ? AND activity = ?", postID, activity).
		Count(&count).Error
	return count, err
}
