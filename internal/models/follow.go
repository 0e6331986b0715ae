package models

import (
	"time"
)

// Follower represents a directed follow edge: FollowingUserID follows
// UserID. An edge is created on first follow and never deleted;
// unfollow flips IsActive to false and a re-follow flips it back,
// reusing the same row. At most one row exists per ordered pair
// regardless of IsActive.
type Follower struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID          int64     `gorm:"not null;uniqueIndex:blog_followers_ux1;column:user_id"`
	FollowingUserID int64     `gorm:"not null;uniqueIndex:blog_followers_ux1;column:following_user_id"`
	IsActive        bool      `gorm:"not null;default:true;column:is_active"`
	CreatedAt       time.Time `gorm:"not null;column:created_at"`
	UpdatedAt       time.Time `gorm:"not null;column:updated_at"`

	// Relationships
	User          *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
	FollowingUser *User `gorm:"foreignKey:FollowingUserID;references:ID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for Follower
func (Follower) TableName() string {
	return "blog_followers"
}

// Validate enforces edge-level rules before any write
func (f *Follower) Validate() error {
	if f.UserID == f.FollowingUserID {
		return NewValidationError("following_user", "user and following_user can't be same")
	}
	return nil
}
