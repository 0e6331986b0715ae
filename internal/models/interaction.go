package models

import (
	"time"
)

// Activity is the closed set of actions a user can take on a post.
type Activity string

// Recognized activities
const (
	ActivityLike   Activity = "like"
	ActivityShare  Activity = "share"
	ActivityRepost Activity = "repost"
)

// ParseActivity validates an activity name against the closed set
func ParseActivity(name string) (Activity, error) {
	switch Activity(name) {
	case ActivityLike:
		return ActivityLike, nil
	case ActivityShare:
		return ActivityShare, nil
	case ActivityRepost:
		return ActivityRepost, nil
	default:
		return "", NewValidationError("activity", "activity must be one of like, share, repost")
	}
}

// Valid reports whether a is a recognized activity
func (a Activity) Valid() bool {
	_, err := ParseActivity(string(a))
	return err == nil
}

// String implements fmt.Stringer
func (a Activity) String() string {
	return string(a)
}

// Interaction represents a like/share/repost on a post
type Interaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"not null;column:user_id"`
	PostID    int64     `gorm:"not null;column:post_id"`
	Activity  Activity  `gorm:"type:varchar(20);not null;column:activity"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for Interaction
func (Interaction) TableName() string {
	return "blog_post_interactions"
}

// ValidateAgainst enforces interaction rules for the target post
func (i *Interaction) ValidateAgainst(post *Post) error {
	if !i.Activity.Valid() {
		return NewValidationError("activity", "activity must be one of like, share, repost")
	}
	if i.Activity != ActivityLike && post.IsComment() {
		return NewValidationError("activity", "comments can only be liked and can't be shared or reposted")
	}
	if !post.IsActive {
		return NewValidationError("post", "can't publish activity on an inactive post")
	}
	return nil
}
