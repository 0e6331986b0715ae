package models

import (
	"database/sql"
	"fmt"
	"time"
)

// Post represents a top-level post or, when ParentID is set, a comment
// on that post. IsDeleted hides a post from the platform without
// removing the row; IsActive gates whether interactions and comments
// may target it.
type Post struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64          `gorm:"not null;column:user_id"`
	Slug      string         `gorm:"type:varchar(128);not null;uniqueIndex:blog_posts_ux1;column:slug"`
	Headline  sql.NullString `gorm:"type:varchar(250);column:headline"`
	Body      string         `gorm:"type:text;not null;column:body"`
	IsActive  bool           `gorm:"not null;default:true;column:is_active"`
	IsDeleted bool           `gorm:"not null;default:false;column:is_deleted"`
	ParentID  sql.NullInt64  `gorm:"column:parent_id"`
	CreatedAt time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt time.Time      `gorm:"not null;column:updated_at"`

	// Relationships
	User     *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
	Parent   *Post  `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:RESTRICT"`
	Comments []Post `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "blog_posts"
}

// IsComment reports whether the post is a comment on another post
func (p *Post) IsComment() bool {
	return p.ParentID.Valid
}

// Validate enforces post-level rules before any write
func (p *Post) Validate() error {
	if p.IsComment() && p.Headline.Valid && p.Headline.String != "" {
		return NewValidationError("headline", "comment can't have headline")
	}
	return nil
}

// DeriveSlug computes the post's slug. Top-level slugs come from the
// body; comment slugs embed the parent id and the row's own id, so for
// comments this must run after the insert assigns an id.
func (p *Post) DeriveSlug() string {
	if !p.IsComment() {
		return Slugify(p.Body, SlugSourceLimit)
	}
	return fmt.Sprintf("thread-%d-comment-%d", p.ParentID.Int64, p.ID)
}
