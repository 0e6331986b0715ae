package models

import (
	"database/sql"
	"time"
)

// User represents a platform user. Identity and credentials are managed
// by an external collaborator; this service only tracks profile fields
// and the derived follower/following counts.
type User struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Username  string         `gorm:"type:varchar(150);not null;uniqueIndex:blog_users_ux1;column:username"`
	Email     string         `gorm:"type:varchar(254);not null;default:'';column:email"`
	FirstName sql.NullString `gorm:"type:varchar(150);column:first_name"`
	LastName  sql.NullString `gorm:"type:varchar(150);column:last_name"`
	CreatedAt time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt time.Time      `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "blog_users"
}
