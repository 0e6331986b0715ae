package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/divagicha/microblog/internal/cache"
	"github.com/divagicha/microblog/internal/db"
	"github.com/divagicha/microblog/internal/models"
	"github.com/divagicha/microblog/pkg/config"
)

func setupTestDB(t *testing.T) (*gorm.DB, *db.Repository) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{}, &models.Follower{}, &models.Post{}, &models.Interaction{},
	))
	return gdb, db.NewRepository(gdb)
}

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *cache.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.New(&config.RedisConfig{URL: "redis://" + mr.Addr(), Enabled: true})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return mr, c
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func seedPost(t *testing.T, gdb *gorm.DB, authorID int64, body string, updatedAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:    authorID,
		Slug:      models.Slugify(body, models.SlugSourceLimit),
		Body:      body,
		IsActive:  true,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	require.NoError(t, gdb.Create(post).Error)
	// gorm stamps UpdatedAt on create; pin it for deterministic ordering
	require.NoError(t, gdb.Model(post).UpdateColumn("updated_at", updatedAt).Error)
	post.UpdatedAt = updatedAt
	return post
}
