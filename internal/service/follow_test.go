package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divagicha/microblog/internal/models"
)

func TestFollowSelfFails(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewFollowService(repo)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")

	_, err := svc.Follow(ctx, alice.ID, alice.ID)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "self-follow should be a ValidationError, got %v", err)
}

func TestFollowCreatesActiveEdge(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewFollowService(repo)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	edge, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, edge.IsActive)
	// requester is the follower; target is the followed user
	assert.Equal(t, bob.ID, edge.UserID)
	assert.Equal(t, alice.ID, edge.FollowingUserID)
}

func TestFollowUnfollowRefollowReusesRow(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewFollowService(repo)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	first, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	unfollowed, err := svc.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, unfollowed.IsActive)
	assert.Equal(t, first.ID, unfollowed.ID)

	refollowed, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, refollowed.IsActive)
	assert.Equal(t, first.ID, refollowed.ID, "re-follow must reuse the existing row")

	var rows int64
	require.NoError(t, gdb.Model(&models.Follower{}).
		Where("user_id = ? AND following_user_id = ?", bob.ID, alice.ID).
		Count(&rows).Error)
	assert.EqualValues(t, 1, rows, "the pair must never grow a second row")
}

func TestFollowAlreadyActiveIsNoop(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewFollowService(repo)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	first, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	second, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsActive)
}

func TestFollowUnknownTargetFails(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewFollowService(repo)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")

	_, err := svc.Follow(ctx, alice.ID, 9999)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err), "expected NotFound, got %v", err)
}

func TestFollowDuplicateInsertSurfacesConstraint(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewFollowService(repo)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	// Simulate losing a concurrent race: the edge appears between the
	// service's pair lookup and its insert.
	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	dup := &models.Follower{UserID: bob.ID, FollowingUserID: alice.ID, IsActive: true}
	err = gdb.Create(dup).Error
	require.Error(t, err, "store must reject a second row for the pair")
}

func TestUnfollowWithoutEdgeIsNotFound(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewFollowService(repo)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	_, err := svc.Unfollow(ctx, alice.ID, bob.ID)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err), "expected NotFound, got %v", err)
}

func TestUnfollowInactiveEdgeIsNoop(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewFollowService(repo)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	edge, err := svc.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, edge.IsActive)
}
