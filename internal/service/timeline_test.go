package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineIncludesFollowedUsersPosts(t *testing.T) {
	gdb, repo := setupTestDB(t)
	_, c := setupTestCache(t)
	follows := NewFollowService(repo)
	svc := NewTimelineService(repo, c, time.Minute)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	post := seedPost(t, gdb, bob.ID, "hello", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	snapshot, err := svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)

	assert.Equal(t, alice.ID, snapshot.UserID)
	assert.Equal(t, "alice", snapshot.Username)
	require.Len(t, snapshot.Posts, 1)

	got := snapshot.Posts[0]
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, bob.ID, got.UserID)
	assert.Equal(t, "hello", got.Body)
	assert.EqualValues(t, 0, got.Likes)
	assert.EqualValues(t, 0, got.Comments)
	assert.EqualValues(t, 0, got.Shares)
	assert.EqualValues(t, 0, got.Reposts)
}

func TestTimelineIsSelfInclusiveAndOrdered(t *testing.T) {
	gdb, repo := setupTestDB(t)
	_, c := setupTestCache(t)
	follows := NewFollowService(repo)
	svc := NewTimelineService(repo, c, time.Minute)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")
	carol := seedUser(t, gdb, "carol")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	older := seedPost(t, gdb, alice.ID, "mine, older", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	newer := seedPost(t, gdb, bob.ID, "theirs, newer", time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))
	// Not followed: must not appear
	seedPost(t, gdb, carol.ID, "a stranger writes", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	snapshot, err := svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)

	require.Len(t, snapshot.Posts, 2)
	assert.Equal(t, newer.ID, snapshot.Posts[0].ID, "most recently updated first")
	assert.Equal(t, older.ID, snapshot.Posts[1].ID)
}

func TestTimelineExcludesInactiveDeletedCommentsAndUnfollowed(t *testing.T) {
	gdb, repo := setupTestDB(t)
	_, c := setupTestCache(t)
	follows := NewFollowService(repo)
	posts := NewPostService(repo)
	svc := NewTimelineService(repo, c, time.Minute)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	visible := seedPost(t, gdb, bob.ID, "visible", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	inactive := seedPost(t, gdb, bob.ID, "inactive", time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, gdb.Model(inactive).UpdateColumn("is_active", false).Error)
	deleted := seedPost(t, gdb, bob.ID, "deleted", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, gdb.Model(deleted).UpdateColumn("is_deleted", true).Error)
	_, err = posts.Create(ctx, CreatePostInput{AuthorID: bob.ID, Body: "a comment", ParentID: &visible.ID})
	require.NoError(t, err)

	snapshot, err := svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)
	require.Len(t, snapshot.Posts, 1)
	assert.Equal(t, visible.ID, snapshot.Posts[0].ID)

	// After unfollow the refreshed feed drops bob's posts
	_, err = follows.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	snapshot, err = svc.Get(ctx, alice.ID, true)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Posts)
}

func TestTimelineCacheIsAuthoritativeWithinTTL(t *testing.T) {
	gdb, repo := setupTestDB(t)
	_, c := setupTestCache(t)
	follows := NewFollowService(repo)
	svc := NewTimelineService(repo, c, time.Minute)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	seedPost(t, gdb, bob.ID, "first post", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	first, err := svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)

	// A qualifying post created after the snapshot must not appear
	seedPost(t, gdb, bob.ID, "second post", time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))

	second, err := svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "cached snapshot must be returned verbatim within TTL")
	require.Len(t, second.Posts, 1)
}

func TestTimelineForceRefreshSeesNewPosts(t *testing.T) {
	gdb, repo := setupTestDB(t)
	_, c := setupTestCache(t)
	follows := NewFollowService(repo)
	svc := NewTimelineService(repo, c, time.Minute)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	seedPost(t, gdb, bob.ID, "first post", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	_, err = svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)

	fresh := seedPost(t, gdb, bob.ID, "second post", time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))

	snapshot, err := svc.Get(ctx, alice.ID, true)
	require.NoError(t, err)
	require.Len(t, snapshot.Posts, 2)
	assert.Equal(t, fresh.ID, snapshot.Posts[0].ID, "new post must lead the refreshed feed")
}

func TestTimelineRecomputesAfterTTLExpiry(t *testing.T) {
	gdb, repo := setupTestDB(t)
	mr, c := setupTestCache(t)
	follows := NewFollowService(repo)
	svc := NewTimelineService(repo, c, time.Minute)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	bob := seedUser(t, gdb, "bob")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	seedPost(t, gdb, bob.ID, "first post", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	_, err = svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)

	seedPost(t, gdb, bob.ID, "second post", time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))
	mr.FastForward(2 * time.Minute)

	snapshot, err := svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.Len(t, snapshot.Posts, 2, "expired snapshot must be recomputed")
}

func TestTimelineWorksWithCacheDisabled(t *testing.T) {
	gdb, repo := setupTestDB(t)
	svc := NewTimelineService(repo, nil, time.Minute)
	ctx := context.Background()

	alice := seedUser(t, gdb, "alice")
	seedPost(t, gdb, alice.ID, "just me", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	snapshot, err := svc.Get(ctx, alice.ID, false)
	require.NoError(t, err)
	require.Len(t, snapshot.Posts, 1)
}
