package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedShowsFollowedAuthorsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	viewer := createUser(t, store, "viewer")
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	stranger := createUser(t, store, "stranger")

	follows := NewFollowService(store)
	_, err := follows.Create(ctx, viewer.ID, alice.ID)
	require.NoError(t, err)
	_, err = follows.Create(ctx, viewer.ID, bob.ID)
	require.NoError(t, err)

	base := testNow.Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		author := alice.ID
		if i%2 == 1 {
			author = bob.ID
		}
		createPostAt(t, store, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}
	for i := 0; i < 3; i++ {
		createPostAt(t, store, stranger.ID, "noise", testNow)
	}
	createPostAt(t, store, viewer.ID, "my own", testNow)

	svc := NewFeedService(store, 0)
	page, err := svc.Feed(ctx, viewer.ID, FeedFilter{}, NewPage(1, 0))
	require.NoError(t, err)

	assert.EqualValues(t, 12, page.Total)
	require.Len(t, page.Items, DefaultPageSize)
	assert.Equal(t, "post 11", page.Items[0].Content)
	for i, post := range page.Items {
		assert.Contains(t, []uint{alice.ID, bob.ID}, post.UserID)
		if i > 0 {
			assert.False(t, post.CreatedAt.After(page.Items[i-1].CreatedAt))
		}
	}
	assert.Equal(t, 2, page.TotalPages())
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrevious())

	second, err := svc.Feed(ctx, viewer.ID, FeedFilter{}, NewPage(2, 0))
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "post 0", second.Items[1].Content)
	assert.False(t, second.HasNext())
}

func TestFeedTiesBreakOnHigherID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	viewer := createUser(t, store, "viewer")
	alice := createUser(t, store, "alice")
	_, err := NewFollowService(store).Create(ctx, viewer.ID, alice.ID)
	require.NoError(t, err)

	older := createPostAt(t, store, alice.ID, "first", testNow)
	newer := createPostAt(t, store, alice.ID, "second", testNow)

	page, err := NewFeedService(store, 0).Feed(ctx, viewer.ID, FeedFilter{}, NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, newer.ID, page.Items[0].ID)
	assert.Equal(t, older.ID, page.Items[1].ID)
}

func TestFeedWithoutFollowsIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	viewer := createUser(t, store, "viewer")
	alice := createUser(t, store, "alice")
	createPostAt(t, store, alice.ID, "hello", testNow)

	page, err := NewFeedService(store, 0).Feed(ctx, viewer.ID, FeedFilter{}, NewPage(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
}

func TestFeedFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	viewer := createUser(t, store, "viewer")
	alice := createUser(t, store, "alice")
	createUser(t, store, "bob")
	posts := NewPostService(store)

	tagged, err := posts.Create(ctx, alice.ID, models.CreatePostRequest{Content: "learning #GoLang with @bob"})
	require.NoError(t, err)
	hashtagOnly, err := posts.Create(ctx, alice.ID, models.CreatePostRequest{Content: "more #golang"})
	require.NoError(t, err)
	_, err = posts.Create(ctx, alice.ID, models.CreatePostRequest{Content: "#golangs is a different tag"})
	require.NoError(t, err)

	svc := NewFeedService(store, 0)

	byTag, err := svc.Feed(ctx, viewer.ID, FeedFilter{Hashtag: "#GOLANG"}, NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, byTag.Items, 2)
	assert.ElementsMatch(t, []uint{tagged.ID, hashtagOnly.ID}, []uint{byTag.Items[0].ID, byTag.Items[1].ID})

	byUser, err := svc.Feed(ctx, viewer.ID, FeedFilter{TaggedUsers: []string{"@bob, nobody"}}, NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, byUser.Items, 1)
	assert.Equal(t, tagged.ID, byUser.Items[0].ID)

	// hashtag wins over tagged users
	both, err := svc.Feed(ctx, viewer.ID, FeedFilter{Hashtag: "golang", TaggedUsers: []string{"nobody"}}, NewPage(1, 10))
	require.NoError(t, err)
	assert.Len(t, both.Items, 2)
}

func TestTrendingRanksByLikesWithinWindow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")

	p1 := createPostAt(t, store, alice.ID, "p1", testNow.Add(-1*time.Hour))
	p2 := createPostAt(t, store, alice.ID, "p2", testNow.Add(-23*time.Hour))
	old := createPostAt(t, store, alice.ID, "old", testNow.Add(-25*time.Hour))
	addLikes(t, store, p1.ID, 100, 5)
	addLikes(t, store, p2.ID, 100, 2)
	addLikes(t, store, old.ID, 100, 20)

	svc := NewFeedService(store, 0)
	svc.now = func() time.Time { return testNow }

	posts, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p1.ID, posts[0].ID)
	assert.Equal(t, p2.ID, posts[1].ID)
}

func TestTrendingCountsLikesThroughShares(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	direct := createPostAt(t, store, alice.ID, "direct", testNow.Add(-time.Hour))
	shared := createPostAt(t, store, alice.ID, "shared", testNow.Add(-2*time.Hour))
	addLikes(t, store, direct.ID, 100, 3)
	addLikes(t, store, shared.ID, 100, 1)

	share := &models.SharedPost{PostID: shared.ID, UserID: bob.ID}
	require.NoError(t, store.SharedPosts().CreateSharedPost(ctx, share))
	for i := uint(0); i < 3; i++ {
		like := &models.Like{PostID: shared.ID, UserID: 200 + i, SharedPostID: &share.ID, IsRepost: true}
		require.NoError(t, store.Likes().CreateLike(ctx, like))
	}

	svc := NewFeedService(store, 0)
	svc.now = func() time.Time { return testNow }

	posts, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, shared.ID, posts[0].ID)
	assert.Equal(t, direct.ID, posts[1].ID)
}

func TestTrendingLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	for i := 0; i < TrendingLimit+5; i++ {
		createPostAt(t, store, alice.ID, "p", testNow.Add(-time.Duration(i)*time.Minute))
	}

	svc := NewFeedService(store, 0)
	svc.now = func() time.Time { return testNow }

	posts, err := svc.Trending(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, TrendingLimit)
}

func TestTrendingCache(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	first := createPostAt(t, store, alice.ID, "first", testNow.Add(-time.Hour))
	addLikes(t, store, first.ID, 100, 1)

	now := testNow
	svc := NewFeedService(store, time.Minute)
	svc.now = func() time.Time { return now }

	posts, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	second := createPostAt(t, store, alice.ID, "second", testNow)
	addLikes(t, store, second.ID, 100, 5)

	posts, err = svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1, "served from cache")

	now = now.Add(2 * time.Minute)
	posts, err = svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
}

func TestTrendingCacheDropsPostsThatLeftTheWindow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	aging := createPostAt(t, store, alice.ID, "aging", testNow.Add(-23*time.Hour-50*time.Minute))
	fresh := createPostAt(t, store, alice.ID, "fresh", testNow.Add(-time.Hour))
	addLikes(t, store, aging.ID, 100, 3)
	addLikes(t, store, fresh.ID, 100, 1)

	now := testNow
	svc := NewFeedService(store, time.Hour)
	svc.now = func() time.Time { return now }

	posts, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	now = now.Add(20 * time.Minute)
	posts, err = svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, fresh.ID, posts[0].ID)
}

func TestRankTrending(t *testing.T) {
	scores := []models.PostScore{
		{PostID: 1, CreatedAt: testNow.Add(-3 * time.Hour), DirectLikes: 2},
		{PostID: 2, CreatedAt: testNow.Add(-1 * time.Hour), DirectLikes: 1, ShareLikes: 1},
		{PostID: 3, CreatedAt: testNow.Add(-1 * time.Hour), DirectLikes: 2},
		{PostID: 4, CreatedAt: testNow, DirectLikes: 7},
	}
	assert.Equal(t, []uint{4, 3, 2, 1}, rankTrending(scores, 10))
	assert.Equal(t, []uint{4, 3}, rankTrending(scores, 2))
	assert.Empty(t, rankTrending(nil, 10))
}
