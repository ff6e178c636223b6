package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with foreign keys on
// and the production schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func mustUser(t *testing.T, store repositories.Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, store.Users().CreateUser(context.Background(), user))
	return user
}

func mustPost(t *testing.T, store repositories.Store, authorID uint, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{UserID: authorID, Content: content, CreatedAt: createdAt}
	require.NoError(t, store.Posts().CreatePost(context.Background(), post))
	return post
}

func mustLikes(t *testing.T, store repositories.Store, postID uint, sharedPostID *uint, users []*models.User) {
	t.Helper()
	for _, u := range users {
		like := &models.Like{PostID: postID, UserID: u.ID, SharedPostID: sharedPostID, IsRepost: sharedPostID != nil}
		require.NoError(t, store.Likes().CreateLike(context.Background(), like))
	}
}

func likers(t *testing.T, store repositories.Store, n int) []*models.User {
	t.Helper()
	users := make([]*models.User, n)
	for i := range users {
		users[i] = mustUser(t, store, "liker_"+string(rune('a'+i)))
	}
	return users
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func TestTrendingCandidatesCountDirectAndShareLikes(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewGormStore(newTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)
	alice := mustUser(t, store, "alice")
	sharer := mustUser(t, store, "sharer")
	fans := likers(t, store, 9)

	p1 := mustPost(t, store, alice.ID, "p1", now.Add(-time.Hour))
	p2 := mustPost(t, store, alice.ID, "p2", now.Add(-23*time.Hour))
	old := mustPost(t, store, alice.ID, "old", now.Add(-25*time.Hour))

	mustLikes(t, store, p1.ID, nil, fans[:5])
	mustLikes(t, store, p2.ID, nil, fans[:2])
	mustLikes(t, store, old.ID, nil, fans)

	share := &models.SharedPost{PostID: p2.ID, UserID: sharer.ID}
	require.NoError(t, store.SharedPosts().CreateSharedPost(ctx, share))
	mustLikes(t, store, p2.ID, &share.ID, fans[2:4])

	scores, err := store.Posts().ListTrendingCandidates(ctx, now.Add(-services.TrendingWindow))
	require.NoError(t, err)
	require.Len(t, scores, 2)

	byID := map[uint]models.PostScore{}
	for _, s := range scores {
		byID[s.PostID] = s
	}
	assert.EqualValues(t, 5, byID[p1.ID].DirectLikes)
	assert.EqualValues(t, 0, byID[p1.ID].ShareLikes)
	assert.EqualValues(t, 2, byID[p2.ID].DirectLikes)
	assert.EqualValues(t, 2, byID[p2.ID].ShareLikes)
	assert.NotContains(t, byID, old.ID)

	posts, err := services.NewFeedService(store, 0).Trending(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p1.ID, posts[0].ID)
	assert.Equal(t, p2.ID, posts[1].ID)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "alice", posts[0].Author.Username)
}

func TestFeedOrderingAndPagination(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewGormStore(newTestDB(t))
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	viewer := mustUser(t, store, "viewer")
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	stranger := mustUser(t, store, "stranger")

	require.NoError(t, store.Follows().CreateFollow(ctx, &models.Follow{FollowerID: viewer.ID, FollowedID: alice.ID}))
	require.NoError(t, store.Follows().CreateFollow(ctx, &models.Follow{FollowerID: viewer.ID, FollowedID: bob.ID}))

	var want []uint
	for i := 0; i < 12; i++ {
		author := alice.ID
		if i%2 == 1 {
			author = bob.ID
		}
		p := mustPost(t, store, author, "post", base.Add(time.Duration(i)*time.Minute))
		want = append([]uint{p.ID}, want...)
	}
	// same timestamp as the newest post: the higher id comes first
	tie := mustPost(t, store, alice.ID, "tie", base.Add(11*time.Minute))
	want = append([]uint{tie.ID}, want...)
	mustPost(t, store, stranger.ID, "noise", base.Add(time.Hour))

	feed := services.NewFeedService(store, 0)
	first, err := feed.Feed(ctx, viewer.ID, services.FeedFilter{}, services.NewPage(1, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 13, first.Total)
	require.Len(t, first.Items, services.DefaultPageSize)

	second, err := feed.Feed(ctx, viewer.ID, services.FeedFilter{}, services.NewPage(2, 0))
	require.NoError(t, err)
	require.Len(t, second.Items, 3)

	var got []uint
	for _, p := range append(first.Items, second.Items...) {
		got = append(got, p.ID)
	}
	assert.Equal(t, want, got)

	past, err := feed.Feed(ctx, viewer.ID, services.FeedFilter{}, services.NewPage(services.MaxPageNumber, services.MaxPageSize))
	require.NoError(t, err)
	assert.Empty(t, past.Items)
}

func TestHashtagAndTaggedUserFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := repositories.NewGormStore(db)
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	viewer := mustUser(t, store, "viewer")
	posts := services.NewPostService(store)

	tagged, err := posts.Create(ctx, alice.ID, models.CreatePostRequest{Content: "if x<y then #GoLang @bob @ghost"})
	require.NoError(t, err)
	assert.Equal(t, "if x<y then #GoLang @bob @ghost", tagged.Content)
	require.Len(t, tagged.Hashtags, 1)
	assert.Equal(t, "golang", tagged.Hashtags[0].Name)
	require.Len(t, tagged.TaggedUsers, 1)
	assert.Equal(t, bob.ID, tagged.TaggedUsers[0].ID)

	plain, err := posts.Create(ctx, alice.ID, models.CreatePostRequest{Content: "more #golang"})
	require.NoError(t, err)
	_, err = posts.Create(ctx, alice.ID, models.CreatePostRequest{Content: "#golangs"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, countRows(t, db, "hashtags"))

	feed := services.NewFeedService(store, 0)
	byTag, err := feed.Feed(ctx, viewer.ID, services.FeedFilter{Hashtag: "#GOLANG"}, services.NewPage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, byTag.Total)
	require.Len(t, byTag.Items, 2)
	assert.ElementsMatch(t, []uint{tagged.ID, plain.ID}, []uint{byTag.Items[0].ID, byTag.Items[1].ID})

	byUser, err := feed.Feed(ctx, viewer.ID, services.FeedFilter{TaggedUsers: []string{"@bob,nobody"}}, services.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, byUser.Items, 1)
	assert.Equal(t, tagged.ID, byUser.Items[0].ID)

	// editing replaces the derived sets
	content := "now about #rust"
	updated, err := posts.Update(ctx, alice.ID, tagged.ID, models.UpdatePostRequest{Content: &content})
	require.NoError(t, err)
	require.Len(t, updated.Hashtags, 1)
	assert.Equal(t, "rust", updated.Hashtags[0].Name)
	assert.Empty(t, updated.TaggedUsers)
}

func TestGetOrCreateHashtagIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := repositories.NewGormStore(db)

	first, err := store.Hashtags().GetOrCreateHashtag(ctx, "go")
	require.NoError(t, err)
	second, err := store.Hashtags().GetOrCreateHashtag(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 1, countRows(t, db, "hashtags"))
}

func TestUniqueViolationsTranslateToDuplicatedKey(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewGormStore(newTestDB(t))
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	post := mustPost(t, store, alice.ID, "post", time.Now().UTC())

	require.NoError(t, store.Likes().CreateLike(ctx, &models.Like{PostID: post.ID, UserID: bob.ID}))
	err := store.Likes().CreateLike(ctx, &models.Like{PostID: post.ID, UserID: bob.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, store.Follows().CreateFollow(ctx, &models.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))
	err = store.Follows().CreateFollow(ctx, &models.Follow{FollowerID: bob.ID, FollowedID: alice.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = store.Users().CreateUser(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = store.Hashtags().CreateHashtag(ctx, &models.Hashtag{Name: "x"})
	require.NoError(t, err)
	err = store.Hashtags().CreateHashtag(ctx, &models.Hashtag{Name: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestToggleAndFollowOnRealStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := repositories.NewGormStore(db)
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	post := mustPost(t, store, alice.ID, "post", time.Now().UTC())
	likes := services.NewLikeService(store)

	result, err := likes.Toggle(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, services.Liked, result)
	result, err = likes.Toggle(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, services.Unliked, result)
	assert.EqualValues(t, 0, countRows(t, db, "likes"))
	assert.EqualValues(t, 1, countRows(t, db, "notifications"))

	follows := services.NewFollowService(store)
	_, err = follows.Create(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = follows.Create(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := repositories.NewGormStore(db)
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	post := mustPost(t, store, alice.ID, "post", time.Now().UTC())

	boom := errors.New("notification insert failed")
	err := store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Likes().CreateLike(ctx, &models.Like{PostID: post.ID, UserID: bob.ID}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.EqualValues(t, 0, countRows(t, db, "likes"))
}

func TestDeletePostCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := repositories.NewGormStore(db)
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	carol := mustUser(t, store, "carol")

	post, err := services.NewPostService(store).Create(ctx, alice.ID, models.CreatePostRequest{Content: "bye #go @bob"})
	require.NoError(t, err)
	_, err = services.NewLikeService(store).Toggle(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	_, err = services.NewCommentService(store).Create(ctx, bob.ID, models.CreateCommentRequest{PostID: post.ID, Content: "nice"})
	require.NoError(t, err)
	share, err := services.NewSharedPostService(store).Create(ctx, bob.ID, models.CreateSharedPostRequest{PostID: post.ID})
	require.NoError(t, err)
	_, err = services.NewLikeService(store).Create(ctx, carol.ID, models.CreateLikeRequest{SharedPostID: &share.ID})
	require.NoError(t, err)

	require.NoError(t, store.Posts().DeletePost(ctx, post.ID))

	for _, table := range []string{"posts", "likes", "comments", "notifications", "shared_posts", "post_hashtags", "post_tagged_users"} {
		assert.EqualValues(t, 0, countRows(t, db, table), table)
	}
	assert.EqualValues(t, 1, countRows(t, db, "hashtags"))
	assert.EqualValues(t, 3, countRows(t, db, "users"))

	assert.ErrorIs(t, store.Posts().DeletePost(ctx, post.ID), gorm.ErrRecordNotFound)
}
