package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories/repotest"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestStore() *repotest.Store {
	store := repotest.New()
	store.Now = func() time.Time { return testNow }
	return store
}

func createUser(t *testing.T, store *repotest.Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, store.Users().CreateUser(context.Background(), user))
	return user
}

// createPostAt bypasses PostService so tests control CreatedAt
func createPostAt(t *testing.T, store *repotest.Store, authorID uint, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{UserID: authorID, Content: content, CreatedAt: createdAt}
	require.NoError(t, store.Posts().CreatePost(context.Background(), post))
	return post
}

func addLikes(t *testing.T, store *repotest.Store, postID uint, firstUserID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		like := &models.Like{PostID: postID, UserID: firstUserID + uint(i)}
		require.NoError(t, store.Likes().CreateLike(context.Background(), like))
	}
}
