package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreateRejectsEmptyContent(t *testing.T) {
	store := newTestStore()
	alice := createUser(t, store, "alice")

	_, err := NewPostService(store).Create(context.Background(), alice.ID, models.CreatePostRequest{Content: " \n\t "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPostCreateKeepsContentAsWritten(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	svc := NewPostService(store)

	post, err := svc.Create(ctx, alice.ID, models.CreatePostRequest{Content: "  if x<y then #golang @bob  "})
	require.NoError(t, err)
	assert.Equal(t, "if x<y then #golang @bob", post.Content)
	require.Len(t, post.Hashtags, 1)
	assert.Equal(t, "golang", post.Hashtags[0].Name)
	require.Len(t, post.TaggedUsers, 1)
	assert.Equal(t, bob.ID, post.TaggedUsers[0].ID)

	escaped, err := svc.Create(ctx, alice.ID, models.CreatePostRequest{Content: "&lt;b&gt; a &amp; b #tag"})
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt; a &amp; b #tag", escaped.Content)
}

func TestPostUpdateByOtherUserIsForbidden(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	svc := NewPostService(store)

	post, err := svc.Create(ctx, alice.ID, models.CreatePostRequest{Content: "original #tag"})
	require.NoError(t, err)

	content := "hijacked"
	_, err = svc.Update(ctx, bob.ID, post.ID, models.UpdatePostRequest{Content: &content})
	require.ErrorIs(t, err, ErrForbidden)
	assert.EqualError(t, err, "You can only update your own posts.")

	stored, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original #tag", stored.Content)
	require.Len(t, stored.Hashtags, 1)
}

func TestPostDeleteByOtherUserIsForbidden(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	svc := NewPostService(store)

	post, err := svc.Create(ctx, alice.ID, models.CreatePostRequest{Content: "keep me"})
	require.NoError(t, err)

	err = svc.Delete(ctx, bob.ID, post.ID)
	require.ErrorIs(t, err, ErrForbidden)

	stored, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", stored.Content)
}

func TestPostDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	posts := NewPostService(store)

	post, err := posts.Create(ctx, alice.ID, models.CreatePostRequest{Content: "bye"})
	require.NoError(t, err)
	_, err = NewLikeService(store).Toggle(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	comment, err := NewCommentService(store).Create(ctx, bob.ID, models.CreateCommentRequest{PostID: post.ID, Content: "nice"})
	require.NoError(t, err)
	require.Equal(t, 2, store.NotificationCount())

	require.NoError(t, posts.Delete(ctx, alice.ID, post.ID))

	_, err = posts.Get(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = NewCommentService(store).Get(ctx, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.NotificationCount())
}

func TestPostGetMissing(t *testing.T) {
	_, err := NewPostService(newTestStore()).Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Post not found")
}
