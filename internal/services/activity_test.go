package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentNotifiesAuthorOnly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	post := createPostAt(t, store, alice.ID, "post", testNow)
	svc := NewCommentService(store)

	_, err := svc.Create(ctx, alice.ID, models.CreateCommentRequest{PostID: post.ID, Content: "my own"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.NotificationCount())

	comment, err := svc.Create(ctx, bob.ID, models.CreateCommentRequest{PostID: post.ID, Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, 1, store.NotificationCount())

	page, err := NewNotificationService(store).List(ctx, alice.ID, false, NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, models.NotificationTypeComment, page.Items[0].Type)
	assert.Equal(t, bob.ID, page.Items[0].SenderID)

	_, err = svc.Update(ctx, alice.ID, comment.ID, models.UpdateCommentRequest{Content: "edited"})
	assert.ErrorIs(t, err, ErrForbidden)
	updated, err := svc.Update(ctx, bob.ID, comment.ID, models.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, comment.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, bob.ID, comment.ID))
}

func TestCommentRollsBackWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	post := createPostAt(t, store, alice.ID, "post", testNow)
	svc := NewCommentService(store)

	store.FailNext("CreateNotification", assert.AnError)
	_, err := svc.Create(ctx, bob.ID, models.CreateCommentRequest{PostID: post.ID, Content: "lost"})
	require.Error(t, err)

	page, err := svc.List(ctx, post.ID, NewPage(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCommentOnMissingPost(t *testing.T) {
	store := newTestStore()
	bob := createUser(t, store, "bob")

	_, err := NewCommentService(store).Create(context.Background(), bob.ID, models.CreateCommentRequest{PostID: 12, Content: "hello"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotificationsBelongToRecipient(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	first := createPostAt(t, store, alice.ID, "one", testNow)
	second := createPostAt(t, store, alice.ID, "two", testNow)
	likes := NewLikeService(store)
	_, err := likes.Toggle(ctx, bob.ID, first.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, bob.ID, second.ID)
	require.NoError(t, err)

	svc := NewNotificationService(store)
	page, err := svc.List(ctx, alice.ID, true, NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	id := page.Items[0].ID

	_, err = svc.Get(ctx, bob.ID, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.MarkAsRead(ctx, bob.ID, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, id), ErrNotFound)

	n, err := svc.MarkAsRead(ctx, alice.ID, id)
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	count, err := svc.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	updated, err := svc.MarkAllAsRead(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated)

	unread, err := svc.List(ctx, alice.ID, true, NewPage(1, 10))
	require.NoError(t, err)
	assert.Empty(t, unread.Items)

	require.NoError(t, svc.Delete(ctx, alice.ID, id))
	assert.Equal(t, 1, store.NotificationCount())
}

func TestMessageOwnership(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")
	svc := NewMessageService(store)

	_, err := svc.Send(ctx, alice.ID, models.CreateMessageRequest{Recipient: 404, Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)

	msg, err := svc.Send(ctx, alice.ID, models.CreateMessageRequest{Recipient: bob.ID, Content: "hi bob"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, alice.ID, models.CreateMessageRequest{Recipient: carol.ID, Content: "hi carol"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, carol.ID, msg.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.MarkAsRead(ctx, alice.ID, msg.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	read, err := svc.MarkAsRead(ctx, bob.ID, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	convo, err := svc.List(ctx, alice.ID, bob.ID, NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, convo.Items, 1)
	assert.Equal(t, msg.ID, convo.Items[0].ID)

	all, err := svc.List(ctx, alice.ID, 0, NewPage(1, 10))
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, msg.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, alice.ID, msg.ID))
}

func TestSharedPostOwnership(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	post := createPostAt(t, store, alice.ID, "share me", testNow)
	svc := NewSharedPostService(store)

	_, err := svc.Create(ctx, bob.ID, models.CreateSharedPostRequest{PostID: 77})
	assert.ErrorIs(t, err, ErrNotFound)

	share, err := svc.Create(ctx, bob.ID, models.CreateSharedPostRequest{PostID: post.ID})
	require.NoError(t, err)

	content := "look at this"
	_, err = svc.Update(ctx, alice.ID, share.ID, models.UpdateSharedPostRequest{Content: &content})
	assert.ErrorIs(t, err, ErrForbidden)
	updated, err := svc.Update(ctx, bob.ID, share.ID, models.UpdateSharedPostRequest{Content: &content})
	require.NoError(t, err)
	require.NotNil(t, updated.Content)
	assert.Equal(t, content, *updated.Content)

	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, share.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, bob.ID, share.ID))
}

func TestHashtagCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewHashtagService(newTestStore())

	tag, err := svc.Create(ctx, "#GoLang")
	require.NoError(t, err)
	assert.Equal(t, "golang", tag.Name)

	_, err = svc.Create(ctx, "golang")
	require.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, `Hashtag "golang" already exists.`)

	_, err = svc.Create(ctx, "two words")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, strings.Repeat("x", MaxHashtagLength+1))
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.Delete(ctx, tag.ID))
	_, err = svc.Get(ctx, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserProfileAndSearch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	alice := createUser(t, store, "alice")
	createUser(t, store, "bob")
	createUser(t, store, "alicia")
	svc := NewUserService(store)

	taken := "bob"
	_, err := svc.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{Username: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	bio := "  <3 gophers "
	user, err := svc.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "<3 gophers", user.Bio)

	found, err := svc.Search(ctx, "ALI")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "alice", found[0].Username)

	_, err = svc.Search(ctx, "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

type memoryMedia struct {
	objects map[string][]byte
}

func (m *memoryMedia) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[objectName] = data
	return "https://media.test/" + objectName, nil
}

func TestMediaUpload(t *testing.T) {
	ctx := context.Background()
	media := &memoryMedia{objects: map[string][]byte{}}
	svc := NewMediaService(media, 8)

	_, err := svc.Upload(ctx, "a.png", "image/png", 0, bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Upload(ctx, "a.png", "image/png", 9, bytes.NewReader(make([]byte, 9)))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Upload(ctx, "a.txt", "text/plain", 4, strings.NewReader("text"))
	assert.ErrorIs(t, err, ErrValidation)

	url, err := svc.Upload(ctx, "Photo.PNG", "image/png", 4, strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://media.test/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Len(t, media.objects, 1)
}
