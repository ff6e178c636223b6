package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"gorm.io/gorm"
)

type commentRepo struct{ s *Store }

func (r commentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("CreateComment"); err != nil {
		return err
	}
	comment.ID = r.s.next("comments")
	comment.CreatedAt = r.s.stamp(comment.CreatedAt)
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	stored.Post = nil
	r.s.comments[comment.ID] = stored
	return nil
}

func (r commentRepo) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r commentRepo) ListComments(ctx context.Context, postID uint, page repositories.Pagination) ([]models.Comment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Comment{}
	for _, c := range r.s.comments {
		if postID == 0 || c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return window(out, page), int64(len(out)), nil
}

func (r commentRepo) UpdateComment(ctx context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.comments[comment.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Content = comment.Content
	stored.UpdatedAt = r.s.Now()
	r.s.comments[comment.ID] = stored
	return nil
}

func (r commentRepo) DeleteComment(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.comments, id)
	return nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) CreateNotification(ctx context.Context, notification *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("CreateNotification"); err != nil {
		return err
	}
	notification.ID = r.s.next("notifications")
	notification.CreatedAt = r.s.stamp(notification.CreatedAt)
	stored := *notification
	stored.Post = nil
	r.s.notifications[notification.ID] = stored
	return nil
}

func (r notificationRepo) GetNotificationByID(ctx context.Context, id uint) (*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &n, nil
}

func (r notificationRepo) GetByRecipientID(ctx context.Context, recipientID uint, unreadOnly bool, page repositories.Pagination) ([]models.Notification, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Notification{}
	for _, n := range r.s.notifications {
		if n.RecipientID != recipientID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n)
	}
	newestFirst(out, func(n models.Notification) (time.Time, uint) { return n.CreatedAt, n.ID })
	return window(out, page), int64(len(out)), nil
}

func (r notificationRepo) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, n := range r.s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r notificationRepo) MarkAsRead(ctx context.Context, notificationID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n, ok := r.s.notifications[notificationID]; ok {
		n.IsRead = true
		r.s.notifications[notificationID] = n
	}
	return nil
}

func (r notificationRepo) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var updated int64
	for id, n := range r.s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			r.s.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}

func (r notificationRepo) DeleteNotification(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notifications[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

type messageRepo struct{ s *Store }

func (r messageRepo) CreateMessage(ctx context.Context, message *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("CreateMessage"); err != nil {
		return err
	}
	message.ID = r.s.next("messages")
	message.CreatedAt = r.s.stamp(message.CreatedAt)
	r.s.messages[message.ID] = *message
	return nil
}

func (r messageRepo) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r messageRepo) ListMessages(ctx context.Context, userID, peerID uint, page repositories.Pagination) ([]models.Message, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Message{}
	for _, m := range r.s.messages {
		mine := m.SenderID == userID || m.RecipientID == userID
		if !mine {
			continue
		}
		if peerID != 0 && m.SenderID != peerID && m.RecipientID != peerID {
			continue
		}
		out = append(out, m)
	}
	newestFirst(out, func(m models.Message) (time.Time, uint) { return m.CreatedAt, m.ID })
	return window(out, page), int64(len(out)), nil
}

func (r messageRepo) MarkAsRead(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.messages[id]; ok {
		m.IsRead = true
		r.s.messages[id] = m
	}
	return nil
}

func (r messageRepo) DeleteMessage(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.messages, id)
	return nil
}

type sharedPostRepo struct{ s *Store }

func (r sharedPostRepo) CreateSharedPost(ctx context.Context, share *models.SharedPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	share.ID = r.s.next("shared_posts")
	share.CreatedAt = r.s.stamp(share.CreatedAt)
	stored := *share
	stored.Post = nil
	r.s.shares[share.ID] = stored
	return nil
}

func (r sharedPostRepo) GetSharedPostByID(ctx context.Context, id uint) (*models.SharedPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.shares[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sh, nil
}

func (r sharedPostRepo) ListSharedPosts(ctx context.Context, filter repositories.SharedPostFilter, page repositories.Pagination) ([]models.SharedPost, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.SharedPost{}
	for _, sh := range r.s.shares {
		if filter.PostID != 0 && sh.PostID != filter.PostID {
			continue
		}
		if filter.UserID != 0 && sh.UserID != filter.UserID {
			continue
		}
		out = append(out, sh)
	}
	newestFirst(out, func(sh models.SharedPost) (time.Time, uint) { return sh.CreatedAt, sh.ID })
	return window(out, page), int64(len(out)), nil
}

func (r sharedPostRepo) UpdateSharedPost(ctx context.Context, share *models.SharedPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.shares[share.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Content = share.Content
	r.s.shares[share.ID] = stored
	return nil
}

func (r sharedPostRepo) DeleteSharedPost(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shares[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.deleteShareLocked(id)
	return nil
}
