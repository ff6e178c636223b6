package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// NotificationService is the recipient's view of notifications. There is no
// create operation: notifications come from the like and comment paths.
type NotificationService struct {
	store repositories.Store
}

func NewNotificationService(store repositories.Store) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) List(ctx context.Context, recipientID uint, unreadOnly bool, page Page) (PageResult[models.Notification], error) {
	items, total, err := s.store.Notifications().GetByRecipientID(ctx, recipientID, unreadOnly, page.window())
	if err != nil {
		return PageResult[models.Notification]{}, errors.Wrap(err, "failed to list notifications")
	}
	return newPageResult(items, page, total), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	count, err := s.store.Notifications().GetUnreadCount(ctx, recipientID)
	return count, errors.Wrap(err, "failed to count unread notifications")
}

// Get hides other users' notifications behind not found
func (s *NotificationService) Get(ctx context.Context, recipientID, id uint) (*models.Notification, error) {
	n, err := s.store.Notifications().GetNotificationByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Notification")
	}
	if n.RecipientID != recipientID {
		return nil, notFoundError("Notification not found")
	}
	return n, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, recipientID, id uint) (*models.Notification, error) {
	n, err := s.Get(ctx, recipientID, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Notifications().MarkAsRead(ctx, id); err != nil {
		return nil, errors.Wrap(err, "failed to mark notification as read")
	}
	n.IsRead = true
	return n, nil
}

// MarkAllAsRead returns the number of notifications that were unread
func (s *NotificationService) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	updated, err := s.store.Notifications().MarkAllAsRead(ctx, recipientID)
	return updated, errors.Wrap(err, "failed to mark notifications as read")
}

func (s *NotificationService) Delete(ctx context.Context, recipientID, id uint) error {
	if _, err := s.Get(ctx, recipientID, id); err != nil {
		return err
	}
	if err := s.store.Notifications().DeleteNotification(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to delete notification")
	}
	return nil
}
