package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
)

// notify records that actor liked or commented on post. Acting on your own
// post never notifies. It runs inside the caller's transaction so the
// notification exists exactly when the like or comment does.
func notify(ctx context.Context, tx repositories.Store, kind string, actorID uint, post *models.Post) error {
	if post.UserID == actorID {
		return nil
	}
	n := &models.Notification{
		RecipientID: post.UserID,
		SenderID:    actorID,
		Type:        kind,
		PostID:      post.ID,
	}
	if err := tx.Notifications().CreateNotification(ctx, n); err != nil {
		return errors.Wrapf(err, "failed to create %s notification", kind)
	}
	return nil
}
