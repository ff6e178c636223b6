package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// MessageService handles direct messages. Only the two participants can see
// a message; everyone else gets not found.
type MessageService struct {
	store repositories.Store
}

func NewMessageService(store repositories.Store) *MessageService {
	return &MessageService{store: store}
}

func (s *MessageService) Send(ctx context.Context, actorID uint, req models.CreateMessageRequest) (*models.Message, error) {
	if _, err := s.store.Users().GetUserByID(ctx, req.Recipient); err != nil {
		return nil, lookupError(err, "Recipient")
	}
	content := trimText(req.Content)
	if content == "" {
		return nil, validationError("Message content cannot be empty")
	}
	msg := &models.Message{SenderID: actorID, RecipientID: req.Recipient, Content: content}
	if err := s.store.Messages().CreateMessage(ctx, msg); err != nil {
		return nil, errors.Wrap(err, "failed to send message")
	}
	return msg, nil
}

func (s *MessageService) Get(ctx context.Context, actorID, id uint) (*models.Message, error) {
	msg, err := s.store.Messages().GetMessageByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Message")
	}
	if msg.SenderID != actorID && msg.RecipientID != actorID {
		return nil, notFoundError("Message not found")
	}
	return msg, nil
}

// List returns the actor's messages, newest first. A non-zero peerID narrows
// the list to the conversation with that user.
func (s *MessageService) List(ctx context.Context, actorID, peerID uint, page Page) (PageResult[models.Message], error) {
	msgs, total, err := s.store.Messages().ListMessages(ctx, actorID, peerID, page.window())
	if err != nil {
		return PageResult[models.Message]{}, errors.Wrap(err, "failed to list messages")
	}
	return newPageResult(msgs, page, total), nil
}

// MarkAsRead is a read receipt, so only the recipient may send it
func (s *MessageService) MarkAsRead(ctx context.Context, actorID, id uint) (*models.Message, error) {
	msg, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if msg.RecipientID != actorID {
		return nil, forbiddenError("Only the recipient can mark a message as read.")
	}
	if err := s.store.Messages().MarkAsRead(ctx, id); err != nil {
		return nil, errors.Wrap(err, "failed to mark message as read")
	}
	msg.IsRead = true
	return msg, nil
}

func (s *MessageService) Delete(ctx context.Context, actorID, id uint) error {
	msg, err := s.Get(ctx, actorID, id)
	if err != nil {
		return err
	}
	if msg.SenderID != actorID {
		return forbiddenError("You can only delete messages you sent.")
	}
	if err := s.store.Messages().DeleteMessage(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to delete message")
	}
	return nil
}
