package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentService struct {
	store repositories.Store
}

func NewCommentService(store repositories.Store) *CommentService {
	return &CommentService{store: store}
}

// Create stores the comment and notifies the post author in one transaction
func (s *CommentService) Create(ctx context.Context, actorID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	content := trimText(req.Content)
	if content == "" {
		return nil, validationError("Comment content cannot be empty")
	}

	comment := &models.Comment{PostID: req.PostID, UserID: actorID, Content: content}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, req.PostID)
		if err != nil {
			return lookupError(err, "Post")
		}
		if err := tx.Comments().CreateComment(ctx, comment); err != nil {
			return errors.Wrap(err, "failed to create comment")
		}
		return notify(ctx, tx, models.NotificationTypeComment, actorID, post)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.store.Comments().GetCommentByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Comment")
	}
	return comment, nil
}

// List returns comments oldest first. postID 0 lists all comments.
func (s *CommentService) List(ctx context.Context, postID uint, page Page) (PageResult[models.Comment], error) {
	comments, total, err := s.store.Comments().ListComments(ctx, postID, page.window())
	if err != nil {
		return PageResult[models.Comment]{}, errors.Wrap(err, "failed to list comments")
	}
	return newPageResult(comments, page, total), nil
}

func (s *CommentService) Update(ctx context.Context, actorID, id uint, req models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, forbiddenError("You can only update your own comments.")
	}
	content := trimText(req.Content)
	if content == "" {
		return nil, validationError("Comment content cannot be empty")
	}
	comment.Content = content
	if err := s.store.Comments().UpdateComment(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to update comment")
	}
	return s.Get(ctx, id)
}

func (s *CommentService) Delete(ctx context.Context, actorID, id uint) error {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return forbiddenError("You can only delete your own comments.")
	}
	if err := s.store.Comments().DeleteComment(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to delete comment")
	}
	return nil
}
