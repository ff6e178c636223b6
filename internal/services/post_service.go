package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostService owns post writes. Every write re-derives the post's hashtags
// and tagged users in the same transaction.
type PostService struct {
	store repositories.Store
}

func NewPostService(store repositories.Store) *PostService {
	return &PostService{store: store}
}

func (s *PostService) Create(ctx context.Context, actorID uint, req models.CreatePostRequest) (*models.Post, error) {
	content := trimText(req.Content)
	if content == "" {
		return nil, validationError("Post content cannot be empty")
	}

	post := &models.Post{UserID: actorID, Content: content, Media: req.Media}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Posts().CreatePost(ctx, post); err != nil {
			return errors.Wrap(err, "failed to create post")
		}
		return applyExtraction(ctx, tx, post.ID, post.Content)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID)
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.store.Posts().GetPostByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Post")
	}
	return post, nil
}

// Update applies a partial update. Only the author may edit a post.
func (s *PostService) Update(ctx context.Context, actorID, id uint, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, forbiddenError("You can only update your own posts.")
	}

	if req.Content != nil {
		content := trimText(*req.Content)
		if content == "" {
			return nil, validationError("Post content cannot be empty")
		}
		post.Content = content
	}
	if req.Media != nil {
		post.Media = *req.Media
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Posts().UpdatePost(ctx, post); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("Post not found")
			}
			return errors.Wrap(err, "failed to update post")
		}
		return applyExtraction(ctx, tx, post.ID, post.Content)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID)
}

// Delete removes a post and everything hanging off it. Only the author may
// delete a post.
func (s *PostService) Delete(ctx context.Context, actorID, id uint) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return forbiddenError("You can only delete your own posts.")
	}
	if err := s.store.Posts().DeletePost(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Post not found")
		}
		return errors.Wrap(err, "failed to delete post")
	}
	return nil
}
