package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SharedPostService struct {
	store repositories.Store
}

func NewSharedPostService(store repositories.Store) *SharedPostService {
	return &SharedPostService{store: store}
}

func (s *SharedPostService) Create(ctx context.Context, actorID uint, req models.CreateSharedPostRequest) (*models.SharedPost, error) {
	if _, err := s.store.Posts().GetPostByID(ctx, req.PostID); err != nil {
		return nil, lookupError(err, "Post")
	}
	share := &models.SharedPost{PostID: req.PostID, UserID: actorID, Content: trimOptional(req.Content)}
	if err := s.store.SharedPosts().CreateSharedPost(ctx, share); err != nil {
		return nil, errors.Wrap(err, "failed to share post")
	}
	return share, nil
}

func (s *SharedPostService) Get(ctx context.Context, id uint) (*models.SharedPost, error) {
	share, err := s.store.SharedPosts().GetSharedPostByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Shared post")
	}
	return share, nil
}

func (s *SharedPostService) List(ctx context.Context, filter repositories.SharedPostFilter, page Page) (PageResult[models.SharedPost], error) {
	shares, total, err := s.store.SharedPosts().ListSharedPosts(ctx, filter, page.window())
	if err != nil {
		return PageResult[models.SharedPost]{}, errors.Wrap(err, "failed to list shared posts")
	}
	return newPageResult(shares, page, total), nil
}

func (s *SharedPostService) Update(ctx context.Context, actorID, id uint, req models.UpdateSharedPostRequest) (*models.SharedPost, error) {
	share, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if share.UserID != actorID {
		return nil, forbiddenError("You can only update your own shares.")
	}
	share.Content = trimOptional(req.Content)
	if err := s.store.SharedPosts().UpdateSharedPost(ctx, share); err != nil {
		return nil, errors.Wrap(err, "failed to update shared post")
	}
	return share, nil
}

// Delete removes a share along with the likes placed through it
func (s *SharedPostService) Delete(ctx context.Context, actorID, id uint) error {
	share, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if share.UserID != actorID {
		return forbiddenError("You can only delete your own shares.")
	}
	if err := s.store.SharedPosts().DeleteSharedPost(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to delete shared post")
	}
	return nil
}
