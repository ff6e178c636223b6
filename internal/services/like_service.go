package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ToggleResult reports the like state after a toggle
type ToggleResult string

const (
	Liked   ToggleResult = "liked"
	Unliked ToggleResult = "unliked"
)

type LikeService struct {
	store repositories.Store
}

func NewLikeService(store repositories.Store) *LikeService {
	return &LikeService{store: store}
}

// Toggle flips actorID's like on postID. The (post, user) unique index
// settles races: losing an insert race means someone already liked on the
// actor's behalf, which is reported as liked without a second notification,
// and losing a delete race is still unliked.
func (s *LikeService) Toggle(ctx context.Context, actorID, postID uint) (ToggleResult, error) {
	var result ToggleResult
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return lookupError(err, "Post")
		}

		existing, err := tx.Likes().GetLike(ctx, postID, actorID)
		switch {
		case err == nil:
			result = Unliked
			if err := tx.Likes().DeleteLike(ctx, existing.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(err, "failed to remove like")
			}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return errors.Wrap(err, "failed to load like")
		}

		result = Liked
		if err := tx.Likes().CreateLike(ctx, &models.Like{PostID: postID, UserID: actorID}); err != nil {
			return err
		}
		return notify(ctx, tx, models.NotificationTypeLike, actorID, post)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Liked, nil
	}
	if err != nil {
		return "", err
	}
	return result, nil
}

// Create likes a post directly or through one of its shares. A like through a
// share still points at the original post, so one user holds at most one like
// per post across both routes.
func (s *LikeService) Create(ctx context.Context, actorID uint, req models.CreateLikeRequest) (*models.Like, error) {
	like := &models.Like{PostID: req.PostID, UserID: actorID}
	if req.SharedPostID != nil {
		share, err := s.store.SharedPosts().GetSharedPostByID(ctx, *req.SharedPostID)
		if err != nil {
			return nil, lookupError(err, "Shared post")
		}
		if req.PostID != 0 && req.PostID != share.PostID {
			return nil, validationError("post_id does not match the shared post")
		}
		like.PostID = share.PostID
		like.SharedPostID = &share.ID
		like.IsRepost = true
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, like.PostID)
		if err != nil {
			return lookupError(err, "Post")
		}
		if err := tx.Likes().CreateLike(ctx, like); err != nil {
			return err
		}
		return notify(ctx, tx, models.NotificationTypeLike, actorID, post)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, conflictError("You have already liked this post.")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create like")
	}
	return like, nil
}

func (s *LikeService) Get(ctx context.Context, id uint) (*models.Like, error) {
	like, err := s.store.Likes().GetLikeByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Like")
	}
	return like, nil
}

func (s *LikeService) List(ctx context.Context, filter repositories.LikeFilter, page Page) (PageResult[models.Like], error) {
	likes, total, err := s.store.Likes().ListLikes(ctx, filter, page.window())
	if err != nil {
		return PageResult[models.Like]{}, errors.Wrap(err, "failed to list likes")
	}
	return newPageResult(likes, page, total), nil
}

// Delete removes a like. Only the user who placed it may remove it.
func (s *LikeService) Delete(ctx context.Context, actorID, id uint) error {
	like, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if like.UserID != actorID {
		return forbiddenError("You can only remove your own likes.")
	}
	if err := s.store.Likes().DeleteLike(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to delete like")
	}
	return nil
}
