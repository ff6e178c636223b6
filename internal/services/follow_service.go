package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type FollowService struct {
	store repositories.Store
}

func NewFollowService(store repositories.Store) *FollowService {
	return &FollowService{store: store}
}

// Create makes actorID follow followedID. Self-follows and duplicates are
// rejected before the insert; a duplicate that slips past the check is
// caught by the unique index and reported the same way.
func (s *FollowService) Create(ctx context.Context, actorID, followedID uint) (*models.Follow, error) {
	if followedID == 0 {
		return nil, validationError("Followed user ID is required.")
	}
	if followedID == actorID {
		return nil, validationError("You cannot follow yourself.")
	}
	if _, err := s.store.Users().GetUserByID(ctx, followedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Followed user does not exist.")
		}
		return nil, errors.Wrap(err, "failed to load followed user")
	}

	following, err := s.store.Follows().IsFollowing(ctx, actorID, followedID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check follow")
	}
	if following {
		return nil, conflictError("You are already following this user.")
	}

	follow := &models.Follow{FollowerID: actorID, FollowedID: followedID}
	if err := s.store.Follows().CreateFollow(ctx, follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("You are already following this user.")
		}
		return nil, errors.Wrap(err, "failed to create follow")
	}
	return follow, nil
}

func (s *FollowService) Get(ctx context.Context, id uint) (*models.Follow, error) {
	follow, err := s.store.Follows().GetFollowByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Follow")
	}
	return follow, nil
}

func (s *FollowService) List(ctx context.Context, filter repositories.FollowFilter, page Page) (PageResult[models.Follow], error) {
	follows, total, err := s.store.Follows().ListFollows(ctx, filter, page.window())
	if err != nil {
		return PageResult[models.Follow]{}, errors.Wrap(err, "failed to list follows")
	}
	return newPageResult(follows, page, total), nil
}

// Delete unfollows. Only the follower may remove the edge.
func (s *FollowService) Delete(ctx context.Context, actorID, id uint) error {
	follow, err := s.store.Follows().GetFollowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Follow does not exist.")
		}
		return errors.Wrap(err, "failed to load follow")
	}
	if follow.FollowerID != actorID {
		return forbiddenError("You can only unfollow users you are following.")
	}
	if err := s.store.Follows().DeleteFollow(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to delete follow")
	}
	return nil
}

func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.store.Users().GetUserByID(ctx, userID); err != nil {
		return nil, lookupError(err, "User")
	}
	users, err := s.store.Follows().GetFollowers(ctx, userID)
	return users, errors.Wrap(err, "failed to load followers")
}

func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.store.Users().GetUserByID(ctx, userID); err != nil {
		return nil, lookupError(err, "User")
	}
	users, err := s.store.Follows().GetFollowing(ctx, userID)
	return users, errors.Wrap(err, "failed to load following")
}
