package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"gorm.io/gorm"
)

type followRepo struct{ s *Store }

func (r followRepo) CreateFollow(ctx context.Context, follow *models.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("CreateFollow"); err != nil {
		return err
	}
	for _, f := range r.s.follows {
		if f.FollowerID == follow.FollowerID && f.FollowedID == follow.FollowedID {
			return gorm.ErrDuplicatedKey
		}
	}
	follow.ID = r.s.next("follows")
	follow.CreatedAt = r.s.stamp(follow.CreatedAt)
	r.s.follows[follow.ID] = *follow
	return nil
}

func (r followRepo) GetFollowByID(ctx context.Context, id uint) (*models.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.follows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &f, nil
}

func (r followRepo) DeleteFollow(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.follows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.follows, id)
	return nil
}

func (r followRepo) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return true, nil
		}
	}
	return false, nil
}

func (r followRepo) ListFollows(ctx context.Context, filter repositories.FollowFilter, page repositories.Pagination) ([]models.Follow, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Follow{}
	for _, f := range r.s.follows {
		if filter.FollowerID != 0 && f.FollowerID != filter.FollowerID {
			continue
		}
		if filter.FollowedID != 0 && f.FollowedID != filter.FollowedID {
			continue
		}
		out = append(out, f)
	}
	newestFirst(out, func(f models.Follow) (time.Time, uint) { return f.CreatedAt, f.ID })
	return window(out, page), int64(len(out)), nil
}

func (r followRepo) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := []uint{}
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			ids = append(ids, f.FollowedID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r followRepo) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := []uint{}
	for _, f := range r.s.follows {
		if f.FollowedID == userID {
			ids = append(ids, f.FollowerID)
		}
	}
	return userRepo{r.s}.sortedUsers(ids), nil
}

func (r followRepo) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := []uint{}
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			ids = append(ids, f.FollowedID)
		}
	}
	return userRepo{r.s}.sortedUsers(ids), nil
}

type likeRepo struct{ s *Store }

func (r likeRepo) CreateLike(ctx context.Context, like *models.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("CreateLike"); err != nil {
		return err
	}
	for _, l := range r.s.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	like.ID = r.s.next("likes")
	like.CreatedAt = r.s.stamp(like.CreatedAt)
	stored := *like
	stored.Post, stored.SharedPost = nil, nil
	r.s.likes[like.ID] = stored
	return nil
}

func (r likeRepo) GetLikeByID(ctx context.Context, id uint) (*models.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.likes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r likeRepo) GetLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.likes {
		if l.PostID == postID && l.UserID == userID {
			found := l
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r likeRepo) DeleteLike(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.likes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.likes, id)
	return nil
}

func (r likeRepo) ListLikes(ctx context.Context, filter repositories.LikeFilter, page repositories.Pagination) ([]models.Like, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Like{}
	for _, l := range r.s.likes {
		if filter.PostID != 0 && l.PostID != filter.PostID {
			continue
		}
		if filter.UserID != 0 && l.UserID != filter.UserID {
			continue
		}
		out = append(out, l)
	}
	newestFirst(out, func(l models.Like) (time.Time, uint) { return l.CreatedAt, l.ID })
	return window(out, page), int64(len(out)), nil
}
