package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// FollowFilter narrows ListFollows; zero fields are ignored
type FollowFilter struct {
	FollowerID uint
	FollowedID uint
}

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	GetFollowByID(ctx context.Context, id uint) (*models.Follow, error)
	DeleteFollow(ctx context.Context, id uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	ListFollows(ctx context.Context, filter FollowFilter, page Pagination) ([]models.Follow, int64, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
}

// GormFollowRepository implements FollowRepository
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GormFollowRepository
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

func (r *GormFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *GormFollowRepository) GetFollowByID(ctx context.Context, id uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.WithContext(ctx).First(&follow, id).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *GormFollowRepository) DeleteFollow(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Follow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormFollowRepository) ListFollows(ctx context.Context, filter FollowFilter, page Pagination) ([]models.Follow, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Follow{})
	if filter.FollowerID != 0 {
		q = q.Where("follower_id = ?", filter.FollowerID)
	}
	if filter.FollowedID != 0 {
		q = q.Where("followed_id = ?", filter.FollowedID)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var follows []models.Follow
	err := q.Order("created_at DESC").Order("id DESC").Offset(page.Offset).Limit(page.Limit).Find(&follows).Error
	return follows, total, err
}

func (r *GormFollowRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("followed_id", &ids).Error
	return ids, err
}

func (r *GormFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("followed_id = ?", userID),
	).Order("username").Find(&users).Error
	return users, err
}

func (r *GormFollowRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN (?)",
		r.db.Table("follows").Select("followed_id").Where("follower_id = ?", userID),
	).Order("username").Find(&users).Error
	return users, err
}
