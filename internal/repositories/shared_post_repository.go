package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// SharedPostFilter narrows ListSharedPosts; zero fields are ignored
type SharedPostFilter struct {
	PostID uint
	UserID uint
}

// SharedPostRepository defines the interface for share operations
type SharedPostRepository interface {
	CreateSharedPost(ctx context.Context, share *models.SharedPost) error
	GetSharedPostByID(ctx context.Context, id uint) (*models.SharedPost, error)
	ListSharedPosts(ctx context.Context, filter SharedPostFilter, page Pagination) ([]models.SharedPost, int64, error)
	UpdateSharedPost(ctx context.Context, share *models.SharedPost) error
	DeleteSharedPost(ctx context.Context, id uint) error
}

// GormSharedPostRepository implements SharedPostRepository
type GormSharedPostRepository struct {
	db *gorm.DB
}

func NewGormSharedPostRepository(db *gorm.DB) *GormSharedPostRepository {
	return &GormSharedPostRepository{db: db}
}

func (r *GormSharedPostRepository) CreateSharedPost(ctx context.Context, share *models.SharedPost) error {
	return r.db.WithContext(ctx).Omit("Post").Create(share).Error
}

func (r *GormSharedPostRepository) GetSharedPostByID(ctx context.Context, id uint) (*models.SharedPost, error) {
	var share models.SharedPost
	if err := r.db.WithContext(ctx).First(&share, id).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *GormSharedPostRepository) ListSharedPosts(ctx context.Context, filter SharedPostFilter, page Pagination) ([]models.SharedPost, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.SharedPost{})
	if filter.PostID != 0 {
		q = q.Where("post_id = ?", filter.PostID)
	}
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var shares []models.SharedPost
	err := q.Order("created_at DESC").Order("id DESC").Offset(page.Offset).Limit(page.Limit).Find(&shares).Error
	return shares, total, err
}

func (r *GormSharedPostRepository) UpdateSharedPost(ctx context.Context, share *models.SharedPost) error {
	return r.db.WithContext(ctx).Model(share).Update("content", share.Content).Error
}

func (r *GormSharedPostRepository) DeleteSharedPost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.SharedPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
