package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// LikeFilter narrows ListLikes; zero fields are ignored
type LikeFilter struct {
	PostID uint
	UserID uint
}

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	GetLikeByID(ctx context.Context, id uint) (*models.Like, error)
	GetLike(ctx context.Context, postID, userID uint) (*models.Like, error)
	DeleteLike(ctx context.Context, id uint) error
	ListLikes(ctx context.Context, filter LikeFilter, page Pagination) ([]models.Like, int64, error)
}

// GormLikeRepository implements LikeRepository
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// CreateLike inserts like; a second like for the same (post, user) fails with
// gorm.ErrDuplicatedKey.
func (r *GormLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Omit("Post", "SharedPost").Create(like).Error
}

func (r *GormLikeRepository) GetLikeByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// GetLike retrieves a specific like by postID and userID
func (r *GormLikeRepository) GetLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *GormLikeRepository) DeleteLike(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Like{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormLikeRepository) ListLikes(ctx context.Context, filter LikeFilter, page Pagination) ([]models.Like, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Like{})
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
	var likes []models.Like
	err := q.Order("created_at DESC").Order("id DESC").Offset(page.Offset).Limit(page.Limit).Find(&likes).Error
	return likes, total, err
}
