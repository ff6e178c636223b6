package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashtagRepository defines the interface for hashtag data operations
type HashtagRepository interface {
	GetOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error)
	CreateHashtag(ctx context.Context, hashtag *models.Hashtag) error
	GetHashtagByID(ctx context.Context, id uint) (*models.Hashtag, error)
	GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error)
	ListHashtags(ctx context.Context, page Pagination) ([]models.Hashtag, int64, error)
	DeleteHashtag(ctx context.Context, id uint) error
}

// GormHashtagRepository implements HashtagRepository
type GormHashtagRepository struct {
	db *gorm.DB
}

// NewGormHashtagRepository creates a new GormHashtagRepository
func NewGormHashtagRepository(db *gorm.DB) *GormHashtagRepository {
	return &GormHashtagRepository{db: db}
}

// GetOrCreateHashtag inserts name if absent and returns the stored row. The
// insert ignores a unique conflict so concurrent posts with the same new tag
// both succeed.
func (r *GormHashtagRepository) GetOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error) {
	db := r.db.WithContext(ctx)
	candidate := models.Hashtag{Name: name}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, err
	}
	return r.GetHashtagByName(ctx, name)
}

func (r *GormHashtagRepository) CreateHashtag(ctx context.Context, hashtag *models.Hashtag) error {
	return r.db.WithContext(ctx).Create(hashtag).Error
}

func (r *GormHashtagRepository) GetHashtagByID(ctx context.Context, id uint) (*models.Hashtag, error) {
	var hashtag models.Hashtag
	if err := r.db.WithContext(ctx).First(&hashtag, id).Error; err != nil {
		return nil, err
	}
	return &hashtag, nil
}

func (r *GormHashtagRepository) GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error) {
	var hashtag models.Hashtag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&hashtag).Error; err != nil {
		return nil, err
	}
	return &hashtag, nil
}

func (r *GormHashtagRepository) ListHashtags(ctx context.Context, page Pagination) ([]models.Hashtag, int64, error) {
	var hashtags []models.Hashtag
	var total int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Hashtag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("name").Offset(page.Offset).Limit(page.Limit).Find(&hashtags).Error
	return hashtags, total, err
}

// DeleteHashtag removes the hashtag and its post associations
func (r *GormHashtagRepository) DeleteHashtag(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_hashtags WHERE hashtag_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Hashtag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
