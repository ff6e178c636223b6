package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id uint) (*models.Message, error)
	ListMessages(ctx context.Context, userID, peerID uint, page Pagination) ([]models.Message, int64, error)
	MarkAsRead(ctx context.Context, id uint) error
	DeleteMessage(ctx context.Context, id uint) error
}

// GormMessageRepository implements MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *GormMessageRepository) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns messages userID sent or received, newest first. A
// non-zero peerID restricts the list to the conversation with that user.
func (r *GormMessageRepository) ListMessages(ctx context.Context, userID, peerID uint, page Pagination) ([]models.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Message{})
	if peerID != 0 {
		q = q.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", userID, peerID, peerID, userID)
	} else {
		q = q.Where("sender_id = ? OR recipient_id = ?", userID, userID)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var messages []models.Message
	err := q.Order("created_at DESC").Order("id DESC").Offset(page.Offset).Limit(page.Limit).Find(&messages).Error
	return messages, total, err
}

func (r *GormMessageRepository) MarkAsRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *GormMessageRepository) DeleteMessage(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
