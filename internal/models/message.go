package models

import "time"

// Message is a direct message between two users
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"index;not null"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

type CreateMessageRequest struct {
	Recipient uint   `json:"recipient" validate:"required"`
	Content   string `json:"content" validate:"required,min=1,max=5000"`
}
