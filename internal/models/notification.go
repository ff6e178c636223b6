package models

import "time"

const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// Notification is only ever created by the like/comment write paths
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	SenderID    uint      `json:"sender_id" gorm:"index;not null"`
	Type        string    `json:"type" gorm:"size:20;index;not null"`
	PostID      uint      `json:"post_id" gorm:"index;not null"`
	Post        *Post     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
