package models

import "time"

// SharedPost is a re-share of another post, with optional commentary
type SharedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Post      *Post     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSharedPostRequest struct {
	PostID  uint    `json:"post_id" validate:"required"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=2000"`
}

type UpdateSharedPostRequest struct {
	Content *string `json:"content" validate:"omitempty,max=2000"`
}
