package models

import "time"

// Like represents a like on a post. A like placed through a share keeps
// PostID pointing at the original post and records the share.
type Like struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	PostID       uint        `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like;not null"`
	UserID       uint        `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like;not null"`
	SharedPostID *uint       `json:"shared_post_id,omitempty" gorm:"index"`
	IsRepost     bool        `json:"is_repost" gorm:"default:false"`
	Post         *Post       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SharedPost   *SharedPost `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time   `json:"created_at"`
}

type CreateLikeRequest struct {
	PostID       uint  `json:"post_id" validate:"required_without=SharedPostID"`
	SharedPostID *uint `json:"shared_post_id,omitempty"`
}
