package models

import "time"

// Post is authored content. Hashtags and TaggedUsers are derived from Content
// and never set directly by clients.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Author      *User     `json:"author,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Media       string    `json:"media,omitempty"`
	Hashtags    []Hashtag `json:"hashtags" gorm:"many2many:post_hashtags;constraint:OnDelete:CASCADE"`
	TaggedUsers []User    `json:"tagged_users" gorm:"many2many:post_tagged_users;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
	Media   string `json:"media,omitempty" validate:"omitempty,max=500"`
}

type UpdatePostRequest struct {
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	Media   *string `json:"media,omitempty" validate:"omitempty,max=500"`
}

// PostScore is a trending candidate: a post inside the window and its like counts.
type PostScore struct {
	PostID      uint      `json:"post_id"`
	CreatedAt   time.Time `json:"created_at"`
	DirectLikes int64     `json:"direct_likes"`
	ShareLikes  int64     `json:"share_likes"`
}

func (s PostScore) Total() int64 {
	return s.DirectLikes + s.ShareLikes
}
