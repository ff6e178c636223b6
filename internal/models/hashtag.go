package models

import "time"

// Hashtag names are stored lowercase without the leading '#'
type Hashtag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateHashtagRequest struct {
	Name string `json:"name" validate:"required,max=101"`
}
