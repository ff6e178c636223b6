package models

import "time"

// Follow is a directed edge of the follow graph
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed;not null"`
	FollowedID uint      `json:"followed_user" gorm:"index;uniqueIndex:idx_follower_followed;not null"`
	Follower   *User     `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followed   *User     `json:"-" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateFollowRequest struct {
	FollowedUser uint `json:"followed_user" validate:"required"`
}
