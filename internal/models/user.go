package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Password       string    `json:"-"`                             // bcrypt hash
	FirebaseUID    *string   `json:"-" gorm:"size:128;uniqueIndex"` // nil for local accounts
	Bio            string    `json:"bio" gorm:"size:500"`
	ProfilePicture string    `json:"profile_picture"`
	Website        string    `json:"website"`
	CoverPhoto     string    `json:"cover_photo"`
	Location       string    `json:"location" gorm:"size:100"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCompact is the author/actor summary embedded in other payloads
type UserCompact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateProfileRequest is a partial update: nil fields are left untouched.
type UpdateProfileRequest struct {
	Username       *string `json:"username,omitempty" validate:"omitempty,min=3,max=150,username"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Bio            *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,max=500"`
	Website        *string `json:"website,omitempty" validate:"omitempty,url"`
	CoverPhoto     *string `json:"cover_photo,omitempty" validate:"omitempty,max=500"`
	Location       *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is what register/login hand back to the client
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
