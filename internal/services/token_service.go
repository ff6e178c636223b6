package services

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RevocationList remembers refresh tokens that were logged out
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenService issues and verifies HS256 access/refresh token pairs
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoked    RevocationList
	now        func() time.Time
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, revoked RevocationList) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		revoked:    revoked,
		now:        time.Now,
	}
}

func (s *TokenService) Issue(user *models.User) (models.TokenPair, error) {
	access, err := s.sign(user.ID, user.Username, models.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := s.sign(user.ID, user.Username, models.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *TokenService) sign(userID uint, username, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &models.JwtCustomClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return signed, errors.Wrap(err, "failed to sign token")
}

func (s *TokenService) parse(tokenString, tokenType string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && verr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, unauthorizedError("Token has expired")
		}
		return nil, unauthorizedError("Invalid token")
	}
	if claims.TokenType != tokenType {
		return nil, unauthorizedError("Token has wrong type")
	}
	return claims, nil
}

// ParseAccess validates a bearer access token
func (s *TokenService) ParseAccess(tokenString string) (*models.JwtCustomClaims, error) {
	return s.parse(tokenString, models.TokenTypeAccess)
}

func (s *TokenService) parseRefresh(ctx context.Context, tokenString string) (*models.JwtCustomClaims, error) {
	claims, err := s.parse(tokenString, models.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return nil, unauthorizedError("Token has been revoked")
	}
	return claims, nil
}

// Refresh exchanges a live refresh token for a new access token
func (s *TokenService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.parseRefresh(ctx, refresh)
	if err != nil {
		return "", err
	}
	return s.sign(claims.UserID, claims.Username, models.TokenTypeAccess, s.accessTTL)
}

// Revoke blacklists a refresh token until it would have expired. userID must
// own the token.
func (s *TokenService) Revoke(ctx context.Context, userID uint, refresh string) error {
	claims, err := s.parseRefresh(ctx, refresh)
	if err != nil {
		var serr *Error
		if errors.As(err, &serr) {
			return validationError("Invalid refresh token.")
		}
		return err
	}
	if claims.UserID != userID {
		return validationError("Invalid refresh token.")
	}
	return errors.Wrap(s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time), "failed to revoke token")
}
