package services

import (
	"context"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const maxSearchResults = 20

type UserService struct {
	store repositories.Store
}

func NewUserService(store repositories.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.Users().GetUserByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of req to the actor's own profile
func (s *UserService) UpdateProfile(ctx context.Context, actorID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = trimText(*req.Bio)
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	if req.Website != nil {
		user.Website = *req.Website
	}
	if req.CoverPhoto != nil {
		user.CoverPhoto = *req.CoverPhoto
	}
	if req.Location != nil {
		user.Location = trimText(*req.Location)
	}

	if err := s.store.Users().UpdateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("Username or email already exists.")
		}
		return nil, errors.Wrap(err, "failed to update profile")
	}
	return user, nil
}

func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationError("Search query 'q' is required")
	}
	users, err := s.store.Users().SearchUsers(ctx, query, maxSearchResults)
	return users, errors.Wrap(err, "failed to search users")
}
