package services

import (
	"context"
	"regexp"
	"unicode/utf8"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var hashtagNamePattern = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)

type HashtagService struct {
	store repositories.Store
}

func NewHashtagService(store repositories.Store) *HashtagService {
	return &HashtagService{store: store}
}

func (s *HashtagService) List(ctx context.Context, page Page) (PageResult[models.Hashtag], error) {
	tags, total, err := s.store.Hashtags().ListHashtags(ctx, page.window())
	if err != nil {
		return PageResult[models.Hashtag]{}, errors.Wrap(err, "failed to list hashtags")
	}
	return newPageResult(tags, page, total), nil
}

func (s *HashtagService) Get(ctx context.Context, id uint) (*models.Hashtag, error) {
	tag, err := s.store.Hashtags().GetHashtagByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Hashtag")
	}
	return tag, nil
}

// Create stores a hashtag under the same normalization the extractor uses
func (s *HashtagService) Create(ctx context.Context, name string) (*models.Hashtag, error) {
	name = NormalizeHashtag(name)
	if !hashtagNamePattern.MatchString(name) {
		return nil, validationError("Hashtag may only contain letters, digits and underscores")
	}
	if utf8.RuneCountInString(name) > MaxHashtagLength {
		return nil, validationError("Hashtag is longer than %d characters", MaxHashtagLength)
	}

	tag := &models.Hashtag{Name: name}
	if err := s.store.Hashtags().CreateHashtag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("Hashtag %q already exists.", name)
		}
		return nil, errors.Wrap(err, "failed to create hashtag")
	}
	return tag, nil
}

func (s *HashtagService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Hashtags().DeleteHashtag(ctx, id); err != nil {
		return lookupError(err, "Hashtag")
	}
	return nil
}
