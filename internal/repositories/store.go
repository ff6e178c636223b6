package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that make up the entity store. Transaction
// hands the callback a Store whose repositories all share one transaction.
type Store interface {
	Users() UserRepository
	Hashtags() HashtagRepository
	Posts() PostRepository
	Follows() FollowRepository
	Likes() LikeRepository
	Comments() CommentRepository
	Notifications() NotificationRepository
	Messages() MessageRepository
	SharedPosts() SharedPostRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// GormStore implements Store on top of a gorm connection
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository       { return NewGormUserRepository(s.db) }
func (s *GormStore) Hashtags() HashtagRepository { return NewGormHashtagRepository(s.db) }
func (s *GormStore) Posts() PostRepository       { return NewGormPostRepository(s.db) }
func (s *GormStore) Follows() FollowRepository   { return NewGormFollowRepository(s.db) }
func (s *GormStore) Likes() LikeRepository       { return NewGormLikeRepository(s.db) }
func (s *GormStore) Comments() CommentRepository { return NewGormCommentRepository(s.db) }
func (s *GormStore) Notifications() NotificationRepository {
	return NewGormNotificationRepository(s.db)
}
func (s *GormStore) Messages() MessageRepository       { return NewGormMessageRepository(s.db) }
func (s *GormStore) SharedPosts() SharedPostRepository { return NewGormSharedPostRepository(s.db) }

// Transaction runs fn inside a database transaction. Returning an error from
// fn rolls everything back.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// Pagination is an offset/limit window over an ordered result
type Pagination struct {
	Offset int
	Limit  int
}
