// Package repotest provides an in-memory repositories.Store for tests. It
// mirrors the gorm store's observable behavior: gorm.ErrRecordNotFound for
// missing rows, gorm.ErrDuplicatedKey for unique violations, cascading post
// deletes and the same list orderings.
package repotest

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// Store is an in-memory repositories.Store. Transaction restores the
// previous state when its callback fails, but transactions are not isolated
// from each other, so tests run them one at a time.
type Store struct {
	// Now stamps CreatedAt on rows created with a zero timestamp
	Now func() time.Time

	mu            sync.Mutex
	faults        map[string]error
	seq           map[string]uint
	users         map[uint]models.User
	hashtags      map[uint]models.Hashtag
	posts         map[uint]models.Post
	postHashtags  map[uint][]uint
	postTagged    map[uint][]uint
	follows       map[uint]models.Follow
	likes         map[uint]models.Like
	comments      map[uint]models.Comment
	notifications map[uint]models.Notification
	messages      map[uint]models.Message
	shares        map[uint]models.SharedPost
}

var _ repositories.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		Now:           time.Now,
		faults:        map[string]error{},
		seq:           map[string]uint{},
		users:         map[uint]models.User{},
		hashtags:      map[uint]models.Hashtag{},
		posts:         map[uint]models.Post{},
		postHashtags:  map[uint][]uint{},
		postTagged:    map[uint][]uint{},
		follows:       map[uint]models.Follow{},
		likes:         map[uint]models.Like{},
		comments:      map[uint]models.Comment{},
		notifications: map[uint]models.Notification{},
		messages:      map[uint]models.Message{},
		shares:        map[uint]models.SharedPost{},
	}
}

func (s *Store) Users() repositories.UserRepository                 { return userRepo{s} }
func (s *Store) Hashtags() repositories.HashtagRepository           { return hashtagRepo{s} }
func (s *Store) Posts() repositories.PostRepository                 { return postRepo{s} }
func (s *Store) Follows() repositories.FollowRepository             { return followRepo{s} }
func (s *Store) Likes() repositories.LikeRepository                 { return likeRepo{s} }
func (s *Store) Comments() repositories.CommentRepository           { return commentRepo{s} }
func (s *Store) Notifications() repositories.NotificationRepository { return notificationRepo{s} }
func (s *Store) Messages() repositories.MessageRepository           { return messageRepo{s} }
func (s *Store) SharedPosts() repositories.SharedPostRepository     { return sharedPostRepo{s} }

func (s *Store) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	s.mu.Lock()
	saved := s.snapshot()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.restore(saved)
		s.mu.Unlock()
		return err
	}
	return nil
}

// FailNext makes the next call of the named repository method, for example
// "CreateLike", return err without touching the store.
func (s *Store) FailNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method] = err
}

// fault consumes a pending FailNext error. Callers hold mu.
func (s *Store) fault(method string) error {
	err, ok := s.faults[method]
	if ok {
		delete(s.faults, method)
	}
	return err
}

type snapshot struct {
	seq           map[string]uint
	users         map[uint]models.User
	hashtags      map[uint]models.Hashtag
	posts         map[uint]models.Post
	postHashtags  map[uint][]uint
	postTagged    map[uint][]uint
	follows       map[uint]models.Follow
	likes         map[uint]models.Like
	comments      map[uint]models.Comment
	notifications map[uint]models.Notification
	messages      map[uint]models.Message
	shares        map[uint]models.SharedPost
}

// snapshot copies every table. Association slices are replaced, never
// modified in place, so shallow copies are enough. Callers hold mu.
func (s *Store) snapshot() snapshot {
	return snapshot{
		seq:           maps.Clone(s.seq),
		users:         maps.Clone(s.users),
		hashtags:      maps.Clone(s.hashtags),
		posts:         maps.Clone(s.posts),
		postHashtags:  maps.Clone(s.postHashtags),
		postTagged:    maps.Clone(s.postTagged),
		follows:       maps.Clone(s.follows),
		likes:         maps.Clone(s.likes),
		comments:      maps.Clone(s.comments),
		notifications: maps.Clone(s.notifications),
		messages:      maps.Clone(s.messages),
		shares:        maps.Clone(s.shares),
	}
}

func (s *Store) restore(saved snapshot) {
	s.seq = saved.seq
	s.users = saved.users
	s.hashtags = saved.hashtags
	s.posts = saved.posts
	s.postHashtags = saved.postHashtags
	s.postTagged = saved.postTagged
	s.follows = saved.follows
	s.likes = saved.likes
	s.comments = saved.comments
	s.notifications = saved.notifications
	s.messages = saved.messages
	s.shares = saved.shares
}

// NotificationCount is a test helper reporting how many notifications exist
func (s *Store) NotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

func (s *Store) next(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.Now()
	}
	return t
}

func window[T any](items []T, page repositories.Pagination) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return items[page.Offset:end]
}

// newestFirst sorts by created_at DESC, id DESC
func newestFirst[T any](items []T, key func(T) (time.Time, uint)) {
	sort.Slice(items, func(i, j int) bool {
		ti, ii := key(items[i])
		tj, ij := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ii > ij
	})
}

type userRepo struct{ s *Store }

func (r userRepo) CreateUser(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
		if user.FirebaseUID != nil && u.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.s.next("users")
	user.CreatedAt = r.s.stamp(user.CreatedAt)
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r userRepo) find(match func(models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r userRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r userRepo) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID })
}

func (r userRepo) GetUsersByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := map[string]bool{}
	for _, name := range usernames {
		wanted[name] = true
	}
	users := []models.User{}
	for _, u := range r.s.users {
		if wanted[u.Username] {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r userRepo) UpdateUser(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == user.ID {
			continue
		}
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
		if user.FirebaseUID != nil && u.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UpdatedAt = r.s.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(query)
	users := []models.User{}
	for _, u := range r.s.users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Email), q) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r userRepo) sortedUsers(ids []uint) []models.User {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

type hashtagRepo struct{ s *Store }

func (r hashtagRepo) GetOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.hashtags {
		if h.Name == name {
			found := h
			return &found, nil
		}
	}
	h := models.Hashtag{ID: r.s.next("hashtags"), Name: name, CreatedAt: r.s.Now()}
	r.s.hashtags[h.ID] = h
	return &h, nil
}

func (r hashtagRepo) CreateHashtag(ctx context.Context, hashtag *models.Hashtag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.hashtags {
		if h.Name == hashtag.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	hashtag.ID = r.s.next("hashtags")
	hashtag.CreatedAt = r.s.stamp(hashtag.CreatedAt)
	r.s.hashtags[hashtag.ID] = *hashtag
	return nil
}

func (r hashtagRepo) GetHashtagByID(ctx context.Context, id uint) (*models.Hashtag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.hashtags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &h, nil
}

func (r hashtagRepo) GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.hashtags {
		if h.Name == name {
			found := h
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r hashtagRepo) ListHashtags(ctx context.Context, page repositories.Pagination) ([]models.Hashtag, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]models.Hashtag, 0, len(r.s.hashtags))
	for _, h := range r.s.hashtags {
		all = append(all, h)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return window(all, page), int64(len(all)), nil
}

func (r hashtagRepo) DeleteHashtag(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.hashtags[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.hashtags, id)
	for postID, ids := range r.s.postHashtags {
		r.s.postHashtags[postID] = without(ids, id)
	}
	return nil
}

func without(ids []uint, drop uint) []uint {
	kept := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			kept = append(kept, id)
		}
	}
	return kept
}
