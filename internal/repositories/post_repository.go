package repositories

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	ReplaceHashtags(ctx context.Context, postID uint, hashtags []models.Hashtag) error
	ReplaceTaggedUsers(ctx context.Context, postID uint, users []models.User) error
	ListPostsByAuthors(ctx context.Context, authorIDs []uint, page Pagination) ([]models.Post, int64, error)
	ListPostsByHashtag(ctx context.Context, name string, page Pagination) ([]models.Post, int64, error)
	ListPostsByTaggedUsernames(ctx context.Context, usernames []string, page Pagination) ([]models.Post, int64, error)
	ListTrendingCandidates(ctx context.Context, since time.Time) ([]models.PostScore, error)
}

// GormPostRepository implements PostRepository
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *GormPostRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Hashtags", func(db *gorm.DB) *gorm.DB { return db.Order("hashtags.name") }).
		Preload("TaggedUsers", func(db *gorm.DB) *gorm.DB { return db.Order("users.username") })
}

func (r *GormPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withRelations(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByIDs loads posts with relations; result order is unspecified
func (r *GormPostRepository) GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.withRelations(ctx).Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

// UpdatePost persists content and media only
func (r *GormPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"content":    post.Content,
		"media":      post.Media,
		"updated_at": r.db.NowFunc(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePost removes the post and its association rows. Likes, comments,
// notifications and shares go with it through ON DELETE CASCADE.
func (r *GormPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select("Hashtags", "TaggedUsers").Delete(&models.Post{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormPostRepository) ReplaceHashtags(ctx context.Context, postID uint, hashtags []models.Hashtag) error {
	assoc := r.db.WithContext(ctx).Model(&models.Post{ID: postID}).Omit("Hashtags.*").Association("Hashtags")
	if len(hashtags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(hashtags)
}

func (r *GormPostRepository) ReplaceTaggedUsers(ctx context.Context, postID uint, users []models.User) error {
	assoc := r.db.WithContext(ctx).Model(&models.Post{ID: postID}).Omit("TaggedUsers.*").Association("TaggedUsers")
	if len(users) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(users)
}

func (r *GormPostRepository) ListPostsByAuthors(ctx context.Context, authorIDs []uint, page Pagination) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}
	return r.paginate(ctx, r.db.WithContext(ctx).Where("posts.user_id IN ?", authorIDs), page)
}

// ListPostsByHashtag matches the normalized hashtag name exactly
func (r *GormPostRepository) ListPostsByHashtag(ctx context.Context, name string, page Pagination) ([]models.Post, int64, error) {
	sub := r.db.Table("post_hashtags").
		Select("post_hashtags.post_id").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Where("hashtags.name = ?", name)
	return r.paginate(ctx, r.db.WithContext(ctx).Where("posts.id IN (?)", sub), page)
}

// ListPostsByTaggedUsernames returns posts tagging any of usernames
func (r *GormPostRepository) ListPostsByTaggedUsernames(ctx context.Context, usernames []string, page Pagination) ([]models.Post, int64, error) {
	if len(usernames) == 0 {
		return []models.Post{}, 0, nil
	}
	sub := r.db.Table("post_tagged_users").
		Select("post_tagged_users.post_id").
		Joins("JOIN users ON users.id = post_tagged_users.user_id").
		Where("users.username IN ?", usernames)
	return r.paginate(ctx, r.db.WithContext(ctx).Where("posts.id IN (?)", sub), page)
}

func (r *GormPostRepository) paginate(ctx context.Context, scope *gorm.DB, page Pagination) ([]models.Post, int64, error) {
	var total int64
	if err := scope.Session(&gorm.Session{}).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint
	err := scope.Session(&gorm.Session{}).Model(&models.Post{}).
		Order("posts.created_at DESC").Order("posts.id DESC").
		Offset(page.Offset).Limit(page.Limit).
		Pluck("posts.id", &ids).Error
	if err != nil {
		return nil, 0, err
	}

	posts, err := r.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return OrderPostsByIDs(posts, ids), total, nil
}

// ListTrendingCandidates returns every post created at or after since with
// its direct like count and the likes placed through its shares.
func (r *GormPostRepository) ListTrendingCandidates(ctx context.Context, since time.Time) ([]models.PostScore, error) {
	var scores []models.PostScore
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select(`posts.id AS post_id, posts.created_at AS created_at,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id AND likes.shared_post_id IS NULL) AS direct_likes,
			(SELECT COUNT(*) FROM likes JOIN shared_posts ON shared_posts.id = likes.shared_post_id
				WHERE shared_posts.post_id = posts.id) AS share_likes`).
		Where("posts.created_at >= ?", since.UTC()).
		Scan(&scores).Error
	return scores, err
}

// OrderPostsByIDs arranges posts to follow ids; ids without a post are skipped
func OrderPostsByIDs(posts []models.Post, ids []uint) []models.Post {
	byID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}
