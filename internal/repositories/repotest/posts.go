package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"gorm.io/gorm"
)

type postRepo struct{ s *Store }

func (r postRepo) CreatePost(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("CreatePost"); err != nil {
		return err
	}
	post.ID = r.s.next("posts")
	post.CreatedAt = r.s.stamp(post.CreatedAt)
	post.UpdatedAt = post.CreatedAt
	stored := *post
	stored.Author, stored.Hashtags, stored.TaggedUsers = nil, nil, nil
	r.s.posts[post.ID] = stored
	return nil
}

// load fills relations the way the gorm repository preloads them. Callers hold mu.
func (r postRepo) load(p models.Post) models.Post {
	if author, ok := r.s.users[p.UserID]; ok {
		p.Author = &author
	}
	p.Hashtags = []models.Hashtag{}
	for _, id := range r.s.postHashtags[p.ID] {
		if h, ok := r.s.hashtags[id]; ok {
			p.Hashtags = append(p.Hashtags, h)
		}
	}
	sort.Slice(p.Hashtags, func(i, j int) bool { return p.Hashtags[i].Name < p.Hashtags[j].Name })
	p.TaggedUsers = userRepo{r.s}.sortedUsers(r.s.postTagged[p.ID])
	return p
}

func (r postRepo) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := r.load(p)
	return &loaded, nil
}

func (r postRepo) GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	posts := []models.Post{}
	for _, id := range ids {
		if p, ok := r.s.posts[id]; ok {
			posts = append(posts, r.load(p))
		}
	}
	return posts, nil
}

func (r postRepo) UpdatePost(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.posts[post.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Content = post.Content
	stored.Media = post.Media
	stored.UpdatedAt = r.s.Now()
	r.s.posts[post.ID] = stored
	return nil
}

func (r postRepo) DeletePost(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.posts, id)
	delete(r.s.postHashtags, id)
	delete(r.s.postTagged, id)
	for sid, sh := range r.s.shares {
		if sh.PostID == id {
			r.s.deleteShareLocked(sid)
		}
	}
	for lid, l := range r.s.likes {
		if l.PostID == id {
			delete(r.s.likes, lid)
		}
	}
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	for nid, n := range r.s.notifications {
		if n.PostID == id {
			delete(r.s.notifications, nid)
		}
	}
	return nil
}

func (r postRepo) ReplaceHashtags(ctx context.Context, postID uint, hashtags []models.Hashtag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]uint, 0, len(hashtags))
	for _, h := range hashtags {
		ids = append(ids, h.ID)
	}
	r.s.postHashtags[postID] = ids
	return nil
}

func (r postRepo) ReplaceTaggedUsers(ctx context.Context, postID uint, users []models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	r.s.postTagged[postID] = ids
	return nil
}

func (r postRepo) list(match func(models.Post) bool, page repositories.Pagination) ([]models.Post, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := []models.Post{}
	for _, p := range r.s.posts {
		if match(p) {
			matched = append(matched, p)
		}
	}
	newestFirst(matched, func(p models.Post) (time.Time, uint) { return p.CreatedAt, p.ID })
	out := window(matched, page)
	loaded := make([]models.Post, len(out))
	for i, p := range out {
		loaded[i] = r.load(p)
	}
	return loaded, int64(len(matched)), nil
}

func (r postRepo) ListPostsByAuthors(ctx context.Context, authorIDs []uint, page repositories.Pagination) ([]models.Post, int64, error) {
	authors := map[uint]bool{}
	for _, id := range authorIDs {
		authors[id] = true
	}
	return r.list(func(p models.Post) bool { return authors[p.UserID] }, page)
}

func (r postRepo) ListPostsByHashtag(ctx context.Context, name string, page repositories.Pagination) ([]models.Post, int64, error) {
	return r.list(func(p models.Post) bool {
		for _, id := range r.s.postHashtags[p.ID] {
			if r.s.hashtags[id].Name == name {
				return true
			}
		}
		return false
	}, page)
}

func (r postRepo) ListPostsByTaggedUsernames(ctx context.Context, usernames []string, page repositories.Pagination) ([]models.Post, int64, error) {
	wanted := map[string]bool{}
	for _, name := range usernames {
		wanted[name] = true
	}
	return r.list(func(p models.Post) bool {
		for _, id := range r.s.postTagged[p.ID] {
			if u, ok := r.s.users[id]; ok && wanted[u.Username] {
				return true
			}
		}
		return false
	}, page)
}

func (r postRepo) ListTrendingCandidates(ctx context.Context, since time.Time) ([]models.PostScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	scores := []models.PostScore{}
	for _, p := range r.s.posts {
		if p.CreatedAt.Before(since) {
			continue
		}
		score := models.PostScore{PostID: p.ID, CreatedAt: p.CreatedAt}
		for _, l := range r.s.likes {
			if l.SharedPostID == nil {
				if l.PostID == p.ID {
					score.DirectLikes++
				}
				continue
			}
			if sh, ok := r.s.shares[*l.SharedPostID]; ok && sh.PostID == p.ID {
				score.ShareLikes++
			}
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// deleteShareLocked removes a share and the likes placed through it
func (s *Store) deleteShareLocked(id uint) {
	delete(s.shares, id)
	for lid, l := range s.likes {
		if l.SharedPostID != nil && *l.SharedPostID == id {
			delete(s.likes, lid)
		}
	}
}
