package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

const (
	TrendingWindow = 24 * time.Hour
	TrendingLimit  = 10

	trendingCacheKey = "trending"
)

// FeedFilter selects one of the feed variants. Hashtag wins over
// TaggedUsers; with neither set the caller's following feed is returned.
type FeedFilter struct {
	Hashtag     string
	TaggedUsers []string
}

type trendingEntry struct {
	posts     []models.Post
	expiresAt time.Time
}

// FeedService answers the read side of the follow graph: feeds and trending.
type FeedService struct {
	store    repositories.Store
	cacheTTL time.Duration
	cache    *lru.Cache[string, trendingEntry]
	now      func() time.Time
}

// NewFeedService creates a FeedService. A zero cacheTTL disables the
// trending cache.
func NewFeedService(store repositories.Store, cacheTTL time.Duration) *FeedService {
	cache, _ := lru.New[string, trendingEntry](8)
	return &FeedService{
		store:    store,
		cacheTTL: cacheTTL,
		cache:    cache,
		now:      time.Now,
	}
}

// Feed returns one page of posts, newest first, for viewerID
func (s *FeedService) Feed(ctx context.Context, viewerID uint, filter FeedFilter, page Page) (PageResult[models.Post], error) {
	var (
		posts []models.Post
		total int64
		err   error
	)
	repo := s.store.Posts()

	if tag := NormalizeHashtag(filter.Hashtag); tag != "" {
		posts, total, err = repo.ListPostsByHashtag(ctx, tag, page.window())
	} else if names := cleanUsernames(filter.TaggedUsers); len(names) > 0 {
		posts, total, err = repo.ListPostsByTaggedUsernames(ctx, names, page.window())
	} else {
		var following []uint
		following, err = s.store.Follows().GetFollowingIDs(ctx, viewerID)
		if err != nil {
			return PageResult[models.Post]{}, errors.Wrap(err, "failed to load followed users")
		}
		posts, total, err = repo.ListPostsByAuthors(ctx, following, page.window())
	}
	if err != nil {
		return PageResult[models.Post]{}, errors.Wrap(err, "failed to load feed")
	}
	return newPageResult(posts, page, total), nil
}

func cleanUsernames(raw []string) []string {
	names := []string{}
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if name := strings.TrimPrefix(strings.TrimSpace(part), "@"); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// Trending returns up to TrendingLimit posts created within TrendingWindow,
// most liked first. Likes placed through shares count toward the original.
func (s *FeedService) Trending(ctx context.Context) ([]models.Post, error) {
	now := s.now()
	since := now.Add(-TrendingWindow)
	if s.cacheTTL > 0 {
		if entry, ok := s.cache.Get(trendingCacheKey); ok && now.Before(entry.expiresAt) {
			return withinWindow(entry.posts, since), nil
		}
	}

	scores, err := s.store.Posts().ListTrendingCandidates(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to score trending posts")
	}
	ids := rankTrending(scores, TrendingLimit)
	posts, err := s.store.Posts().GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load trending posts")
	}
	posts = repositories.OrderPostsByIDs(posts, ids)

	if s.cacheTTL > 0 {
		s.cache.Add(trendingCacheKey, trendingEntry{posts: posts, expiresAt: now.Add(s.cacheTTL)})
	}
	return posts, nil
}

// withinWindow drops cached posts that aged out of the window since caching
func withinWindow(posts []models.Post, since time.Time) []models.Post {
	kept := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !p.CreatedAt.Before(since) {
			kept = append(kept, p)
		}
	}
	return kept
}

// rankTrending orders candidates by total likes, newest first on ties and
// then by higher id, and keeps the first limit post ids.
func rankTrending(scores []models.PostScore, limit int) []uint {
	ranked := make([]models.PostScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Total() != b.Total() {
			return a.Total() > b.Total()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.PostID > b.PostID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	ids := make([]uint, len(ranked))
	for i, sc := range ranked {
		ids[i] = sc.PostID
	}
	return ids
}
