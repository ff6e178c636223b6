package handlers

import (
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
)

// PostResponse is a post with compact author and tagged users, so other
// users' emails never leave the profile endpoints.
type PostResponse struct {
	ID          uint                 `json:"id"`
	UserID      uint                 `json:"user_id"`
	Author      models.UserCompact   `json:"author"`
	Content     string               `json:"content"`
	Media       string               `json:"media,omitempty"`
	Hashtags    []models.Hashtag     `json:"hashtags"`
	TaggedUsers []models.UserCompact `json:"tagged_users"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func newPostResponse(p models.Post) PostResponse {
	resp := PostResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Content:     p.Content,
		Media:       p.Media,
		Hashtags:    p.Hashtags,
		TaggedUsers: make([]models.UserCompact, len(p.TaggedUsers)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if resp.Hashtags == nil {
		resp.Hashtags = []models.Hashtag{}
	}
	if p.Author != nil {
		resp.Author = p.Author.ToCompact()
	}
	for i := range p.TaggedUsers {
		resp.TaggedUsers[i] = p.TaggedUsers[i].ToCompact()
	}
	return resp
}

func newPostResponses(posts []models.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i, p := range posts {
		out[i] = newPostResponse(p)
	}
	return out
}

func compactUsers(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
