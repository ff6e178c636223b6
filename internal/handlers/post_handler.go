package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
	feed        *FeedHandler
}

// NewPostHandler creates a new PostHandler. Listing posts is the feed query.
func NewPostHandler(postService *services.PostService, feed *FeedHandler) *PostHandler {
	return &PostHandler{postService: postService, feed: feed}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.feed.GetFeed)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/trending", h.feed.GetTrending)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, newPostResponse(*post))
}

// GetPost retrieves a single post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseIDParam(c, "post")
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, newPostResponse(*post))
}

// UpdatePost updates an existing post. Only the author may do this.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseIDParam(c, "post")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Update(c.Request().Context(), getUserIDFromContext(c), id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, newPostResponse(*post))
}

// DeletePost deletes a post. Only the author may do this.
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseIDParam(c, "post")
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
