package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

func feedFilterFromQuery(c echo.Context) services.FeedFilter {
	filter := services.FeedFilter{Hashtag: c.QueryParam("hashtag")}
	if tagged := c.QueryParam("tagged_users"); tagged != "" {
		filter.TaggedUsers = []string{tagged}
	}
	return filter
}

// GetFeed returns one page of posts for the current user. ?hashtag= and
// ?tagged_users= switch to the filtered variants.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	result, err := h.feedService.Feed(
		c.Request().Context(),
		getUserIDFromContext(c),
		feedFilterFromQuery(c),
		pageFromQuery(c),
	)
	if err != nil {
		return serviceError(c, err)
	}
	return respondPage(c, "posts", result, newPostResponse)
}

// GetTrending returns the most liked posts of the last day
func (h *FeedHandler) GetTrending(c echo.Context) error {
	posts, err := h.feedService.Trending(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"posts": newPostResponses(posts)})
}
