package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/follows", h.ListFollows)
	g.POST("/follows", h.FollowUser)
	g.GET("/follows/:id", h.GetFollow)
	g.DELETE("/follows/:id", h.UnfollowUser)
}

// ListFollows lists follow edges, optionally narrowed by ?follower= and ?followed=
func (h *FollowHandler) ListFollows(c echo.Context) error {
	follower, err := queryUint(c, "follower")
	if err != nil {
		return err
	}
	followed, err := queryUint(c, "followed")
	if err != nil {
		return err
	}

	result, err := h.followService.List(c.Request().Context(),
		repositories.FollowFilter{FollowerID: follower, FollowedID: followed}, pageFromQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return respondPage(c, "follows", result, identity[models.Follow])
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	var req models.CreateFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	// missing followed_user is reported by the service with its own message

	follow, err := h.followService.Create(c.Request().Context(), getUserIDFromContext(c), req.FollowedUser)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, follow)
}

func (h *FollowHandler) GetFollow(c echo.Context) error {
	id, err := parseIDParam(c, "follow")
	if err != nil {
		return err
	}
	follow, err := h.followService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, follow)
}

// UnfollowUser deletes a follow. Only the follower may do this.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	id, err := parseIDParam(c, "follow")
	if err != nil {
		return err
	}
	if err := h.followService.Delete(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
