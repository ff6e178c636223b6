package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SharedPostHandler handles HTTP requests related to shares
type SharedPostHandler struct {
	sharedPostService *services.SharedPostService
}

func NewSharedPostHandler(sharedPostService *services.SharedPostService) *SharedPostHandler {
	return &SharedPostHandler{sharedPostService: sharedPostService}
}

func (h *SharedPostHandler) RegisterSharedPostRoutes(g *echo.Group) {
	g.GET("/sharedposts", h.ListSharedPosts)
	g.POST("/sharedposts", h.SharePost)
	g.GET("/sharedposts/:id", h.GetSharedPost)
	g.PUT("/sharedposts/:id", h.UpdateSharedPost)
	g.PATCH("/sharedposts/:id", h.UpdateSharedPost)
	g.DELETE("/sharedposts/:id", h.DeleteSharedPost)
}

// ListSharedPosts lists shares, optionally narrowed by ?post= and ?user=
func (h *SharedPostHandler) ListSharedPosts(c echo.Context) error {
	postID, err := queryUint(c, "post")
	if err != nil {
		return err
	}
	userID, err := queryUint(c, "user")
	if err != nil {
		return err
	}
	result, err := h.sharedPostService.List(c.Request().Context(),
		repositories.SharedPostFilter{PostID: postID, UserID: userID}, pageFromQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return respondPage(c, "shared_posts", result, identity[models.SharedPost])
}

func (h *SharedPostHandler) SharePost(c echo.Context) error {
	var req models.CreateSharedPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	share, err := h.sharedPostService.Create(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, share)
}

func (h *SharedPostHandler) GetSharedPost(c echo.Context) error {
	id, err := parseIDParam(c, "shared post")
	if err != nil {
		return err
	}
	share, err := h.sharedPostService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, share)
}

func (h *SharedPostHandler) UpdateSharedPost(c echo.Context) error {
	id, err := parseIDParam(c, "shared post")
	if err != nil {
		return err
	}
	var req models.UpdateSharedPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	share, err := h.sharedPostService.Update(c.Request().Context(), getUserIDFromContext(c), id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, share)
}

func (h *SharedPostHandler) DeleteSharedPost(c echo.Context) error {
	id, err := parseIDParam(c, "shared post")
	if err != nil {
		return err
	}
	if err := h.sharedPostService.Delete(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
