package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type HashtagHandler struct {
	hashtagService *services.HashtagService
}

func NewHashtagHandler(hashtagService *services.HashtagService) *HashtagHandler {
	return &HashtagHandler{hashtagService: hashtagService}
}

func (h *HashtagHandler) RegisterHashtagRoutes(g *echo.Group) {
	g.GET("/hashtags", h.ListHashtags)
	g.POST("/hashtags", h.CreateHashtag)
	g.GET("/hashtags/:id", h.GetHashtag)
	g.DELETE("/hashtags/:id", h.DeleteHashtag)
}

func (h *HashtagHandler) ListHashtags(c echo.Context) error {
	result, err := h.hashtagService.List(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return respondPage(c, "hashtags", result, identity[models.Hashtag])
}

func (h *HashtagHandler) CreateHashtag(c echo.Context) error {
	var req models.CreateHashtagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tag, err := h.hashtagService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, tag)
}

func (h *HashtagHandler) GetHashtag(c echo.Context) error {
	id, err := parseIDParam(c, "hashtag")
	if err != nil {
		return err
	}
	tag, err := h.hashtagService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, tag)
}

func (h *HashtagHandler) DeleteHashtag(c echo.Context) error {
	id, err := parseIDParam(c, "hashtag")
	if err != nil {
		return err
	}
	if err := h.hashtagService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
