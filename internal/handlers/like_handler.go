package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.GET("/likes", h.ListLikes)
	g.POST("/likes", h.LikePost)
	g.GET("/likes/:id", h.GetLike)
	g.DELETE("/likes/:id", h.UnlikePost)
	g.POST("/likes/:id/toggle_like", h.ToggleLike) // :id is the post
}

// ListLikes lists likes, optionally narrowed by ?post= and ?user=
func (h *LikeHandler) ListLikes(c echo.Context) error {
	postID, err := queryUint(c, "post")
	if err != nil {
		return err
	}
	userID, err := queryUint(c, "user")
	if err != nil {
		return err
	}

	result, err := h.likeService.List(c.Request().Context(),
		repositories.LikeFilter{PostID: postID, UserID: userID}, pageFromQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return respondPage(c, "likes", result, identity[models.Like])
}

// LikePost likes a post directly or through a share
func (h *LikeHandler) LikePost(c echo.Context) error {
	var req models.CreateLikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	like, err := h.likeService.Create(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, like)
}

func (h *LikeHandler) GetLike(c echo.Context) error {
	id, err := parseIDParam(c, "like")
	if err != nil {
		return err
	}
	like, err := h.likeService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, like)
}

// UnlikePost deletes a like by its ID. Only the liker may do this.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	id, err := parseIDParam(c, "like")
	if err != nil {
		return err
	}
	if err := h.likeService.Delete(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike likes the post if the caller has not yet, otherwise unlikes it
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	postID, err := parseIDParam(c, "post")
	if err != nil {
		return err
	}

	result, err := h.likeService.Toggle(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return serviceError(c, err)
	}

	message := "Liked successfully."
	if result == services.Unliked {
		message = "Unliked successfully."
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"data":    echo.Map{"post_id": postID, "status": result},
	})
}
