package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments", h.ListComments)
	g.POST("/comments", h.CreateComment)
	g.GET("/comments/:id", h.GetComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.PATCH("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// ListComments lists comments oldest first, optionally for one ?post=
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := queryUint(c, "post")
	if err != nil {
		return err
	}
	result, err := h.commentService.List(c.Request().Context(), postID, pageFromQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return respondPage(c, "comments", result, identity[models.Comment])
}

// CreateComment comments on a post and notifies its author
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Create(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, comment)
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := parseIDParam(c, "comment")
	if err != nil {
		return err
	}
	comment, err := h.commentService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, comment)
}

// UpdateComment edits a comment. Only its author may do this.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := parseIDParam(c, "comment")
	if err != nil {
		return err
	}
	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Update(c.Request().Context(), getUserIDFromContext(c), id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, comment)
}

// DeleteComment deletes a comment. Only its author may do this.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseIDParam(c, "comment")
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
