package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct message HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.ListMessages)
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/:id", h.GetMessage)
	g.DELETE("/messages/:id", h.DeleteMessage)
	g.POST("/messages/:id/mark_as_read", h.MarkAsRead)
}

// ListMessages lists the caller's messages; ?with=<user id> shows one conversation
func (h *MessageHandler) ListMessages(c echo.Context) error {
	peer, err := queryUint(c, "with")
	if err != nil {
		return err
	}
	result, err := h.messageService.List(c.Request().Context(), getUserIDFromContext(c), peer, pageFromQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return respondPage(c, "messages", result, identity[models.Message])
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.CreateMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.messageService.Send(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, msg)
}

func (h *MessageHandler) GetMessage(c echo.Context) error {
	id, err := parseIDParam(c, "message")
	if err != nil {
		return err
	}
	msg, err := h.messageService.Get(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, msg)
}

func (h *MessageHandler) MarkAsRead(c echo.Context) error {
	id, err := parseIDParam(c, "message")
	if err != nil {
		return err
	}
	msg, err := h.messageService.MarkAsRead(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, msg)
}

func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	id, err := parseIDParam(c, "message")
	if err != nil {
		return err
	}
	if err := h.messageService.Delete(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
