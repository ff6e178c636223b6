package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes. Notifications
// are created by likes and comments, so there is no POST /notifications.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread_count", h.GetUnreadCount)
	g.POST("/notifications/mark_as_read", h.MarkAllAsRead)
	g.GET("/notifications/:id", h.GetNotification)
	g.DELETE("/notifications/:id", h.DeleteNotification)
	g.POST("/notifications/:id/mark_as_read", h.MarkAsRead)
}

// GetNotifications returns the caller's notifications, newest first.
// ?unread=true hides the ones already read.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	unreadOnly, _ := strconv.ParseBool(c.QueryParam("unread"))

	result, err := h.notificationService.List(c.Request().Context(), getUserIDFromContext(c), unreadOnly, pageFromQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return respondPage(c, "notifications", result, identity[models.Notification])
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationService.UnreadCount(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"unread_count": count})
}

func (h *NotificationHandler) GetNotification(c echo.Context) error {
	id, err := parseIDParam(c, "notification")
	if err != nil {
		return err
	}
	n, err := h.notificationService.Get(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, n)
}

// MarkAsRead marks a single notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := parseIDParam(c, "notification")
	if err != nil {
		return err
	}
	n, err := h.notificationService.MarkAsRead(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, n)
}

// MarkAllAsRead marks every unread notification of the caller as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	updated, err := h.notificationService.MarkAllAsRead(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "All notifications marked as read.",
		"data":    echo.Map{"updated": updated},
	})
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	id, err := parseIDParam(c, "notification")
	if err != nil {
		return err
	}
	if err := h.notificationService.Delete(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
