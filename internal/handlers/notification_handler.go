package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/services"
	"github.com/driveeasy/booking-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

// List returns the authenticated user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationService.List(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.RespondError(c, err, "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead flips a single notification; a non-owned id is a silent no-op.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid notification id"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), uint(id), CurrentUserID(c)); err != nil {
		h.RespondError(c, err, "Failed to update notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead flips every unread notification for the user.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), CurrentUserID(c)); err != nil {
		h.RespondError(c, err, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
