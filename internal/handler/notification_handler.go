package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// NotificationHandler обрабатывает запросы уведомлений получателя
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler создает новый обработчик уведомлений
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications возвращает уведомления текущего пользователя
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	onlyUnread := c.DefaultQuery("unread", "false") == "true"

	notifications, total, err := h.notificationService.List(userID, onlyUnread, page, perPage)
	if err != nil {
		h.handleNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"page":          page,
		"per_page":      perPage,
	})
}

// MarkRead помечает уведомление прочитанным
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID := c.MustGet("notificationID").(uint)
	userID := c.MustGet("user_id").(uint)

	if err := h.notificationService.MarkRead(notificationID, userID); err != nil {
		h.handleNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead помечает прочитанными все уведомления пользователя
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		h.handleNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotification удаляет уведомление пользователя
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notificationID := c.MustGet("notificationID").(uint)
	userID := c.MustGet("user_id").(uint)

	if err := h.notificationService.Delete(notificationID, userID); err != nil {
		h.handleNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// handleNotificationError обрабатывает ошибки сервиса уведомлений
func (h *NotificationHandler) handleNotificationError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in NotificationHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
