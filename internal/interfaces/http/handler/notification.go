package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appnotification "github.com/rental/backend/internal/application/notification"
	"github.com/rental/backend/internal/domain/notification"
	"github.com/rental/backend/internal/interfaces/http/middleware"
)

// NotificationHandler handles in-app notification requests
type NotificationHandler struct {
	BaseHandler
	notificationService *appnotification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *appnotification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(authed, managed *gin.RouterGroup) {
	authed.GET("/notifications", h.List)
	authed.GET("/notifications/unread-count", h.UnreadCount)
	authed.POST("/notifications/:id/read", h.MarkRead)
	authed.POST("/notifications/read-all", h.MarkAllRead)

	managed.POST("/notifications", h.Broadcast)
}

// BroadcastRequest targets an announcement at one user or a whole room
type BroadcastRequest struct {
	UserID  *uuid.UUID `json:"user_id"`
	RoomID  string     `json:"room_id"`
	Title   string     `json:"title" binding:"required,max=200"`
	Message string     `json:"message" binding:"required"`
}

// NotificationResponse describes one notification
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Status:    string(n.Status),
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// List returns the authenticated user's notifications, unread ones only
// when unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.notificationService.List(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, toNotificationResponse(&notifications[i]))
	}
	h.Success(c, out)
}

// UnreadCount returns how many notifications are unread
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}

// MarkRead marks one of the user's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toNotificationResponse(n))
}

// Broadcast sends an announcement to a user or to every current resident
// of a room
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	count, err := h.notificationService.Broadcast(c.Request.Context(), appnotification.BroadcastInput{
		UserID:  req.UserID,
		RoomID:  req.RoomID,
		Title:   req.Title,
		Message: req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"sent": count})
}

// MarkAllRead marks every unread notification of the user as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"marked": count})
}
