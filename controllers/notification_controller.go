// File: /controllers/notification_controller.go
package controllers

import (
	"net/http"

	"eventhub-api/middleware"
	"eventhub-api/models"
	"eventhub-api/services"
	"eventhub-api/utils"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService *services.NotificationService
	reminderService     *services.ReminderService
	now                 Clock
}

func NewNotificationController(notificationService *services.NotificationService, reminderService *services.ReminderService, now Clock) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		reminderService:     reminderService,
		now:                 now,
	}
}

type DashboardResponse struct {
	UserID   string                   `json:"user_id"`
	Username string                   `json:"username"`
	IsStaff  bool                     `json:"is_staff"`
	Alerts   []string                 `json:"alerts"`
	Stats    models.NotificationStats `json:"notifications"`
}

// Dashboard is the authenticated landing page; visiting it generates the
// day's reminders and returns at most a couple of them as alerts
func (nc *NotificationController) Dashboard(c *gin.Context) {
	userID := currentUserID(c)

	result, err := nc.reminderService.Generate(c.Request.Context(), userID, nc.now())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	stats, err := nc.notificationService.Stats(c.Request.Context(), userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		UserID:   userID,
		Username: c.GetString(middleware.ContextUsername),
		IsStaff:  c.GetBool(middleware.ContextIsStaff),
		Alerts:   result.Alerts,
		Stats:    stats,
	})
}

// GetNotifications returns the caller's feed, then marks it as read
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := currentUserID(c)
	now := nc.now()

	notifications, err := nc.notificationService.List(c.Request.Context(), userID, services.FeedLimit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	if _, err := nc.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, notification.ToResponse(now))
	}
	c.JSON(http.StatusOK, responses)
}

// GetNotificationStats gets notification statistics
func (nc *NotificationController) GetNotificationStats(c *gin.Context) {
	stats, err := nc.notificationService.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
