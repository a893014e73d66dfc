package services

import (
	"context"
	"fmt"

	"eventhub-api/models"
	"eventhub-api/repositories"

	"gorm.io/gorm"
)

// FeedLimit bounds the notification feed to the most recent entries
const FeedLimit = 100

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify stores one message for one user using tx
func (s *NotificationService) Notify(tx *gorm.DB, userID string, msg Message) (*models.Notification, error) {
	notification := &models.Notification{
		UserID: userID,
		Title:  msg.Title,
		Body:   msg.Body,
	}
	if err := repositories.NewNotificationRepository(tx).Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// FanOut stores msg once for every user registered for the event using tx
func (s *NotificationService) FanOut(tx *gorm.DB, eventID string, msg Message) ([]models.Notification, error) {
	userIDs, err := repositories.NewRegistrationRepository(tx).RegistrantIDs(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrants: %w", err)
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, models.Notification{
			UserID: userID,
			Title:  msg.Title,
			Body:   msg.Body,
		})
	}

	if err := repositories.NewNotificationRepository(tx).CreateBatch(notifications); err != nil {
		return nil, fmt.Errorf("failed to fan out notifications: %w", err)
	}
	return notifications, nil
}

// List returns the newest notifications of a user, most recent first
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}
	notifications, err := repositories.NewNotificationRepository(s.db.WithContext(ctx)).ListForUser(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkAllRead acknowledges every unread notification of a user
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	marked, err := repositories.NewNotificationRepository(s.db.WithContext(ctx)).MarkAllRead(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return marked, nil
}

func (s *NotificationService) Stats(ctx context.Context, userID string) (models.NotificationStats, error) {
	stats, err := repositories.NewNotificationRepository(s.db.WithContext(ctx)).Stats(userID)
	if err != nil {
		return models.NotificationStats{}, fmt.Errorf("failed to fetch notification stats: %w", err)
	}
	return stats, nil
}
