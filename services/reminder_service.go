package services

import (
	"context"
	"fmt"
	"time"

	"eventhub-api/models"
	"eventhub-api/repositories"

	"gorm.io/gorm"
)

// MaxReminderAlerts caps how many reminders one generation surfaces as alerts
const MaxReminderAlerts = 2

// ReminderResult holds the reminders stored by one generation and the subset
// to show the user right away
type ReminderResult struct {
	Created []models.Notification `json:"-"`
	Alerts  []string              `json:"alerts"`
}

type ReminderService struct {
	db            *gorm.DB
	notifications *NotificationService
	policy        ReminderPolicy
}

func NewReminderService(db *gorm.DB, notifications *NotificationService, policy ReminderPolicy) *ReminderService {
	return &ReminderService{db: db, notifications: notifications, policy: policy}
}

// Generate stores at most one reminder per registration per calendar day for
// the user's upcoming events
func (s *ReminderService) Generate(ctx context.Context, userID string, now time.Time) (ReminderResult, error) {
	result := ReminderResult{Alerts: []string{}}
	today := models.DateOf(now)

	registrations, err := repositories.NewRegistrationRepository(s.db.WithContext(ctx)).ListActiveForUser(userID)
	if err != nil {
		return result, fmt.Errorf("failed to list registrations: %w", err)
	}

	for i := range registrations {
		registration := &registrations[i]
		if registration.RemindedOn(today) {
			continue
		}

		msg, due := s.policy.Reminder(&registration.Event, now)
		if !due {
			continue
		}

		notification, err := s.remind(ctx, registration, today, msg)
		if err != nil {
			return result, err
		}
		if notification == nil {
			continue
		}

		result.Created = append(result.Created, *notification)
		if len(result.Alerts) < MaxReminderAlerts {
			result.Alerts = append(result.Alerts, notification.Title+": "+notification.Body)
		}
	}

	return result, nil
}

// remind stamps the registration and stores the reminder together. A nil
// notification means a concurrent call already reminded it today.
func (s *ReminderService) remind(ctx context.Context, registration *models.Registration, today models.Date, msg Message) (*models.Notification, error) {
	var notification *models.Notification

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		won, err := repositories.NewRegistrationRepository(tx).StampReminded(registration.ID, today)
		if err != nil {
			return fmt.Errorf("failed to stamp reminder: %w", err)
		}
		if !won {
			return nil
		}

		notification, err = s.notifications.Notify(tx, registration.UserID, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}
