package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"eventhub-api/models"
	"eventhub-api/repositories"

	"gorm.io/gorm"
)

const (
	// OutboxBatchSize bounds how many notifications one relay pass picks up
	OutboxBatchSize = 100
	// MaxDeliveryAttempts is how often a notification is tried before it is dead-lettered
	MaxDeliveryAttempts = 8

	retryBaseDelay = time.Minute
	retryMaxDelay  = time.Hour
)

// RetryDelay is the wait after the given number of failed attempts, doubling
// from one minute up to an hour
func RetryDelay(attempts int) time.Duration {
	delay := retryBaseDelay
	for i := 1; i < attempts && delay < retryMaxDelay; i++ {
		delay *= 2
	}
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}

// OutboxService relays stored notifications to external dispatchers
type OutboxService struct {
	db          *gorm.DB
	dispatchers []Dispatcher
}

func NewOutboxService(db *gorm.DB, dispatchers ...Dispatcher) *OutboxService {
	return &OutboxService{db: db, dispatchers: dispatchers}
}

func (s *OutboxService) HasDispatchers() bool {
	return len(s.dispatchers) > 0
}

// Relay hands due notifications to every dispatcher and stamps the ones all
// dispatchers accepted. A failed notification is retried with backoff and
// dead-lettered after MaxDeliveryAttempts, so a dispatcher may see the same
// notification more than once.
func (s *OutboxService) Relay(ctx context.Context, now time.Time) (int, error) {
	notifications := repositories.NewNotificationRepository(s.db.WithContext(ctx))

	pending, err := notifications.ListDue(now, OutboxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list undelivered notifications: %w", err)
	}

	delivered := make([]string, 0, len(pending))
	for _, notification := range pending {
		if err := s.dispatch(ctx, notification); err != nil {
			if err := s.recordFailure(notifications, notification, now); err != nil {
				return 0, err
			}
			continue
		}
		delivered = append(delivered, notification.ID)
	}

	if err := notifications.MarkDelivered(delivered, now); err != nil {
		return 0, fmt.Errorf("failed to mark notifications delivered: %w", err)
	}
	return len(delivered), nil
}

func (s *OutboxService) dispatch(ctx context.Context, notification models.Notification) error {
	for _, dispatcher := range s.dispatchers {
		if err := dispatcher.Dispatch(ctx, notification); err != nil {
			log.Printf("Dispatcher %s failed for notification %s: %v", dispatcher.Name(), notification.ID, err)
			return err
		}
	}
	return nil
}

func (s *OutboxService) recordFailure(notifications *repositories.NotificationRepository, notification models.Notification, now time.Time) error {
	attempts := notification.DeliveryAttempts + 1
	if attempts >= MaxDeliveryAttempts {
		log.Printf("Giving up on notification %s after %d attempts", notification.ID, attempts)
		if err := notifications.MarkFailed(notification.ID, attempts, now); err != nil {
			return fmt.Errorf("failed to dead-letter notification: %w", err)
		}
		return nil
	}

	if err := notifications.ScheduleRetry(notification.ID, attempts, now.Add(RetryDelay(attempts))); err != nil {
		return fmt.Errorf("failed to schedule notification retry: %w", err)
	}
	return nil
}
