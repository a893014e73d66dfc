package repositories

import (
	"time"

	"eventhub-api/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepository) CreateBatch(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

// ListForUser returns the newest notifications of a user
func (r *NotificationRepository) ListForUser(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkAllRead flags every unread notification of a user as read
func (r *NotificationRepository) MarkAllRead(userID string) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) Stats(userID string) (models.NotificationStats, error) {
	var unread, total int64
	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return models.NotificationStats{}, err
	}
	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return models.NotificationStats{}, err
	}
	return models.NotificationStats{UnreadCount: int(unread), TotalCount: int(total)}, nil
}

// ListDue returns notifications waiting to be relayed whose next attempt is
// due at now, oldest first, with recipients. Dead-lettered rows are skipped.
func (r *NotificationRepository) ListDue(now time.Time, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Preload("User").
		Where("delivered_at IS NULL AND delivery_failed_at IS NULL").
		Where("next_attempt_at IS NULL OR next_attempt_at <= ?", now).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// ScheduleRetry records a failed attempt and when to try again
func (r *NotificationRepository) ScheduleRetry(id string, attempts int, next time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivery_attempts": attempts,
			"next_attempt_at":   next,
		}).Error
}

// MarkFailed dead-letters a notification so the relay stops picking it up
func (r *NotificationRepository) MarkFailed(id string, attempts int, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivery_attempts":  attempts,
			"delivery_failed_at": at,
		}).Error
}

func (r *NotificationRepository) MarkDelivered(ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Notification{}).
		Where("id IN ?", ids).
		Update("delivered_at", at).Error
}
