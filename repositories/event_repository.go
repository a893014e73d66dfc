package repositories

import (
	"time"

	"eventhub-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// FindByID retrieves an event, returning gorm.ErrRecordNotFound when missing
func (r *EventRepository) FindByID(id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate retrieves an event and locks its row until the transaction ends.
// sqlite has no row locks; its single writer connection serializes instead.
func (r *EventRepository) FindByIDForUpdate(id string) (*models.Event, error) {
	query := r.db
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var event models.Event
	if err := query.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListActive returns non-cancelled events ordered by start
func (r *EventRepository) ListActive() ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("is_cancelled = ?", false).
		Order("start_date ASC").
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

// ListAll returns every event ordered by date
func (r *EventRepository) ListAll() ([]models.Event, error) {
	var events []models.Event
	err := r.db.Order("start_date ASC").Order("start_time ASC").Find(&events).Error
	return events, err
}

func (r *EventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// Save persists the editable columns of an existing event
func (r *EventRepository) Save(event *models.Event) error {
	return r.db.Model(&models.Event{ID: event.ID}).Updates(map[string]interface{}{
		"title":        event.Title,
		"description":  event.Description,
		"start_date":   event.Date,
		"start_time":   event.Time,
		"place":        event.Place,
		"capacity":     event.Capacity,
		"is_cancelled": event.IsCancelled,
		"cancelled_at": event.CancelledAt,
	}).Error
}

// MarkCancelled flips the cancellation flag only if it is still unset and
// reports whether this call performed the transition
func (r *EventRepository) MarkCancelled(id string, at time.Time) (bool, error) {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND is_cancelled = ?", id, false).
		Updates(map[string]interface{}{
			"is_cancelled": true,
			"cancelled_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete removes an event together with its registrations and feedback.
// Must run inside a transaction.
func (r *EventRepository) Delete(id string) (bool, error) {
	if err := r.db.Where("event_id = ?", id).Delete(&models.Registration{}).Error; err != nil {
		return false, err
	}
	if err := r.db.Where("event_id = ?", id).Delete(&models.Feedback{}).Error; err != nil {
		return false, err
	}
	result := r.db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
