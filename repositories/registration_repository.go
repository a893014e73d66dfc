package repositories

import (
	"eventhub-api/models"

	"gorm.io/gorm"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// RegistrationCounts aggregates total and attended registrations per event
type RegistrationCounts struct {
	EventID  string
	Total    int
	Attended int
}

func (r *RegistrationRepository) Create(registration *models.Registration) error {
	return r.db.Create(registration).Error
}

func (r *RegistrationRepository) FindByID(id string) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.First(&registration, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *RegistrationRepository) CountByEvent(eventID string) (int, error) {
	var count int64
	err := r.db.Model(&models.Registration{}).Where("event_id = ?", eventID).Count(&count).Error
	return int(count), err
}

func (r *RegistrationRepository) Exists(userID, eventID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Registration{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

// CountsByEvent returns registration totals keyed by event id
func (r *RegistrationRepository) CountsByEvent() (map[string]RegistrationCounts, error) {
	var rows []RegistrationCounts
	err := r.db.Model(&models.Registration{}).
		Select("event_id, COUNT(*) AS total, SUM(CASE WHEN attended THEN 1 ELSE 0 END) AS attended").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]RegistrationCounts, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row
	}
	return counts, nil
}

// ListActiveForUser returns the user's registrations on non-cancelled events
// with the event preloaded, oldest registration first
func (r *RegistrationRepository) ListActiveForUser(userID string) ([]models.Registration, error) {
	var registrations []models.Registration
	activeEvents := r.db.Model(&models.Event{}).Select("id").Where("is_cancelled = ?", false)
	err := r.db.Preload("Event").
		Where("user_id = ? AND event_id IN (?)", userID, activeEvents).
		Order("created_at ASC").
		Find(&registrations).Error
	return registrations, err
}

// ListByEvent returns the registrations of one event with users preloaded
func (r *RegistrationRepository) ListByEvent(eventID string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&registrations).Error
	return registrations, err
}

// RegistrantIDs returns the ids of users registered for the event
func (r *RegistrationRepository) RegistrantIDs(eventID string) ([]string, error) {
	var userIDs []string
	err := r.db.Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// StampReminded sets last_reminded_on to day unless it already holds day and
// reports whether this call won the stamp
func (r *RegistrationRepository) StampReminded(id string, day models.Date) (bool, error) {
	result := r.db.Model(&models.Registration{}).
		Where("id = ? AND (last_reminded_on IS NULL OR last_reminded_on <> ?)", id, day).
		Update("last_reminded_on", day)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *RegistrationRepository) SetAttended(id string, attended bool) error {
	return r.db.Model(&models.Registration{}).Where("id = ?", id).Update("attended", attended).Error
}
