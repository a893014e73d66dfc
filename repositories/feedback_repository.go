package repositories

import (
	"eventhub-api/models"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepository) FindByID(id string) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.First(&feedback, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepository) Exists(eventID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Feedback{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *FeedbackRepository) ListByEvent(eventID string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Where("event_id = ?", eventID).Order("created_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *FeedbackRepository) UpdateReply(id, reply string) error {
	return r.db.Model(&models.Feedback{}).Where("id = ?", id).Update("reply", reply).Error
}

// AverageRatings returns the mean rating keyed by event id; events without
// feedback are absent from the map
func (r *FeedbackRepository) AverageRatings() (map[string]float64, error) {
	var rows []struct {
		EventID   string
		AvgRating float64
	}
	err := r.db.Model(&models.Feedback{}).
		Select("event_id, AVG(rating) AS avg_rating").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	averages := make(map[string]float64, len(rows))
	for _, row := range rows {
		averages[row.EventID] = row.AvgRating
	}
	return averages, nil
}
