package services

import (
	"context"
	"fmt"
	"math"

	"eventhub-api/models"
	"eventhub-api/repositories"

	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// BuildReport returns attendance and rating figures for every event, ordered by date
func (s *ReportService) BuildReport(ctx context.Context, isStaff bool) ([]models.EventStats, error) {
	if !isStaff {
		return nil, ErrPermissionDenied
	}

	db := s.db.WithContext(ctx)

	events, err := repositories.NewEventRepository(db).ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	counts, err := repositories.NewRegistrationRepository(db).CountsByEvent()
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	averages, err := repositories.NewFeedbackRepository(db).AverageRatings()
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}

	rows := make([]models.EventStats, 0, len(events))
	for _, event := range events {
		count := counts[event.ID]
		row := models.EventStats{
			EventID:   event.ID,
			Title:     event.Title,
			Date:      event.Date.String(),
			Cancelled: event.IsCancelled,
			Total:     count.Total,
			Attended:  count.Attended,
			Rate:      AttendanceRate(count.Attended, count.Total),
		}
		if avg, ok := averages[event.ID]; ok {
			avg := avg
			row.AvgRating = &avg
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AttendanceRate is attended/total as a percentage rounded half to even, or 0
// when nobody registered
func AttendanceRate(attended, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(attended) / float64(total) * 100))
}
