// File: /models/feedback.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:idx_feedbacks_event_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_feedbacks_event_user;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	Reply     string    `json:"reply" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// EventStats is one row of the attendance and rating report
type EventStats struct {
	EventID   string   `json:"event_id"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Cancelled bool     `json:"is_cancelled"`
	Total     int      `json:"total"`
	Attended  int      `json:"attended"`
	Rate      int      `json:"rate"`
	AvgRating *float64 `json:"avg_rating"`
}
