// File: /models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          string     `json:"id" gorm:"primaryKey;size:191"`
	Title       string     `json:"title" gorm:"not null;size:200"`
	Description string     `json:"description" gorm:"type:text"`
	Date        Date       `json:"date" gorm:"column:start_date;not null;index:idx_events_start"`
	Time        *TimeOfDay `json:"time" gorm:"column:start_time;index:idx_events_start"`
	Place       string     `json:"place" gorm:"size:200"`
	Capacity    int        `json:"capacity" gorm:"not null"`
	CreatedByID *string    `json:"created_by_id" gorm:"size:191;index"`
	IsCancelled bool       `json:"is_cancelled" gorm:"default:false;index"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	CreatedBy     *User          `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Registrations []Registration `json:"-" gorm:"foreignKey:EventID"`
	Feedbacks     []Feedback     `json:"-" gorm:"foreignKey:EventID"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// StartsAt combines the event date with its time, or midnight when no time is set
func (e *Event) StartsAt(loc *time.Location) time.Time {
	if e.Time == nil {
		return e.Date.In(loc)
	}
	return time.Date(e.Date.Year, e.Date.Month, e.Date.Day, e.Time.Hour, e.Time.Minute, 0, 0, loc)
}

func (e *Event) IsPast(now time.Time) bool {
	return !e.StartsAt(now.Location()).After(now)
}

// When renders the date and optional time the way notifications quote them
func (e *Event) When() string {
	if e.Time == nil {
		return e.Date.String()
	}
	return e.Date.String() + " " + e.Time.String()
}

// TimeString returns the time of day or an empty string when unset
func (e *Event) TimeString() string {
	if e.Time == nil {
		return ""
	}
	return e.Time.String()
}

// EventListItem is one row of the public events feed
type EventListItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Place       string `json:"place"`
	Capacity    int    `json:"capacity"`
	Taken       int    `json:"taken"`
	IsPast      bool   `json:"is_past"`
	IsFull      bool   `json:"is_full"`
	CanRegister bool   `json:"can_register"`
}

// MyEventItem is one row of the current user's registrations feed
type MyEventItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Place string `json:"place"`
}
