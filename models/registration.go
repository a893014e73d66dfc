// File: /models/registration.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Registration struct {
	ID             string    `json:"id" gorm:"primaryKey;size:191"`
	UserID         string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_registrations_user_event"`
	EventID        string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:idx_registrations_user_event;index"`
	Attended       bool      `json:"attended" gorm:"default:false"`
	LastRemindedOn *Date     `json:"last_reminded_on"`
	CreatedAt      time.Time `json:"created_at"`

	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Event Event `json:"-" gorm:"foreignKey:EventID"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// RemindedOn reports whether the registration was already reminded on day
func (r *Registration) RemindedOn(day Date) bool {
	return r.LastRemindedOn != nil && *r.LastRemindedOn == day
}
