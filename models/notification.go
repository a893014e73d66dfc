// File: /models/notification.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTitleReminder        = "Reminder"
	NotificationTitleRegistered      = "Registration confirmed"
	NotificationTitleNewRegistration = "New registration"
	NotificationTitleEventChanged    = "Event changed"
	NotificationTitleEventCancelled  = "Event cancelled"
)

type Notification struct {
	ID          string     `json:"id" gorm:"primaryKey;size:191"`
	UserID      string     `json:"user_id" gorm:"not null;size:191;index:idx_notifications_user_created"`
	Title       string     `json:"title" gorm:"not null;size:200"`
	Body        string     `json:"body" gorm:"type:text"`
	IsRead      bool       `json:"is_read" gorm:"default:false;index"`
	DeliveredAt *time.Time `json:"-" gorm:"index"`

	// relay bookkeeping
	DeliveryAttempts int        `json:"-" gorm:"not null;default:0"`
	NextAttemptAt    *time.Time `json:"-" gorm:"index"`
	DeliveryFailedAt *time.Time `json:"-" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index:idx_notifications_user_created"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// NotificationResponse is one row of the notifications feed
type NotificationResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Created string `json:"created"`
	IsRead  bool   `json:"is_read"`
	TimeAgo string `json:"time_ago"`
}

// NotificationStats counts a user's notifications
type NotificationStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// GetTimeAgo renders how long ago the notification was created relative to now
func (n *Notification) GetTimeAgo(now time.Time) string {
	diff := now.Sub(n.CreatedAt)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	default:
		return plural(int(diff/(24*time.Hour)), "day")
	}
}

// ToResponse renders the feed row with times in now's location
func (n *Notification) ToResponse(now time.Time) NotificationResponse {
	return NotificationResponse{
		ID:      n.ID,
		Title:   n.Title,
		Body:    n.Body,
		Created: n.CreatedAt.In(now.Location()).Format("2006-01-02 15:04"),
		IsRead:  n.IsRead,
		TimeAgo: n.GetTimeAgo(now),
	}
}
