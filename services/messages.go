package services

import (
	"fmt"
	"strings"
	"time"

	"eventhub-api/models"
)

// ReminderPolicy decides which upcoming events deserve a reminder
type ReminderPolicy struct {
	// WindowDays is the look-ahead in calendar days; 0 disables the window
	WindowDays int
	// SameDayThreshold makes events starting sooner than this read as "soon"
	// even when they fall on the next calendar day
	SameDayThreshold time.Duration
}

func DefaultReminderPolicy() ReminderPolicy {
	return ReminderPolicy{WindowDays: 14, SameDayThreshold: 12 * time.Hour}
}

// Message is a notification title and body before it is addressed to a user
type Message struct {
	Title string
	Body  string
}

// Reminder builds the reminder for an event, or reports false when none is due
func (p ReminderPolicy) Reminder(event *models.Event, now time.Time) (Message, bool) {
	start := event.StartsAt(now.Location())
	left := start.Sub(now)
	if left <= 0 {
		return Message{}, false
	}

	today := models.DateOf(now)
	switch {
	case event.Date == today:
		return Message{
			Title: models.NotificationTitleReminder,
			Body:  fmt.Sprintf("Your event «%s» is today (%s), starting in %s.", event.Title, event.When(), formatDuration(left)),
		}, true
	case left < p.SameDayThreshold:
		return Message{
			Title: models.NotificationTitleReminder,
			Body:  fmt.Sprintf("Your event «%s» starts in %s (%s).", event.Title, formatDuration(left), event.When()),
		}, true
	}

	days := today.DaysUntil(event.Date)
	if p.WindowDays > 0 && days > p.WindowDays {
		return Message{}, false
	}
	return Message{
		Title: models.NotificationTitleReminder,
		Body:  fmt.Sprintf("Your event «%s» is in %s (%s).", event.Title, pluralDays(days), event.When()),
	}, true
}

func registrationConfirmedMessage(event *models.Event, now time.Time) Message {
	left := event.StartsAt(now.Location()).Sub(now)
	return Message{
		Title: models.NotificationTitleRegistered,
		Body:  fmt.Sprintf("You are registered for «%s» (%s). It starts in %s.", event.Title, event.When(), formatDuration(left)),
	}
}

func newRegistrationMessage(username string, event *models.Event) Message {
	return Message{
		Title: models.NotificationTitleNewRegistration,
		Body:  fmt.Sprintf("%s registered for «%s» (%s).", username, event.Title, event.When()),
	}
}

func eventCancelledMessage(event *models.Event) Message {
	return Message{
		Title: models.NotificationTitleEventCancelled,
		Body:  fmt.Sprintf("The event «%s» (%s) has been cancelled.", event.Title, event.When()),
	}
}

func eventChangedMessage(event *models.Event, changes []FieldChange) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "The event «%s» has been changed.", event.Title)
	for _, change := range changes {
		fmt.Fprintf(&b, "\n%s: %s → %s", change.Field, orDash(change.Old), orDash(change.New))
	}
	return Message{Title: models.NotificationTitleEventChanged, Body: b.String()}
}

func formatDuration(d time.Duration) string {
	totalMinutes := int(d / time.Minute)
	days := totalMinutes / (60 * 24)
	hours := (totalMinutes % (60 * 24)) / 60
	minutes := totalMinutes % 60

	switch {
	case days > 0:
		return pluralDays(days)
	case hours > 0:
		return fmt.Sprintf("%d h %d min", hours, minutes)
	default:
		return fmt.Sprintf("%d min", minutes)
	}
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
