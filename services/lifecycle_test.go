package services

import (
	"testing"
	"time"

	"eventhub-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEvent() models.Event {
	return models.Event{
		Title:       "Talk",
		Description: "About Go",
		Date:        models.NewDate(2026, time.May, 1),
		Time:        &models.TimeOfDay{Hour: 18, Minute: 0},
		Place:       "Room 1",
		Capacity:    20,
	}
}

func TestDiffEvent(t *testing.T) {
	tests := []struct {
		name      string
		edit      func(*models.Event)
		cancelled bool
		fields    []string
	}{
		{name: "nothing", edit: func(e *models.Event) {}},
		{name: "capacity and description", edit: func(e *models.Event) {
			e.Capacity = 5
			e.Description = "Changed"
		}},
		{name: "title", edit: func(e *models.Event) { e.Title = "Workshop" }, fields: []string{"title"}},
		{name: "date and time", edit: func(e *models.Event) {
			e.Date = models.NewDate(2026, time.May, 2)
			e.Time = nil
		}, fields: []string{"date", "time"}},
		{name: "place", edit: func(e *models.Event) { e.Place = "Room 2" }, fields: []string{"place"}},
		{name: "cancellation wins", edit: func(e *models.Event) {
			e.IsCancelled = true
			e.Title = "Renamed"
		}, cancelled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseEvent()
			updated := baseEvent()
			tt.edit(&updated)

			edit := DiffEvent(old, updated)
			assert.Equal(t, tt.cancelled, edit.Cancelled)

			var fields []string
			for _, change := range edit.Changes {
				fields = append(fields, change.Field)
			}
			assert.Equal(t, tt.fields, fields)
			assert.Equal(t, tt.cancelled || len(tt.fields) > 0, edit.NeedsNotification())
		})
	}
}

func TestDiffEventAlreadyCancelled(t *testing.T) {
	old := baseEvent()
	old.IsCancelled = true
	updated := old
	updated.Title = "Renamed"

	assert.False(t, DiffEvent(old, updated).NeedsNotification())
}

func TestEventEditMessages(t *testing.T) {
	old := baseEvent()
	updated := baseEvent()
	updated.Time = nil
	updated.Place = "Garden"

	edit := DiffEvent(old, updated)
	msg := edit.Message(&updated)
	assert.Equal(t, models.NotificationTitleEventChanged, msg.Title)
	assert.Contains(t, msg.Body, "time: 18:00 → -")
	assert.Contains(t, msg.Body, "place: Room 1 → Garden")

	updated.IsCancelled = true
	msg = DiffEvent(old, updated).Message(&updated)
	require.Equal(t, models.NotificationTitleEventCancelled, msg.Title)
	assert.Contains(t, msg.Body, "«Talk» (2026-05-01) has been cancelled")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 min", formatDuration(30*time.Second))
	assert.Equal(t, "45 min", formatDuration(45*time.Minute))
	assert.Equal(t, "1 h 5 min", formatDuration(65*time.Minute))
	assert.Equal(t, "1 day", formatDuration(25*time.Hour))
	assert.Equal(t, "3 days", formatDuration(72*time.Hour))
}
