package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationTimeAgo(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{time.Hour, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		n := Notification{CreatedAt: now.Add(-tt.ago)}
		assert.Equal(t, tt.want, n.GetTimeAgo(now), tt.ago.String())
	}
}

func TestNotificationToResponse(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, loc)
	n := Notification{ID: "n1", Title: "Reminder", Body: "soon", CreatedAt: time.Date(2026, time.March, 10, 7, 30, 0, 0, time.UTC)}

	resp := n.ToResponse(now)
	assert.Equal(t, "2026-03-10 08:30", resp.Created)
	assert.Equal(t, "30 minutes ago", resp.TimeAgo)
	assert.False(t, resp.IsRead)
}
