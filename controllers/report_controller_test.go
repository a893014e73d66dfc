package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"eventhub-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReports(t *testing.T) {
	s := newTestServer(t)
	_, staff := s.user("staff", true)
	alice, aliceToken := s.user("alice", false)
	bob, _ := s.user("bob", false)

	event := s.event("Conference", testNow.Add(-24*time.Hour), 10)
	require.NoError(t, s.db.Create(&models.Registration{UserID: alice.ID, EventID: event.ID, Attended: true}).Error)
	require.NoError(t, s.db.Create(&models.Registration{UserID: bob.ID, EventID: event.ID}).Error)
	require.NoError(t, s.db.Create(&models.Feedback{UserID: alice.ID, EventID: event.ID, Rating: 4}).Error)
	quiet := s.event("Quiet", testNow.Add(24*time.Hour), 10)

	w := s.do(http.MethodGet, "/reports", aliceToken, nil)
	expectStatus(t, w, http.StatusForbidden)

	w = s.do(http.MethodGet, "/reports", staff, nil)
	expectStatus(t, w, http.StatusOK)

	var rows []models.EventStats
	decode(t, w, &rows)
	require.Len(t, rows, 2)

	assert.Equal(t, event.ID, rows[0].EventID)
	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, 1, rows[0].Attended)
	assert.Equal(t, 50, rows[0].Rate)
	require.NotNil(t, rows[0].AvgRating)
	assert.InDelta(t, 4.0, *rows[0].AvgRating, 0.001)

	assert.Equal(t, quiet.ID, rows[1].EventID)
	assert.Zero(t, rows[1].Total)
	assert.Zero(t, rows[1].Rate)
	assert.Nil(t, rows[1].AvgRating)
}
