package services

import (
	"testing"
	"time"

	"eventhub-api/database/dbtest"
	"eventhub-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testNow is a fixed clock shared by the service tests
var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	t  *testing.T
	db *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, db: dbtest.New(t)}
}

func (f *fixture) user(username string, staff bool) *models.User {
	f.t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsStaff:  staff,
	}
	require.NoError(f.t, f.db.Create(user).Error)
	return user
}

// event stores an event starting at start, adjusted by opts
func (f *fixture) event(title string, start time.Time, opts ...func(*models.Event)) *models.Event {
	f.t.Helper()
	tod := models.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()}
	event := &models.Event{
		Title:    title,
		Date:     models.DateOf(start),
		Time:     &tod,
		Place:    "Main hall",
		Capacity: 10,
	}
	for _, opt := range opts {
		opt(event)
	}
	require.NoError(f.t, f.db.Create(event).Error)
	return event
}

func (f *fixture) register(user *models.User, event *models.Event) *models.Registration {
	f.t.Helper()
	registration := &models.Registration{UserID: user.ID, EventID: event.ID}
	require.NoError(f.t, f.db.Create(registration).Error)
	return registration
}

func (f *fixture) notificationsOf(user *models.User) []models.Notification {
	f.t.Helper()
	var notifications []models.Notification
	require.NoError(f.t, f.db.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&notifications).Error)
	return notifications
}

func (f *fixture) count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func createdBy(user *models.User) func(*models.Event) {
	return func(e *models.Event) {
		id := user.ID
		e.CreatedByID = &id
	}
}

func withCapacity(capacity int) func(*models.Event) {
	return func(e *models.Event) { e.Capacity = capacity }
}

func cancelled(e *models.Event) {
	e.IsCancelled = true
}

func withoutTime(e *models.Event) {
	e.Time = nil
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
