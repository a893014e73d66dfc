package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"eventhub-api/config"
	"eventhub-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	name string
	err  error
	seen []models.Notification
}

func (d *recordingDispatcher) Name() string { return d.name }

func (d *recordingDispatcher) Dispatch(ctx context.Context, notification models.Notification) error {
	d.seen = append(d.seen, notification)
	return d.err
}

func TestOutboxRelay(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice", false)
	require.NoError(t, f.db.Create(&models.Notification{UserID: alice.ID, Title: "one"}).Error)
	require.NoError(t, f.db.Create(&models.Notification{UserID: alice.ID, Title: "two"}).Error)

	dispatcher := &recordingDispatcher{name: "memory"}
	svc := NewOutboxService(f.db, dispatcher)
	assert.True(t, svc.HasDispatchers())

	delivered, err := svc.Relay(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)
	require.Len(t, dispatcher.seen, 2)
	assert.Equal(t, "alice@example.com", dispatcher.seen[0].User.Email)
	assert.Zero(t, f.count(&models.Notification{}, "delivered_at IS NULL"))

	delivered, err = svc.Relay(context.Background(), testNow)
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.Len(t, dispatcher.seen, 2)
}

func TestOutboxRelayKeepsFailures(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice", false)
	require.NoError(t, f.db.Create(&models.Notification{UserID: alice.ID, Title: "one"}).Error)

	ok := &recordingDispatcher{name: "ok"}
	broken := &recordingDispatcher{name: "broken", err: errors.New("smtp down")}
	svc := NewOutboxService(f.db, ok, broken)

	delivered, err := svc.Relay(context.Background(), testNow)
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.EqualValues(t, 1, f.count(&models.Notification{}, "delivered_at IS NULL"))

	// not due again until the backoff has passed
	broken.err = nil
	delivered, err = svc.Relay(context.Background(), testNow.Add(30*time.Second))
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.Len(t, ok.seen, 1)

	delivered, err = svc.Relay(context.Background(), testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.Len(t, ok.seen, 2)
}

type failingForDispatcher struct {
	username string
	seen     map[string]int
}

func (d *failingForDispatcher) Name() string { return "picky" }

func (d *failingForDispatcher) Dispatch(ctx context.Context, notification models.Notification) error {
	d.seen[notification.User.Username]++
	if notification.User.Username == d.username {
		return errors.New("mailbox rejected")
	}
	return nil
}

func TestOutboxRelayDoesNotStallBehindFailures(t *testing.T) {
	f := newFixture(t)
	bad := f.user("bad", false)
	good := f.user("good", false)

	batch := make([]models.Notification, OutboxBatchSize)
	for i := range batch {
		batch[i] = models.Notification{UserID: bad.ID, Title: "n", CreatedAt: testNow.Add(time.Duration(i) * time.Second)}
	}
	require.NoError(t, f.db.Create(&batch).Error)
	latest := &models.Notification{UserID: good.ID, Title: "hello", CreatedAt: testNow.Add(time.Hour)}
	require.NoError(t, f.db.Create(latest).Error)

	dispatcher := &failingForDispatcher{username: "bad", seen: map[string]int{}}
	svc := NewOutboxService(f.db, dispatcher)
	now := testNow.Add(2 * time.Hour)

	delivered, err := svc.Relay(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, delivered)

	delivered, err = svc.Relay(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, dispatcher.seen["good"])
	assert.Equal(t, OutboxBatchSize, dispatcher.seen["bad"])
	assert.Zero(t, f.count(&models.Notification{}, "id = ? AND delivered_at IS NULL", latest.ID))
	assert.EqualValues(t, OutboxBatchSize, f.count(&models.Notification{}, "delivery_attempts = 1 AND next_attempt_at IS NOT NULL"))
}

func TestOutboxRelayDeadLetters(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice", false)
	notification := &models.Notification{UserID: alice.ID, Title: "one"}
	require.NoError(t, f.db.Create(notification).Error)

	broken := &recordingDispatcher{name: "broken", err: errors.New("smtp down")}
	svc := NewOutboxService(f.db, broken)

	now := testNow
	for i := 0; i < MaxDeliveryAttempts; i++ {
		_, err := svc.Relay(context.Background(), now)
		require.NoError(t, err)
		now = now.Add(RetryDelay(MaxDeliveryAttempts))
	}
	assert.Len(t, broken.seen, MaxDeliveryAttempts)

	var stored models.Notification
	require.NoError(t, f.db.First(&stored, "id = ?", notification.ID).Error)
	assert.Equal(t, MaxDeliveryAttempts, stored.DeliveryAttempts)
	assert.NotNil(t, stored.DeliveryFailedAt)
	assert.Nil(t, stored.DeliveredAt)

	broken.err = nil
	delivered, err := svc.Relay(context.Background(), now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.Len(t, broken.seen, MaxDeliveryAttempts)
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, time.Minute, RetryDelay(1))
	assert.Equal(t, 2*time.Minute, RetryDelay(2))
	assert.Equal(t, 32*time.Minute, RetryDelay(6))
	assert.Equal(t, time.Hour, RetryDelay(7))
	assert.Equal(t, time.Hour, RetryDelay(20))
}

func TestEmailDispatcherMessage(t *testing.T) {
	cfg := &config.Config{FromName: "EventHub", FromEmail: "noreply@eventhub.local", SMTPHost: "localhost", SMTPPort: 2525}
	dispatcher := NewEmailDispatcher(cfg)

	m := dispatcher.buildMessage(models.Notification{
		Title: "Event cancelled",
		Body:  "The event «Talk» has been cancelled.",
		User:  models.User{Username: "alice", Email: "alice@example.com"},
	})

	assert.Equal(t, []string{"alice@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"EventHub - Event cancelled"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"EventHub <noreply@eventhub.local>"}, m.GetHeader("From"))
}

func TestEmailDispatcherSkipsMissingAddress(t *testing.T) {
	dispatcher := NewEmailDispatcher(&config.Config{SMTPHost: "localhost", SMTPPort: 1})

	err := dispatcher.Dispatch(context.Background(), models.Notification{Title: "x"})
	assert.NoError(t, err)
}

func TestNotificationEventPayload(t *testing.T) {
	body, err := json.Marshal(newNotificationEvent(models.Notification{
		ID:     "n1",
		UserID: "u1",
		Title:  "Reminder",
		Body:   "soon",
		User:   models.User{Username: "alice", Email: "alice@example.com"},
	}))
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "n1", payload["id"])
	assert.Equal(t, "alice", payload["username"])
	assert.Equal(t, "Reminder", payload["title"])
}
