package jobs

import (
	"context"
	"testing"
	"time"

	"eventhub-api/database/dbtest"
	"eventhub-api/models"
	"eventhub-api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelDispatcher struct {
	delivered chan string
}

func (d *channelDispatcher) Name() string { return "channel" }

func (d *channelDispatcher) Dispatch(ctx context.Context, notification models.Notification) error {
	d.delivered <- notification.ID
	return nil
}

func TestOutboxJobRelaysOnStart(t *testing.T) {
	db := dbtest.New(t)
	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	notification := &models.Notification{UserID: user.ID, Title: "Reminder", Body: "soon"}
	require.NoError(t, db.Create(notification).Error)

	dispatcher := &channelDispatcher{delivered: make(chan string, 1)}
	job := NewOutboxJob(services.NewOutboxService(db, dispatcher), time.Hour)
	job.Start()
	defer job.Stop()

	select {
	case id := <-dispatcher.delivered:
		assert.Equal(t, notification.ID, id)
	case <-time.After(5 * time.Second):
		t.Fatal("notification was not relayed")
	}

	require.Eventually(t, func() bool {
		var pending int64
		db.Model(&models.Notification{}).Where("delivered_at IS NULL").Count(&pending)
		return pending == 0
	}, 5*time.Second, 10*time.Millisecond)
}
