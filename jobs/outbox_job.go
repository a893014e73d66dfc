// File: /jobs/outbox_job.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"eventhub-api/services"
)

// OutboxJob periodically relays stored notifications to external dispatchers
type OutboxJob struct {
	outboxService *services.OutboxService
	ticker        *time.Ticker
	done          chan bool
	now           func() time.Time
}

// NewOutboxJob creates a new outbox relay job
func NewOutboxJob(outboxService *services.OutboxService, interval time.Duration) *OutboxJob {
	return &OutboxJob{
		outboxService: outboxService,
		ticker:        time.NewTicker(interval),
		done:          make(chan bool),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the relay job
func (j *OutboxJob) Start() {
	fmt.Println("Notification outbox job started")

	go func() {
		// Run immediately on start
		j.relay()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.relay()
			case <-j.done:
				fmt.Println("Notification outbox job stopped")
				return
			}
		}
	}()
}

// Stop stops the relay job
func (j *OutboxJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

// relay performs one pass over undelivered notifications
func (j *OutboxJob) relay() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	delivered, err := j.outboxService.Relay(ctx, j.now())
	if err != nil {
		fmt.Printf("Error during notification relay: %v\n", err)
		return
	}

	if delivered > 0 {
		fmt.Printf("Relayed %d notifications\n", delivered)
	}
}
