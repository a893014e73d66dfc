package services

import (
	"context"
	"testing"
	"time"

	"eventhub-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedbackService(f.db)
	user := f.user("alice", false)
	event := f.event("Talk", testNow.Add(-24*time.Hour))

	feedback, err := svc.Submit(context.Background(), user.ID, event.ID, intPtr(5), "  Great talk ")
	require.NoError(t, err)
	assert.Equal(t, 5, feedback.Rating)
	assert.Equal(t, "Great talk", feedback.Comment)

	_, err = svc.Submit(context.Background(), user.ID, event.ID, intPtr(1), "again")
	assert.ErrorIs(t, err, ErrFeedbackAlreadySubmitted)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.EqualValues(t, 1, f.count(&models.Feedback{}, "event_id = ?", event.ID))
}

func TestSubmitFeedbackDuplicateCheckedFirst(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedbackService(f.db)
	user := f.user("alice", false)
	event := f.event("Talk", testNow.Add(-24*time.Hour))

	_, err := svc.Submit(context.Background(), user.ID, event.ID, intPtr(3), "")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), user.ID, event.ID, nil, "")
	assert.ErrorIs(t, err, ErrFeedbackAlreadySubmitted)

	_, err = svc.Prepare(context.Background(), user.ID, event.ID)
	assert.ErrorIs(t, err, ErrFeedbackAlreadySubmitted)
}

func TestSubmitFeedbackInvalidRating(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedbackService(f.db)
	user := f.user("alice", false)
	event := f.event("Talk", testNow.Add(-24*time.Hour))

	for _, rating := range []*int{nil, intPtr(0), intPtr(6), intPtr(-3)} {
		_, err := svc.Submit(context.Background(), user.ID, event.ID, rating, "comment")
		assert.ErrorIs(t, err, ErrInvalidRating)
		assert.Equal(t, KindValidation, KindOf(err))
	}
	assert.Zero(t, f.count(&models.Feedback{}, "event_id = ?", event.ID))

	event, err := svc.Prepare(context.Background(), user.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Talk", event.Title)
}

func TestSubmitFeedbackUnknownEvent(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedbackService(f.db)
	user := f.user("alice", false)

	_, err := svc.Submit(context.Background(), user.ID, "missing", intPtr(4), "")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestReplyToFeedback(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedbackService(f.db)
	user := f.user("alice", false)
	event := f.event("Talk", testNow.Add(-24*time.Hour))

	feedback, err := svc.Submit(context.Background(), user.ID, event.ID, intPtr(2), "Too long")
	require.NoError(t, err)

	_, err = svc.ReplyToFeedback(context.Background(), Actor{UserID: user.ID}, feedback.ID, "Noted")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	replied, err := svc.ReplyToFeedback(context.Background(), Actor{IsStaff: true}, feedback.ID, " Noted, thanks ")
	require.NoError(t, err)
	assert.Equal(t, "Noted, thanks", replied.Reply)

	feedbacks, err := svc.ListForEvent(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, feedbacks, 1)
	assert.Equal(t, "Noted, thanks", feedbacks[0].Reply)

	_, err = svc.ReplyToFeedback(context.Background(), Actor{IsStaff: true}, "missing", "x")
	assert.ErrorIs(t, err, ErrFeedbackNotFound)
}
