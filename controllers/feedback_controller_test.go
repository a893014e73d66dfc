package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"eventhub-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackFlow(t *testing.T) {
	s := newTestServer(t)
	_, staff := s.user("staff", true)
	_, alice := s.user("alice", false)
	event := s.event("Workshop", testNow.Add(-48*time.Hour), 10)
	path := "/events/" + event.ID + "/feedback"

	w := s.do(http.MethodGet, path, alice, nil)
	expectStatus(t, w, http.StatusOK)
	var form struct {
		Event     models.Event `json:"event"`
		MinRating int          `json:"min_rating"`
		MaxRating int          `json:"max_rating"`
		CanSubmit bool         `json:"can_submit"`
	}
	decode(t, w, &form)
	assert.Equal(t, event.ID, form.Event.ID)
	assert.Equal(t, 1, form.MinRating)
	assert.Equal(t, 5, form.MaxRating)
	assert.True(t, form.CanSubmit)

	w = s.do(http.MethodPost, path, alice, map[string]interface{}{"rating": 6})
	expectStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Please choose a rating from 1 to 5.", errorOf(t, w))

	w = s.do(http.MethodPost, path, alice, map[string]interface{}{"comment": "no rating"})
	expectStatus(t, w, http.StatusBadRequest)

	w = s.do(http.MethodPost, path, alice, map[string]interface{}{"rating": 4, "comment": "  Great session "})
	expectStatus(t, w, http.StatusCreated)
	var created struct {
		Data models.Feedback `json:"data"`
	}
	decode(t, w, &created)
	assert.Equal(t, 4, created.Data.Rating)
	assert.Equal(t, "Great session", created.Data.Comment)

	w = s.do(http.MethodPost, path, alice, map[string]interface{}{"rating": 5})
	expectStatus(t, w, http.StatusConflict)

	w = s.do(http.MethodPost, path, alice, map[string]interface{}{"rating": "five"})
	expectStatus(t, w, http.StatusConflict)

	w = s.do(http.MethodGet, path, alice, nil)
	expectStatus(t, w, http.StatusConflict)

	w = s.do(http.MethodGet, "/admin/events/"+event.ID+"/feedback", staff, nil)
	expectStatus(t, w, http.StatusOK)
	var feedbacks []models.Feedback
	decode(t, w, &feedbacks)
	require.Len(t, feedbacks, 1)

	reply := "/admin/feedback/" + feedbacks[0].ID + "/reply"
	w = s.do(http.MethodPut, reply, alice, map[string]interface{}{"reply": "hi"})
	expectStatus(t, w, http.StatusForbidden)

	w = s.do(http.MethodPut, reply, staff, map[string]interface{}{"reply": " Thanks for coming "})
	expectStatus(t, w, http.StatusOK)
	var replied struct {
		Data models.Feedback `json:"data"`
	}
	decode(t, w, &replied)
	assert.Equal(t, "Thanks for coming", replied.Data.Reply)

	w = s.do(http.MethodPut, "/admin/feedback/missing/reply", staff, map[string]interface{}{"reply": "x"})
	expectStatus(t, w, http.StatusNotFound)
}

func TestFeedbackUnknownEvent(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.user("alice", false)

	w := s.do(http.MethodGet, "/events/missing/feedback", alice, nil)
	expectStatus(t, w, http.StatusNotFound)

	w = s.do(http.MethodPost, "/events/missing/feedback", alice, map[string]interface{}{"rating": 3})
	expectStatus(t, w, http.StatusNotFound)
}
