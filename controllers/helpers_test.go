package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"eventhub-api/config"
	"eventhub-api/database/dbtest"
	"eventhub-api/models"
	"eventhub-api/routes"
	"eventhub-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "controller-test-secret"

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	auth   *services.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	cfg := &config.Config{
		JWTSecret:          testSecret,
		RateLimitPerMinute: 600,
		RateLimitBurst:     100,
	}

	router := gin.New()
	routes.SetupRoutes(router, db, routes.Options{
		Config: cfg,
		Clock:  func() time.Time { return testNow },
		Policy: services.DefaultReminderPolicy(),
	})

	return &testServer{t: t, db: db, router: router, auth: services.NewAuthService(db, testSecret)}
}

func (s *testServer) user(username string, staff bool) (*models.User, string) {
	s.t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x", IsStaff: staff}
	require.NoError(s.t, s.db.Create(user).Error)

	token, err := s.auth.IssueToken(user, time.Now())
	require.NoError(s.t, err)
	return user, token
}

func (s *testServer) event(title string, start time.Time, capacity int) *models.Event {
	s.t.Helper()
	tod := models.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()}
	event := &models.Event{Title: title, Date: models.DateOf(start), Time: &tod, Place: "Hall", Capacity: capacity}
	require.NoError(s.t, s.db.Create(event).Error)
	return event
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}

// expectStatus fails with the response body when the status differs
func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
