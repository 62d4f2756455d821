package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy-backend/internal/handlers"
)

func newTestRouter() http.Handler {
	return New(Handlers{
		Auth:         handlers.NewAuthHandler(nil),
		Students:     handlers.NewStudentHandler(nil),
		Courses:      handlers.NewCourseHandler(nil, nil),
		StudySession: handlers.NewStudySessionHandler(nil),
		Tasks:        handlers.NewTaskHandler(nil),
	}, "http://localhost:5173")
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRoutesAreRegistered(t *testing.T) {
	routes, ok := newTestRouter().(chi.Routes)
	require.True(t, ok)

	registered := map[string]bool{}
	require.NoError(t, chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	}))

	for _, want := range []string{
		"POST /api/v1/auth/token",
		"GET /api/v1/students/email/{email}",
		"POST /api/v1/courses/student/{studentId}",
		"PUT /api/v1/courses/{id}/preference",
		"GET /api/v1/courses/{id}/progress",
		"POST /api/v1/sessions/check-load",
		"POST /api/v1/sessions/check-clash",
		"GET /api/v1/sessions/student/{studentId}/date/{date}",
		"GET /api/v1/tasks/prioritized",
		"GET /api/v1/tasks/student/{studentId}/prioritized",
		"PATCH /api/v1/tasks/{id}/complete",
		"DELETE /api/v1/tasks/{id}",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
	assert.False(t, registered["GET /api/v1/ws"])
}

func TestMalformedIDIsBadRequest(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
