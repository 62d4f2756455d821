package seed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy-backend/internal/models"
)

type recorder struct {
	count    int64
	students []models.StudentProfileRequest
	courses  []models.CourseRequest
	notes    []uuid.UUID
	tasks    []models.TaskRequest
	sessions []models.StudySessionRequest
}

func (r *recorder) Count(context.Context) (int64, error) { return r.count, nil }

func (r *recorder) Create(_ context.Context, req models.StudentProfileRequest) (*models.StudentProfile, error) {
	r.students = append(r.students, req)
	return &models.StudentProfile{ID: uuid.New(), Name: req.Name, Email: req.Email}, nil
}

type courseRecorder struct{ *recorder }

func (c courseRecorder) Create(_ context.Context, studentID uuid.UUID, req models.CourseRequest) (*models.Course, *models.CoursePreference, error) {
	c.courses = append(c.courses, req)
	return &models.Course{ID: uuid.New(), StudentProfileID: studentID, Title: req.Title}, req.Preference.ToPreference(), nil
}

func (c courseRecorder) SaveNote(_ context.Context, courseID uuid.UUID, req models.NoteRequest) (*models.CourseNote, error) {
	c.notes = append(c.notes, courseID)
	return &models.CourseNote{CourseID: courseID, Summary: req.Summary}, nil
}

type taskRecorder struct{ *recorder }

func (t taskRecorder) Create(_ context.Context, courseID uuid.UUID, req models.TaskRequest) (*models.Task, error) {
	t.tasks = append(t.tasks, req)
	return req.ToTask(), nil
}

type sessionRecorder struct{ *recorder }

func (s sessionRecorder) Create(_ context.Context, courseID uuid.UUID, req models.StudySessionRequest) (*models.StudySession, error) {
	s.sessions = append(s.sessions, req)
	return &models.StudySession{CourseID: courseID, StartTime: req.StartTime, DurationMinutes: req.DurationMinutes}, nil
}

func newSeeder(r *recorder) *Seeder {
	return &Seeder{
		Students: r,
		Courses:  courseRecorder{r},
		Tasks:    taskRecorder{r},
		Sessions: sessionRecorder{r},
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC) },
	}
}

func TestRun_SeedsEmptyDatabase(t *testing.T) {
	r := &recorder{}

	seeded, err := newSeeder(r).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, seeded)
	assert.Len(t, r.students, 1)
	assert.Len(t, r.courses, 4)
	assert.Len(t, r.notes, 2)
	assert.Len(t, r.tasks, 10)
	assert.Len(t, r.sessions, 7)

	econ := r.courses[2]
	require.NotNil(t, econ.Preference)
	assert.Equal(t, 60, *econ.Preference.PreferredDailyWorkloadMinutes)
	assert.False(t, *econ.Preference.NotificationsEnabled)

	overdue := 0
	today := models.NewDate(2025, 3, 10)
	for _, task := range r.tasks {
		if task.DueDate.Before(today.Time) {
			overdue++
		}
	}
	assert.Equal(t, 1, overdue)

	first := r.sessions[0]
	assert.True(t, first.StartTime.Equal(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)))
}

func TestRun_SkipsWhenStudentsExist(t *testing.T) {
	r := &recorder{count: 1}

	seeded, err := newSeeder(r).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, seeded)
	assert.Empty(t, r.students)
	assert.Empty(t, r.courses)
}
