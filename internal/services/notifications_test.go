package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy-backend/internal/models"
)

type stubReminders struct {
	rows []models.OverdueReminder
	date models.Date
}

func (s *stubReminders) ListOverdueReminders(_ context.Context, date models.Date) ([]models.OverdueReminder, error) {
	s.date = date
	return s.rows, nil
}

type sentReminder struct {
	to    string
	items []models.OverdueReminder
}

type stubMailer struct {
	sent []sentReminder
	fail map[string]bool
}

func (m *stubMailer) SendTaskReminderEmail(to, _ string, items []models.OverdueReminder) error {
	if m.fail[to] {
		return errors.New("smtp: 550 mailbox unavailable")
	}
	m.sent = append(m.sent, sentReminder{to: to, items: items})
	return nil
}

func TestShouldSendByLastSent(t *testing.T) {
	now := time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC)
	recent := now.Add(-2 * time.Hour)
	old := now.Add(-48 * time.Hour)

	assert.True(t, shouldSendByLastSent(nil, 24*time.Hour, now))
	assert.True(t, shouldSendByLastSent(&time.Time{}, 24*time.Hour, now))
	assert.False(t, shouldSendByLastSent(&recent, 24*time.Hour, now))
	assert.True(t, shouldSendByLastSent(&old, 24*time.Hour, now))
}

func TestGroupByStudent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	groups := groupByStudent([]models.OverdueReminder{
		{StudentID: a, TaskTitle: "1"},
		{StudentID: b, TaskTitle: "2"},
		{StudentID: a, TaskTitle: "3"},
	})

	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Equal(t, "3", groups[0][1].TaskTitle)
	assert.Equal(t, b, groups[1][0].StudentID)
}

func TestSendOverdueReminders(t *testing.T) {
	now := time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Hour)
	fresh, reminded, bouncing := uuid.New(), uuid.New(), uuid.New()

	store := &stubReminders{rows: []models.OverdueReminder{
		{StudentID: fresh, StudentEmail: "fresh@example.com", TaskID: uuid.New(), TaskTitle: "Essay"},
		{StudentID: fresh, StudentEmail: "fresh@example.com", TaskID: uuid.New(), TaskTitle: "Exercises"},
		{StudentID: reminded, StudentEmail: "reminded@example.com", LastReminderSentAt: &recent, TaskID: uuid.New()},
		{StudentID: bouncing, StudentEmail: "bounce@example.com", TaskID: uuid.New()},
	}}
	students := newStubStudents()
	mailer := &stubMailer{fail: map[string]bool{"bounce@example.com": true}}
	events := &recordingEvents{}
	scheduler := NewReminderScheduler(store, students, mailer, events, time.UTC, 24*time.Hour)

	sent := scheduler.SendOverdueReminders(context.Background(), now)

	assert.Equal(t, 1, sent)
	assert.Equal(t, models.NewDate(2026, 2, 16), store.date)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "fresh@example.com", mailer.sent[0].to)
	assert.Len(t, mailer.sent[0].items, 2)

	require.Len(t, events.events, 1)
	assert.Equal(t, models.EventTasksOverdue, events.events[0].Type)
	assert.Equal(t, fresh, events.events[0].StudentID)

	assert.Equal(t, now, students.remindedAt[fresh])
	assert.NotContains(t, students.remindedAt, bouncing)
	assert.NotContains(t, students.remindedAt, reminded)
}

func TestReminderBodyEscapesTitles(t *testing.T) {
	body := reminderBody("Ada", "http://localhost:5173", []models.OverdueReminder{
		{TaskTitle: "<b>Essay</b>", CourseTitle: "Econ", DueDate: models.NewDate(2026, 2, 15)},
	})

	assert.Contains(t, body, "&lt;b&gt;Essay&lt;/b&gt;")
	assert.Contains(t, body, "2026-02-15")
}
