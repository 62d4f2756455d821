package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
)

const reminderPollInterval = 1 * time.Hour

type reminderStore interface {
	ListOverdueReminders(ctx context.Context, date models.Date) ([]models.OverdueReminder, error)
}

type reminderMarker interface {
	SetLastReminderSentAt(ctx context.Context, id uuid.UUID, at time.Time) error
}

type reminderMailer interface {
	SendTaskReminderEmail(to, name string, items []models.OverdueReminder) error
}

// ReminderScheduler emails students about overdue tasks of courses with notifications enabled.
type ReminderScheduler struct {
	tasks    reminderStore
	students reminderMarker
	email    reminderMailer
	events   EventPublisher
	loc      *time.Location
	interval time.Duration
	stopChan chan struct{}
}

func NewReminderScheduler(tasks reminderStore, students reminderMarker, email reminderMailer, events EventPublisher, loc *time.Location, interval time.Duration) *ReminderScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderScheduler{
		tasks:    tasks,
		students: students,
		email:    email,
		events:   events,
		loc:      loc,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (s *ReminderScheduler) Start() {
	if s.tasks == nil || s.email == nil {
		return
	}
	go s.loop()
	log.Printf("Reminder scheduler started (interval %s)", s.interval)
}

func (s *ReminderScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *ReminderScheduler) loop() {
	// Run on startup as well as by interval.
	s.SendOverdueReminders(context.Background(), time.Now().UTC())

	ticker := time.NewTicker(reminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.SendOverdueReminders(context.Background(), time.Now().UTC())
		}
	}
}

// SendOverdueReminders sends at most one reminder per student per interval and returns how
// many were sent.
func (s *ReminderScheduler) SendOverdueReminders(ctx context.Context, now time.Time) int {
	today := models.DateOf(now.In(s.loc))
	reminders, err := s.tasks.ListOverdueReminders(ctx, today)
	if err != nil {
		log.Printf("task reminders: failed to list overdue tasks: %v", err)
		return 0
	}

	sent := 0
	for _, group := range groupByStudent(reminders) {
		first := group[0]
		if !shouldSendByLastSent(first.LastReminderSentAt, s.interval, now) {
			continue
		}

		if err := s.email.SendTaskReminderEmail(first.StudentEmail, first.StudentName, group); err != nil {
			log.Printf("task reminders: failed to send to %s: %v", first.StudentEmail, err)
			continue
		}
		sent++

		if s.events != nil {
			event := models.Event{
				Type:      models.EventTasksOverdue,
				StudentID: first.StudentID,
				Data:      overdueTaskIDs(group),
				CreatedAt: now,
			}
			if err := s.events.Publish(ctx, event); err != nil {
				log.Printf("task reminders: failed to publish for student %s: %v", first.StudentID, err)
			}
		}

		if err := s.students.SetLastReminderSentAt(ctx, first.StudentID, now); err != nil {
			log.Printf("task reminders: failed to persist last sent at for student %s: %v", first.StudentID, err)
		}
	}
	return sent
}

// groupByStudent splits reminder rows per student, keeping first-seen student order.
func groupByStudent(rows []models.OverdueReminder) [][]models.OverdueReminder {
	index := make(map[uuid.UUID]int)
	var groups [][]models.OverdueReminder
	for _, row := range rows {
		i, ok := index[row.StudentID]
		if !ok {
			i = len(groups)
			index[row.StudentID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], row)
	}
	return groups
}

func overdueTaskIDs(group []models.OverdueReminder) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(group))
	for _, r := range group {
		ids = append(ids, r.TaskID)
	}
	return ids
}

func shouldSendByLastSent(lastSentAt *time.Time, minInterval time.Duration, now time.Time) bool {
	if lastSentAt == nil || lastSentAt.IsZero() {
		return true
	}
	return now.Sub(*lastSentAt) >= minInterval
}
