package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studybuddy-backend/internal/models"
)

var errStorage = errors.New("connection refused")

type stubStudents struct {
	byID       map[uuid.UUID]*models.StudentProfile
	remindedAt map[uuid.UUID]time.Time
}

func newStubStudents(students ...*models.StudentProfile) *stubStudents {
	s := &stubStudents{byID: map[uuid.UUID]*models.StudentProfile{}, remindedAt: map[uuid.UUID]time.Time{}}
	for _, st := range students {
		s.byID[st.ID] = st
	}
	return s
}

func (s *stubStudents) Create(_ context.Context, st *models.StudentProfile) error {
	st.ID = uuid.New()
	st.CreatedAt = time.Now()
	s.byID[st.ID] = st
	return nil
}

func (s *stubStudents) GetByID(_ context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	st, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *st
	return &cp, nil
}

func (s *stubStudents) GetByEmail(_ context.Context, email string) (*models.StudentProfile, error) {
	for _, st := range s.byID {
		if strings.EqualFold(st.Email, email) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubStudents) List(_ context.Context) ([]*models.StudentProfile, error) {
	out := []*models.StudentProfile{}
	for _, st := range s.byID {
		out = append(out, st)
	}
	return out, nil
}

func (s *stubStudents) Update(_ context.Context, st *models.StudentProfile) error {
	if _, ok := s.byID[st.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.byID[st.ID] = st
	return nil
}

func (s *stubStudents) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.byID, id)
	return nil
}

func (s *stubStudents) Count(_ context.Context) (int64, error) {
	return int64(len(s.byID)), nil
}

func (s *stubStudents) SetLastReminderSentAt(_ context.Context, id uuid.UUID, at time.Time) error {
	s.remindedAt[id] = at
	return nil
}

type stubCourses struct {
	byID    map[uuid.UUID]*models.Course
	prefs   map[uuid.UUID]*models.CoursePreference
	notes   map[uuid.UUID]*models.CourseNote
	prefErr error
}

func newStubCourses(courses ...*models.Course) *stubCourses {
	s := &stubCourses{
		byID:  map[uuid.UUID]*models.Course{},
		prefs: map[uuid.UUID]*models.CoursePreference{},
		notes: map[uuid.UUID]*models.CourseNote{},
	}
	for _, c := range courses {
		s.byID[c.ID] = c
	}
	return s
}

func (s *stubCourses) Create(_ context.Context, c *models.Course, pref *models.CoursePreference) error {
	c.ID = uuid.New()
	s.byID[c.ID] = c
	pref.ID = uuid.New()
	pref.CourseID = c.ID
	s.prefs[c.ID] = pref
	return nil
}

func (s *stubCourses) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (s *stubCourses) List(_ context.Context) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, c := range s.byID {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubCourses) ListByStudent(_ context.Context, studentID uuid.UUID) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, c := range s.byID {
		if c.StudentProfileID == studentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCourses) ListByStudentAndTerm(ctx context.Context, studentID uuid.UUID, term string) ([]*models.Course, error) {
	all, _ := s.ListByStudent(ctx, studentID)
	out := []*models.Course{}
	for _, c := range all {
		if c.Term == term {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCourses) Update(_ context.Context, c *models.Course) error {
	if _, ok := s.byID[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.byID[c.ID] = c
	return nil
}

func (s *stubCourses) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.byID, id)
	return nil
}

func (s *stubCourses) GetPreference(_ context.Context, courseID uuid.UUID) (*models.CoursePreference, error) {
	if s.prefErr != nil {
		return nil, s.prefErr
	}
	p, ok := s.prefs[courseID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (s *stubCourses) SavePreference(_ context.Context, p *models.CoursePreference) error {
	if existing, ok := s.prefs[p.CourseID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = uuid.New()
	}
	s.prefs[p.CourseID] = p
	return nil
}

func (s *stubCourses) GetNote(_ context.Context, courseID uuid.UUID) (*models.CourseNote, error) {
	n, ok := s.notes[courseID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return n, nil
}

func (s *stubCourses) SaveNote(_ context.Context, n *models.CourseNote) error {
	if existing, ok := s.notes[n.CourseID]; ok {
		n.ID = existing.ID
	} else {
		n.ID = uuid.New()
	}
	s.notes[n.CourseID] = n
	return nil
}

type stubSessions struct {
	items   []models.StudySession
	listErr error
	// from and to of the last window query
	from, to time.Time
}

func (s *stubSessions) Create(_ context.Context, ss *models.StudySession) error {
	ss.ID = uuid.New()
	s.items = append(s.items, *ss)
	return nil
}

func (s *stubSessions) GetByID(_ context.Context, id uuid.UUID) (*models.StudySession, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			cp := s.items[i]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubSessions) List(_ context.Context) ([]models.StudySession, error) {
	return s.items, nil
}

func (s *stubSessions) ListByCourse(_ context.Context, courseID uuid.UUID) ([]models.StudySession, error) {
	out := []models.StudySession{}
	for _, ss := range s.items {
		if ss.CourseID == courseID {
			out = append(out, ss)
		}
	}
	return out, nil
}

func (s *stubSessions) ListByCourseBetween(_ context.Context, courseID uuid.UUID, from, to time.Time) ([]models.StudySession, error) {
	s.from, s.to = from, to
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []models.StudySession{}
	for _, ss := range s.items {
		if ss.CourseID == courseID && !ss.StartTime.Before(from) && !ss.StartTime.After(to) {
			out = append(out, ss)
		}
	}
	return out, nil
}

func (s *stubSessions) ListByStudentBetween(_ context.Context, _ uuid.UUID, from, to time.Time) ([]models.StudySession, error) {
	s.from, s.to = from, to
	return []models.StudySession{}, nil
}

func (s *stubSessions) Update(_ context.Context, ss *models.StudySession) error {
	for i := range s.items {
		if s.items[i].ID == ss.ID {
			s.items[i] = *ss
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubSessions) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type stubTasks struct {
	items []models.Task
	// owners maps course id to student id for student-scoped queries.
	owners map[uuid.UUID]uuid.UUID
}

func (s *stubTasks) Create(_ context.Context, t *models.Task) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	s.items = append(s.items, *t)
	return nil
}

func (s *stubTasks) GetByID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			cp := s.items[i]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubTasks) filter(keep func(models.Task) bool) []models.Task {
	out := []models.Task{}
	for _, t := range s.items {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *stubTasks) List(_ context.Context) ([]models.Task, error) {
	return s.filter(func(models.Task) bool { return true }), nil
}

func (s *stubTasks) ListByCourse(_ context.Context, courseID uuid.UUID) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool { return t.CourseID == courseID }), nil
}

func (s *stubTasks) ListByCourseAndCompleted(_ context.Context, courseID uuid.UUID, completed bool) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool { return t.CourseID == courseID && t.Completed == completed }), nil
}

func (s *stubTasks) ListPending(_ context.Context) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool { return !t.Completed }), nil
}

func (s *stubTasks) ListPendingByStudent(_ context.Context, studentID uuid.UUID) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool { return !t.Completed && s.owners[t.CourseID] == studentID }), nil
}

func (s *stubTasks) ListOverdue(_ context.Context, date models.Date) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool {
		return !t.Completed && t.DueDate != nil && !t.DueDate.After(date.Time)
	}), nil
}

func (s *stubTasks) CountByCourse(_ context.Context, courseID uuid.UUID) (int64, error) {
	return int64(len(s.filter(func(t models.Task) bool { return t.CourseID == courseID }))), nil
}

func (s *stubTasks) CountCompletedByCourse(_ context.Context, courseID uuid.UUID) (int64, error) {
	return int64(len(s.filter(func(t models.Task) bool { return t.CourseID == courseID && t.Completed }))), nil
}

func (s *stubTasks) Update(_ context.Context, t *models.Task) error {
	for i := range s.items {
		if s.items[i].ID == t.ID {
			s.items[i] = *t
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubTasks) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type recordingEvents struct {
	events []models.Event
	err    error
}

func (r *recordingEvents) Publish(_ context.Context, e models.Event) error {
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingEvents) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
