package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studybuddy-backend/internal/models"
	"studybuddy-backend/internal/planner"
)

type sessionStore interface {
	Create(ctx context.Context, s *models.StudySession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StudySession, error)
	List(ctx context.Context) ([]models.StudySession, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.StudySession, error)
	ListByCourseBetween(ctx context.Context, courseID uuid.UUID, from, to time.Time) ([]models.StudySession, error)
	ListByStudentBetween(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]models.StudySession, error)
	Update(ctx context.Context, s *models.StudySession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetPreference(ctx context.Context, courseID uuid.UUID) (*models.CoursePreference, error)
}

type StudySessionService struct {
	sessions sessionStore
	courses  courseReader
	events   EventPublisher
	loc      *time.Location
}

func NewStudySessionService(sessions sessionStore, courses courseReader, events EventPublisher, loc *time.Location) *StudySessionService {
	if loc == nil {
		loc = time.UTC
	}
	return &StudySessionService{sessions: sessions, courses: courses, events: events, loc: loc}
}

// CheckDailyLoad reports whether proposedMinutes more study on date would push the course past
// its preferred daily workload. Courses without a preference use the default limit.
func (s *StudySessionService) CheckDailyLoad(ctx context.Context, courseID uuid.UUID, date models.Date, proposedMinutes int) (models.LoadCheckResult, error) {
	limit := models.DefaultDailyWorkloadMinutes
	pref, err := s.courses.GetPreference(ctx, courseID)
	switch {
	case err == nil:
		limit = pref.PreferredDailyWorkloadMinutes
	case !errors.Is(err, pgx.ErrNoRows):
		return models.LoadCheckResult{}, fmt.Errorf("failed to load preference: %w", err)
	}

	current, err := s.TotalMinutesForCourseOnDate(ctx, courseID, date)
	if err != nil {
		return models.LoadCheckResult{}, err
	}
	return planner.CheckDailyLoad(current, proposedMinutes, limit), nil
}

// TotalMinutesForCourseOnDate sums the durations of the course's sessions starting on date.
func (s *StudySessionService) TotalMinutesForCourseOnDate(ctx context.Context, courseID uuid.UUID, date models.Date) (int, error) {
	from, to := planner.DayWindow(date, s.loc)
	sessions, err := s.sessions.ListByCourseBetween(ctx, courseID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load sessions: %w", err)
	}
	return planner.SumMinutes(sessions), nil
}

// CheckForClashes compares proposed against the course's sessions on the day proposed starts.
// A proposal without a start time or a positive duration never clashes.
func (s *StudySessionService) CheckForClashes(ctx context.Context, courseID uuid.UUID, proposed models.StudySession) (models.ClashCheckResult, error) {
	if !planner.Evaluable(proposed) {
		return planner.ClashResult(nil, s.loc), nil
	}

	from, to := planner.DayWindow(models.DateOf(proposed.StartTime.In(s.loc)), s.loc)
	candidates, err := s.sessions.ListByCourseBetween(ctx, courseID, from, to)
	if err != nil {
		return models.ClashCheckResult{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	return planner.ClashResult(planner.FindClashes(proposed, candidates), s.loc), nil
}

func (s *StudySessionService) List(ctx context.Context) ([]models.StudySession, error) {
	return s.sessions.List(ctx)
}

func (s *StudySessionService) Get(ctx context.Context, id uuid.UUID) (*models.StudySession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Study session", id)
	}
	return session, nil
}

func (s *StudySessionService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.StudySession, error) {
	return s.sessions.ListByCourse(ctx, courseID)
}

func (s *StudySessionService) ListByStudentAndDate(ctx context.Context, studentID uuid.UUID, date models.Date) ([]models.StudySession, error) {
	from, to := planner.DayWindow(date, s.loc)
	return s.sessions.ListByStudentBetween(ctx, studentID, from, to)
}

func (s *StudySessionService) Create(ctx context.Context, courseID uuid.UUID, req models.StudySessionRequest) (*models.StudySession, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, lookupErr(err, "Course", courseID)
	}

	session := &models.StudySession{CourseID: courseID}
	applySessionRequest(session, req)
	if err := validateStruct(session); err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create study session: %w", err)
	}
	publish(ctx, s.events, models.EventSessionSaved, course.StudentProfileID, courseID, session)
	return session, nil
}

func (s *StudySessionService) Update(ctx context.Context, id uuid.UUID, req models.StudySessionRequest) (*models.StudySession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applySessionRequest(session, req)
	if err := validateStruct(session); err != nil {
		return nil, err
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, lookupErr(err, "Study session", id)
	}
	s.publishForCourse(ctx, models.EventSessionSaved, session.CourseID, session)
	return session, nil
}

func (s *StudySessionService) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return lookupErr(err, "Study session", id)
	}
	s.publishForCourse(ctx, models.EventSessionDeleted, session.CourseID, map[string]uuid.UUID{"id": id})
	return nil
}

func (s *StudySessionService) publishForCourse(ctx context.Context, eventType string, courseID uuid.UUID, data interface{}) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return
	}
	publish(ctx, s.events, eventType, course.StudentProfileID, courseID, data)
}

func applySessionRequest(s *models.StudySession, req models.StudySessionRequest) {
	s.StartTime = req.StartTime
	s.DurationMinutes = req.DurationMinutes
	s.Location = req.Location
	s.Notes = req.Notes
	s.Completed = req.Completed
}
