package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studybuddy-backend/internal/models"
)

type courseStore interface {
	Create(ctx context.Context, c *models.Course, pref *models.CoursePreference) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error)
	ListByStudentAndTerm(ctx context.Context, studentID uuid.UUID, term string) ([]*models.Course, error)
	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetPreference(ctx context.Context, courseID uuid.UUID) (*models.CoursePreference, error)
	SavePreference(ctx context.Context, p *models.CoursePreference) error
	GetNote(ctx context.Context, courseID uuid.UUID) (*models.CourseNote, error)
	SaveNote(ctx context.Context, n *models.CourseNote) error
}

type studentLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error)
}

type CourseService struct {
	courses  courseStore
	students studentLookup
	now      func() time.Time
}

func NewCourseService(courses courseStore, students studentLookup) *CourseService {
	return &CourseService{courses: courses, students: students, now: time.Now}
}

func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	return s.courses.List(ctx)
}

func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Course", id)
	}
	return course, nil
}

// ListByStudent returns the student's courses, narrowed to one term when term is non-empty.
func (s *CourseService) ListByStudent(ctx context.Context, studentID uuid.UUID, term string) ([]*models.Course, error) {
	if term = strings.TrimSpace(term); term != "" {
		return s.courses.ListByStudentAndTerm(ctx, studentID, term)
	}
	return s.courses.ListByStudent(ctx, studentID)
}

// Create stores a course for the student together with its preference. The default preference
// is used when req carries none.
func (s *CourseService) Create(ctx context.Context, studentID uuid.UUID, req models.CourseRequest) (*models.Course, *models.CoursePreference, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, nil, lookupErr(err, "Student", studentID)
	}

	course := courseFromRequest(req)
	course.StudentProfileID = studentID
	if err := validateStruct(course); err != nil {
		return nil, nil, err
	}

	pref := models.DefaultCoursePreference()
	if req.Preference != nil {
		pref = req.Preference.ToPreference()
	}
	if err := validateStruct(pref); err != nil {
		return nil, nil, err
	}

	if err := s.courses.Create(ctx, course, pref); err != nil {
		return nil, nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, pref, nil
}

func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req models.CourseRequest) (*models.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := courseFromRequest(req)
	course.Title = patch.Title
	course.Term = patch.Term
	course.Instructor = patch.Instructor
	course.Description = patch.Description
	if err := validateStruct(course); err != nil {
		return nil, err
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, lookupErr(err, "Course", id)
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return lookupErr(err, "Course", id)
	}
	return nil
}

func (s *CourseService) GetPreference(ctx context.Context, courseID uuid.UUID) (*models.CoursePreference, error) {
	pref, err := s.courses.GetPreference(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Preference not found for course: " + courseID.String()}
		}
		return nil, fmt.Errorf("failed to load preference: %w", err)
	}
	return pref, nil
}

// SavePreference replaces the course's preference, creating it when missing.
func (s *CourseService) SavePreference(ctx context.Context, courseID uuid.UUID, req models.PreferenceRequest) (*models.CoursePreference, error) {
	if _, err := s.Get(ctx, courseID); err != nil {
		return nil, err
	}

	pref := req.ToPreference()
	pref.CourseID = courseID
	if err := validateStruct(pref); err != nil {
		return nil, err
	}

	if err := s.courses.SavePreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("failed to save preference: %w", err)
	}
	return pref, nil
}

func (s *CourseService) GetNote(ctx context.Context, courseID uuid.UUID) (*models.CourseNote, error) {
	note, err := s.courses.GetNote(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Note not found for course: " + courseID.String()}
		}
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	return note, nil
}

// SaveNote replaces the course's note and stamps it with the current time.
func (s *CourseService) SaveNote(ctx context.Context, courseID uuid.UUID, req models.NoteRequest) (*models.CourseNote, error) {
	if _, err := s.Get(ctx, courseID); err != nil {
		return nil, err
	}

	note := &models.CourseNote{
		CourseID:    courseID,
		Summary:     req.Summary,
		KeyPoints:   req.KeyPoints,
		LastUpdated: s.now().UTC(),
	}
	if err := validateStruct(note); err != nil {
		return nil, err
	}

	if err := s.courses.SaveNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}
	return note, nil
}

func courseFromRequest(req models.CourseRequest) *models.Course {
	return &models.Course{
		Title:       strings.TrimSpace(req.Title),
		Term:        strings.TrimSpace(req.Term),
		Instructor:  strings.TrimSpace(req.Instructor),
		Description: req.Description,
	}
}
