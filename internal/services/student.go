package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studybuddy-backend/internal/models"
)

type studentStore interface {
	Create(ctx context.Context, s *models.StudentProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error)
	List(ctx context.Context) ([]*models.StudentProfile, error)
	Update(ctx context.Context, s *models.StudentProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type StudentService struct {
	students studentStore
}

func NewStudentService(students studentStore) *StudentService {
	return &StudentService{students: students}
}

func (s *StudentService) List(ctx context.Context) ([]*models.StudentProfile, error) {
	return s.students.List(ctx)
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Student", id)
	}
	return student, nil
}

func (s *StudentService) GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error) {
	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Student not found with email: " + email}
		}
		return nil, fmt.Errorf("failed to load student by email: %w", err)
	}
	return student, nil
}

func (s *StudentService) Count(ctx context.Context) (int64, error) {
	return s.students.Count(ctx)
}

func (s *StudentService) Create(ctx context.Context, req models.StudentProfileRequest) (*models.StudentProfile, error) {
	student := &models.StudentProfile{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Locale:   req.Locale,
		Settings: req.Settings,
	}
	if student.Locale == "" {
		student.Locale = "en"
	}
	if err := validateStruct(student); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, student.Email, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return student, nil
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req models.StudentProfileRequest) (*models.StudentProfile, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Name = strings.TrimSpace(req.Name)
	student.Email = strings.TrimSpace(req.Email)
	student.Locale = req.Locale
	student.Settings = req.Settings
	if student.Locale == "" {
		student.Locale = "en"
	}
	if err := validateStruct(student); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, student.Email, id); err != nil {
		return nil, err
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, lookupErr(err, "Student", id)
	}
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return lookupErr(err, "Student", id)
	}
	return nil
}

// ensureEmailFree fails when another student than self already uses email.
func (s *StudentService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != self {
		return &ConflictError{Message: "A student with this email already exists"}
	}
	return nil
}
