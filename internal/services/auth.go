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

type tokenIssuer interface {
	GenerateAccessToken(studentID uuid.UUID, email string) (string, error)
}

type emailLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error)
}

// AuthService hands out access tokens for the realtime channel. Students are identified by
// email only; there are no passwords.
type AuthService struct {
	students emailLookup
	tokens   tokenIssuer
	ttl      time.Duration
}

func NewAuthService(students emailLookup, tokens tokenIssuer, ttl time.Duration) *AuthService {
	return &AuthService{students: students, tokens: tokens, ttl: ttl}
}

func (s *AuthService) IssueToken(ctx context.Context, req models.TokenRequest) (*models.AccessToken, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, &ValidationError{Fields: map[string]string{"email": "This field is required"}}
	}

	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Unknown student email"}
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(student.ID, student.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &models.AccessToken{AccessToken: token, ExpiresIn: int(s.ttl.Seconds())}, nil
}
