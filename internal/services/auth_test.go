package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy-backend/internal/models"
)

type stubIssuer struct {
	studentID uuid.UUID
}

func (s *stubIssuer) GenerateAccessToken(studentID uuid.UUID, email string) (string, error) {
	s.studentID = studentID
	return "token-for-" + email, nil
}

func TestIssueToken(t *testing.T) {
	ada := &models.StudentProfile{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	issuer := &stubIssuer{}
	svc := NewAuthService(newStubStudents(ada), issuer, 15*time.Minute)

	token, err := svc.IssueToken(context.Background(), models.TokenRequest{Email: " ada@example.com "})
	require.NoError(t, err)

	assert.Equal(t, "token-for-ada@example.com", token.AccessToken)
	assert.Equal(t, 900, token.ExpiresIn)
	assert.Equal(t, ada.ID, issuer.studentID)
}

func TestIssueToken_Errors(t *testing.T) {
	svc := NewAuthService(newStubStudents(), &stubIssuer{}, 15*time.Minute)

	_, err := svc.IssueToken(context.Background(), models.TokenRequest{})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.IssueToken(context.Background(), models.TokenRequest{Email: "nobody@example.com"})
	var ue *UnauthorizedError
	assert.ErrorAs(t, err, &ue)
}
