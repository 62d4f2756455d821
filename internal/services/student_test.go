package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy-backend/internal/models"
)

func TestStudentCreate(t *testing.T) {
	svc := NewStudentService(newStubStudents())

	student, err := svc.Create(context.Background(), models.StudentProfileRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, student.ID)
	assert.Equal(t, "en", student.Locale)
}

func TestStudentCreate_DuplicateEmail(t *testing.T) {
	existing := &models.StudentProfile{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	svc := NewStudentService(newStubStudents(existing))

	_, err := svc.Create(context.Background(), models.StudentProfileRequest{Name: "Other", Email: "ADA@example.com"})
	var ce *ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestStudentCreate_Validation(t *testing.T) {
	svc := NewStudentService(newStubStudents())

	_, err := svc.Create(context.Background(), models.StudentProfileRequest{Email: "not-an-email"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "This field is required", ve.Fields["name"])
	assert.Equal(t, "Must be a valid email address", ve.Fields["email"])
}

func TestStudentUpdate(t *testing.T) {
	ada := &models.StudentProfile{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Locale: "en"}
	bob := &models.StudentProfile{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", Locale: "en"}
	svc := NewStudentService(newStubStudents(ada, bob))

	updated, err := svc.Update(context.Background(), ada.ID, models.StudentProfileRequest{Name: "Ada L.", Email: "ada@example.com", Locale: "de"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "de", updated.Locale)

	_, err = svc.Update(context.Background(), ada.ID, models.StudentProfileRequest{Name: "Ada", Email: "bob@example.com"})
	var ce *ConflictError
	assert.ErrorAs(t, err, &ce)

	_, err = svc.Update(context.Background(), uuid.New(), models.StudentProfileRequest{Name: "X", Email: "x@example.com"})
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestStudentGetByEmailAndDelete(t *testing.T) {
	ada := &models.StudentProfile{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	svc := NewStudentService(newStubStudents(ada))

	got, err := svc.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, got.ID)

	require.NoError(t, svc.Delete(context.Background(), ada.ID))
	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = svc.GetByEmail(context.Background(), "ada@example.com")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}
