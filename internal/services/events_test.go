package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentChannel(t *testing.T) {
	id := uuid.MustParse("6f1c1c2e-5a7b-4c1e-9d2a-0b7e8f6d5c4a")
	assert.Equal(t, "student_updates:6f1c1c2e-5a7b-4c1e-9d2a-0b7e8f6d5c4a", StudentChannel(id))
}

func TestPublish_FailureIsSwallowed(t *testing.T) {
	events := &recordingEvents{err: errStorage}
	studentID, courseID := uuid.New(), uuid.New()

	publish(context.Background(), events, "task.saved", studentID, courseID, nil)

	require.Len(t, events.events, 1)
	assert.Equal(t, courseID, *events.events[0].CourseID)
}

func TestPublish_SkipsWithoutStudent(t *testing.T) {
	events := &recordingEvents{}

	publish(context.Background(), events, "task.saved", uuid.Nil, uuid.New(), nil)
	publish(context.Background(), nil, "task.saved", uuid.New(), uuid.New(), nil)

	assert.Empty(t, events.events)
}
