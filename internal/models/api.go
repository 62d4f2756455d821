package models

import (
	"time"

	"github.com/google/uuid"
)

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Event is pushed to a student's realtime channel.
type Event struct {
	Type      string      `json:"type"`
	StudentID uuid.UUID   `json:"student_id"`
	CourseID  *uuid.UUID  `json:"course_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

const (
	EventSessionSaved   = "session.saved"
	EventSessionDeleted = "session.deleted"
	EventTaskSaved      = "task.saved"
	EventTaskDeleted    = "task.deleted"
	EventTasksOverdue   = "tasks.overdue"
)
