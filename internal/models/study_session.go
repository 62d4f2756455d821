package models

import (
	"time"

	"github.com/google/uuid"
)

// StudySession is a planned or completed block of study time for one course.
type StudySession struct {
	ID              uuid.UUID `json:"id"`
	CourseID        uuid.UUID `json:"course_id"`
	CourseTitle     string    `json:"course_title,omitempty"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"min=1"`
	Location        string    `json:"location" validate:"max=200"`
	Notes           string    `json:"notes" validate:"max=500"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s StudySession) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

type StudySessionRequest struct {
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location"`
	Notes           string    `json:"notes"`
	Completed       bool      `json:"completed"`
}

type LoadCheckRequest struct {
	CourseID                uuid.UUID `json:"course_id"`
	Date                    Date      `json:"date"`
	ProposedDurationMinutes int       `json:"proposed_duration_minutes"`
}

type ClashCheckRequest struct {
	CourseID        uuid.UUID  `json:"course_id"`
	SessionID       *uuid.UUID `json:"session_id"`
	StartTime       *time.Time `json:"start_time"`
	DurationMinutes int        `json:"duration_minutes"`
}
