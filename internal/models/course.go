package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDailyWorkloadMinutes = 120
	DefaultPriorityLevel        = 3
)

type Course struct {
	ID               uuid.UUID `json:"id"`
	StudentProfileID uuid.UUID `json:"student_profile_id"`
	Title            string    `json:"title" validate:"required,max=255"`
	Term             string    `json:"term" validate:"max=50"`
	Instructor       string    `json:"instructor" validate:"max=100"`
	Description      string    `json:"description" validate:"max=500"`
	CreatedAt        time.Time `json:"created_at"`
}

// CoursePreference holds the study preferences of a single course.
type CoursePreference struct {
	ID       uuid.UUID `json:"id"`
	CourseID uuid.UUID `json:"course_id"`
	// Preferred maximum daily workload for the course, in minutes.
	PreferredDailyWorkloadMinutes int  `json:"preferred_daily_workload_minutes" validate:"min=0"`
	NotificationsEnabled          bool `json:"notifications_enabled"`
	// 1 is the highest priority, 5 the lowest.
	PriorityLevel int `json:"priority_level" validate:"min=1,max=5"`
}

// DefaultCoursePreference is the preference every course gets unless one is supplied.
func DefaultCoursePreference() *CoursePreference {
	return &CoursePreference{
		PreferredDailyWorkloadMinutes: DefaultDailyWorkloadMinutes,
		NotificationsEnabled:          true,
		PriorityLevel:                 DefaultPriorityLevel,
	}
}

type CourseNote struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	Summary     string    `json:"summary" validate:"max=5000"`
	KeyPoints   string    `json:"key_points" validate:"max=2000"`
	LastUpdated time.Time `json:"last_updated"`
}

type CourseRequest struct {
	Title       string             `json:"title"`
	Term        string             `json:"term"`
	Instructor  string             `json:"instructor"`
	Description string             `json:"description"`
	Preference  *PreferenceRequest `json:"preference,omitempty"`
}

// PreferenceRequest uses pointers so omitted fields fall back to the defaults.
type PreferenceRequest struct {
	PreferredDailyWorkloadMinutes *int  `json:"preferred_daily_workload_minutes"`
	NotificationsEnabled          *bool `json:"notifications_enabled"`
	PriorityLevel                 *int  `json:"priority_level"`
}

func (r PreferenceRequest) ToPreference() *CoursePreference {
	p := DefaultCoursePreference()
	if r.PreferredDailyWorkloadMinutes != nil {
		p.PreferredDailyWorkloadMinutes = *r.PreferredDailyWorkloadMinutes
	}
	if r.NotificationsEnabled != nil {
		p.NotificationsEnabled = *r.NotificationsEnabled
	}
	if r.PriorityLevel != nil {
		p.PriorityLevel = *r.PriorityLevel
	}
	return p
}

type NoteRequest struct {
	Summary   string `json:"summary"`
	KeyPoints string `json:"key_points"`
}
