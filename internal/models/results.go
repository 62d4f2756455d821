package models

import "github.com/google/uuid"

// LoadCheckResult reports whether a proposed session fits the course's daily workload limit.
type LoadCheckResult struct {
	ExceedsLimit      bool    `json:"exceeds_limit"`
	CurrentMinutes    int     `json:"current_minutes"`
	ProposedMinutes   int     `json:"proposed_minutes"`
	TotalMinutes      int     `json:"total_minutes"`
	DailyLimitMinutes int     `json:"daily_limit_minutes"`
	WarningMessage    *string `json:"warning_message"`
}

type ClashCheckResult struct {
	HasClash         bool           `json:"has_clash"`
	ClashingSessions []StudySession `json:"clashing_sessions"`
	WarningMessage   *string        `json:"warning_message"`
}

type ProgressResult struct {
	CourseID             uuid.UUID `json:"course_id"`
	CourseTitle          string    `json:"course_title"`
	TotalTasks           int64     `json:"total_tasks"`
	CompletedTasks       int64     `json:"completed_tasks"`
	PendingTasks         int64     `json:"pending_tasks"`
	CompletionPercentage float64   `json:"completion_percentage"`
}
