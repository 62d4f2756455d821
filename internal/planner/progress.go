package planner

import (
	"math"

	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
)

// CalculateProgress rolls up task counts; percentage is 0 when there are no tasks.
func CalculateProgress(courseID uuid.UUID, courseTitle string, total, completed int64) models.ProgressResult {
	percentage := 0.0
	if total > 0 {
		percentage = roundTo2(float64(completed) * 100 / float64(total))
	}
	return models.ProgressResult{
		CourseID:             courseID,
		CourseTitle:          courseTitle,
		TotalTasks:           total,
		CompletedTasks:       completed,
		PendingTasks:         total - completed,
		CompletionPercentage: percentage,
	}
}

// roundTo2 rounds half up for the non-negative values percentages take.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
