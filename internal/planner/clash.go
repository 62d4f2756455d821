package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
)

const unknownCourseTitle = "Unknown"

// Overlaps reports whether two sessions share any instant. Sessions that only touch at a
// boundary do not overlap.
func Overlaps(a, b models.StudySession) bool {
	return a.StartTime.Before(b.EndTime()) && a.EndTime().After(b.StartTime)
}

// Evaluable reports whether a proposed session carries enough data to test for overlaps.
func Evaluable(s models.StudySession) bool {
	return !s.StartTime.IsZero() && s.DurationMinutes > 0
}

// FindClashes returns the candidates that overlap proposed, in candidate order. A candidate with
// the proposed session's own id is the stored version of the session being edited and is skipped.
func FindClashes(proposed models.StudySession, candidates []models.StudySession) []models.StudySession {
	clashes := []models.StudySession{}
	if !Evaluable(proposed) {
		return clashes
	}
	for _, existing := range candidates {
		if proposed.ID != uuid.Nil && proposed.ID == existing.ID {
			continue
		}
		if Overlaps(proposed, existing) {
			clashes = append(clashes, existing)
		}
	}
	return clashes
}

// ClashResult builds the check result for the given clashes, rendering times in loc.
func ClashResult(clashes []models.StudySession, loc *time.Location) models.ClashCheckResult {
	if len(clashes) == 0 {
		return models.ClashCheckResult{ClashingSessions: []models.StudySession{}}
	}

	parts := make([]string, 0, len(clashes))
	for _, s := range clashes {
		title := s.CourseTitle
		if title == "" {
			title = unknownCourseTitle
		}
		parts = append(parts, fmt.Sprintf("%s (%s - %s)", title, clockTime(s.StartTime.In(loc)), clockTime(s.EndTime().In(loc))))
	}
	msg := fmt.Sprintf("Session conflicts with %d existing session(s): %s", len(clashes), strings.Join(parts, ", "))

	return models.ClashCheckResult{
		HasClash:         true,
		ClashingSessions: clashes,
		WarningMessage:   &msg,
	}
}

func clockTime(t time.Time) string {
	if t.Second() != 0 {
		return t.Format("15:04:05")
	}
	return t.Format("15:04")
}
