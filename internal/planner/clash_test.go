package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy-backend/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.January, 15, hour, minute, 0, 0, time.UTC)
}

func session(title string, start time.Time, minutes int) models.StudySession {
	return models.StudySession{ID: uuid.New(), CourseTitle: title, StartTime: start, DurationMinutes: minutes}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b models.StudySession
		want bool
	}{
		{"partial overlap", session("A", at(9, 0), 60), session("B", at(9, 30), 60), true},
		{"contained", session("A", at(9, 0), 120), session("B", at(9, 30), 30), true},
		{"identical", session("A", at(9, 0), 60), session("B", at(9, 0), 60), true},
		{"adjacent", session("A", at(9, 0), 60), session("B", at(10, 0), 60), false},
		{"disjoint", session("A", at(8, 0), 30), session("B", at(14, 0), 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.a, tc.b))
			assert.Equal(t, tc.want, Overlaps(tc.b, tc.a), "overlap must be symmetric")
		})
	}
}

func TestFindClashes_NoOverlap(t *testing.T) {
	proposed := models.StudySession{StartTime: at(14, 0), DurationMinutes: 60}
	existing := []models.StudySession{session("Math", at(9, 0), 60)}

	result := ClashResult(FindClashes(proposed, existing), time.UTC)

	assert.False(t, result.HasClash)
	assert.NotNil(t, result.ClashingSessions)
	assert.Empty(t, result.ClashingSessions)
	assert.Nil(t, result.WarningMessage)
}

func TestFindClashes_AdjacentIsNotAClash(t *testing.T) {
	proposed := models.StudySession{StartTime: at(10, 0), DurationMinutes: 30}
	existing := []models.StudySession{session("Math", at(9, 0), 60)}

	assert.Empty(t, FindClashes(proposed, existing))
}

func TestFindClashes_ContainedReportsOnce(t *testing.T) {
	proposed := models.StudySession{StartTime: at(9, 15), DurationMinutes: 15}
	existing := []models.StudySession{session("Math", at(9, 0), 60)}

	clashes := FindClashes(proposed, existing)
	require.Len(t, clashes, 1)
	assert.Equal(t, existing[0].ID, clashes[0].ID)
}

func TestFindClashes_MultipleKeepsOrder(t *testing.T) {
	first := session("Design of Software Systems", at(9, 0), 60)
	unrelated := session("Other", at(13, 0), 30)
	second := session("", at(10, 0), 60)
	proposed := models.StudySession{StartTime: at(9, 30), DurationMinutes: 60}

	result := ClashResult(FindClashes(proposed, []models.StudySession{first, unrelated, second}), time.UTC)

	assert.True(t, result.HasClash)
	require.Len(t, result.ClashingSessions, 2)
	assert.Equal(t, first.ID, result.ClashingSessions[0].ID)
	assert.Equal(t, second.ID, result.ClashingSessions[1].ID)
	require.NotNil(t, result.WarningMessage)
	assert.Equal(t,
		"Session conflicts with 2 existing session(s): Design of Software Systems (09:00 - 10:00), Unknown (10:00 - 11:00)",
		*result.WarningMessage)
}

func TestFindClashes_SkipsSessionBeingEdited(t *testing.T) {
	stored := session("Math", at(9, 0), 60)
	edited := models.StudySession{ID: stored.ID, StartTime: at(9, 30), DurationMinutes: 60}

	assert.Empty(t, FindClashes(edited, []models.StudySession{stored}))
}

func TestFindClashes_UnevaluableProposal(t *testing.T) {
	existing := []models.StudySession{session("Math", at(9, 0), 60)}

	assert.Empty(t, FindClashes(models.StudySession{DurationMinutes: 30}, existing))
	assert.Empty(t, FindClashes(models.StudySession{StartTime: at(9, 0)}, existing))
}

func TestClashResult_RendersInLocation(t *testing.T) {
	zurich, err := time.LoadLocation("Europe/Zurich")
	require.NoError(t, err)

	s := session("Econ", time.Date(2025, time.January, 15, 8, 0, 30, 0, time.UTC), 45)
	result := ClashResult([]models.StudySession{s}, zurich)

	require.NotNil(t, result.WarningMessage)
	assert.Equal(t, "Session conflicts with 1 existing session(s): Econ (09:00:30 - 09:45:30)", *result.WarningMessage)
}
