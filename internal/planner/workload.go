package planner

import (
	"fmt"
	"time"

	"studybuddy-backend/internal/models"
)

// DayWindow returns the first and last instant of date's calendar day in loc.
// The end is 23:59:59.999999, the finest resolution PostgreSQL stores.
func DayWindow(date models.Date, loc *time.Location) (time.Time, time.Time) {
	start := date.In(loc)
	end := start.AddDate(0, 0, 1).Add(-time.Microsecond)
	return start, end
}

func SumMinutes(sessions []models.StudySession) int {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

// CheckDailyLoad compares the minutes already scheduled plus the proposed minutes against the
// daily limit. Reaching the limit exactly is allowed.
func CheckDailyLoad(currentMinutes, proposedMinutes, dailyLimit int) models.LoadCheckResult {
	total := currentMinutes + proposedMinutes
	result := models.LoadCheckResult{
		CurrentMinutes:    currentMinutes,
		ProposedMinutes:   proposedMinutes,
		TotalMinutes:      total,
		DailyLimitMinutes: dailyLimit,
	}
	if total <= dailyLimit {
		return result
	}

	msg := fmt.Sprintf(
		"Adding this session would exceed your daily limit by %d minutes. Current: %d min, Proposed: %d min, Limit: %d min.",
		total-dailyLimit, currentMinutes, proposedMinutes, dailyLimit,
	)
	result.ExceedsLimit = true
	result.WarningMessage = &msg
	return result
}
