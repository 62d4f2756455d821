package planner

import (
	"sort"

	"studybuddy-backend/internal/models"
)

const (
	dueDateWeightCeiling = 100
	effortWeightFactor   = 2
)

// PriorityScore combines due-date proximity and estimated effort into one urgency number.
//
// Overdue tasks weigh 100 plus one point per day overdue, so they always outrank any task that is
// not yet due with the same effort. Upcoming tasks weigh 100 minus the days left, floored at 0.
// Tasks without a due date get no date weight. Effort adds two points per hour.
func PriorityScore(t models.Task, today models.Date) float64 {
	daysWeight := 0
	if t.DueDate != nil {
		daysUntilDue := today.DaysUntil(*t.DueDate)
		if daysUntilDue < 0 {
			daysWeight = dueDateWeightCeiling - daysUntilDue
		} else {
			daysWeight = max(0, dueDateWeightCeiling-daysUntilDue)
		}
	}
	return float64(daysWeight + t.EstimatedEffortHours*effortWeightFactor)
}

// RankByPriority scores the incomplete tasks and orders them highest score first.
// Equal scores fall back to creation time, then id, so the order never depends on fetch order.
func RankByPriority(tasks []models.Task, today models.Date) []models.PrioritizedTask {
	ranked := make([]models.PrioritizedTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		ranked = append(ranked, models.PrioritizedTask{Task: t, PriorityScore: PriorityScore(t, today)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return ranked
}
