package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskRequestToTask_Defaults(t *testing.T) {
	task := TaskRequest{Title: "Read"}.ToTask()

	assert.Equal(t, TaskTypeReading, task.TaskType)
	assert.Equal(t, 1, task.EstimatedEffortHours)
	assert.Nil(t, task.DueDate)
}

func TestPreferenceRequestToPreference(t *testing.T) {
	zero := 0
	p := PreferenceRequest{PreferredDailyWorkloadMinutes: &zero}.ToPreference()

	assert.Equal(t, 0, p.PreferredDailyWorkloadMinutes)
	assert.True(t, p.NotificationsEnabled)
	assert.Equal(t, DefaultPriorityLevel, p.PriorityLevel)
}
