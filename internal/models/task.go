package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeReading    TaskType = "READING"
	TaskTypeExercise   TaskType = "EXERCISE"
	TaskTypeProject    TaskType = "PROJECT"
	TaskTypeExamPrep   TaskType = "EXAM_PREP"
	TaskTypeAssignment TaskType = "ASSIGNMENT"
	TaskTypeOther      TaskType = "OTHER"
)

type Task struct {
	ID                   uuid.UUID `json:"id"`
	CourseID             uuid.UUID `json:"course_id"`
	Title                string    `json:"title" validate:"required,max=255"`
	Description          string    `json:"description" validate:"max=1000"`
	TaskType             TaskType  `json:"task_type" validate:"oneof=READING EXERCISE PROJECT EXAM_PREP ASSIGNMENT OTHER"`
	DueDate              *Date     `json:"due_date"`
	EstimatedEffortHours int       `json:"estimated_effort_hours" validate:"min=1,max=100"`
	Completed            bool      `json:"completed"`
	CreatedAt            time.Time `json:"created_at"`
}

type TaskRequest struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	TaskType             TaskType `json:"task_type"`
	DueDate              *Date    `json:"due_date"`
	EstimatedEffortHours int      `json:"estimated_effort_hours"`
	Completed            bool     `json:"completed"`
}

// ToTask applies the defaults for omitted type and effort.
func (r TaskRequest) ToTask() *Task {
	t := &Task{
		Title:                r.Title,
		Description:          r.Description,
		TaskType:             r.TaskType,
		DueDate:              r.DueDate,
		EstimatedEffortHours: r.EstimatedEffortHours,
		Completed:            r.Completed,
	}
	if t.TaskType == "" {
		t.TaskType = TaskTypeReading
	}
	if t.EstimatedEffortHours == 0 {
		t.EstimatedEffortHours = 1
	}
	return t
}

type PrioritizedTask struct {
	Task
	PriorityScore float64 `json:"priority_score"`
}

// OverdueReminder is one overdue task row joined with its owning student.
type OverdueReminder struct {
	StudentID          uuid.UUID
	StudentName        string
	StudentEmail       string
	LastReminderSentAt *time.Time
	TaskID             uuid.UUID
	TaskTitle          string
	CourseTitle        string
	DueDate            Date
}
