package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
	"studybuddy-backend/internal/planner"
)

type taskStore interface {
	Create(ctx context.Context, t *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Task, error)
	ListByCourseAndCompleted(ctx context.Context, courseID uuid.UUID, completed bool) ([]models.Task, error)
	ListPending(ctx context.Context) ([]models.Task, error)
	ListPendingByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Task, error)
	ListOverdue(ctx context.Context, date models.Date) ([]models.Task, error)
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
	CountCompletedByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskService struct {
	tasks   taskStore
	courses courseReader
	events  EventPublisher
	loc     *time.Location
	now     func() time.Time
}

func NewTaskService(tasks taskStore, courses courseReader, events EventPublisher, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskService{tasks: tasks, courses: courses, events: events, loc: loc, now: time.Now}
}

// Today is the current calendar day in the service's location.
func (s *TaskService) Today() models.Date {
	return models.DateOf(s.now().In(s.loc))
}

func (s *TaskService) CalculateProgress(ctx context.Context, courseID uuid.UUID) (models.ProgressResult, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return models.ProgressResult{}, lookupErr(err, "Course", courseID)
	}

	total, err := s.tasks.CountByCourse(ctx, courseID)
	if err != nil {
		return models.ProgressResult{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	completed, err := s.tasks.CountCompletedByCourse(ctx, courseID)
	if err != nil {
		return models.ProgressResult{}, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return planner.CalculateProgress(course.ID, course.Title, total, completed), nil
}

// GetTasksByPriority ranks the incomplete tasks of one course, or of every course when courseID
// is nil.
func (s *TaskService) GetTasksByPriority(ctx context.Context, courseID *uuid.UUID) ([]models.PrioritizedTask, error) {
	var (
		tasks []models.Task
		err   error
	)
	if courseID != nil {
		tasks, err = s.tasks.ListByCourseAndCompleted(ctx, *courseID, false)
	} else {
		tasks, err = s.tasks.ListPending(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return planner.RankByPriority(tasks, s.Today()), nil
}

func (s *TaskService) GetPendingTasksByStudentPrioritized(ctx context.Context, studentID uuid.UUID) ([]models.PrioritizedTask, error) {
	tasks, err := s.tasks.ListPendingByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return planner.RankByPriority(tasks, s.Today()), nil
}

// ListOverdue returns incomplete tasks due on or before date.
func (s *TaskService) ListOverdue(ctx context.Context, date models.Date) ([]models.Task, error) {
	return s.tasks.ListOverdue(ctx, date)
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	return s.tasks.List(ctx)
}

func (s *TaskService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Task, error) {
	return s.tasks.ListByCourse(ctx, courseID)
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Task", id)
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, courseID uuid.UUID, req models.TaskRequest) (*models.Task, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, lookupErr(err, "Course", courseID)
	}

	task := req.ToTask()
	task.Title = strings.TrimSpace(task.Title)
	task.CourseID = courseID
	if err := validateStruct(task); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	publish(ctx, s.events, models.EventTaskSaved, course.StudentProfileID, courseID, task)
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req models.TaskRequest) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := req.ToTask()
	task.Title = strings.TrimSpace(patch.Title)
	task.Description = patch.Description
	task.TaskType = patch.TaskType
	task.DueDate = patch.DueDate
	task.EstimatedEffortHours = patch.EstimatedEffortHours
	task.Completed = patch.Completed
	return s.save(ctx, task)
}

func (s *TaskService) MarkCompleted(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return s.setCompleted(ctx, id, true)
}

func (s *TaskService) MarkIncomplete(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return s.setCompleted(ctx, id, false)
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	task, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return lookupErr(err, "Task", id)
	}
	s.publishForCourse(ctx, models.EventTaskDeleted, task.CourseID, map[string]uuid.UUID{"id": id})
	return nil
}

func (s *TaskService) setCompleted(ctx context.Context, id uuid.UUID, completed bool) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Completed = completed
	return s.save(ctx, task)
}

func (s *TaskService) save(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := validateStruct(task); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, lookupErr(err, "Task", task.ID)
	}
	s.publishForCourse(ctx, models.EventTaskSaved, task.CourseID, task)
	return task, nil
}

func (s *TaskService) publishForCourse(ctx context.Context, eventType string, courseID uuid.UUID, data interface{}) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return
	}
	publish(ctx, s.events, eventType, course.StudentProfileID, courseID, data)
}
