package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
)

type taskService interface {
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Task, error)
	GetTasksByPriority(ctx context.Context, courseID *uuid.UUID) ([]models.PrioritizedTask, error)
	GetPendingTasksByStudentPrioritized(ctx context.Context, studentID uuid.UUID) ([]models.PrioritizedTask, error)
	ListOverdue(ctx context.Context, date models.Date) ([]models.Task, error)
	Today() models.Date
	Create(ctx context.Context, courseID uuid.UUID, req models.TaskRequest) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, req models.TaskRequest) (*models.Task, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (*models.Task, error)
	MarkIncomplete(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskHandler struct {
	tasks taskService
}

func NewTaskHandler(tasks taskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List returns all tasks, narrowed by ?course_id=. With ?ordered=true the incomplete tasks are
// returned in priority order instead.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	courseID, ok := queryID(w, r, "course_id")
	if !ok {
		return
	}

	if r.URL.Query().Get("ordered") == "true" {
		h.writePrioritized(w, r, courseID)
		return
	}

	var (
		tasks []models.Task
		err   error
	)
	if courseID != nil {
		tasks, err = h.tasks.ListByCourse(r.Context(), *courseID)
	} else {
		tasks, err = h.tasks.List(r.Context())
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Prioritized(w http.ResponseWriter, r *http.Request) {
	courseID, ok := queryID(w, r, "course_id")
	if !ok {
		return
	}
	h.writePrioritized(w, r, courseID)
}

func (h *TaskHandler) writePrioritized(w http.ResponseWriter, r *http.Request, courseID *uuid.UUID) {
	ranked, err := h.tasks.GetTasksByPriority(r.Context(), courseID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (h *TaskHandler) StudentPrioritized(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	ranked, err := h.tasks.GetPendingTasksByStudentPrioritized(r.Context(), studentID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

// Overdue lists incomplete tasks due on or before ?date=, defaulting to today.
func (h *TaskHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	date := h.tasks.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		var ok bool
		if date, ok = parseDate(w, r, raw); !ok {
			return
		}
	}

	tasks, err := h.tasks.ListOverdue(r.Context(), date)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "courseId")
	if !ok {
		return
	}
	tasks, err := h.tasks.ListByCourse(r.Context(), courseID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "courseId")
	if !ok {
		return
	}
	var req models.TaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	task, err := h.tasks.Create(r.Context(), courseID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.TaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	task, err := h.tasks.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, h.tasks.MarkCompleted)
}

func (h *TaskHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, h.tasks.MarkIncomplete)
}

func (h *TaskHandler) setCompleted(w http.ResponseWriter, r *http.Request, mark func(context.Context, uuid.UUID) (*models.Task, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	task, err := mark(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.tasks.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
