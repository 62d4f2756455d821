package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
)

type courseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, term string) ([]*models.Course, error)
	Create(ctx context.Context, studentID uuid.UUID, req models.CourseRequest) (*models.Course, *models.CoursePreference, error)
	Update(ctx context.Context, id uuid.UUID, req models.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetPreference(ctx context.Context, courseID uuid.UUID) (*models.CoursePreference, error)
	SavePreference(ctx context.Context, courseID uuid.UUID, req models.PreferenceRequest) (*models.CoursePreference, error)
	GetNote(ctx context.Context, courseID uuid.UUID) (*models.CourseNote, error)
	SaveNote(ctx context.Context, courseID uuid.UUID, req models.NoteRequest) (*models.CourseNote, error)
}

type progressService interface {
	CalculateProgress(ctx context.Context, courseID uuid.UUID) (models.ProgressResult, error)
}

type CourseHandler struct {
	courses  courseService
	progress progressService
}

func NewCourseHandler(courses courseService, progress progressService) *CourseHandler {
	return &CourseHandler{courses: courses, progress: progress}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	course, err := h.courses.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// ListByStudent accepts an optional ?term= filter.
func (h *CourseHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	courses, err := h.courses.ListByStudent(r.Context(), studentID, r.URL.Query().Get("term"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	var req models.CourseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	course, pref, err := h.courses.Create(r.Context(), studentID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"course":     course,
		"preference": pref,
	})
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.CourseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	course, err := h.courses.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.courses.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	pref, err := h.courses.GetPreference(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pref)
}

func (h *CourseHandler) SavePreference(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.PreferenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	pref, err := h.courses.SavePreference(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pref)
}

func (h *CourseHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	note, err := h.courses.GetNote(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *CourseHandler) SaveNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	note, err := h.courses.SaveNote(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *CourseHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	progress, err := h.progress.CalculateProgress(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
