package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
)

type studentService interface {
	List(ctx context.Context) ([]*models.StudentProfile, error)
	Get(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error)
	Create(ctx context.Context, req models.StudentProfileRequest) (*models.StudentProfile, error)
	Update(ctx context.Context, id uuid.UUID, req models.StudentProfileRequest) (*models.StudentProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StudentHandler struct {
	students studentService
}

func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	student, err := h.students.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	student, err := h.students.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.StudentProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	student, err := h.students.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.StudentProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	student, err := h.students.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.students.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
