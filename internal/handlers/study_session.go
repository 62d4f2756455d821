package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
)

type sessionService interface {
	List(ctx context.Context) ([]models.StudySession, error)
	Get(ctx context.Context, id uuid.UUID) (*models.StudySession, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.StudySession, error)
	ListByStudentAndDate(ctx context.Context, studentID uuid.UUID, date models.Date) ([]models.StudySession, error)
	Create(ctx context.Context, courseID uuid.UUID, req models.StudySessionRequest) (*models.StudySession, error)
	Update(ctx context.Context, id uuid.UUID, req models.StudySessionRequest) (*models.StudySession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CheckDailyLoad(ctx context.Context, courseID uuid.UUID, date models.Date, proposedMinutes int) (models.LoadCheckResult, error)
	CheckForClashes(ctx context.Context, courseID uuid.UUID, proposed models.StudySession) (models.ClashCheckResult, error)
}

type StudySessionHandler struct {
	sessions sessionService
}

func NewStudySessionHandler(sessions sessionService) *StudySessionHandler {
	return &StudySessionHandler{sessions: sessions}
}

func (h *StudySessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *StudySessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *StudySessionHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "courseId")
	if !ok {
		return
	}
	sessions, err := h.sessions.ListByCourse(r.Context(), courseID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *StudySessionHandler) ListByStudentAndDate(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	date, ok := parseDate(w, r, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	sessions, err := h.sessions.ListByStudentAndDate(r.Context(), studentID, date)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *StudySessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "courseId")
	if !ok {
		return
	}
	var req models.StudySessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.sessions.Create(r.Context(), courseID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *StudySessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.StudySessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.sessions.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *StudySessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudySessionHandler) CheckLoad(w http.ResponseWriter, r *http.Request) {
	var req models.LoadCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := map[string]string{}
	if req.CourseID == uuid.Nil {
		fields["course_id"] = "This field is required"
	}
	if req.Date.IsZero() {
		fields["date"] = "This field is required"
	}
	if req.ProposedDurationMinutes < 0 {
		fields["proposed_duration_minutes"] = "Must be at least 0"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	result, err := h.sessions.CheckDailyLoad(r.Context(), req.CourseID, req.Date, req.ProposedDurationMinutes)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CheckClash tests a proposed session against the course's sessions on the same day.
// A proposal without start_time never clashes.
func (h *StudySessionHandler) CheckClash(w http.ResponseWriter, r *http.Request) {
	var req models.ClashCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CourseID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"course_id": "This field is required"}, r))
		return
	}

	proposed := models.StudySession{CourseID: req.CourseID, DurationMinutes: req.DurationMinutes}
	if req.SessionID != nil {
		proposed.ID = *req.SessionID
	}
	if req.StartTime != nil {
		proposed.StartTime = *req.StartTime
	}

	result, err := h.sessions.CheckForClashes(r.Context(), req.CourseID, proposed)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
