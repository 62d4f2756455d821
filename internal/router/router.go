package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studybuddy-backend/internal/handlers"
	"studybuddy-backend/internal/middleware"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Students     *handlers.StudentHandler
	Courses      *handlers.CourseHandler
	StudySession *handlers.StudySessionHandler
	Tasks        *handlers.TaskHandler
	// WebSocket upgrades /api/v1/ws; nil disables the route.
	WebSocket http.HandlerFunc
	// Health reports dependency status; nil falls back to a static ok.
	Health http.HandlerFunc
}

func New(h Handlers, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Token rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	health := h.Health
	if health == nil {
		health = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		}
	}
	r.Get("/health", health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health)

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/token", h.Auth.Token)
		})

		// ──── Student Routes ────
		r.Route("/students", func(r chi.Router) {
			r.Get("/", h.Students.List)
			r.Post("/", h.Students.Create)
			r.Get("/email/{email}", h.Students.GetByEmail)
			r.Get("/{id}", h.Students.Get)
			r.Put("/{id}", h.Students.Update)
			r.Delete("/{id}", h.Students.Delete)
		})

		// ──── Course Routes ────
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.Courses.List)
			r.Get("/student/{studentId}", h.Courses.ListByStudent)
			r.Post("/student/{studentId}", h.Courses.Create)
			r.Get("/{id}", h.Courses.Get)
			r.Put("/{id}", h.Courses.Update)
			r.Delete("/{id}", h.Courses.Delete)
			r.Get("/{id}/preference", h.Courses.GetPreference)
			r.Put("/{id}/preference", h.Courses.SavePreference)
			r.Get("/{id}/note", h.Courses.GetNote)
			r.Put("/{id}/note", h.Courses.SaveNote)
			r.Get("/{id}/progress", h.Courses.Progress)
		})

		// ──── Study Session Routes ────
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.StudySession.List)
			r.Post("/check-load", h.StudySession.CheckLoad)
			r.Post("/check-clash", h.StudySession.CheckClash)
			r.Get("/course/{courseId}", h.StudySession.ListByCourse)
			r.Post("/course/{courseId}", h.StudySession.Create)
			r.Get("/student/{studentId}/date/{date}", h.StudySession.ListByStudentAndDate)
			r.Get("/{id}", h.StudySession.Get)
			r.Put("/{id}", h.StudySession.Update)
			r.Delete("/{id}", h.StudySession.Delete)
		})

		// ──── Task Routes ────
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Tasks.List)
			r.Get("/prioritized", h.Tasks.Prioritized)
			r.Get("/overdue", h.Tasks.Overdue)
			r.Get("/student/{studentId}/prioritized", h.Tasks.StudentPrioritized)
			r.Get("/course/{courseId}", h.Tasks.ListByCourse)
			r.Post("/course/{courseId}", h.Tasks.Create)
			r.Get("/{id}", h.Tasks.Get)
			r.Put("/{id}", h.Tasks.Update)
			r.Patch("/{id}/complete", h.Tasks.Complete)
			r.Patch("/{id}/incomplete", h.Tasks.Incomplete)
			r.Delete("/{id}", h.Tasks.Delete)
		})

		// ──── WebSocket ────
		if h.WebSocket != nil {
			r.Get("/ws", h.WebSocket)
		}
	})

	return r
}
