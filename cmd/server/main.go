package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studybuddy-backend/internal/config"
	"studybuddy-backend/internal/database"
	"studybuddy-backend/internal/handlers"
	"studybuddy-backend/internal/middleware"
	"studybuddy-backend/internal/repository"
	"studybuddy-backend/internal/router"
	"studybuddy-backend/internal/seed"
	"studybuddy-backend/internal/services"
	"studybuddy-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting StudyBuddy Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Printf("✓ Environment variables loaded (timezone %s)", cfg.Location)

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	studentRepo := repository.NewStudentRepo(pool)
	courseRepo := repository.NewCourseRepo(pool)
	studySessionRepo := repository.NewStudySessionRepo(pool)
	taskRepo := repository.NewTaskRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	events := services.NewRedisEventPublisher(redisClients.Publisher)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.FrontendURL)
	studentService := services.NewStudentService(studentRepo)
	courseService := services.NewCourseService(courseRepo, studentRepo)
	studySessionService := services.NewStudySessionService(studySessionRepo, courseRepo, events, cfg.Location)
	taskService := services.NewTaskService(taskRepo, courseRepo, events, cfg.Location)
	authService := services.NewAuthService(studentRepo, jwtAuth, middleware.AccessTokenTTL)

	// ──── Step 5: Seed Sample Data ────
	if cfg.SeedSampleData {
		seeder := &seed.Seeder{
			Students: studentService,
			Courses:  courseService,
			Tasks:    taskService,
			Sessions: studySessionService,
			Location: cfg.Location,
		}
		if _, err := seeder.Run(context.Background()); err != nil {
			log.Fatalf("✗ Sample data seeding failed: %v", err)
		}
	}

	// ──── Step 6: Start Reminder Scheduler ────
	reminderScheduler := services.NewReminderScheduler(taskRepo, studentRepo, emailService, events, cfg.Location, cfg.ReminderInterval)
	reminderScheduler.Start()
	log.Println("✓ Reminder scheduler started")

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(websocket.NewRedisSubscriber(redisClients.Subscriber), jwtAuth)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	health := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": pool.Ping,
		"redis":    redisClients.Ping,
	})

	r := router.New(router.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Students:     handlers.NewStudentHandler(studentService),
		Courses:      handlers.NewCourseHandler(courseService, taskService),
		StudySession: handlers.NewStudySessionHandler(studySessionService),
		Tasks:        handlers.NewTaskHandler(taskService),
		WebSocket:    wsHub.HandleWebSocket,
		Health:       health.Check,
	}, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		reminderScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ StudyBuddy Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
