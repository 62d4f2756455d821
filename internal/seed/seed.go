// Package seed fills an empty database with a sample student and study plan.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"studybuddy-backend/internal/models"
)

type studentService interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, req models.StudentProfileRequest) (*models.StudentProfile, error)
}

type courseService interface {
	Create(ctx context.Context, studentID uuid.UUID, req models.CourseRequest) (*models.Course, *models.CoursePreference, error)
	SaveNote(ctx context.Context, courseID uuid.UUID, req models.NoteRequest) (*models.CourseNote, error)
}

type taskService interface {
	Create(ctx context.Context, courseID uuid.UUID, req models.TaskRequest) (*models.Task, error)
}

type sessionService interface {
	Create(ctx context.Context, courseID uuid.UUID, req models.StudySessionRequest) (*models.StudySession, error)
}

type Seeder struct {
	Students studentService
	Courses  courseService
	Tasks    taskService
	Sessions sessionService
	Location *time.Location
	Now      func() time.Time
}

type sampleCourse struct {
	key, title, instructor, description string
	workload, priority                  int
	notifications                       bool
}

type sampleTask struct {
	course, title, description string
	taskType                   models.TaskType
	dueInDays, effort          int
	completed                  bool
}

type sampleSession struct {
	course          string
	dayOffset, hour int
	minutes         int
	location        string
	completed       bool
}

const sampleTerm = "Fall 2025"

var sampleCourses = []sampleCourse{
	{"design", "Design of Software Systems", "Prof. Seiger", "Software design patterns, frameworks and architectural patterns.", 120, 1, true},
	{"math", "Mathematics for Business", "Prof. Schmidt", "Linear algebra, calculus and optimization methods.", 90, 2, true},
	{"econ", "Microeconomics", "Prof. Mueller", "Supply and demand, market structures and consumer theory.", 60, 3, false},
	{"data", "Data Analytics", "Prof. Weber", "Statistical analysis, machine learning basics and data visualization.", 90, 2, true},
}

var sampleNotes = map[string]models.NoteRequest{
	"design": {
		Summary:   "Key topics: SOLID principles, design patterns (Strategy, Observer, Factory), inversion of control.",
		KeyPoints: "• Frameworks call your code (Hollywood principle)\n• Prefer composition over inheritance",
	},
	"math": {
		Summary:   "Focus on optimization problems and matrix operations for the exam.",
		KeyPoints: "• Remember eigenvector decomposition\n• Practice Lagrange multipliers",
	},
}

var sampleTasks = []sampleTask{
	{"design", "Complete Assignment 6", "Full-stack web application", models.TaskTypeProject, 21, 20, false},
	{"design", "Read Chapter 10: Frameworks", "", models.TaskTypeReading, 3, 3, true},
	{"design", "Practice framework exercises", "", models.TaskTypeExercise, 5, 4, false},
	{"design", "Review Design Patterns", "", models.TaskTypeExamPrep, 7, 5, false},
	{"math", "Problem Set 5", "Chapter 7 exercises 1-20", models.TaskTypeExercise, 2, 4, false},
	{"math", "Study for Midterm", "", models.TaskTypeExamPrep, 10, 15, false},
	{"econ", "Case Study Analysis", "Analyze the market structure of the tech industry", models.TaskTypeAssignment, 4, 6, false},
	{"econ", "Chapter 8 Reading", "Game theory chapter", models.TaskTypeReading, -1, 2, false},
	{"data", "Data Analysis Project", "", models.TaskTypeProject, 14, 12, false},
	{"data", "Complete Online Module", "Machine learning fundamentals", models.TaskTypeExercise, 0, 3, false},
}

var sampleSessions = []sampleSession{
	{"design", 1, 9, 90, "Library Study Room A", false},
	{"design", 2, 14, 60, "Home Office", false},
	{"design", -1, 10, 120, "Computer Lab", true},
	{"math", 1, 14, 60, "Math Tutorial Room", false},
	{"math", 3, 11, 90, "Library", false},
	{"econ", 2, 16, 45, "Café", false},
	{"data", 1, 16, 60, "Computer Lab B", false},
}

// Run creates the sample data unless a student already exists. It reports whether it seeded.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	n, err := s.Students.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count students: %w", err)
	}
	if n > 0 {
		log.Println("Database already initialized, skipping sample data")
		return false, nil
	}

	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	today := models.DateOf(now().In(loc))

	settings := `{"theme": "light", "notifications": true}`
	student, err := s.Students.Create(ctx, models.StudentProfileRequest{
		Name:     "Sample Student",
		Email:    "student@example.com",
		Locale:   "en",
		Settings: &settings,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create sample student: %w", err)
	}

	courseIDs := make(map[string]uuid.UUID, len(sampleCourses))
	for _, c := range sampleCourses {
		workload, notifications, priority := c.workload, c.notifications, c.priority
		course, _, err := s.Courses.Create(ctx, student.ID, models.CourseRequest{
			Title:       c.title,
			Term:        sampleTerm,
			Instructor:  c.instructor,
			Description: c.description,
			Preference: &models.PreferenceRequest{
				PreferredDailyWorkloadMinutes: &workload,
				NotificationsEnabled:          &notifications,
				PriorityLevel:                 &priority,
			},
		})
		if err != nil {
			return false, fmt.Errorf("failed to create course %q: %w", c.title, err)
		}
		courseIDs[c.key] = course.ID
	}

	for key, note := range sampleNotes {
		if _, err := s.Courses.SaveNote(ctx, courseIDs[key], note); err != nil {
			return false, fmt.Errorf("failed to create note for %s: %w", key, err)
		}
	}

	for _, t := range sampleTasks {
		due := today.AddDays(t.dueInDays)
		_, err := s.Tasks.Create(ctx, courseIDs[t.course], models.TaskRequest{
			Title:                t.title,
			Description:          t.description,
			TaskType:             t.taskType,
			DueDate:              &due,
			EstimatedEffortHours: t.effort,
			Completed:            t.completed,
		})
		if err != nil {
			return false, fmt.Errorf("failed to create task %q: %w", t.title, err)
		}
	}

	for _, ss := range sampleSessions {
		start := today.AddDays(ss.dayOffset).In(loc).Add(time.Duration(ss.hour) * time.Hour)
		_, err := s.Sessions.Create(ctx, courseIDs[ss.course], models.StudySessionRequest{
			StartTime:       start,
			DurationMinutes: ss.minutes,
			Location:        ss.location,
			Completed:       ss.completed,
		})
		if err != nil {
			return false, fmt.Errorf("failed to create session for %s: %w", ss.course, err)
		}
	}

	log.Printf("✓ Sample data created: 1 student, %d courses, %d tasks, %d study sessions",
		len(sampleCourses), len(sampleTasks), len(sampleSessions))
	return true, nil
}
