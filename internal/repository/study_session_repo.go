package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studybuddy-backend/internal/models"
)

type StudySessionRepo struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepo(pool *pgxpool.Pool) *StudySessionRepo {
	return &StudySessionRepo{pool: pool}
}

// Sessions are always read with their course title so clash warnings can name the course.
const sessionSelect = `SELECT s.id, s.course_id, COALESCE(c.title, ''), s.start_time, s.duration_minutes,
		s.location, s.notes, s.completed, s.created_at
	FROM study_sessions s
	LEFT JOIN courses c ON c.id = s.course_id`

const sessionOrder = ` ORDER BY s.start_time, s.created_at, s.id`

func scanSession(row pgx.Row) (*models.StudySession, error) {
	s := &models.StudySession{}
	err := row.Scan(&s.ID, &s.CourseID, &s.CourseTitle, &s.StartTime, &s.DurationMinutes,
		&s.Location, &s.Notes, &s.Completed, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudySessionRepo) listSessions(ctx context.Context, query string, args ...interface{}) ([]models.StudySession, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.StudySession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *StudySessionRepo) Create(ctx context.Context, s *models.StudySession) error {
	s.ID = uuid.New()

	query := `INSERT INTO study_sessions (id, course_id, start_time, duration_minutes, location, notes, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, (SELECT title FROM courses WHERE id = $2)`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.CourseID, s.StartTime, s.DurationMinutes, s.Location, s.Notes, s.Completed,
	).Scan(&s.CreatedAt, &s.CourseTitle)
}

func (r *StudySessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StudySession, error) {
	return scanSession(r.pool.QueryRow(ctx, sessionSelect+" WHERE s.id = $1", id))
}

func (r *StudySessionRepo) List(ctx context.Context) ([]models.StudySession, error) {
	return r.listSessions(ctx, sessionSelect+sessionOrder)
}

func (r *StudySessionRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.StudySession, error) {
	return r.listSessions(ctx, sessionSelect+" WHERE s.course_id = $1"+sessionOrder, courseID)
}

// Both bounds are inclusive: a day window ends at its last microsecond.
const (
	courseWindowWhere  = " WHERE s.course_id = $1 AND s.start_time >= $2 AND s.start_time <= $3"
	studentWindowWhere = " WHERE c.student_profile_id = $1 AND s.start_time >= $2 AND s.start_time <= $3"
)

// ListByCourseBetween returns the course's sessions starting in [from, to].
func (r *StudySessionRepo) ListByCourseBetween(ctx context.Context, courseID uuid.UUID, from, to time.Time) ([]models.StudySession, error) {
	return r.listSessions(ctx, sessionSelect+courseWindowWhere+sessionOrder, courseID, from, to)
}

// ListByStudentBetween returns sessions of all the student's courses starting in [from, to].
func (r *StudySessionRepo) ListByStudentBetween(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]models.StudySession, error) {
	return r.listSessions(ctx, sessionSelect+studentWindowWhere+sessionOrder, studentID, from, to)
}

func (r *StudySessionRepo) Update(ctx context.Context, s *models.StudySession) error {
	tag, err := r.pool.Exec(ctx, `UPDATE study_sessions
		SET start_time = $1, duration_minutes = $2, location = $3, notes = $4, completed = $5
		WHERE id = $6`,
		s.StartTime, s.DurationMinutes, s.Location, s.Notes, s.Completed, s.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *StudySessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM study_sessions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
