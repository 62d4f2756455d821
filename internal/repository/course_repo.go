package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studybuddy-backend/internal/models"
)

type CourseRepo struct {
	pool *pgxpool.Pool
}

func NewCourseRepo(pool *pgxpool.Pool) *CourseRepo {
	return &CourseRepo{pool: pool}
}

const courseColumns = `id, student_profile_id, title, term, instructor, description, created_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.StudentProfileID, &c.Title, &c.Term, &c.Instructor, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepo) listCourses(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Create inserts the course and its preference in one transaction.
func (r *CourseRepo) Create(ctx context.Context, c *models.Course, pref *models.CoursePreference) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	c.ID = uuid.New()
	err = tx.QueryRow(ctx, `INSERT INTO courses (id, student_profile_id, title, term, instructor, description)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		c.ID, c.StudentProfileID, c.Title, c.Term, c.Instructor, c.Description,
	).Scan(&c.CreatedAt)
	if err != nil {
		return err
	}

	pref.ID = uuid.New()
	pref.CourseID = c.ID
	_, err = tx.Exec(ctx, `INSERT INTO course_preferences (id, course_id, preferred_daily_workload_minutes, notifications_enabled, priority_level)
		VALUES ($1, $2, $3, $4, $5)`,
		pref.ID, pref.CourseID, pref.PreferredDailyWorkloadMinutes, pref.NotificationsEnabled, pref.PriorityLevel,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *CourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = $1", id))
}

func (r *CourseRepo) List(ctx context.Context) ([]*models.Course, error) {
	return r.listCourses(ctx, "SELECT "+courseColumns+" FROM courses ORDER BY created_at, id")
}

func (r *CourseRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error) {
	return r.listCourses(ctx, "SELECT "+courseColumns+" FROM courses WHERE student_profile_id = $1 ORDER BY created_at, id", studentID)
}

func (r *CourseRepo) ListByStudentAndTerm(ctx context.Context, studentID uuid.UUID, term string) ([]*models.Course, error) {
	return r.listCourses(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE student_profile_id = $1 AND term = $2 ORDER BY created_at, id",
		studentID, term)
}

func (r *CourseRepo) Update(ctx context.Context, c *models.Course) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE courses SET title = $1, term = $2, instructor = $3, description = $4 WHERE id = $5",
		c.Title, c.Term, c.Instructor, c.Description, c.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CourseRepo) GetPreference(ctx context.Context, courseID uuid.UUID) (*models.CoursePreference, error) {
	p := &models.CoursePreference{}
	err := r.pool.QueryRow(ctx, `SELECT id, course_id, preferred_daily_workload_minutes, notifications_enabled, priority_level
		FROM course_preferences WHERE course_id = $1`, courseID,
	).Scan(&p.ID, &p.CourseID, &p.PreferredDailyWorkloadMinutes, &p.NotificationsEnabled, &p.PriorityLevel)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SavePreference inserts or replaces the preference of p.CourseID.
func (r *CourseRepo) SavePreference(ctx context.Context, p *models.CoursePreference) error {
	return r.pool.QueryRow(ctx, `INSERT INTO course_preferences (id, course_id, preferred_daily_workload_minutes, notifications_enabled, priority_level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (course_id) DO UPDATE SET
			preferred_daily_workload_minutes = EXCLUDED.preferred_daily_workload_minutes,
			notifications_enabled = EXCLUDED.notifications_enabled,
			priority_level = EXCLUDED.priority_level
		RETURNING id`,
		uuid.New(), p.CourseID, p.PreferredDailyWorkloadMinutes, p.NotificationsEnabled, p.PriorityLevel,
	).Scan(&p.ID)
}

func (r *CourseRepo) GetNote(ctx context.Context, courseID uuid.UUID) (*models.CourseNote, error) {
	n := &models.CourseNote{}
	err := r.pool.QueryRow(ctx, `SELECT id, course_id, summary, key_points, last_updated
		FROM course_notes WHERE course_id = $1`, courseID,
	).Scan(&n.ID, &n.CourseID, &n.Summary, &n.KeyPoints, &n.LastUpdated)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// SaveNote inserts or replaces the note of n.CourseID. The caller sets LastUpdated.
func (r *CourseRepo) SaveNote(ctx context.Context, n *models.CourseNote) error {
	return r.pool.QueryRow(ctx, `INSERT INTO course_notes (id, course_id, summary, key_points, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (course_id) DO UPDATE SET
			summary = EXCLUDED.summary,
			key_points = EXCLUDED.key_points,
			last_updated = EXCLUDED.last_updated
		RETURNING id`,
		uuid.New(), n.CourseID, n.Summary, n.KeyPoints, n.LastUpdated,
	).Scan(&n.ID)
}
