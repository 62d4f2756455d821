package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studybuddy-backend/internal/models"
)

type StudentRepo struct {
	pool *pgxpool.Pool
}

func NewStudentRepo(pool *pgxpool.Pool) *StudentRepo {
	return &StudentRepo{pool: pool}
}

const studentColumns = `id, name, email, locale, settings, last_reminder_sent_at, created_at`

func scanStudent(row pgx.Row) (*models.StudentProfile, error) {
	s := &models.StudentProfile{}
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Locale, &s.Settings, &s.LastReminderSentAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudentRepo) Create(ctx context.Context, s *models.StudentProfile) error {
	s.ID = uuid.New()
	if s.Locale == "" {
		s.Locale = "en"
	}

	query := `INSERT INTO student_profiles (id, name, email, locale, settings)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, s.ID, s.Name, s.Email, s.Locale, s.Settings).Scan(&s.CreatedAt)
}

func (r *StudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	return scanStudent(r.pool.QueryRow(ctx, "SELECT "+studentColumns+" FROM student_profiles WHERE id = $1", id))
}

func (r *StudentRepo) GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error) {
	return scanStudent(r.pool.QueryRow(ctx, "SELECT "+studentColumns+" FROM student_profiles WHERE LOWER(email) = LOWER($1)", email))
}

func (r *StudentRepo) List(ctx context.Context) ([]*models.StudentProfile, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+studentColumns+" FROM student_profiles ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*models.StudentProfile{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *StudentRepo) Update(ctx context.Context, s *models.StudentProfile) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE student_profiles SET name = $1, email = $2, locale = $3, settings = $4 WHERE id = $5",
		s.Name, s.Email, s.Locale, s.Settings, s.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the student and, through the foreign keys, everything the student owns.
func (r *StudentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM student_profiles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *StudentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM student_profiles").Scan(&n)
	return n, err
}

func (r *StudentRepo) SetLastReminderSentAt(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, "UPDATE student_profiles SET last_reminder_sent_at = $1 WHERE id = $2", at, id)
	return err
}
