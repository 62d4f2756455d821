package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"studybuddy-backend/internal/models"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

const taskSelect = `SELECT t.id, t.course_id, t.title, t.description, t.task_type, t.due_date,
		t.estimated_effort_hours, t.completed, t.created_at
	FROM tasks t`

const taskOrder = ` ORDER BY t.created_at, t.id`

func dateArg(d *models.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time, Valid: true}
}

func scanTask(row pgx.Row) (*models.Task, error) {
	t := &models.Task{}
	var due pgtype.Date
	err := row.Scan(&t.ID, &t.CourseID, &t.Title, &t.Description, &t.TaskType, &due,
		&t.EstimatedEffortHours, &t.Completed, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		d := models.DateOf(due.Time)
		t.DueDate = &d
	}
	return t, nil
}

func (r *TaskRepo) listTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Create(ctx context.Context, t *models.Task) error {
	t.ID = uuid.New()

	query := `INSERT INTO tasks (id, course_id, title, description, task_type, due_date, estimated_effort_hours, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		t.ID, t.CourseID, t.Title, t.Description, t.TaskType, dateArg(t.DueDate), t.EstimatedEffortHours, t.Completed,
	).Scan(&t.CreatedAt)
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return scanTask(r.pool.QueryRow(ctx, taskSelect+" WHERE t.id = $1", id))
}

func (r *TaskRepo) List(ctx context.Context) ([]models.Task, error) {
	return r.listTasks(ctx, taskSelect+taskOrder)
}

func (r *TaskRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Task, error) {
	return r.listTasks(ctx, taskSelect+" WHERE t.course_id = $1"+taskOrder, courseID)
}

func (r *TaskRepo) ListByCourseAndCompleted(ctx context.Context, courseID uuid.UUID, completed bool) ([]models.Task, error) {
	return r.listTasks(ctx, taskSelect+" WHERE t.course_id = $1 AND t.completed = $2"+taskOrder, courseID, completed)
}

func (r *TaskRepo) ListPending(ctx context.Context) ([]models.Task, error) {
	return r.listTasks(ctx, taskSelect+" WHERE t.completed = FALSE"+taskOrder)
}

func (r *TaskRepo) ListPendingByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Task, error) {
	return r.listTasks(ctx, taskSelect+`
		JOIN courses c ON c.id = t.course_id
		WHERE c.student_profile_id = $1 AND t.completed = FALSE`+taskOrder, studentID)
}

// ListOverdue returns incomplete tasks due on or before date.
func (r *TaskRepo) ListOverdue(ctx context.Context, date models.Date) ([]models.Task, error) {
	return r.listTasks(ctx, taskSelect+" WHERE t.due_date <= $1 AND t.completed = FALSE ORDER BY t.due_date, t.created_at, t.id", dateArg(&date))
}

func (r *TaskRepo) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM tasks WHERE course_id = $1", courseID).Scan(&n)
	return n, err
}

func (r *TaskRepo) CountCompletedByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM tasks WHERE course_id = $1 AND completed = TRUE", courseID).Scan(&n)
	return n, err
}

func (r *TaskRepo) Update(ctx context.Context, t *models.Task) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tasks
		SET title = $1, description = $2, task_type = $3, due_date = $4, estimated_effort_hours = $5, completed = $6
		WHERE id = $7`,
		t.Title, t.Description, t.TaskType, dateArg(t.DueDate), t.EstimatedEffortHours, t.Completed, t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListOverdueReminders returns the overdue incomplete tasks of courses whose preference allows
// notifications. Courses without a stored preference count as enabled.
func (r *TaskRepo) ListOverdueReminders(ctx context.Context, date models.Date) ([]models.OverdueReminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sp.id, sp.name, sp.email, sp.last_reminder_sent_at, t.id, t.title, c.title, t.due_date
		FROM tasks t
		JOIN courses c ON c.id = t.course_id
		JOIN student_profiles sp ON sp.id = c.student_profile_id
		LEFT JOIN course_preferences cp ON cp.course_id = c.id
		WHERE t.completed = FALSE
		  AND t.due_date <= $1
		  AND COALESCE(cp.notifications_enabled, TRUE)
		ORDER BY sp.id, t.due_date, t.created_at`, dateArg(&date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.OverdueReminder
	for rows.Next() {
		var rem models.OverdueReminder
		var due pgtype.Date
		if err := rows.Scan(&rem.StudentID, &rem.StudentName, &rem.StudentEmail, &rem.LastReminderSentAt,
			&rem.TaskID, &rem.TaskTitle, &rem.CourseTitle, &due); err != nil {
			return nil, err
		}
		rem.DueDate = models.DateOf(due.Time)
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}
