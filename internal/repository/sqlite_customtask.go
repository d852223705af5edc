package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/db"
	"github.com/finestedm/procalc/internal/domain"
)

const taskColumns = `id, project_id, name, start_date, end_date, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, ct *domain.CustomTask) error {
	query := `INSERT INTO custom_tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ct.ID,
		ct.ProjectID,
		ct.Name,
		nullableTimeToString(ct.StartDate, domain.DateLayout),
		nullableTimeToString(ct.EndDate, domain.DateLayout),
		ct.CreatedAt.Format(time.RFC3339),
		ct.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting custom task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.CustomTask, error) {
	query := `SELECT ` + taskColumns + ` FROM custom_tasks WHERE id = ?`
	ct, err := r.scanTaskRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("custom task not found")
	}
	return ct, err
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.CustomTask, error) {
	query := `SELECT ` + taskColumns + ` FROM custom_tasks WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing custom tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.CustomTask
	for rows.Next() {
		ct, err := r.scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, ct *domain.CustomTask) error {
	query := `UPDATE custom_tasks SET name = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		ct.Name,
		nullableTimeToString(ct.StartDate, domain.DateLayout),
		nullableTimeToString(ct.EndDate, domain.DateLayout),
		ct.UpdatedAt.Format(time.RFC3339),
		ct.ID,
	)
	if err != nil {
		return fmt.Errorf("updating custom task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) SetDates(ctx context.Context, id string, start, end time.Time) error {
	query := `UPDATE custom_tasks SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		start.Format(domain.DateLayout), end.Format(domain.DateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting custom task dates: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM custom_tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting custom task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) scanTaskRow(row rowScanner) (*domain.CustomTask, error) {
	var ct domain.CustomTask
	var startDate, endDate sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&ct.ID, &ct.ProjectID, &ct.Name, &startDate, &endDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	ct.StartDate = parseNullableTime(startDate, domain.DateLayout)
	ct.EndDate = parseNullableTime(endDate, domain.DateLayout)
	ct.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	ct.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &ct, nil
}
