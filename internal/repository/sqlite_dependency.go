package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/db"
	"github.com/finestedm/procalc/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(db db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: db}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO dependencies (id, project_id, from_id, to_id, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.ProjectID, d.FromID, d.ToID, string(d.Kind), d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	query := `SELECT id, project_id, from_id, to_id, kind, created_at
		FROM dependencies WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var deps []domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		var kind, createdAt string
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.FromID, &d.ToID, &kind, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		d.Kind = domain.DependencyKind(kind)
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}

func (r *SQLiteDependencyRepo) Exists(ctx context.Context, fromID, toID string) (bool, error) {
	query := `SELECT COUNT(*) FROM dependencies WHERE from_id = ? AND to_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, fromID, toID).Scan(&count); err != nil {
		return false, fmt.Errorf("checking dependency existence: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM dependencies WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) DeleteByPair(ctx context.Context, fromID, toID string) error {
	query := `DELETE FROM dependencies WHERE from_id = ? AND to_id = ?`
	if _, err := r.db.ExecContext(ctx, query, fromID, toID); err != nil {
		return fmt.Errorf("deleting dependency pair: %w", err)
	}
	return nil
}
