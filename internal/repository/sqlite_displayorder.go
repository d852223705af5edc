package repository

import (
	"context"
	"fmt"

	"github.com/finestedm/procalc/internal/db"
)

// SQLiteDisplayOrderRepo implements DisplayOrderRepo using a SQLite database.
type SQLiteDisplayOrderRepo struct {
	db db.DBTX
}

// NewSQLiteDisplayOrderRepo creates a new SQLiteDisplayOrderRepo.
func NewSQLiteDisplayOrderRepo(db db.DBTX) *SQLiteDisplayOrderRepo {
	return &SQLiteDisplayOrderRepo{db: db}
}

func (r *SQLiteDisplayOrderRepo) Get(ctx context.Context, projectID string) ([]string, error) {
	query := `SELECT item_id FROM display_order WHERE project_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading display order: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning display order row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating display order: %w", err)
	}
	return ids, nil
}

func (r *SQLiteDisplayOrderRepo) Save(ctx context.Context, projectID string, itemIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM display_order WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing display order: %w", err)
	}
	for i, id := range itemIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO display_order (project_id, item_id, position) VALUES (?, ?, ?)`,
			projectID, id, i)
		if err != nil {
			return fmt.Errorf("inserting display order row: %w", err)
		}
	}
	return nil
}
