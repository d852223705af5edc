package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/db"
	"github.com/finestedm/procalc/internal/domain"
)

const transportColumns = `id, project_id, name, expanded, created_at, updated_at`

// SQLiteTransportRepo implements TransportRepo using a SQLite database.
type SQLiteTransportRepo struct {
	db db.DBTX
}

// NewSQLiteTransportRepo creates a new SQLiteTransportRepo.
func NewSQLiteTransportRepo(db db.DBTX) *SQLiteTransportRepo {
	return &SQLiteTransportRepo{db: db}
}

func (r *SQLiteTransportRepo) Create(ctx context.Context, tr *domain.TransportGroup) error {
	query := `INSERT INTO transport_groups (` + transportColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		tr.ID,
		tr.ProjectID,
		tr.Name,
		boolToInt(tr.Expanded),
		tr.CreatedAt.Format(time.RFC3339),
		tr.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting transport group: %w", err)
	}
	return r.replaceLinkedSuppliers(ctx, tr.ID, tr.LinkedSupplierIDs)
}

func (r *SQLiteTransportRepo) GetByID(ctx context.Context, id string) (*domain.TransportGroup, error) {
	query := `SELECT ` + transportColumns + ` FROM transport_groups WHERE id = ?`
	tr, err := r.scanTransportRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transport group not found")
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadLinkedSuppliers(ctx, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (r *SQLiteTransportRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.TransportGroup, error) {
	query := `SELECT ` + transportColumns + ` FROM transport_groups WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing transport groups: %w", err)
	}
	defer rows.Close()

	var transports []*domain.TransportGroup
	for rows.Next() {
		tr, err := r.scanTransportRow(rows)
		if err != nil {
			return nil, err
		}
		transports = append(transports, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transport groups: %w", err)
	}
	for _, tr := range transports {
		if err := r.loadLinkedSuppliers(ctx, tr); err != nil {
			return nil, err
		}
	}
	return transports, nil
}

func (r *SQLiteTransportRepo) Update(ctx context.Context, tr *domain.TransportGroup) error {
	query := `UPDATE transport_groups SET name = ?, expanded = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		tr.Name, boolToInt(tr.Expanded), tr.UpdatedAt.Format(time.RFC3339), tr.ID)
	if err != nil {
		return fmt.Errorf("updating transport group: %w", err)
	}
	return r.replaceLinkedSuppliers(ctx, tr.ID, tr.LinkedSupplierIDs)
}

func (r *SQLiteTransportRepo) SetExpanded(ctx context.Context, id string, expanded bool) error {
	query := `UPDATE transport_groups SET expanded = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, boolToInt(expanded), nowUTC(), id); err != nil {
		return fmt.Errorf("setting transport group expanded: %w", err)
	}
	return nil
}

func (r *SQLiteTransportRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transport_groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting transport group: %w", err)
	}
	return nil
}

func (r *SQLiteTransportRepo) replaceLinkedSuppliers(ctx context.Context, transportID string, supplierIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transport_suppliers WHERE transport_id = ?`, transportID); err != nil {
		return fmt.Errorf("clearing transport suppliers: %w", err)
	}
	for i, sid := range supplierIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO transport_suppliers (transport_id, supplier_id, position) VALUES (?, ?, ?)`,
			transportID, sid, i)
		if err != nil {
			return fmt.Errorf("inserting transport supplier link: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTransportRepo) loadLinkedSuppliers(ctx context.Context, tr *domain.TransportGroup) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT supplier_id FROM transport_suppliers WHERE transport_id = ? ORDER BY position`, tr.ID)
	if err != nil {
		return fmt.Errorf("listing transport suppliers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			return fmt.Errorf("scanning transport supplier link: %w", err)
		}
		tr.LinkedSupplierIDs = append(tr.LinkedSupplierIDs, sid)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating transport supplier links: %w", err)
	}
	return nil
}

func (r *SQLiteTransportRepo) scanTransportRow(row rowScanner) (*domain.TransportGroup, error) {
	var tr domain.TransportGroup
	var expanded int
	var createdAt, updatedAt string
	if err := row.Scan(&tr.ID, &tr.ProjectID, &tr.Name, &expanded, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	tr.Expanded = intToBool(expanded)
	tr.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	tr.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &tr, nil
}
