package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/db"
	"github.com/finestedm/procalc/internal/domain"
)

const supplierColumns = `id, project_id, name, delivery_date, created_at, updated_at`

// SQLiteSupplierRepo implements SupplierRepo using a SQLite database.
// Line items live in their own table and are loaded with the supplier.
type SQLiteSupplierRepo struct {
	db db.DBTX
}

// NewSQLiteSupplierRepo creates a new SQLiteSupplierRepo.
func NewSQLiteSupplierRepo(db db.DBTX) *SQLiteSupplierRepo {
	return &SQLiteSupplierRepo{db: db}
}

func (r *SQLiteSupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	query := `INSERT INTO suppliers (` + supplierColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.Name,
		s.DeliveryDate,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting supplier: %w", err)
	}
	return r.replaceLineItems(ctx, s.ID, s.LineItems)
}

func (r *SQLiteSupplierRepo) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = ?`
	s, err := r.scanSupplier(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLineItems(ctx, []*domain.Supplier{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSupplierRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*domain.Supplier
	for rows.Next() {
		s, err := r.scanSupplierRow(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suppliers: %w", err)
	}
	if err := r.loadLineItems(ctx, suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *SQLiteSupplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	query := `UPDATE suppliers SET name = ?, delivery_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, s.Name, s.DeliveryDate, s.UpdatedAt.Format(time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating supplier: %w", err)
	}
	return r.replaceLineItems(ctx, s.ID, s.LineItems)
}

func (r *SQLiteSupplierRepo) SetDeliveryDate(ctx context.Context, id string, date time.Time) error {
	query := `UPDATE suppliers SET delivery_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, date.Format(domain.DateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting supplier delivery date: %w", err)
	}
	return nil
}

func (r *SQLiteSupplierRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}
	return nil
}

func (r *SQLiteSupplierRepo) replaceLineItems(ctx context.Context, supplierID string, items []domain.LineItem) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM supplier_line_items WHERE supplier_id = ?`, supplierID); err != nil {
		return fmt.Errorf("clearing line items: %w", err)
	}
	for i, li := range items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO supplier_line_items (id, supplier_id, name, quantity, unit_minutes, excluded, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			li.ID, supplierID, li.Name, li.Quantity, li.UnitMinutes, boolToInt(li.Excluded), i)
		if err != nil {
			return fmt.Errorf("inserting line item: %w", err)
		}
	}
	return nil
}

func (r *SQLiteSupplierRepo) loadLineItems(ctx context.Context, suppliers []*domain.Supplier) error {
	byID := make(map[string]*domain.Supplier, len(suppliers))
	for _, s := range suppliers {
		byID[s.ID] = s
	}
	for _, s := range suppliers {
		rows, err := r.db.QueryContext(ctx,
			`SELECT id, name, quantity, unit_minutes, excluded FROM supplier_line_items
			WHERE supplier_id = ? ORDER BY position`, s.ID)
		if err != nil {
			return fmt.Errorf("listing line items: %w", err)
		}
		for rows.Next() {
			var li domain.LineItem
			var excluded int
			if err := rows.Scan(&li.ID, &li.Name, &li.Quantity, &li.UnitMinutes, &excluded); err != nil {
				rows.Close()
				return fmt.Errorf("scanning line item: %w", err)
			}
			li.Excluded = intToBool(excluded)
			byID[s.ID].LineItems = append(byID[s.ID].LineItems, li)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("iterating line items: %w", err)
		}
		rows.Close()
	}
	return nil
}

func (r *SQLiteSupplierRepo) scanSupplier(row *sql.Row) (*domain.Supplier, error) {
	s, err := r.scanSupplierRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("supplier not found")
	}
	return s, err
}

func (r *SQLiteSupplierRepo) scanSupplierRow(row rowScanner) (*domain.Supplier, error) {
	var s domain.Supplier
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &s.DeliveryDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &s, nil
}
