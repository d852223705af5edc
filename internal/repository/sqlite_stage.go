package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/db"
	"github.com/finestedm/procalc/internal/domain"
)

const stageColumns = `id, project_id, name, seq, calc_method, start_date, end_date,
		work_day_hours, installer_count, manual_labor_hours,
		pallet_spots, pallet_spots_per_day, excluded,
		rental1_resource, rental1_offset_days, rental1_days,
		rental2_resource, rental2_offset_days, rental2_days,
		created_at, updated_at`

// SQLiteStageRepo implements StageRepo using a SQLite database.
type SQLiteStageRepo struct {
	db db.DBTX
}

// NewSQLiteStageRepo creates a new SQLiteStageRepo.
func NewSQLiteStageRepo(db db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: db}
}

func (r *SQLiteStageRepo) Create(ctx context.Context, st *domain.InstallationStage) error {
	query := `INSERT INTO installation_stages (` + stageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		st.ID,
		st.ProjectID,
		st.Name,
		st.Seq,
		string(st.CalcMethod),
		nullableTimeToString(st.StartDate, domain.DateLayout),
		nullableTimeToString(st.EndDate, domain.DateLayout),
		st.WorkDayHours,
		st.InstallerCount,
		st.ManualLaborHours,
		st.PalletSpots,
		st.PalletSpotsPerDay,
		boolToInt(st.Excluded),
		string(st.Rentals[0].Resource),
		st.Rentals[0].OffsetDays,
		st.Rentals[0].Days,
		string(st.Rentals[1].Resource),
		st.Rentals[1].OffsetDays,
		st.Rentals[1].Days,
		st.CreatedAt.Format(time.RFC3339),
		st.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting stage: %w", err)
	}
	return r.replaceLinkedSuppliers(ctx, st.ID, st.LinkedSupplierIDs)
}

func (r *SQLiteStageRepo) GetByID(ctx context.Context, id string) (*domain.InstallationStage, error) {
	query := `SELECT ` + stageColumns + ` FROM installation_stages WHERE id = ?`
	st, err := r.scanStage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLinkedSuppliers(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (r *SQLiteStageRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.InstallationStage, error) {
	query := `SELECT ` + stageColumns + ` FROM installation_stages WHERE project_id = ? ORDER BY seq, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()

	var stages []*domain.InstallationStage
	for rows.Next() {
		st, err := r.scanStageRow(rows)
		if err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	for _, st := range stages {
		if err := r.loadLinkedSuppliers(ctx, st); err != nil {
			return nil, err
		}
	}
	return stages, nil
}

func (r *SQLiteStageRepo) Update(ctx context.Context, st *domain.InstallationStage) error {
	query := `UPDATE installation_stages SET name = ?, seq = ?, calc_method = ?,
		start_date = ?, end_date = ?, work_day_hours = ?, installer_count = ?,
		manual_labor_hours = ?, pallet_spots = ?, pallet_spots_per_day = ?, excluded = ?,
		rental1_resource = ?, rental1_offset_days = ?, rental1_days = ?,
		rental2_resource = ?, rental2_offset_days = ?, rental2_days = ?,
		updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		st.Name,
		st.Seq,
		string(st.CalcMethod),
		nullableTimeToString(st.StartDate, domain.DateLayout),
		nullableTimeToString(st.EndDate, domain.DateLayout),
		st.WorkDayHours,
		st.InstallerCount,
		st.ManualLaborHours,
		st.PalletSpots,
		st.PalletSpotsPerDay,
		boolToInt(st.Excluded),
		string(st.Rentals[0].Resource),
		st.Rentals[0].OffsetDays,
		st.Rentals[0].Days,
		string(st.Rentals[1].Resource),
		st.Rentals[1].OffsetDays,
		st.Rentals[1].Days,
		st.UpdatedAt.Format(time.RFC3339),
		st.ID,
	)
	if err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}
	return r.replaceLinkedSuppliers(ctx, st.ID, st.LinkedSupplierIDs)
}

func (r *SQLiteStageRepo) SetDates(ctx context.Context, id string, start, end time.Time) error {
	query := `UPDATE installation_stages SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		start.Format(domain.DateLayout), end.Format(domain.DateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting stage dates: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) SetRentalOffset(ctx context.Context, id string, slot, offsetDays int) error {
	var query string
	switch slot {
	case 0:
		query = `UPDATE installation_stages SET rental1_offset_days = ?, updated_at = ? WHERE id = ?`
	case 1:
		query = `UPDATE installation_stages SET rental2_offset_days = ?, updated_at = ? WHERE id = ?`
	default:
		return fmt.Errorf("rental slot %d out of range", slot)
	}
	if _, err := r.db.ExecContext(ctx, query, offsetDays, nowUTC(), id); err != nil {
		return fmt.Errorf("setting rental offset: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM installation_stages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting stage: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) replaceLinkedSuppliers(ctx context.Context, stageID string, supplierIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stage_suppliers WHERE stage_id = ?`, stageID); err != nil {
		return fmt.Errorf("clearing stage suppliers: %w", err)
	}
	for i, sid := range supplierIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO stage_suppliers (stage_id, supplier_id, position) VALUES (?, ?, ?)`,
			stageID, sid, i)
		if err != nil {
			return fmt.Errorf("inserting stage supplier link: %w", err)
		}
	}
	return nil
}

func (r *SQLiteStageRepo) loadLinkedSuppliers(ctx context.Context, st *domain.InstallationStage) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT supplier_id FROM stage_suppliers WHERE stage_id = ? ORDER BY position`, st.ID)
	if err != nil {
		return fmt.Errorf("listing stage suppliers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			return fmt.Errorf("scanning stage supplier link: %w", err)
		}
		st.LinkedSupplierIDs = append(st.LinkedSupplierIDs, sid)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating stage supplier links: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) scanStage(row *sql.Row) (*domain.InstallationStage, error) {
	st, err := r.scanStageRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("stage not found")
	}
	return st, err
}

func (r *SQLiteStageRepo) scanStageRow(row rowScanner) (*domain.InstallationStage, error) {
	var st domain.InstallationStage
	var calcMethod, createdAt, updatedAt string
	var startDate, endDate sql.NullString
	var excluded int
	var r1Res, r2Res string
	if err := row.Scan(
		&st.ID, &st.ProjectID, &st.Name, &st.Seq, &calcMethod, &startDate, &endDate,
		&st.WorkDayHours, &st.InstallerCount, &st.ManualLaborHours,
		&st.PalletSpots, &st.PalletSpotsPerDay, &excluded,
		&r1Res, &st.Rentals[0].OffsetDays, &st.Rentals[0].Days,
		&r2Res, &st.Rentals[1].OffsetDays, &st.Rentals[1].Days,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	st.CalcMethod = domain.CalcMethod(calcMethod)
	st.StartDate = parseNullableTime(startDate, domain.DateLayout)
	st.EndDate = parseNullableTime(endDate, domain.DateLayout)
	st.Excluded = intToBool(excluded)
	st.Rentals[0].Resource = domain.RentalResource(r1Res)
	st.Rentals[1].Resource = domain.RentalResource(r2Res)
	st.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	st.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &st, nil
}
