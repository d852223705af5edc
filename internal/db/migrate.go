package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'active'
		              CHECK(status IN ('active','on_hold','done','archived')),
		order_date    TEXT NOT NULL,
		protocol_date TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS suppliers (
		id            TEXT PRIMARY KEY,
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		delivery_date TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS supplier_line_items (
		id           TEXT PRIMARY KEY,
		supplier_id  TEXT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
		name         TEXT NOT NULL DEFAULT '',
		quantity     INTEGER NOT NULL DEFAULT 0,
		unit_minutes REAL NOT NULL DEFAULT 0,
		excluded     INTEGER NOT NULL DEFAULT 0,
		position     INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS installation_stages (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name               TEXT NOT NULL,
		seq                INTEGER NOT NULL DEFAULT 0,
		calc_method        TEXT NOT NULL DEFAULT 'time'
		                   CHECK(calc_method IN ('time','pallets','both')),
		start_date         TEXT,
		end_date           TEXT,
		work_day_hours     REAL NOT NULL DEFAULT 8,
		installer_count    INTEGER NOT NULL DEFAULT 1,
		manual_labor_hours REAL NOT NULL DEFAULT 0,
		excluded           INTEGER NOT NULL DEFAULT 0,
		rental1_resource    TEXT NOT NULL DEFAULT 'forklift',
		rental1_offset_days INTEGER NOT NULL DEFAULT 0,
		rental1_days        INTEGER NOT NULL DEFAULT 0,
		rental2_resource    TEXT NOT NULL DEFAULT 'scissor_lift',
		rental2_offset_days INTEGER NOT NULL DEFAULT 0,
		rental2_days        INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	// The pallet calculation method arrived after the initial schema.
	`ALTER TABLE installation_stages ADD COLUMN pallet_spots REAL NOT NULL DEFAULT 0`,
	`ALTER TABLE installation_stages ADD COLUMN pallet_spots_per_day REAL NOT NULL DEFAULT 0`,

	`CREATE TABLE IF NOT EXISTS stage_suppliers (
		stage_id    TEXT NOT NULL REFERENCES installation_stages(id) ON DELETE CASCADE,
		supplier_id TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (stage_id, supplier_id)
	)`,

	`CREATE TABLE IF NOT EXISTS custom_tasks (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		start_date TEXT,
		end_date   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS transport_groups (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Expand/collapse display state came later.
	`ALTER TABLE transport_groups ADD COLUMN expanded INTEGER NOT NULL DEFAULT 0`,

	`CREATE TABLE IF NOT EXISTS transport_suppliers (
		transport_id TEXT NOT NULL REFERENCES transport_groups(id) ON DELETE CASCADE,
		supplier_id  TEXT NOT NULL,
		position     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (transport_id, supplier_id)
	)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		from_id    TEXT NOT NULL,
		to_id      TEXT NOT NULL,
		kind       TEXT NOT NULL DEFAULT 'finish_to_start',
		created_at TEXT NOT NULL,
		UNIQUE (from_id, to_id)
	)`,

	`CREATE TABLE IF NOT EXISTS display_order (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		item_id    TEXT NOT NULL,
		position   INTEGER NOT NULL,
		PRIMARY KEY (project_id, item_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_suppliers_project ON suppliers(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_line_items_supplier ON supplier_line_items(supplier_id)`,
	`CREATE INDEX IF NOT EXISTS idx_stages_project ON installation_stages(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON custom_tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transports_project ON transport_groups(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_project ON dependencies(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_from ON dependencies(from_id)`,
}
