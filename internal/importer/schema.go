package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for project import.
type ImportSchema struct {
	Project      ProjectImport      `json:"project"`
	Defaults     *DefaultsImport    `json:"defaults,omitempty"`
	Suppliers    []SupplierImport   `json:"suppliers,omitempty"`
	Stages       []StageImport      `json:"stages,omitempty"`
	Tasks        []TaskImport       `json:"tasks,omitempty"`
	Transports   []TransportImport  `json:"transports,omitempty"`
	Dependencies []DependencyImport `json:"dependencies,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Name         string  `json:"name"`
	OrderDate    string  `json:"order_date"`
	ProtocolDate *string `json:"protocol_date,omitempty"`
}

// DefaultsImport defines project-wide defaults that cascade to stages.
type DefaultsImport struct {
	CalcMethod     string   `json:"calc_method,omitempty"`
	WorkDayHours   *float64 `json:"work_day_hours,omitempty"`
	InstallerCount *int     `json:"installer_count,omitempty"`
}

// SupplierImport defines a supplier in the import file. DeliveryDate
// accepts YYYY-MM-DD, "ASAP", or may be omitted.
type SupplierImport struct {
	Ref          string           `json:"ref"`
	Name         string           `json:"name"`
	DeliveryDate string           `json:"delivery_date,omitempty"`
	LineItems    []LineItemImport `json:"line_items,omitempty"`
}

// LineItemImport defines one ordered article on a supplier.
type LineItemImport struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitMinutes float64 `json:"unit_minutes"`
	Excluded    bool    `json:"excluded,omitempty"`
}

// StageImport defines an installation stage in the import file.
type StageImport struct {
	Ref               string         `json:"ref"`
	Name              string         `json:"name"`
	Seq               int            `json:"seq"`
	CalcMethod        string         `json:"calc_method,omitempty"`
	StartDate         *string        `json:"start_date,omitempty"`
	EndDate           *string        `json:"end_date,omitempty"`
	SupplierRefs      []string       `json:"supplier_refs,omitempty"`
	WorkDayHours      *float64       `json:"work_day_hours,omitempty"`
	InstallerCount    *int           `json:"installer_count,omitempty"`
	ManualLaborHours  float64        `json:"manual_labor_hours,omitempty"`
	PalletSpots       float64        `json:"pallet_spots,omitempty"`
	PalletSpotsPerDay float64        `json:"pallet_spots_per_day,omitempty"`
	Rentals           []RentalImport `json:"rentals,omitempty"`
	Excluded          bool           `json:"excluded,omitempty"`
}

// RentalImport defines one rental-equipment window on a stage.
type RentalImport struct {
	Resource   string `json:"resource"`
	OffsetDays int    `json:"offset_days"`
	Days       int    `json:"days"`
}

// TaskImport defines a custom task in the import file.
type TaskImport struct {
	Ref       string  `json:"ref"`
	Name      string  `json:"name"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// TransportImport defines a combined transport group in the import file.
type TransportImport struct {
	Ref          string   `json:"ref"`
	Name         string   `json:"name"`
	SupplierRefs []string `json:"supplier_refs"`
	Expanded     bool     `json:"expanded,omitempty"`
}

// DependencyImport defines a finish-to-start edge between two refs.
type DependencyImport struct {
	PredecessorRef string `json:"predecessor_ref"`
	SuccessorRef   string `json:"successor_ref"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
