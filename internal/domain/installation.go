package domain

import "time"

// RentalConfig describes one rental-equipment window attached to a
// stage, expressed relative to the stage's start in business days.
type RentalConfig struct {
	Resource   RentalResource
	OffsetDays int
	Days       int
}

// StageRentalSlots is the number of rental resources configurable per stage.
const StageRentalSlots = 2

// InstallationStage is one phase of the on-site installation. Stages
// without explicit dates are laid out sequentially by the timeline
// builder, in Seq order, after the last delivery.
type InstallationStage struct {
	ID        string
	ProjectID string
	Name      string
	Seq       int

	CalcMethod CalcMethod
	StartDate  *time.Time
	EndDate    *time.Time

	LinkedSupplierIDs []string

	// Duration inputs for the time-based calculation.
	WorkDayHours     float64
	InstallerCount   int
	ManualLaborHours float64

	// Duration inputs for the pallet-based calculation.
	PalletSpots       float64
	PalletSpotsPerDay float64

	Rentals  [StageRentalSlots]RentalConfig
	Excluded bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
