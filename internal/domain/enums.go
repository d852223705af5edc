package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectOnHold   ProjectStatus = "on_hold"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

// CalcMethod selects how an installation stage's duration is derived.
type CalcMethod string

const (
	CalcTime    CalcMethod = "time"
	CalcPallets CalcMethod = "pallets"
	CalcBoth    CalcMethod = "both"
)

// ValidCalcMethods is the canonical set of accepted calculation method strings.
var ValidCalcMethods = map[string]bool{
	"time": true, "pallets": true, "both": true,
}

// RentalResource identifies the equipment type of a rental window.
type RentalResource string

const (
	RentalForklift    RentalResource = "forklift"
	RentalScissorLift RentalResource = "scissor_lift"
)

// DependencyKind is the constraint type of a dependency edge.
// Only finish-to-start is supported.
type DependencyKind string

const (
	FinishToStart DependencyKind = "finish_to_start"
)
