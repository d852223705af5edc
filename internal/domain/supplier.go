package domain

import "time"

// DeliveryASAP is the sentinel a user enters instead of a concrete
// delivery date. Suppliers carrying it get an estimated window.
const DeliveryASAP = "ASAP"

// LineItem is one ordered article on a supplier's order.
type LineItem struct {
	ID          string
	Name        string
	Quantity    int
	UnitMinutes float64
	Excluded    bool
}

// Supplier is one equipment supplier on a project. DeliveryDate is kept
// raw ("" for absent, DeliveryASAP, or a YYYY-MM-DD string) because the
// sentinel and malformed input are both meaningful to the timeline
// builder, which falls back to an estimated window for either.
type Supplier struct {
	ID           string
	ProjectID    string
	Name         string
	DeliveryDate string
	LineItems    []LineItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasManualDelivery reports whether a concrete, parseable delivery date
// was supplied (the ASAP sentinel does not count).
func (s *Supplier) HasManualDelivery() bool {
	if s.DeliveryDate == "" || s.DeliveryDate == DeliveryASAP {
		return false
	}
	_, ok := ParseDate(s.DeliveryDate)
	return ok
}
