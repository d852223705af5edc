package domain

import "time"

type Project struct {
	ID        string
	Name      string
	Status    ProjectStatus
	OrderDate time.Time

	// ProtocolDate is the planned handover date. It only widens the
	// visible time range of the chart; it never drives scheduling.
	ProtocolDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayID returns a short identifier for table output.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
