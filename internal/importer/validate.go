package importer

import (
	"fmt"

	"github.com/finestedm/procalc/internal/domain"
)

var validRentalResources = map[string]bool{
	string(domain.RentalForklift):    true,
	string(domain.RentalScissorLift): true,
}

// ValidateImportSchema checks the import schema for errors before
// conversion. Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)
	errs = append(errs, validateDefaults(schema.Defaults)...)

	refs := make(map[string]bool)
	supplierRefs := make(map[string]bool)

	for i, s := range schema.Suppliers {
		errs = append(errs, validateSupplier(i, &s, refs)...)
		if s.Ref != "" {
			supplierRefs[s.Ref] = true
		}
	}
	for i, st := range schema.Stages {
		errs = append(errs, validateStage(i, &st, refs, supplierRefs)...)
	}
	for i, ct := range schema.Tasks {
		errs = append(errs, validateTask(i, &ct, refs)...)
	}
	for i, tr := range schema.Transports {
		errs = append(errs, validateTransport(i, &tr, refs, supplierRefs)...)
	}
	for i, d := range schema.Dependencies {
		if !refs[d.PredecessorRef] {
			errs = append(errs, fmt.Errorf("dependencies[%d].predecessor_ref %q not found", i, d.PredecessorRef))
		}
		if !refs[d.SuccessorRef] {
			errs = append(errs, fmt.Errorf("dependencies[%d].successor_ref %q not found", i, d.SuccessorRef))
		}
		if d.PredecessorRef != "" && d.PredecessorRef == d.SuccessorRef {
			errs = append(errs, fmt.Errorf("dependencies[%d] links %q to itself", i, d.PredecessorRef))
		}
	}

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.OrderDate == "" {
		errs = append(errs, fmt.Errorf("project.order_date is required"))
	} else if _, ok := domain.ParseDate(p.OrderDate); !ok {
		errs = append(errs, fmt.Errorf("project.order_date: invalid date format %q (expected YYYY-MM-DD)", p.OrderDate))
	}
	if p.ProtocolDate != nil {
		if _, ok := domain.ParseDate(*p.ProtocolDate); !ok {
			errs = append(errs, fmt.Errorf("project.protocol_date: invalid date format %q (expected YYYY-MM-DD)", *p.ProtocolDate))
		}
	}
	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error
	if d.CalcMethod != "" && !domain.ValidCalcMethods[d.CalcMethod] {
		errs = append(errs, fmt.Errorf("defaults.calc_method: invalid value %q", d.CalcMethod))
	}
	if d.WorkDayHours != nil && *d.WorkDayHours <= 0 {
		errs = append(errs, fmt.Errorf("defaults.work_day_hours must be positive"))
	}
	if d.InstallerCount != nil && *d.InstallerCount <= 0 {
		errs = append(errs, fmt.Errorf("defaults.installer_count must be positive"))
	}
	return errs
}

func validateSupplier(i int, s *SupplierImport, refs map[string]bool) []error {
	var errs []error
	errs = append(errs, validateRef(fmt.Sprintf("suppliers[%d]", i), s.Ref, refs)...)
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("suppliers[%d].name is required", i))
	}
	if s.DeliveryDate != "" && s.DeliveryDate != domain.DeliveryASAP {
		if _, ok := domain.ParseDate(s.DeliveryDate); !ok {
			errs = append(errs, fmt.Errorf("suppliers[%d].delivery_date: %q is not YYYY-MM-DD or %s", i, s.DeliveryDate, domain.DeliveryASAP))
		}
	}
	for j, li := range s.LineItems {
		if li.Name == "" {
			errs = append(errs, fmt.Errorf("suppliers[%d].line_items[%d].name is required", i, j))
		}
		if li.Quantity < 0 {
			errs = append(errs, fmt.Errorf("suppliers[%d].line_items[%d].quantity must not be negative", i, j))
		}
		if li.UnitMinutes < 0 {
			errs = append(errs, fmt.Errorf("suppliers[%d].line_items[%d].unit_minutes must not be negative", i, j))
		}
	}
	return errs
}

func validateStage(i int, st *StageImport, refs, supplierRefs map[string]bool) []error {
	var errs []error
	errs = append(errs, validateRef(fmt.Sprintf("stages[%d]", i), st.Ref, refs)...)
	if st.Name == "" {
		errs = append(errs, fmt.Errorf("stages[%d].name is required", i))
	}
	if st.CalcMethod != "" && !domain.ValidCalcMethods[st.CalcMethod] {
		errs = append(errs, fmt.Errorf("stages[%d].calc_method: invalid value %q", i, st.CalcMethod))
	}
	errs = append(errs, validateDatePair(fmt.Sprintf("stages[%d]", i), st.StartDate, st.EndDate)...)
	for _, ref := range st.SupplierRefs {
		if !supplierRefs[ref] {
			errs = append(errs, fmt.Errorf("stages[%d]: supplier ref %q not found", i, ref))
		}
	}
	if len(st.Rentals) > domain.StageRentalSlots {
		errs = append(errs, fmt.Errorf("stages[%d]: at most %d rentals allowed", i, domain.StageRentalSlots))
	}
	for j, r := range st.Rentals {
		if !validRentalResources[r.Resource] {
			errs = append(errs, fmt.Errorf("stages[%d].rentals[%d].resource: invalid value %q", i, j, r.Resource))
		}
		if r.OffsetDays < 0 || r.Days < 0 {
			errs = append(errs, fmt.Errorf("stages[%d].rentals[%d]: offset_days and days must not be negative", i, j))
		}
	}
	return errs
}

func validateTask(i int, ct *TaskImport, refs map[string]bool) []error {
	var errs []error
	errs = append(errs, validateRef(fmt.Sprintf("tasks[%d]", i), ct.Ref, refs)...)
	if ct.Name == "" {
		errs = append(errs, fmt.Errorf("tasks[%d].name is required", i))
	}
	errs = append(errs, validateDatePair(fmt.Sprintf("tasks[%d]", i), ct.StartDate, ct.EndDate)...)
	return errs
}

func validateTransport(i int, tr *TransportImport, refs, supplierRefs map[string]bool) []error {
	var errs []error
	errs = append(errs, validateRef(fmt.Sprintf("transports[%d]", i), tr.Ref, refs)...)
	if tr.Name == "" {
		errs = append(errs, fmt.Errorf("transports[%d].name is required", i))
	}
	if len(tr.SupplierRefs) < 2 {
		errs = append(errs, fmt.Errorf("transports[%d]: at least two supplier refs required", i))
	}
	for _, ref := range tr.SupplierRefs {
		if !supplierRefs[ref] {
			errs = append(errs, fmt.Errorf("transports[%d]: supplier ref %q not found", i, ref))
		}
	}
	return errs
}

func validateRef(prefix, ref string, refs map[string]bool) []error {
	if ref == "" {
		return []error{fmt.Errorf("%s.ref is required", prefix)}
	}
	if refs[ref] {
		return []error{fmt.Errorf("%s.ref %q is duplicated", prefix, ref)}
	}
	refs[ref] = true
	return nil
}

func validateDatePair(prefix string, start, end *string) []error {
	var errs []error
	var s, e string
	if start != nil {
		if _, ok := domain.ParseDate(*start); !ok {
			errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *start))
		} else {
			s = *start
		}
	}
	if end != nil {
		if _, ok := domain.ParseDate(*end); !ok {
			errs = append(errs, fmt.Errorf("%s.end_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *end))
		} else {
			e = *end
		}
	}
	if s != "" && e != "" && e < s {
		errs = append(errs, fmt.Errorf("%s: end_date %q precedes start_date %q", prefix, e, s))
	}
	return errs
}
