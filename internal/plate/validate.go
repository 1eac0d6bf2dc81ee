package plate

import (
	"regexp"

	"culturecore/pkg/domain"
)

// Well ids follow the microplate convention: row letter(s) plus a two-digit
// column, e.g. A01, P24, AF48.
var wellIDPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{2}$`)

// Validate checks a plate design and returns a ValidationError aggregating
// every issue found. A non-nil return aborts the run before any well runs.
func Validate(design domain.PlateDesign) error {
	var issues []domain.ValidationIssue
	if design.PlateID == "" {
		issues = append(issues, domain.ValidationIssue{Field: "plate_id", Message: "required"})
	}
	if len(design.Wells) == 0 {
		issues = append(issues, domain.ValidationIssue{Field: "wells", Message: "at least one well required"})
	}
	seen := map[string]bool{}
	for _, spec := range design.Wells {
		issues = append(issues, validateWell(design, spec, seen)...)
	}
	if len(issues) > 0 {
		return domain.ValidationError{Issues: issues}
	}
	return nil
}

func validateWell(design domain.PlateDesign, spec domain.WellSpec, seen map[string]bool) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	if !wellIDPattern.MatchString(spec.Well) {
		issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "well", Message: "malformed well id"})
	} else if seen[spec.Well] {
		issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "well", Message: "duplicate well id"})
	}
	seen[spec.Well] = true

	mode := spec.Mode
	if mode == "" {
		mode = domain.WellModeSample
	}
	switch mode {
	case domain.WellModeSample, domain.WellModeBackground, domain.WellModeDark:
	default:
		issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "mode", Message: "unknown well mode"})
	}
	if mode == domain.WellModeDark && len(spec.Treatments) > 0 {
		issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "treatments", Message: "dark wells are cell-free and take no treatments"})
	}

	if spec.InitialCount < 0 {
		issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "initial_count", Message: "must be non-negative"})
	}
	if mode != domain.WellModeDark && spec.InitialCount == 0 && design.SeedingDensity <= 0 {
		issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "initial_count", Message: "no well count and no plate seeding density"})
	}
	if spec.InitialViability < 0 || spec.InitialViability > 1 {
		issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "initial_viability", Message: "must be within [0,1]"})
	}

	hours := spec.ElapsedHours
	if hours == 0 {
		hours = design.ElapsedHours
	}
	if hours < 0 {
		issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "elapsed_hours", Message: "must be non-negative"})
	}
	for _, t := range spec.Treatments {
		if _, err := domain.LookupCompound(t.Compound); err != nil {
			issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "compound", Message: err.Error()})
		}
		if t.DoseUM < 0 {
			issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "dose_um", Message: "must be non-negative"})
		}
		if t.AtHours < 0 || t.AtHours > hours {
			issues = append(issues, domain.ValidationIssue{Well: spec.Well, Field: "at_hours", Message: "treatment scheduled outside the incubation window"})
		}
	}
	return issues
}
