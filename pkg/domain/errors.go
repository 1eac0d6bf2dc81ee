package domain

import (
	"fmt"
	"strings"
)

// UnknownVesselError is returned by VM operations referencing a vessel id
// that was never seeded.
type UnknownVesselError struct {
	VesselID string
}

func (e UnknownVesselError) Error() string {
	return fmt.Sprintf("unknown vessel %q", e.VesselID)
}

// UnknownCompoundError is returned when no potency metadata can be resolved
// for a requested treatment compound.
type UnknownCompoundError struct {
	Compound string
}

func (e UnknownCompoundError) Error() string {
	return fmt.Sprintf("unknown compound %q: no potency metadata", e.Compound)
}

// InvalidDurationError is returned for negative elapsed time. An elapsed
// time of zero is a documented no-op, not an error.
type InvalidDurationError struct {
	Hours float64
}

func (e InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration %.4fh: elapsed time must be non-negative", e.Hours)
}

// ConservationError reports a violated death-accounting invariant: the sum
// of attributed per-cause deaths plus the unattributed remainder drifted
// from the total. It indicates a mechanism bug, never bad user input, and
// callers must fail loudly rather than clamp.
type ConservationError struct {
	VesselID     string
	Total        float64
	Attributed   float64
	Unattributed float64
}

func (e ConservationError) Error() string {
	return fmt.Sprintf("death conservation violated for vessel %q: total=%.9f attributed=%.9f unattributed=%.9f",
		e.VesselID, e.Total, e.Attributed, e.Unattributed)
}

// ValidationIssue describes one problem found while validating a plate design.
type ValidationIssue struct {
	Well    string `json:"well,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	var b strings.Builder
	if i.Well != "" {
		fmt.Fprintf(&b, "well %s: ", i.Well)
	}
	if i.Field != "" {
		fmt.Fprintf(&b, "%s: ", i.Field)
	}
	b.WriteString(i.Message)
	return b.String()
}

// ValidationError aggregates all issues found in a plate design. Validation
// is fail-fast at plate granularity: a non-empty issue list aborts the run
// before any well executes.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "plate validation failed: " + e.Issues[0].String()
	}
	return fmt.Sprintf("plate validation failed: %d issues (first: %s)", len(e.Issues), e.Issues[0].String())
}
