package domain

import "strings"

// CellLine holds the per-line biology constants used at seeding time.
type CellLine struct {
	Name string `json:"name"`
	// DoublingTimeHours is the unconstrained population doubling time.
	DoublingTimeHours float64 `json:"doubling_time_hours"`
	// ATPPerCellFmol is the baseline ATP content per healthy cell, the
	// latent signal read by the viability assay.
	ATPPerCellFmol float64 `json:"atp_per_cell_fmol"`
	// BaselineGlucoseConsumption is glucose drawn per million cells per hour (mM).
	BaselineGlucoseConsumption float64 `json:"baseline_glucose_consumption"`
	// StressToleranceDefault scales death thresholds for the line.
	StressToleranceDefault float64 `json:"stress_tolerance_default"`
}

var cellLineRegistry = map[string]CellLine{
	"a549": {
		Name:                       "A549",
		DoublingTimeHours:          22,
		ATPPerCellFmol:             3.2,
		BaselineGlucoseConsumption: 0.42,
		StressToleranceDefault:     1.0,
	},
	"hepg2": {
		Name:                       "HepG2",
		DoublingTimeHours:          34,
		ATPPerCellFmol:             4.1,
		BaselineGlucoseConsumption: 0.55,
		StressToleranceDefault:     1.15,
	},
	"u2os": {
		Name:                       "U2OS",
		DoublingTimeHours:          26,
		ATPPerCellFmol:             2.8,
		BaselineGlucoseConsumption: 0.38,
		StressToleranceDefault:     0.9,
	},
	"hek293": {
		Name:                       "HEK293",
		DoublingTimeHours:          24,
		ATPPerCellFmol:             2.5,
		BaselineGlucoseConsumption: 0.47,
		StressToleranceDefault:     0.85,
	},
}

// LookupCellLine resolves a cell line by case-insensitive name. Unknown lines
// fall back to a generic profile so seeding never fails on exotic lines; the
// returned bool reports whether the line was found in the registry.
func LookupCellLine(name string) (CellLine, bool) {
	line, ok := cellLineRegistry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return CellLine{
			Name:                       name,
			DoublingTimeHours:          26,
			ATPPerCellFmol:             3.0,
			BaselineGlucoseConsumption: 0.45,
			StressToleranceDefault:     1.0,
		}, false
	}
	return line, true
}
