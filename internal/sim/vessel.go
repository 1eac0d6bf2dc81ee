// Package sim implements the latent biology of the culturecore kernel:
// vessel state, the stress mechanism pipeline, the hazard ledger with its
// death-conservation invariant, and growth/clearance dynamics. This package
// deliberately knows nothing about measurement; observing a vessel must not
// be able to change it.
package sim

import (
	"math"
	"math/rand/v2"
	"sort"

	"culturecore/pkg/domain"
)

// Subpopulation is one component of the vessel's resistance mixture. Shift
// multipliers apply to compound IC50 and to mechanism death thresholds.
type Subpopulation struct {
	Fraction            float64 `json:"fraction"`
	IC50Shift           float64 `json:"ic50_shift"`
	DeathThresholdShift float64 `json:"death_threshold_shift"`
}

// StressState holds the bounded [0,1] stress scalars for every mechanism
// plus the slow memory traces. The field set is closed; mechanisms are
// enumerated exhaustively rather than keyed dynamically.
type StressState struct {
	ERStress             float64 `json:"er_stress"`
	MitoDysfunction      float64 `json:"mito_dysfunction"`
	TransportDysfunction float64 `json:"transport_dysfunction"`
	DNADamage            float64 `json:"dna_damage"`
	// DNADamageMemory and ERDamageMemory accumulate slow damage traces that
	// boost re-induction, making exposure history mechanistically sticky.
	DNADamageMemory float64 `json:"dna_damage_memory"`
	ERDamageMemory  float64 `json:"er_damage_memory"`
}

// Nutrients tracks media nutrient concentrations in mM.
type Nutrients struct {
	GlucoseMM   float64 `json:"glucose_mm"`
	GlutamineMM float64 `json:"glutamine_mm"`
}

// Dose is one applied compound with its potency metadata cached at
// treatment time so later updates never consult the registry.
type Dose struct {
	Compound        domain.Compound `json:"compound"`
	ConcentrationUM float64         `json:"concentration_um"`
}

// IntrinsicEffects are per-vessel random-effect multipliers sampled once at
// seeding from the biology stream and persistent for the vessel lifetime.
type IntrinsicEffects struct {
	StressSensitivity   float64 `json:"stress_sensitivity"`
	HazardScale         float64 `json:"hazard_scale"`
	IC50Shift           float64 `json:"ic50_shift"`
	DeathThresholdShift float64 `json:"death_threshold_shift"`
}

// Contamination tracks the stochastic contamination life cycle.
type Contamination struct {
	Contaminated bool                      `json:"contaminated"`
	Type         domain.ContaminationType  `json:"type,omitempty"`
	Phase        domain.ContaminationPhase `json:"phase,omitempty"`
	OnsetHours   float64                   `json:"onset_hours,omitempty"`
}

// VesselState is the complete latent biological state of one well. It is
// owned exclusively by one VM instance; it is created by seeding, mutated
// only by time advancement and treatment calls, and never destroyed (a dead
// vessel remains queryable for the full run).
type VesselState struct {
	ID   string          `json:"id"`
	Line domain.CellLine `json:"line"`

	CellCount float64 `json:"cell_count"`
	Viability float64 `json:"viability"`

	Subpopulations []Subpopulation  `json:"subpopulations"`
	Stress         StressState      `json:"stress"`
	Nutrients      Nutrients        `json:"nutrients"`
	Doses          map[string]Dose  `json:"doses"`
	Intrinsic      IntrinsicEffects `json:"intrinsic"`
	Deaths         DeathTally       `json:"deaths"`
	Contam         Contamination    `json:"contamination"`

	// Clock is hours since seeding (the last-update timestamp).
	Clock float64 `json:"clock"`
	// TransportHighSince records when transport dysfunction last rose above
	// the cross-talk threshold; nil while below it.
	TransportHighSince *float64 `json:"transport_high_since,omitempty"`
}

// Initial media concentrations and mixture defaults.
const (
	initialGlucoseMM   = 17.5
	initialGlutamineMM = 4.0

	intrinsicSigma = 0.10
)

// NewVessel seeds a vessel, sampling its intrinsic random effects and
// subpopulation mixture from the biology stream. Sampling order is fixed and
// part of the reproducibility contract.
func NewVessel(id string, line domain.CellLine, initialCount, initialViability float64, biology *rand.Rand) *VesselState {
	v := &VesselState{
		ID:        id,
		Line:      line,
		CellCount: math.Max(initialCount, 0),
		Viability: clamp01(initialViability),
		Nutrients: Nutrients{GlucoseMM: initialGlucoseMM, GlutamineMM: initialGlutamineMM},
		Doses:     make(map[string]Dose),
		Intrinsic: IntrinsicEffects{
			StressSensitivity:   logNormal(biology, intrinsicSigma),
			HazardScale:         logNormal(biology, intrinsicSigma),
			IC50Shift:           logNormal(biology, intrinsicSigma),
			DeathThresholdShift: logNormal(biology, intrinsicSigma),
		},
	}
	// Three-component resistance mixture: bulk, tolerant, sensitive. The
	// tolerant fraction is jittered per vessel; the bulk absorbs the slack.
	tolerant := 0.08 + 0.04*biology.Float64()
	sensitive := 0.03 + 0.03*biology.Float64()
	v.Subpopulations = []Subpopulation{
		{Fraction: 1 - tolerant - sensitive, IC50Shift: 1.0, DeathThresholdShift: 1.0},
		{Fraction: tolerant, IC50Shift: 2.2, DeathThresholdShift: 1.35},
		{Fraction: sensitive, IC50Shift: 0.55, DeathThresholdShift: 0.8},
	}
	return v
}

// ApplyTreatment merges a dose into the dose map, caching potency metadata.
// Repeat treatment with the same compound accumulates concentration.
func (v *VesselState) ApplyTreatment(compound string, doseUM float64) error {
	c, err := domain.LookupCompound(compound)
	if err != nil {
		return err
	}
	d := v.Doses[c.Name]
	d.Compound = c
	if doseUM > 0 {
		d.ConcentrationUM += doseUM
	}
	v.Doses[c.Name] = d
	return nil
}

// Washout zeroes all doses, modelling a media exchange. Accumulated stress
// and memory traces are untouched; only the exposure is removed.
func (v *VesselState) Washout() {
	for name := range v.Doses {
		delete(v.Doses, name)
	}
}

// IC50Multiplier composes the vessel-intrinsic shift with the mixture-
// weighted subpopulation shift.
func (v *VesselState) IC50Multiplier() float64 {
	return v.Intrinsic.IC50Shift * v.mixtureWeighted(func(s Subpopulation) float64 { return s.IC50Shift })
}

// ThresholdMultiplier composes the vessel-intrinsic death-threshold shift
// with the mixture-weighted subpopulation shift and the line tolerance.
func (v *VesselState) ThresholdMultiplier() float64 {
	return v.Intrinsic.DeathThresholdShift *
		v.Line.StressToleranceDefault *
		v.mixtureWeighted(func(s Subpopulation) float64 { return s.DeathThresholdShift })
}

func (v *VesselState) mixtureWeighted(f func(Subpopulation) float64) float64 {
	if len(v.Subpopulations) == 0 {
		return 1
	}
	total, weighted := 0.0, 0.0
	for _, s := range v.Subpopulations {
		total += s.Fraction
		weighted += s.Fraction * f(s)
	}
	if total <= 0 {
		return 1
	}
	return weighted / total
}

// doseNames returns the applied compound names in sorted order for
// deterministic iteration.
func (v *VesselState) doseNames() []string {
	names := make([]string, 0, len(v.Doses))
	for name := range v.Doses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func logNormal(rng *rand.Rand, sigma float64) float64 {
	return math.Exp(rng.NormFloat64() * sigma)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
