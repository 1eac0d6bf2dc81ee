package sim

import (
	"math"

	"culturecore/pkg/domain"
)

// conservationEpsilon bounds the tolerated float drift between total deaths
// and the attributed-plus-unattributed sum.
const conservationEpsilon = 1e-9

// Hazard is one mechanism's proposed instantaneous death rate in deaths per
// hour per live cell, tagged with its allow-listed cause.
type Hazard struct {
	Cause domain.DeathCause
	Rate  float64
}

// DeathTally is the conservation-checked cumulative death accounting for one
// vessel. Causes are fixed struct fields so the conservation invariant is
// enumerable by the type system rather than by a runtime allow-list; the
// float residue of proportional attribution goes to Unattributed.
type DeathTally struct {
	ERStress      float64 `json:"er_stress"`
	Mito          float64 `json:"mito_dysfunction"`
	Transport     float64 `json:"transport_dysfunction"`
	DNADamage     float64 `json:"dna_damage"`
	Nutrient      float64 `json:"nutrient_depletion"`
	Mitotic       float64 `json:"mitotic_catastrophe"`
	Contamination float64 `json:"contamination"`
	Synergy       float64 `json:"stress_synergy"`
	Background    float64 `json:"background"`

	Unattributed float64 `json:"unattributed"`
	Total        float64 `json:"total"`
}

func (t *DeathTally) counter(cause domain.DeathCause) *float64 {
	switch cause {
	case domain.DeathCauseERStress:
		return &t.ERStress
	case domain.DeathCauseMito:
		return &t.Mito
	case domain.DeathCauseTransport:
		return &t.Transport
	case domain.DeathCauseDNADamage:
		return &t.DNADamage
	case domain.DeathCauseNutrient:
		return &t.Nutrient
	case domain.DeathCauseMitotic:
		return &t.Mitotic
	case domain.DeathCauseContaminant:
		return &t.Contamination
	case domain.DeathCauseSynergy:
		return &t.Synergy
	case domain.DeathCauseBackground:
		return &t.Background
	}
	return nil
}

// AttributedSum returns the sum of all tracked per-cause counters.
func (t DeathTally) AttributedSum() float64 {
	return t.ERStress + t.Mito + t.Transport + t.DNADamage + t.Nutrient +
		t.Mitotic + t.Contamination + t.Synergy + t.Background
}

// ByCause flattens the tally into the public per-cause map.
func (t DeathTally) ByCause() map[domain.DeathCause]float64 {
	return map[domain.DeathCause]float64{
		domain.DeathCauseERStress:    t.ERStress,
		domain.DeathCauseMito:        t.Mito,
		domain.DeathCauseTransport:   t.Transport,
		domain.DeathCauseDNADamage:   t.DNADamage,
		domain.DeathCauseNutrient:    t.Nutrient,
		domain.DeathCauseMitotic:     t.Mitotic,
		domain.DeathCauseContaminant: t.Contamination,
		domain.DeathCauseSynergy:     t.Synergy,
		domain.DeathCauseBackground:  t.Background,
	}
}

// Summary converts the tally to the public death summary record.
func (t DeathTally) Summary() domain.DeathSummary {
	return domain.DeathSummary{
		Total:        t.Total,
		ByCause:      t.ByCause(),
		Unattributed: t.Unattributed,
	}
}

// CheckConservation validates the ledger invariant. A violation is an
// internal mechanism bug, never bad input, so callers must abort rather
// than clamp.
func (t DeathTally) CheckConservation(vesselID string) error {
	attributed := t.AttributedSum()
	if math.Abs(attributed+t.Unattributed-t.Total) > conservationEpsilon {
		return domain.ConservationError{
			VesselID:     vesselID,
			Total:        t.Total,
			Attributed:   attributed,
			Unattributed: t.Unattributed,
		}
	}
	return nil
}

// applyHazards converts the union of proposed hazards over one substep into
// realized deaths using a single combined survival decay, then attributes
// them proportionally to each mechanism's hazard share. A naive sum of
// independent exponentials would double-count when several mechanisms are
// lethal at once; the combined-decay-then-attribute scheme is the contract.
func applyHazards(v *VesselState, hazards []Hazard, dt float64) {
	if dt <= 0 || v.CellCount <= 0 {
		return
	}
	combined := 0.0
	for _, h := range hazards {
		if h.Rate > 0 {
			combined += h.Rate
		}
	}
	if combined <= 0 {
		return
	}
	survival := math.Exp(-combined * dt)
	deaths := v.CellCount * (1 - survival)
	if deaths <= 0 {
		return
	}

	attributed := 0.0
	for _, h := range hazards {
		if h.Rate <= 0 {
			continue
		}
		share := deaths * (h.Rate / combined)
		if c := v.Deaths.counter(h.Cause); c != nil {
			*c += share
			attributed += share
		}
	}
	// Float residue of the proportional split is tracked explicitly rather
	// than folded into any cause.
	v.Deaths.Unattributed += deaths - attributed
	v.Deaths.Total += deaths

	v.CellCount -= deaths
	if v.CellCount < 0 {
		v.CellCount = 0
	}
	// Viability tracks the survival pressure the population just saw.
	v.Viability = clamp01(v.Viability * survival)
}
