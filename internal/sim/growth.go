package sim

import "math"

// Growth, viability recovery and compound clearance, advanced once per
// substep after the hazard ledger.
const (
	// carryingCapacity caps the logistic growth of a well.
	carryingCapacity = 60000.0

	// viabilityRecoveryRate pulls viability back toward 1 when the culture
	// is fed and unstressed.
	viabilityRecoveryRate = 0.004
)

// divisionActivity is the fraction of nominal division rate the culture
// currently sustains: fed, viable and not confluent.
func divisionActivity(v *VesselState, env Env) float64 {
	nutrient := 1 - nutrientDepletion(v)
	confluence := clamp01(v.CellCount / carryingCapacity)
	return clamp01(nutrient * v.Viability * (1 - confluence))
}

func stepGrowth(v *VesselState, env Env, dt float64) {
	if v.CellCount <= 0 {
		return
	}
	if v.Line.DoublingTimeHours > 0 {
		r := math.Ln2 / v.Line.DoublingTimeHours * env.Biology.GrowthRate * divisionActivity(v, env)
		v.CellCount *= math.Exp(r * dt)
		if v.CellCount > carryingCapacity {
			v.CellCount = carryingCapacity
		}
	}
	// Slow recovery, gated by nutrition so starving cultures do not heal.
	recovery := viabilityRecoveryRate * (1 - nutrientDepletion(v)) * dt
	v.Viability = clamp01(v.Viability + recovery*(1-v.Viability))
}

// stepClearance decays every applied dose with its compound half-life
// scaled by the run's burden half-life multiplier.
func stepClearance(v *VesselState, env Env, dt float64) {
	for name, d := range v.Doses {
		if d.ConcentrationUM <= 0 || d.Compound.ClearanceHalfLifeHours <= 0 {
			continue
		}
		halfLife := d.Compound.ClearanceHalfLifeHours * env.Biology.BurdenHalfLife
		d.ConcentrationUM *= math.Exp2(-dt / halfLife)
		v.Doses[name] = d
	}
}
