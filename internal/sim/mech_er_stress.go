package sim

import "culturecore/pkg/domain"

// ER stress kinetics. The slow ER damage memory both boosts re-induction
// (convex in the trace) and slows relaxation, so prior exposure history is
// mechanistically unavoidable.
const (
	erKOn       = 0.35
	erKOff      = 0.08
	erMemAccum  = 0.020
	erMemRepair = 0.005
	erMemBoost  = 3.0
	erMemSlow   = 2.0

	erTheta     = 0.75
	erWidth     = 0.06
	erMaxHazard = 0.06
)

func stepERStress(v *VesselState, env Env, dt float64) []Hazard {
	induction := axisInduction(v, env, domain.AxisERStress)
	mem := v.Stress.ERDamageMemory
	kOn := erKOn * v.Intrinsic.StressSensitivity * (1 + erMemBoost*mem*mem)
	kOff := erKOff / (1 + erMemSlow*mem)

	prev := v.Stress.ERStress
	v.Stress.ERStress = advanceBounded(prev, kOn*induction, kOff, dt)
	v.Stress.ERDamageMemory = advanceMemory(mem, prev, erMemAccum, erMemRepair, dt)

	rate := thresholdHazard(v, env, v.Stress.ERStress, erTheta, erWidth, erMaxHazard)
	return []Hazard{{Cause: domain.DeathCauseERStress, Rate: rate}}
}
