package sim

import "culturecore/pkg/domain"

// DNA damage kinetics with a slow lesion memory: accumulated damage history
// boosts re-induction and slows repair, so a second genotoxic exposure hits
// harder than the first.
const (
	dnaKOn       = 0.30
	dnaKOff      = 0.05
	dnaMemAccum  = 0.030
	dnaMemRepair = 0.004
	dnaMemBoost  = 2.5
	dnaMemSlow   = 1.5

	dnaTheta     = 0.80
	dnaWidth     = 0.05
	dnaMaxHazard = 0.07
)

func stepDNADamage(v *VesselState, env Env, dt float64) []Hazard {
	induction := axisInduction(v, env, domain.AxisDNADamage)
	mem := v.Stress.DNADamageMemory
	kOn := dnaKOn * v.Intrinsic.StressSensitivity * (1 + dnaMemBoost*mem*mem)
	kOff := dnaKOff / (1 + dnaMemSlow*mem)

	prev := v.Stress.DNADamage
	v.Stress.DNADamage = advanceBounded(prev, kOn*induction, kOff, dt)
	v.Stress.DNADamageMemory = advanceMemory(mem, prev, dnaMemAccum, dnaMemRepair, dt)

	rate := thresholdHazard(v, env, v.Stress.DNADamage, dnaTheta, dnaWidth, dnaMaxHazard)
	return []Hazard{{Cause: domain.DeathCauseDNADamage, Rate: rate}}
}
