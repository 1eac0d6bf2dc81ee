package sim

import "culturecore/pkg/domain"

// Mitochondrial dysfunction kinetics. Besides direct compound induction, a
// sustained transport failure feeds a secondary induction term (cross-talk).
const (
	mitoKOn  = 0.30
	mitoKOff = 0.09

	// mitoCrossTalkRate is the secondary induction added while transport
	// cross-talk is active.
	mitoCrossTalkRate = 0.10

	mitoTheta     = 0.78
	mitoWidth     = 0.06
	mitoMaxHazard = 0.07
)

func stepMito(v *VesselState, env Env, dt float64) []Hazard {
	induction := axisInduction(v, env, domain.AxisMitoDysfunction)
	a := mitoKOn * v.Intrinsic.StressSensitivity * induction
	if transportCrossTalkActive(v) {
		a += mitoCrossTalkRate * v.Intrinsic.StressSensitivity
	}

	v.Stress.MitoDysfunction = advanceBounded(v.Stress.MitoDysfunction, a, mitoKOff, dt)

	rate := thresholdHazard(v, env, v.Stress.MitoDysfunction, mitoTheta, mitoWidth, mitoMaxHazard)
	return []Hazard{{Cause: domain.DeathCauseMito, Rate: rate}}
}
