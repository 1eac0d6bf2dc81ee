package sim

import "culturecore/pkg/domain"

// Mitotic catastrophe: cells die in division when spindle poisons act or
// when they divide carrying heavy DNA damage. The hazard therefore scales
// with division activity, so arrested or starved cultures are protected.
const (
	mitoticMaxHazard = 0.10
	// mitoticDNAWeight couples DNA damage into catastrophe on top of direct
	// spindle-axis induction.
	mitoticDNAWeight = 0.6
)

func stepMitotic(v *VesselState, env Env, dt float64) []Hazard {
	induction := axisInduction(v, env, domain.AxisMitotic)
	division := divisionActivity(v, env)

	drive := induction + mitoticDNAWeight*v.Stress.DNADamage*v.Stress.DNADamage
	if drive > 1 {
		drive = 1
	}
	rate := mitoticMaxHazard * drive * division * v.Intrinsic.HazardScale * env.Biology.Hazard
	return []Hazard{{Cause: domain.DeathCauseMitotic, Rate: rate}}
}
