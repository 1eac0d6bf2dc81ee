package sim

import "culturecore/pkg/domain"

// Advance runs the full stress pipeline over the requested interval. The
// interval is decomposed into fixed substeps; within each substep every
// mechanism proposes hazards, the ledger realizes deaths through one
// combined survival decay, then growth and clearance advance. Zero elapsed
// time is a documented no-op: zero time means zero physics.
func Advance(v *VesselState, env Env, hours float64) error {
	if hours < 0 {
		return domain.InvalidDurationError{Hours: hours}
	}
	if hours == 0 {
		return nil
	}
	for _, dt := range Substeps(hours) {
		hazards := make([]Hazard, 0, 9)
		for _, m := range Mechanisms() {
			hazards = append(hazards, m.step(v, env, dt)...)
		}
		if syn := synergyHazard(v, env); syn > 0 {
			hazards = append(hazards, Hazard{Cause: domain.DeathCauseSynergy, Rate: syn})
		}
		hazards = append(hazards, Hazard{Cause: domain.DeathCauseBackground, Rate: backgroundHazardRate})

		applyHazards(v, hazards, dt)
		stepGrowth(v, env, dt)
		stepClearance(v, env, dt)
		v.Clock += dt
	}
	return v.Deaths.CheckConservation(v.ID)
}
