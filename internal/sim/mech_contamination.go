package sim

import "culturecore/pkg/domain"

// Contamination is the only stochastic mechanism: onset is drawn from the
// biology stream, after which progression is deterministic in dwell time.
const (
	// contaminationOnsetRate is the per-hour onset probability.
	contaminationOnsetRate = 2e-4

	contaminationLagHours = 8.0
	contaminationLogHours = 36.0

	contaminationLogHazard       = 0.010
	contaminationOvergrownHazard = 0.050

	// contaminantGlucoseDraw is the extra media drain (mM/h) once the
	// contaminant reaches log phase.
	contaminantGlucoseDraw = 0.30
)

func stepContamination(v *VesselState, env Env, dt float64) []Hazard {
	if !v.Contam.Contaminated {
		if !env.ContaminationEnabled || env.BiologyRNG == nil {
			return nil
		}
		if env.BiologyRNG.Float64() < contaminationOnsetRate*dt {
			v.Contam = Contamination{
				Contaminated: true,
				Type:         drawContaminationType(env),
				Phase:        domain.ContaminationPhaseLag,
				OnsetHours:   v.Clock,
			}
		}
		return nil
	}

	dwell := v.Clock - v.Contam.OnsetHours
	switch {
	case dwell < contaminationLagHours:
		v.Contam.Phase = domain.ContaminationPhaseLag
		return nil
	case dwell < contaminationLogHours:
		v.Contam.Phase = domain.ContaminationPhaseLog
	default:
		v.Contam.Phase = domain.ContaminationPhaseOvergrown
	}

	v.Nutrients.GlucoseMM = maxFloat(v.Nutrients.GlucoseMM-contaminantGlucoseDraw*dt, 0)

	rate := contaminationLogHazard
	if v.Contam.Phase == domain.ContaminationPhaseOvergrown {
		rate = contaminationOvergrownHazard
	}
	rate *= typeHazardScale(v.Contam.Type) * v.Intrinsic.HazardScale * env.Biology.Hazard
	return []Hazard{{Cause: domain.DeathCauseContaminant, Rate: rate}}
}

func drawContaminationType(env Env) domain.ContaminationType {
	switch env.BiologyRNG.IntN(3) {
	case 0:
		return domain.ContaminationBacterial
	case 1:
		return domain.ContaminationFungal
	}
	return domain.ContaminationMycoplasma
}

// typeHazardScale differentiates organism aggressiveness: bacteria overgrow
// fast, mycoplasma smoulders.
func typeHazardScale(t domain.ContaminationType) float64 {
	switch t {
	case domain.ContaminationBacterial:
		return 1.5
	case domain.ContaminationFungal:
		return 1.0
	case domain.ContaminationMycoplasma:
		return 0.4
	}
	return 1.0
}
