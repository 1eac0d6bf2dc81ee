package sim

import "culturecore/pkg/domain"

// Nutrient depletion. Media concentrations decay with consumption scaled by
// live cell count; starvation hazard grows quadratically once glucose or
// glutamine fall under the low-water marks. Nutrient state is tracked as
// concentrations, not as a stress scalar.
const (
	// glutamineConsumptionRatio scales glutamine draw relative to glucose.
	glutamineConsumptionRatio = 0.25

	lowGlucoseMM   = 3.0
	lowGlutamineMM = 0.6

	nutrientMaxHazard = 0.08
)

func stepNutrient(v *VesselState, env Env, dt float64) []Hazard {
	millions := v.CellCount / 1e6
	draw := v.Line.BaselineGlucoseConsumption * millions * dt
	v.Nutrients.GlucoseMM = maxFloat(v.Nutrients.GlucoseMM-draw, 0)
	v.Nutrients.GlutamineMM = maxFloat(v.Nutrients.GlutamineMM-draw*glutamineConsumptionRatio, 0)

	depletion := nutrientDepletion(v)
	rate := nutrientMaxHazard * depletion * depletion * v.Intrinsic.HazardScale * env.Biology.Hazard
	return []Hazard{{Cause: domain.DeathCauseNutrient, Rate: rate}}
}

// nutrientDepletion returns the dominant starvation severity in [0,1].
func nutrientDepletion(v *VesselState) float64 {
	glu := clamp01(1 - v.Nutrients.GlucoseMM/lowGlucoseMM)
	gln := clamp01(1 - v.Nutrients.GlutamineMM/lowGlutamineMM)
	return maxFloat(glu, gln)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
