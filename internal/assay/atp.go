package assay

import (
	"math/rand/v2"

	"culturecore/internal/run"
	"culturecore/internal/sim"
	"culturecore/pkg/domain"
)

// ATPViability measures the luminescent viability readout. The latent
// ground truth is the vessel's stored viability; with ATPCV == 0 that value
// is returned exactly.
func ATPViability(v *sim.VesselState, rc *run.RunContext, rng *rand.Rand, cfg Config) domain.AssayResult {
	res := domain.AssayResult{
		Status:       domain.StatusOK,
		VesselID:     v.ID,
		CellLine:     v.Line.Name,
		Modality:     domain.ModalityATP,
		ElapsedHours: v.Clock,
		Regime:       Regime(v),
	}
	truth := ViabilitySignal(v)
	if cfg.ATPCV == 0 {
		res.Value = truth
		return res
	}
	mods := rc.MeasurementModifiers(v.Clock, domain.ModalityATP)
	res.Value = applyCV(truth*mods.Gain, cfg.ATPCV, mods.NoiseInflation, rng)
	return res
}

// CountCells measures the imaged cell count. With CountCV == 0 the stored
// count is returned exactly.
func CountCells(v *sim.VesselState, rc *run.RunContext, rng *rand.Rand, cfg Config) domain.AssayResult {
	res := domain.AssayResult{
		Status:       domain.StatusOK,
		VesselID:     v.ID,
		CellLine:     v.Line.Name,
		Modality:     domain.ModalityCellCount,
		ElapsedHours: v.Clock,
		Regime:       Regime(v),
	}
	truth := CountSignal(v)
	if cfg.CountCV == 0 {
		res.Value = truth
		return res
	}
	mods := rc.MeasurementModifiers(v.Clock, domain.ModalityCellCount)
	res.Value = applyCV(truth*mods.Gain, cfg.CountCV, mods.NoiseInflation, rng)
	return res
}
