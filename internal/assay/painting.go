package assay

import (
	"math/rand/v2"

	"culturecore/internal/run"
	"culturecore/internal/sim"
	"culturecore/pkg/domain"
)

// CellPainting measures the five-channel morphology readout of one vessel:
// observed = signal(state) ⊙ gain(context, t, modality) + noise(assay
// stream, CV), with detector saturation/quantization/floor layered on top.
// With PaintingCV == 0 the raw latent signals are returned untouched.
func CellPainting(v *sim.VesselState, rc *run.RunContext, rng *rand.Rand, cfg Config, ov *domain.ProvocationOverrides) domain.AssayResult {
	res := domain.AssayResult{
		Status:       domain.StatusOK,
		VesselID:     v.ID,
		CellLine:     v.Line.Name,
		Modality:     domain.ModalityCellPainting,
		ElapsedHours: v.Clock,
		Channels:     make(map[domain.Channel]float64, len(paintingChannels)),
		Regime:       Regime(v),
	}

	if cfg.PaintingCV == 0 {
		for _, c := range paintingChannels {
			res.Channels[c] = ChannelSignal(v, c)
		}
		return res
	}

	mods := rc.MeasurementModifiers(v.Clock, domain.ModalityCellPainting)
	stain, exposure, blur := overrideFactors(ov)

	// One shared shock per well, correlated across channels.
	shocked, shock := drawOutlierShock(rng, cfg.OutlierRate)
	res.Detector.OutlierInjected = shocked

	for _, c := range paintingChannels {
		gain := mods.Gain * mods.ChannelGain[c] * stain * exposure * blur * shock
		observed := applyCV(ChannelSignal(v, c)*gain, cfg.PaintingCV, mods.NoiseInflation, rng)
		floor := drawNoiseFloor(rng, cfg.Detector)
		res.Detector.NoiseFloor = cfg.Detector.NoiseFloorMean
		res.Channels[c] = applyDetector(observed, c, floor, cfg.Detector, &res.Detector)
	}

	if cfg.SegmentationEnabled {
		seg := applyCV(v.CellCount, cfg.CountCV, mods.NoiseInflation, rng)
		res.SegmentedCellCount = &seg
	}
	if cfg.FocusMetricEnabled {
		focus := focusScore(ov, rng)
		res.FocusScore = &focus
	}
	return res
}

// DarkPainting reads a cell-free blank well: no signal, only detector
// floor. The values are nonzero and vary across seeds, but reproduce
// exactly for a fixed assay stream.
func DarkPainting(rng *rand.Rand, cfg Config) domain.AssayResult {
	res := domain.AssayResult{
		Status:   domain.StatusOK,
		Modality: domain.ModalityCellPainting,
		Channels: make(map[domain.Channel]float64, len(paintingChannels)),
		Regime:   domain.MorphologyRegime{StressWeight: 1},
	}
	for _, c := range paintingChannels {
		floor := drawNoiseFloor(rng, cfg.Detector)
		res.Detector.NoiseFloor = cfg.Detector.NoiseFloorMean
		res.Channels[c] = applyDetector(0, c, floor, cfg.Detector, &res.Detector)
	}
	return res
}

// overrideFactors converts per-well provocation overrides into measurement
// gain factors. Overrides never reach vessel state.
func overrideFactors(ov *domain.ProvocationOverrides) (stain, exposure, blur float64) {
	stain, exposure, blur = 1, 1, 1
	if ov == nil {
		return
	}
	if ov.StainScale > 0 {
		stain = ov.StainScale
	}
	if ov.ExposureMultiplier > 0 {
		exposure = ov.ExposureMultiplier
	}
	// Defocus spreads signal out of the detection band.
	blur = 1 / (1 + ov.FocusOffset*ov.FocusOffset)
	return
}

func focusScore(ov *domain.ProvocationOverrides, rng *rand.Rand) float64 {
	offset := 0.0
	if ov != nil {
		offset = ov.FocusOffset
	}
	score := 1/(1+offset*offset) + 0.02*rng.NormFloat64()
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
