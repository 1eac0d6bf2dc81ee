// Package assay converts latent vessel state into observed measurements:
// signal functions, measurement-side gain, CV noise and detector-level
// effects. Every function here treats vessel state as read-only; the
// package must never mutate biology.
package assay

import "culturecore/pkg/domain"

// DetectorConfig describes the virtual detector applied on top of the
// signal-and-noise model.
type DetectorConfig struct {
	// Enabled gates saturation and quantization. The additive noise floor
	// is a physical property of the detector and always applies.
	Enabled bool
	// SaturationCeiling clamps each channel at this level (AU).
	SaturationCeiling float64
	// QuantizationStep is the LSB the readout rounds to.
	QuantizationStep float64
	// NoiseFloorMean and NoiseFloorSD describe the additive detector floor;
	// a blank well reads close to NoiseFloorMean, never literal zero.
	NoiseFloorMean float64
	NoiseFloorSD   float64
}

// Config carries per-assay noise levels and feature gates. A coefficient of
// variation of exactly 0 switches that assay into ground-truth mode: the
// raw latent value is returned with no gain, noise or detector effects.
type Config struct {
	PaintingCV float64
	ATPCV      float64
	CountCV    float64

	// OutlierRate is the per-well probability of a cross-channel physical
	// shock (defocus, bad illumination). Shocks are correlated across
	// channels, not independent per-channel noise.
	OutlierRate float64

	Detector DetectorConfig

	// SegmentationEnabled and FocusMetricEnabled gate the optional result
	// fields.
	SegmentationEnabled bool
	FocusMetricEnabled  bool
}

// DefaultConfig returns the production detector and noise profile.
func DefaultConfig() Config {
	return Config{
		PaintingCV:  0.08,
		ATPCV:       0.05,
		CountCV:     0.04,
		OutlierRate: 0.02,
		Detector: DetectorConfig{
			Enabled:           true,
			SaturationCeiling: 5000,
			QuantizationStep:  0.5,
			NoiseFloorMean:    2.0,
			NoiseFloorSD:      0.6,
		},
		SegmentationEnabled: true,
		FocusMetricEnabled:  true,
	}
}

// NoiseFree returns a copy of the config with every CV, the outlier rate
// and the detector disabled, for ground-truth runs.
func (c Config) NoiseFree() Config {
	c.PaintingCV = 0
	c.ATPCV = 0
	c.CountCV = 0
	c.OutlierRate = 0
	c.Detector.Enabled = false
	return c
}

// paintingChannels aliases the fixed public channel set.
var paintingChannels = domain.PaintingChannels()
