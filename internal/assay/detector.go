package assay

import (
	"math"
	"math/rand/v2"

	"culturecore/pkg/domain"
)

// outlierShockSigma is the log-space magnitude of a cross-channel shock.
const outlierShockSigma = 0.5

// applyDetector layers detector physics over a raw channel value: additive
// noise floor, then saturation clamp, then LSB quantization. It mutates the
// shared DetectorMeta so the caller sees which effects fired.
func applyDetector(value float64, channel domain.Channel, floor float64, cfg DetectorConfig, meta *domain.DetectorMeta) float64 {
	value += floor
	if !cfg.Enabled {
		return value
	}
	if cfg.SaturationCeiling > 0 && value > cfg.SaturationCeiling {
		value = cfg.SaturationCeiling
		meta.SaturatedChannels = append(meta.SaturatedChannels, channel)
	}
	if cfg.QuantizationStep > 0 {
		value = math.Round(value/cfg.QuantizationStep) * cfg.QuantizationStep
		meta.Quantized = true
		meta.QuantizationStep = cfg.QuantizationStep
	}
	if value < 0 {
		value = 0
	}
	return value
}

// drawNoiseFloor samples the additive detector floor for one channel read.
// The floor varies across seeds but reproduces exactly for a given assay
// stream, which is why a DARK well is nonzero yet deterministic.
func drawNoiseFloor(rng *rand.Rand, cfg DetectorConfig) float64 {
	floor := cfg.NoiseFloorMean + cfg.NoiseFloorSD*rng.NormFloat64()
	// Truncated so a blank never quantizes down to literal zero.
	if min := 0.25 * cfg.NoiseFloorMean; floor < min {
		floor = min
	}
	return floor
}

// drawOutlierShock decides whether this well was hit by a shared physical
// shock and returns the multiplicative factor applied to every channel.
// Both draws are always consumed so the assay stream advances identically
// for shocked and clean wells.
func drawOutlierShock(rng *rand.Rand, rate float64) (bool, float64) {
	u := rng.Float64()
	z := rng.NormFloat64()
	if rate <= 0 || u >= rate {
		return false, 1
	}
	return true, math.Exp(z * outlierShockSigma)
}
