package run

import "math"

// Batch-effect multipliers are clamped to this closed interval after
// composition. The bounds are part of the testable contract.
const (
	MultiplierFloor   = 0.5
	MultiplierCeiling = 2.0
)

// batchShiftSigma is the log-space spread of each sampled latent shift.
const batchShiftSigma = 0.12

// MediaLotEffect captures lot-to-lot media variability: nutrient quality
// shifts growth, serum composition shifts apparent compound potency.
type MediaLotEffect struct {
	GrowthLogShift float64 `json:"growth_log_shift"`
	EC50LogShift   float64 `json:"ec50_log_shift"`
}

// IncubatorEffect captures incubator micro-environment variability
// (temperature, CO2 regulation) shifting baseline hazard and growth.
type IncubatorEffect struct {
	HazardLogShift float64 `json:"hazard_log_shift"`
	GrowthLogShift float64 `json:"growth_log_shift"`
}

// CellStateEffect captures the passage/confluence state of the seeded stock,
// shifting potency response and compound clearance.
type CellStateEffect struct {
	EC50LogShift   float64 `json:"ec50_log_shift"`
	BurdenLogShift float64 `json:"burden_log_shift"`
}

// RunBatchProfile is the immutable per-run composition of latent causes.
// All shifts live in log space so composition is a commutative sum.
type RunBatchProfile struct {
	MediaLot  MediaLotEffect  `json:"media_lot"`
	Incubator IncubatorEffect `json:"incubator"`
	CellState CellStateEffect `json:"cell_state"`
}

// BiologyMultipliers are the four biology-side multipliers derived from a
// profile. They modify EC50, growth rate, hazard scale and compound burden
// half-life, and nothing on the measurement side.
type BiologyMultipliers struct {
	EC50           float64 `json:"ec50"`
	GrowthRate     float64 `json:"growth_rate"`
	Hazard         float64 `json:"hazard"`
	BurdenHalfLife float64 `json:"burden_half_life"`
}

// SampleBatchProfile draws a profile from the run seed. The profile seed is
// offset from the run seed so biology-stream draws and profile draws can
// never alias.
func SampleBatchProfile(seed uint64) RunBatchProfile {
	rng := NewStream(seed+batchProfileSeedOffset, 0)
	return RunBatchProfile{
		MediaLot: MediaLotEffect{
			GrowthLogShift: rng.NormFloat64() * batchShiftSigma,
			EC50LogShift:   rng.NormFloat64() * batchShiftSigma,
		},
		Incubator: IncubatorEffect{
			HazardLogShift: rng.NormFloat64() * batchShiftSigma,
			GrowthLogShift: rng.NormFloat64() * batchShiftSigma,
		},
		CellState: CellStateEffect{
			EC50LogShift:   rng.NormFloat64() * batchShiftSigma,
			BurdenLogShift: rng.NormFloat64() * batchShiftSigma,
		},
	}
}

// NominalBatchProfile returns the zero-shift profile whose multipliers are
// all exactly 1.
func NominalBatchProfile() RunBatchProfile {
	return RunBatchProfile{}
}

// ToMultipliers composes every effect multiplicatively: shifts targeting the
// same multiplier are summed in log space and exponentiated, then clamped to
// [MultiplierFloor, MultiplierCeiling]. Summation makes composition order
// irrelevant, and the clamp keeps every multiplier strictly positive.
func (p RunBatchProfile) ToMultipliers() BiologyMultipliers {
	return BiologyMultipliers{
		EC50:           composeLogShifts(p.MediaLot.EC50LogShift, p.CellState.EC50LogShift),
		GrowthRate:     composeLogShifts(p.MediaLot.GrowthLogShift, p.Incubator.GrowthLogShift),
		Hazard:         composeLogShifts(p.Incubator.HazardLogShift),
		BurdenHalfLife: composeLogShifts(p.CellState.BurdenLogShift),
	}
}

func composeLogShifts(shifts ...float64) float64 {
	sum := 0.0
	for _, s := range shifts {
		sum += s
	}
	return clampMultiplier(math.Exp(sum))
}

func clampMultiplier(m float64) float64 {
	if m < MultiplierFloor {
		return MultiplierFloor
	}
	if m > MultiplierCeiling {
		return MultiplierCeiling
	}
	return m
}
