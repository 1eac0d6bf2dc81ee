package run

import (
	"sync"

	"culturecore/pkg/domain"
)

// MeasurementModifiers are the measurement-side gains applied to one assay
// call. They are a pure function of (t, modality) and never touch vessel
// state.
type MeasurementModifiers struct {
	// Gain composes modality drift with the assay lot bias.
	Gain float64
	// ChannelGain composes per-channel drift with per-channel lot bias.
	// Populated for imaging modalities only.
	ChannelGain map[domain.Channel]float64
	// NoiseInflation scales the configured assay CV; 1 means nominal noise.
	NoiseInflation float64
}

// RunContext aggregates the per-run latent causes: the batch profile biasing
// biology and the drift model biasing measurement. Both are computed on
// first access and immutable afterwards; Init forces initialization on the
// coordinating goroutine so workers can share the context without
// synchronization.
type RunContext struct {
	seed uint64

	profileOnce sync.Once
	profile     RunBatchProfile

	biologyOnce sync.Once
	biology     BiologyMultipliers

	driftOnce sync.Once
	drift     *DriftModel

	// nominal pins the profile to zero shifts, for ground-truth runs.
	nominal bool
}

// NewRunContext constructs a lazily-initialized run context for a run seed.
func NewRunContext(seed uint64) *RunContext {
	return &RunContext{seed: seed}
}

// NewNominalRunContext constructs a context with the zero-shift batch
// profile and no measurement drift: every multiplier is exactly 1.
func NewNominalRunContext(seed uint64) *RunContext {
	return &RunContext{seed: seed, nominal: true}
}

// Seed returns the run seed the context was built from.
func (rc *RunContext) Seed() uint64 { return rc.seed }

// Init forces all lazy initialization. The plate executor calls it once on
// the coordinating goroutine before spawning workers.
func (rc *RunContext) Init() {
	rc.Profile()
	rc.BiologyModifiers()
	rc.Drift()
}

// Profile returns the run batch profile, sampling it on first access.
func (rc *RunContext) Profile() RunBatchProfile {
	rc.profileOnce.Do(func() {
		if rc.nominal {
			rc.profile = NominalBatchProfile()
			return
		}
		rc.profile = SampleBatchProfile(rc.seed)
	})
	return rc.profile
}

// BiologyModifiers returns the composed biology multipliers, cached after
// the first call. The result never depends on elapsed measurement time or
// on how many times measurement has been queried.
func (rc *RunContext) BiologyModifiers() BiologyMultipliers {
	rc.biologyOnce.Do(func() {
		rc.biology = rc.Profile().ToMultipliers()
	})
	return rc.biology
}

// Drift returns the measurement drift model, built on first access.
func (rc *RunContext) Drift() *DriftModel {
	rc.driftOnce.Do(func() {
		if rc.nominal {
			rc.drift = NominalDriftModel()
			return
		}
		rc.drift = NewDriftModel(rc.seed)
	})
	return rc.drift
}

// MeasurementModifiers evaluates the measurement-side gain stack at elapsed
// time t for one modality. It is pure in t and deliberately not cached.
func (rc *RunContext) MeasurementModifiers(t float64, modality domain.Modality) MeasurementModifiers {
	d := rc.Drift()
	mods := MeasurementModifiers{
		Gain:           d.Gain(t, modality) * d.AssayLotBias(modality),
		NoiseInflation: 1,
	}
	if modality == domain.ModalityCellPainting {
		mods.ChannelGain = make(map[domain.Channel]float64, len(domain.PaintingChannels()))
		for _, c := range domain.PaintingChannels() {
			mods.ChannelGain[c] = d.ChannelGain(t, c) * d.ChannelLotBias(c)
		}
	}
	return mods
}
