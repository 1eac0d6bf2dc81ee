package run

import (
	"math"
	"math/rand/v2"

	"culturecore/pkg/domain"
)

// Drift amplitude and period bounds. Gain stays within 1 ± maxDriftAmp for
// the lifetime of a run.
const (
	maxDriftAmp    = 0.05
	minDriftPeriod = 24.0
	maxDriftPeriod = 96.0

	// lotBiasSigma is the log-space spread of per-assay and per-channel
	// measurement lot bias.
	lotBiasSigma = 0.04
)

type driftParams struct {
	amp    float64
	period float64
	phase  float64
}

// gain evaluates the bounded sinusoid at elapsed time t (hours).
func (p driftParams) gain(t float64) float64 {
	return 1 + p.amp*math.Sin(2*math.Pi*(t/p.period+p.phase))
}

// DriftModel produces smooth, bounded, deterministic multiplicative gain
// drift per measurement modality and painting channel. All parameters are
// sampled once at construction; Gain is a pure function of t afterwards.
type DriftModel struct {
	modality map[domain.Modality]driftParams
	channel  map[domain.Channel]driftParams

	assayLotBias   map[domain.Modality]float64
	channelLotBias map[domain.Channel]float64
}

// NewDriftModel samples drift parameters and measurement-side lot biases
// from the run seed (offset so drift draws never alias biology draws).
func NewDriftModel(seed uint64) *DriftModel {
	rng := NewStream(seed+driftSeedOffset, 0)
	d := &DriftModel{
		modality:       make(map[domain.Modality]driftParams),
		channel:        make(map[domain.Channel]driftParams),
		assayLotBias:   make(map[domain.Modality]float64),
		channelLotBias: make(map[domain.Channel]float64),
	}
	for _, m := range []domain.Modality{domain.ModalityCellPainting, domain.ModalityATP, domain.ModalityCellCount} {
		d.modality[m] = sampleDriftParams(rng)
		d.assayLotBias[m] = math.Exp(rng.NormFloat64() * lotBiasSigma)
	}
	for _, c := range domain.PaintingChannels() {
		d.channel[c] = sampleDriftParams(rng)
		d.channelLotBias[c] = math.Exp(rng.NormFloat64() * lotBiasSigma)
	}
	return d
}

// NominalDriftModel returns a model with no drift and unit lot biases.
func NominalDriftModel() *DriftModel { return &DriftModel{} }

func sampleDriftParams(rng *rand.Rand) driftParams {
	return driftParams{
		amp:    rng.Float64() * maxDriftAmp,
		period: minDriftPeriod + rng.Float64()*(maxDriftPeriod-minDriftPeriod),
		phase:  rng.Float64(),
	}
}

// Gain returns the modality-level drift gain at elapsed time t.
func (d *DriftModel) Gain(t float64, modality domain.Modality) float64 {
	p, ok := d.modality[modality]
	if !ok {
		return 1
	}
	return p.gain(t)
}

// ChannelGain returns the per-channel drift gain at elapsed time t.
func (d *DriftModel) ChannelGain(t float64, channel domain.Channel) float64 {
	p, ok := d.channel[channel]
	if !ok {
		return 1
	}
	return p.gain(t)
}

// AssayLotBias returns the fixed measurement-side lot bias for a modality.
func (d *DriftModel) AssayLotBias(modality domain.Modality) float64 {
	if b, ok := d.assayLotBias[modality]; ok {
		return b
	}
	return 1
}

// ChannelLotBias returns the fixed measurement-side lot bias for a channel.
func (d *DriftModel) ChannelLotBias(channel domain.Channel) float64 {
	if b, ok := d.channelLotBias[channel]; ok {
		return b
	}
	return 1
}
