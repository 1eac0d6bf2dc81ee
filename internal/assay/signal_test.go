package assay

import (
	"math"
	"testing"

	"culturecore/internal/run"
	"culturecore/internal/sim"
	"culturecore/pkg/domain"
)

func TestRegimeWeightsAlwaysSumToOne(t *testing.T) {
	line, _ := domain.LookupCellLine("a549")
	for _, viability := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		v := sim.NewVessel("V1", line, 1000, viability, run.NewStream(1, run.StreamBiology))
		r := Regime(v)
		if sum := r.StressWeight + r.DeathWeight; math.Abs(sum-1) > 1e-15 {
			t.Fatalf("viability %v: weights sum to %v, want 1", viability, sum)
		}
		if r.DeathWeight < 0 || r.DeathWeight > 1 {
			t.Fatalf("viability %v: death weight %v out of range", viability, r.DeathWeight)
		}
	}
}

func TestDeathRegimeGrowsAsViabilityFalls(t *testing.T) {
	line, _ := domain.LookupCellLine("a549")
	healthy := sim.NewVessel("V1", line, 1000, 0.95, run.NewStream(1, run.StreamBiology))
	dying := sim.NewVessel("V2", line, 1000, 0.2, run.NewStream(1, run.StreamBiology))
	if Regime(dying).DeathWeight <= Regime(healthy).DeathWeight {
		t.Fatalf("death weight did not grow as viability fell")
	}
}

func TestChannelSignalsRespondToTheirAxes(t *testing.T) {
	line, _ := domain.LookupCellLine("a549")
	base := sim.NewVessel("V1", line, 1000, 1, run.NewStream(1, run.StreamBiology))
	stressed := sim.NewVessel("V2", line, 1000, 1, run.NewStream(1, run.StreamBiology))
	stressed.Stress.ERStress = 0.5
	stressed.Stress.MitoDysfunction = 0.5
	stressed.Stress.TransportDysfunction = 0.5

	if ChannelSignal(stressed, domain.ChannelER) <= ChannelSignal(base, domain.ChannelER) {
		t.Fatalf("ER channel should brighten under ER stress")
	}
	if ChannelSignal(stressed, domain.ChannelMito) >= ChannelSignal(base, domain.ChannelMito) {
		t.Fatalf("mito channel should dim on depolarization")
	}
	if ChannelSignal(stressed, domain.ChannelAGP) <= ChannelSignal(base, domain.ChannelAGP) {
		t.Fatalf("AGP channel should brighten under transport failure")
	}
	if ChannelSignal(stressed, domain.ChannelRNA) >= ChannelSignal(base, domain.ChannelRNA) {
		t.Fatalf("RNA channel should dim under translational shutdown")
	}
}

func TestChannelSignalNonNegative(t *testing.T) {
	line, _ := domain.LookupCellLine("hek293")
	v := sim.NewVessel("V1", line, 1000, 0, run.NewStream(1, run.StreamBiology))
	v.Stress = sim.StressState{ERStress: 1, MitoDysfunction: 1, TransportDysfunction: 1, DNADamage: 1}
	for _, ch := range domain.PaintingChannels() {
		if s := ChannelSignal(v, ch); s < 0 || math.IsNaN(s) {
			t.Fatalf("channel %s signal %v under extreme stress", ch, s)
		}
	}
}
