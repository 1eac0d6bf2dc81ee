package assay

import (
	"math"
	"reflect"
	"testing"

	"culturecore/internal/run"
	"culturecore/internal/sim"
	"culturecore/pkg/domain"
)

func paintingVessel(t *testing.T, seed uint64) *sim.VesselState {
	t.Helper()
	line, _ := domain.LookupCellLine("u2os")
	v := sim.NewVessel("W1", line, 12000, 1.0, run.NewStream(seed, run.StreamBiology))
	if err := v.ApplyTreatment("tunicamycin", 1.0); err != nil {
		t.Fatalf("treat: %v", err)
	}
	if err := sim.Advance(v, sim.Env{Biology: run.NominalBatchProfile().ToMultipliers()}, 24); err != nil {
		t.Fatalf("advance: %v", err)
	}
	return v
}

func testContext() *run.RunContext {
	rc := run.NewRunContext(77)
	rc.Init()
	return rc
}

func TestCellPaintingCoversFixedChannelSet(t *testing.T) {
	v := paintingVessel(t, 1)
	res := CellPainting(v, testContext(), run.NewStream(1, run.StreamAssay), DefaultConfig(), nil)
	if res.Status != domain.StatusOK {
		t.Fatalf("status %s", res.Status)
	}
	if len(res.Channels) != len(domain.PaintingChannels()) {
		t.Fatalf("expected %d channels, got %d", len(domain.PaintingChannels()), len(res.Channels))
	}
	for _, ch := range domain.PaintingChannels() {
		val, ok := res.Channels[ch]
		if !ok {
			t.Fatalf("channel %s missing", ch)
		}
		if val < 0 || math.IsNaN(val) {
			t.Fatalf("channel %s value %v", ch, val)
		}
	}
	if sum := res.Regime.StressWeight + res.Regime.DeathWeight; math.Abs(sum-1) > 1e-12 {
		t.Fatalf("regime weights sum to %v", sum)
	}
}

func TestCellPaintingGroundTruthBypassesGainAndDetector(t *testing.T) {
	v := paintingVessel(t, 2)
	res := CellPainting(v, testContext(), run.NewStream(2, run.StreamAssay), DefaultConfig().NoiseFree(), nil)
	for _, ch := range domain.PaintingChannels() {
		if res.Channels[ch] != ChannelSignal(v, ch) {
			t.Fatalf("channel %s: %v != latent signal %v", ch, res.Channels[ch], ChannelSignal(v, ch))
		}
	}
	if res.Detector.OutlierInjected || res.Detector.Quantized {
		t.Fatalf("ground-truth mode applied detector effects: %+v", res.Detector)
	}
}

func TestCellPaintingDeterministicPerStream(t *testing.T) {
	v1 := paintingVessel(t, 3)
	v2 := paintingVessel(t, 3)
	rc := testContext()
	a := CellPainting(v1, rc, run.NewStream(3, run.StreamAssay), DefaultConfig(), nil)
	b := CellPainting(v2, rc, run.NewStream(3, run.StreamAssay), DefaultConfig(), nil)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical streams produced different measurements")
	}
}

func TestMeasurementDoesNotTouchVesselState(t *testing.T) {
	v := paintingVessel(t, 4)
	before := *v
	rc := testContext()
	rng := run.NewStream(4, run.StreamAssay)
	_ = CellPainting(v, rc, rng, DefaultConfig(), nil)
	_ = ATPViability(v, rc, rng, DefaultConfig())
	_ = CountCells(v, rc, rng, DefaultConfig())
	if v.Stress != before.Stress || v.CellCount != before.CellCount || v.Viability != before.Viability || v.Clock != before.Clock {
		t.Fatalf("measurement mutated vessel state")
	}
}

func TestProvocationOverridesBiasGainOnly(t *testing.T) {
	vPlain := paintingVessel(t, 5)
	vProvoked := paintingVessel(t, 5)
	rc := testContext()
	ov := &domain.ProvocationOverrides{StainScale: 0.5, FocusOffset: 1.5}
	plain := CellPainting(vPlain, rc, run.NewStream(5, run.StreamAssay), DefaultConfig(), nil)
	provoked := CellPainting(vProvoked, rc, run.NewStream(5, run.StreamAssay), DefaultConfig(), ov)
	dimmer := 0
	for _, ch := range domain.PaintingChannels() {
		if provoked.Channels[ch] < plain.Channels[ch] {
			dimmer++
		}
	}
	if dimmer < len(domain.PaintingChannels())-1 {
		t.Fatalf("half stain plus defocus should dim nearly every channel, dimmed %d", dimmer)
	}
	if !reflect.DeepEqual(vPlain.Stress, vProvoked.Stress) {
		t.Fatalf("overrides reached vessel state")
	}
}

func TestDarkWellReadsNoiseFloorOnly(t *testing.T) {
	cfg := DefaultConfig()
	a := DarkPainting(run.NewStream(9, run.StreamAssay), cfg)
	b := DarkPainting(run.NewStream(9, run.StreamAssay), cfg)
	c := DarkPainting(run.NewStream(10, run.StreamAssay), cfg)
	different := false
	for _, ch := range domain.PaintingChannels() {
		if a.Channels[ch] <= 0 {
			t.Fatalf("dark channel %s reads %v, want small positive detector noise", ch, a.Channels[ch])
		}
		if a.Channels[ch] > 4*cfg.Detector.NoiseFloorMean {
			t.Fatalf("dark channel %s reads %v, far above the noise floor", ch, a.Channels[ch])
		}
		if a.Channels[ch] != b.Channels[ch] {
			t.Fatalf("dark reads not reproducible for a fixed stream")
		}
		if a.Channels[ch] != c.Channels[ch] {
			different = true
		}
	}
	if !different {
		t.Fatalf("dark reads identical across seeds")
	}
}

func TestOutlierRateNearTarget(t *testing.T) {
	cfg := DefaultConfig()
	rc := testContext()
	v := paintingVessel(t, 6)
	rng := run.NewStream(6, run.StreamAssay)
	hits := 0
	const wells = 5000
	for i := 0; i < wells; i++ {
		res := CellPainting(v, rc, rng, cfg, nil)
		if res.Detector.OutlierInjected {
			hits++
		}
	}
	rate := float64(hits) / wells
	if rate < 0.01 || rate > 0.035 {
		t.Fatalf("outlier rate %v, want about %v", rate, cfg.OutlierRate)
	}
}

func TestFocusScoreDropsWithOffset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FocusMetricEnabled = true
	rc := testContext()
	sharp := CellPainting(paintingVessel(t, 7), rc, run.NewStream(7, run.StreamAssay), cfg, nil)
	blurred := CellPainting(paintingVessel(t, 7), rc, run.NewStream(7, run.StreamAssay), cfg, &domain.ProvocationOverrides{FocusOffset: 2})
	if sharp.FocusScore == nil || blurred.FocusScore == nil {
		t.Fatalf("focus scores not populated")
	}
	if *blurred.FocusScore >= *sharp.FocusScore {
		t.Fatalf("focus score did not drop with defocus: %v vs %v", *blurred.FocusScore, *sharp.FocusScore)
	}
}
