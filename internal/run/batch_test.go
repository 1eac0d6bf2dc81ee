package run

import "testing"

func TestSampleBatchProfileDeterministic(t *testing.T) {
	a := SampleBatchProfile(42)
	b := SampleBatchProfile(42)
	if a != b {
		t.Fatalf("same seed produced different profiles: %+v vs %+v", a, b)
	}
	if a == SampleBatchProfile(43) {
		t.Fatalf("different seeds produced identical profiles")
	}
}

func TestBatchMultipliersBounded(t *testing.T) {
	for seed := uint64(0); seed < 1000; seed++ {
		m := SampleBatchProfile(seed).ToMultipliers()
		for name, v := range map[string]float64{
			"ec50":             m.EC50,
			"growth_rate":      m.GrowthRate,
			"hazard":           m.Hazard,
			"burden_half_life": m.BurdenHalfLife,
		} {
			if v < MultiplierFloor || v > MultiplierCeiling {
				t.Fatalf("seed %d: %s multiplier %v outside [%v,%v]", seed, name, v, MultiplierFloor, MultiplierCeiling)
			}
		}
	}
}

func TestNominalProfileYieldsUnitMultipliers(t *testing.T) {
	m := NominalBatchProfile().ToMultipliers()
	if m.EC50 != 1 || m.GrowthRate != 1 || m.Hazard != 1 || m.BurdenHalfLife != 1 {
		t.Fatalf("nominal profile must compose to exactly 1, got %+v", m)
	}
}

func TestComposeLogShiftsSumsInLogSpace(t *testing.T) {
	// exp(ln 2 + ln 0.5) == 1 exactly up to float rounding.
	got := composeLogShifts(0.6931471805599453, -0.6931471805599453)
	if diff := got - 1; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("expected unit multiplier, got %v", got)
	}
	if composeLogShifts(10) != MultiplierCeiling {
		t.Fatalf("large shifts must clamp to ceiling")
	}
	if composeLogShifts(-10) != MultiplierFloor {
		t.Fatalf("large negative shifts must clamp to floor")
	}
}
