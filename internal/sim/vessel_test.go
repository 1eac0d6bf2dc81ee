package sim

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"culturecore/internal/run"
	"culturecore/pkg/domain"
)

func TestNewVesselDeterministicPerSeed(t *testing.T) {
	a := testVessel(t, 21)
	b := testVessel(t, 21)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same biology seed produced different vessels")
	}
	c := testVessel(t, 22)
	if a.Intrinsic == c.Intrinsic {
		t.Fatalf("different seeds produced identical intrinsic effects")
	}
}

func TestSubpopulationFractionsSumToOne(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		v := NewVessel("V1", domain.CellLine{Name: "generic", DoublingTimeHours: 24, StressToleranceDefault: 1}, 5000, 1, run.NewStream(seed, run.StreamBiology))
		sum := 0.0
		for _, sp := range v.Subpopulations {
			if sp.Fraction <= 0 {
				t.Fatalf("seed %d: non-positive fraction %v", seed, sp.Fraction)
			}
			sum += sp.Fraction
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("seed %d: fractions sum to %v", seed, sum)
		}
	}
}

func TestApplyTreatmentAccumulatesDose(t *testing.T) {
	v := testVessel(t, 1)
	if err := v.ApplyTreatment("tunicamycin", 0.5); err != nil {
		t.Fatalf("treat: %v", err)
	}
	if err := v.ApplyTreatment("Tunicamycin", 0.25); err != nil {
		t.Fatalf("treat again: %v", err)
	}
	dose, ok := v.Doses["tunicamycin"]
	if !ok {
		t.Fatalf("dose not recorded under canonical name: %v", v.Doses)
	}
	if dose.ConcentrationUM != 0.75 {
		t.Fatalf("dose %v, want accumulated 0.75", dose.ConcentrationUM)
	}
}

func TestApplyTreatmentUnknownCompound(t *testing.T) {
	v := testVessel(t, 1)
	err := v.ApplyTreatment("unobtainium", 1)
	var unknown domain.UnknownCompoundError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCompoundError, got %v", err)
	}
	if len(v.Doses) != 0 {
		t.Fatalf("failed treatment left residue: %v", v.Doses)
	}
}

func TestWashoutClearsAllDoses(t *testing.T) {
	v := testVessel(t, 1)
	for _, c := range []string{"tunicamycin", "rotenone"} {
		if err := v.ApplyTreatment(c, 1); err != nil {
			t.Fatalf("treat %s: %v", c, err)
		}
	}
	v.Washout()
	if len(v.Doses) != 0 {
		t.Fatalf("washout left doses behind: %v", v.Doses)
	}
}

func TestMixtureMultipliersPositive(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		v := testVessel(t, seed)
		if m := v.IC50Multiplier(); m <= 0 {
			t.Fatalf("seed %d: IC50 multiplier %v", seed, m)
		}
		if m := v.ThresholdMultiplier(); m <= 0 {
			t.Fatalf("seed %d: threshold multiplier %v", seed, m)
		}
	}
}

func TestDoseNamesSorted(t *testing.T) {
	v := testVessel(t, 1)
	for _, c := range []string{"rotenone", "cisplatin", "tunicamycin"} {
		if err := v.ApplyTreatment(c, 1); err != nil {
			t.Fatalf("treat %s: %v", c, err)
		}
	}
	names := v.doseNames()
	want := []string{"cisplatin", "rotenone", "tunicamycin"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("doseNames() = %v, want %v", names, want)
	}
}
