package sim

import (
	"math"
	"math/rand/v2"

	"culturecore/internal/run"
	"culturecore/pkg/domain"
)

// Mechanism tags one update unit of the stress pipeline. The set is closed
// and dispatched by a static switch; there is no open-ended registration.
type Mechanism uint8

// Pipeline mechanisms in execution order. Transport runs before mito so
// sustained transport dysfunction can induce secondary mitochondrial
// dysfunction within the same substep ordering every time.
const (
	MechanismERStress Mechanism = iota
	MechanismTransport
	MechanismMito
	MechanismDNADamage
	MechanismNutrient
	MechanismMitotic
	MechanismContamination
)

// Mechanisms returns the fixed pipeline order.
func Mechanisms() []Mechanism {
	return []Mechanism{
		MechanismERStress,
		MechanismTransport,
		MechanismMito,
		MechanismDNADamage,
		MechanismNutrient,
		MechanismMitotic,
		MechanismContamination,
	}
}

// Env carries the per-substep inputs shared by all mechanisms.
type Env struct {
	// Biology carries the run batch multipliers (EC50, growth, hazard,
	// burden half-life). Measurement-side modifiers never appear here.
	Biology run.BiologyMultipliers
	// BiologyRNG is consumed only by the contamination mechanism; every
	// other mechanism is deterministic given state.
	BiologyRNG *rand.Rand
	// ContaminationEnabled gates stochastic contamination onset.
	ContaminationEnabled bool
}

// substepHours is the fixed internal integration step. Mechanisms advance in
// whole substeps plus a final fractional remainder regardless of the
// caller's requested interval, so results do not depend on how callers chop
// up time.
const substepHours = 1.0

// Substeps decomposes a requested interval into the fixed-size steps the
// pipeline integrates. Exported for the dt-independence tests.
func Substeps(hours float64) []float64 {
	if hours <= 0 {
		return nil
	}
	var steps []float64
	remaining := hours
	for remaining > substepHours {
		steps = append(steps, substepHours)
		remaining -= substepHours
	}
	if remaining > 0 {
		steps = append(steps, remaining)
	}
	return steps
}

// step advances one mechanism over one substep and returns its proposed
// hazards. Static dispatch over the closed mechanism set.
func (m Mechanism) step(v *VesselState, env Env, dt float64) []Hazard {
	switch m {
	case MechanismERStress:
		return stepERStress(v, env, dt)
	case MechanismTransport:
		return stepTransport(v, env, dt)
	case MechanismMito:
		return stepMito(v, env, dt)
	case MechanismDNADamage:
		return stepDNADamage(v, env, dt)
	case MechanismNutrient:
		return stepNutrient(v, env, dt)
	case MechanismMitotic:
		return stepMitotic(v, env, dt)
	case MechanismContamination:
		return stepContamination(v, env, dt)
	}
	return nil
}

// advanceBounded integrates dS/dt = a·(1−S) − b·S over dt with frozen
// coefficients using the exact exponential solution, keeping S in [0,1].
func advanceBounded(s, a, b, dt float64) float64 {
	k := a + b
	if k <= 0 {
		return clamp01(s)
	}
	sInf := a / k
	return clamp01(sInf + (s-sInf)*math.Exp(-k*dt))
}

// advanceMemory integrates dMem/dt = kAccum·S − kRepair·Mem over dt with S
// frozen, again via the exact linear solution.
func advanceMemory(mem, s, kAccum, kRepair, dt float64) float64 {
	if kRepair <= 0 {
		return clamp01(mem + kAccum*s*dt)
	}
	mInf := kAccum * s / kRepair
	return clamp01(mInf + (mem-mInf)*math.Exp(-kRepair*dt))
}

// axisInduction combines the hill-curve induction of every dose acting on
// one axis. Doses combine as independent occupancies (1−Π(1−hᵢ)) so two
// half-saturating compounds do not sum past saturation. Zero or negative
// dose means no induction, never an error. Doses are visited in sorted name
// order; map order would perturb the float product at the ulp level and
// break byte-identical determinism.
func axisInduction(v *VesselState, env Env, axis domain.StressAxis) float64 {
	ec50Shift := v.IC50Multiplier() * env.Biology.EC50
	miss := 1.0
	for _, name := range v.doseNames() {
		d := v.Doses[name]
		p, ok := d.Compound.Potency(axis)
		if !ok || d.ConcentrationUM <= 0 {
			continue
		}
		ec50 := p.EC50uM * ec50Shift
		h := hill(d.ConcentrationUM, ec50, p.Hill)
		miss *= 1 - h
	}
	return 1 - miss
}

func hill(dose, ec50, coeff float64) float64 {
	if dose <= 0 || ec50 <= 0 {
		return 0
	}
	dn := math.Pow(dose, coeff)
	return dn / (dn + math.Pow(ec50, coeff))
}

// thresholdHazard converts a stress scalar into a proposed hazard rate via
// a sigmoid centered on theta shifted by the vessel's threshold multiplier.
// Width scales with the same multiplier so resistant vessels see both a
// later and a softer onset.
func thresholdHazard(v *VesselState, env Env, s, theta, width, maxRate float64) float64 {
	shift := v.ThresholdMultiplier()
	center := theta * shift
	w := width * shift
	if w <= 0 {
		w = width
	}
	sig := 1 / (1 + math.Exp(-(s-center)/w))
	return maxRate * sig * v.Intrinsic.HazardScale * env.Biology.Hazard
}

// Synergy gating: when several stress axes are simultaneously elevated the
// pipeline proposes one multiplicative synergy hazard on top of the
// per-mechanism hazards.
const (
	synergyGate    = 0.55
	synergyMaxRate = 0.04
)

func synergyHazard(v *VesselState, env Env) float64 {
	axes := []float64{
		v.Stress.ERStress,
		v.Stress.MitoDysfunction,
		v.Stress.TransportDysfunction,
		v.Stress.DNADamage,
	}
	product := 1.0
	elevated := 0
	for _, s := range axes {
		if s > synergyGate {
			elevated++
			product *= (s - synergyGate) / (1 - synergyGate)
		}
	}
	if elevated < 2 {
		return 0
	}
	return synergyMaxRate * product * v.Intrinsic.HazardScale * env.Biology.Hazard
}

// backgroundHazardRate is the small constant death rate every culture sees.
const backgroundHazardRate = 0.0004
