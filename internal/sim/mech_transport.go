package sim

import "culturecore/pkg/domain"

// Transport dysfunction kinetics and the cross-talk bookkeeping that feeds
// secondary mitochondrial dysfunction.
const (
	transportKOn  = 0.40
	transportKOff = 0.10

	transportTheta     = 0.70
	transportWidth     = 0.07
	transportMaxHazard = 0.05

	// transportCrossTalkLevel and transportCrossTalkDwellHours gate the
	// secondary mito induction: transport dysfunction must stay above the
	// level for at least the dwell before mito cross-talk engages.
	transportCrossTalkLevel      = 0.60
	transportCrossTalkDwellHours = 6.0
)

func stepTransport(v *VesselState, env Env, dt float64) []Hazard {
	induction := axisInduction(v, env, domain.AxisTransportDysfunction)
	kOn := transportKOn * v.Intrinsic.StressSensitivity

	v.Stress.TransportDysfunction = advanceBounded(v.Stress.TransportDysfunction, kOn*induction, transportKOff, dt)

	if v.Stress.TransportDysfunction > transportCrossTalkLevel {
		if v.TransportHighSince == nil {
			at := v.Clock
			v.TransportHighSince = &at
		}
	} else {
		v.TransportHighSince = nil
	}

	rate := thresholdHazard(v, env, v.Stress.TransportDysfunction, transportTheta, transportWidth, transportMaxHazard)
	return []Hazard{{Cause: domain.DeathCauseTransport, Rate: rate}}
}

// transportCrossTalkActive reports whether transport dysfunction has dwelled
// above the cross-talk level long enough to induce mito dysfunction.
func transportCrossTalkActive(v *VesselState) bool {
	return v.TransportHighSince != nil && v.Clock-*v.TransportHighSince >= transportCrossTalkDwellHours
}
