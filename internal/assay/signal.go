package assay

import (
	"math"

	"culturecore/internal/sim"
	"culturecore/pkg/domain"
)

// baseChannelIntensity is the nominal per-cell intensity of a healthy,
// untreated cell in arbitrary units.
const baseChannelIntensity = 100.0

// Regime returns the stress/death morphology-regime weights. The weights
// always sum to exactly 1: the death program takes over smoothly as
// viability collapses.
func Regime(v *sim.VesselState) domain.MorphologyRegime {
	death := 1 / (1 + math.Exp((v.Viability-0.5)/0.1))
	return domain.MorphologyRegime{
		StressWeight: 1 - death,
		DeathWeight:  death,
	}
}

// ChannelSignal is the latent, noise-free morphology signal for one painting
// channel: per-cell intensity shaped by the stress axes, shrunk as the
// death regime takes over.
func ChannelSignal(v *sim.VesselState, channel domain.Channel) float64 {
	regime := Regime(v)
	// Dying cells condense and round up; every stain dims toward the death
	// program's compact morphology.
	shrink := regime.StressWeight + 0.55*regime.DeathWeight

	var shape float64
	switch channel {
	case domain.ChannelDNA:
		// Chromatin condensation brightens with damage, fades with death.
		shape = (0.7 + 0.3*v.Viability) * (1 + 0.35*v.Stress.DNADamage)
	case domain.ChannelER:
		// ER dilation under unfolded-protein load.
		shape = 1 + 1.1*v.Stress.ERStress
	case domain.ChannelRNA:
		// Translational shutdown under ER stress, mild upregulation with
		// damage response.
		shape = 1 - 0.30*v.Stress.ERStress + 0.15*v.Stress.DNADamage
	case domain.ChannelAGP:
		// Golgi fragmentation under transport failure.
		shape = 1 + 0.9*v.Stress.TransportDysfunction
	case domain.ChannelMito:
		// Membrane-potential dye loss on depolarization.
		shape = 1 - 0.7*v.Stress.MitoDysfunction
	default:
		shape = 1
	}
	if shape < 0 {
		shape = 0
	}
	return baseChannelIntensity * shape * shrink
}

// ViabilitySignal is the latent ground truth of the ATP viability assay.
func ViabilitySignal(v *sim.VesselState) float64 {
	return v.Viability
}

// CountSignal is the latent ground truth of the cell count assay.
func CountSignal(v *sim.VesselState) float64 {
	return v.CellCount
}
