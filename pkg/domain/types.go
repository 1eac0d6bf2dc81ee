// Package domain defines the public contract of the culturecore simulation
// kernel: stress axes, death causes, compound and cell-line registries,
// plate design inputs, measurement result records, and the error taxonomy.
// Internal vessel state layout is deliberately not part of this package.
package domain

// StressAxis identifies one continuous stress mechanism tracked per vessel.
type StressAxis string

// Stress axes form a closed set; the simulation pipeline enumerates them
// exhaustively and the set is not extensible at runtime.
const (
	// AxisERStress covers unfolded-protein-response style ER stress.
	AxisERStress StressAxis = "er_stress"
	// AxisMitoDysfunction covers mitochondrial membrane potential loss.
	AxisMitoDysfunction StressAxis = "mito_dysfunction"
	// AxisTransportDysfunction covers secretory/vesicle transport failure.
	AxisTransportDysfunction StressAxis = "transport_dysfunction"
	// AxisDNADamage covers genotoxic lesion burden.
	AxisDNADamage StressAxis = "dna_damage"
	// AxisNutrient covers nutrient depletion stress.
	AxisNutrient StressAxis = "nutrient"
	// AxisMitotic covers mitotic catastrophe during division under damage.
	AxisMitotic StressAxis = "mitotic"
)

// DeathCause labels the attributed origin of realized deaths. The set is an
// explicit allow-list; the numerical remainder of proportional attribution is
// tracked separately as unattributed and is not a DeathCause.
type DeathCause string

// Allow-listed death causes tracked by the hazard ledger.
const (
	DeathCauseERStress    DeathCause = "er_stress"
	DeathCauseMito        DeathCause = "mito_dysfunction"
	DeathCauseTransport   DeathCause = "transport_dysfunction"
	DeathCauseDNADamage   DeathCause = "dna_damage"
	DeathCauseNutrient    DeathCause = "nutrient_depletion"
	DeathCauseMitotic     DeathCause = "mitotic_catastrophe"
	DeathCauseContaminant DeathCause = "contamination"
	DeathCauseSynergy     DeathCause = "stress_synergy"
	DeathCauseBackground  DeathCause = "background"
)

// DeathCauses lists every allow-listed cause in a fixed order, used by
// result flattening and by conservation checks in tests.
func DeathCauses() []DeathCause {
	return []DeathCause{
		DeathCauseERStress,
		DeathCauseMito,
		DeathCauseTransport,
		DeathCauseDNADamage,
		DeathCauseNutrient,
		DeathCauseMitotic,
		DeathCauseContaminant,
		DeathCauseSynergy,
		DeathCauseBackground,
	}
}

// Modality identifies a measurement modality for drift and gain lookup.
type Modality string

// Measurement modalities exposed by the assay surface.
const (
	ModalityCellPainting Modality = "cell_painting"
	ModalityATP          Modality = "atp"
	ModalityCellCount    Modality = "cell_count"
)

// Channel identifies one morphology channel of the cell painting assay.
type Channel string

// The fixed cell painting channel set. Every painting result carries all
// five channels; consumers may rely on the set being closed.
const (
	ChannelDNA  Channel = "dna"
	ChannelER   Channel = "er"
	ChannelRNA  Channel = "rna"
	ChannelAGP  Channel = "agp"
	ChannelMito Channel = "mito"
)

// PaintingChannels returns the fixed channel set in canonical order.
func PaintingChannels() []Channel {
	return []Channel{ChannelDNA, ChannelER, ChannelRNA, ChannelAGP, ChannelMito}
}

// WellMode distinguishes sample wells from plate controls.
type WellMode string

// Well modes recognised by the plate parser.
const (
	// WellModeSample is a treated or untreated biological sample well.
	WellModeSample WellMode = "sample"
	// WellModeBackground is an untreated vehicle-control well.
	WellModeBackground WellMode = "background"
	// WellModeDark is a cell-free blank read only for detector noise.
	WellModeDark WellMode = "dark"
)

// ContaminationType enumerates supported contamination organisms.
type ContaminationType string

// Contamination organisms with distinct growth dynamics.
const (
	ContaminationBacterial  ContaminationType = "bacterial"
	ContaminationFungal     ContaminationType = "fungal"
	ContaminationMycoplasma ContaminationType = "mycoplasma"
)

// ContaminationPhase tracks progression after onset.
type ContaminationPhase string

// Contamination phases in onset order.
const (
	ContaminationPhaseLag       ContaminationPhase = "lag"
	ContaminationPhaseLog       ContaminationPhase = "log"
	ContaminationPhaseOvergrown ContaminationPhase = "overgrown"
)

// ResultStatus marks whether a well execution or assay call succeeded.
type ResultStatus string

// Result statuses reported by assays and the plate executor.
const (
	StatusOK     ResultStatus = "ok"
	StatusFailed ResultStatus = "failed"
)
