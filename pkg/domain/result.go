package domain

// MorphologyRegime describes where a vessel sits between the stress-adapted
// and death-committed morphology programs. The two weights always sum to 1.
type MorphologyRegime struct {
	StressWeight float64 `json:"stress_weight"`
	DeathWeight  float64 `json:"death_weight"`
}

// DetectorMeta reports detector-level effects applied to a measurement.
type DetectorMeta struct {
	// SaturatedChannels lists channels clamped at the detector ceiling.
	SaturatedChannels []Channel `json:"saturated_channels,omitempty"`
	// Quantized reports whether LSB rounding was applied.
	Quantized bool `json:"quantized"`
	// QuantizationStep is the LSB step used when Quantized is true.
	QuantizationStep float64 `json:"quantization_step,omitempty"`
	// NoiseFloor is the additive detector floor included in every channel.
	NoiseFloor float64 `json:"noise_floor"`
	// OutlierInjected marks a well hit by a cross-channel physical shock
	// (defocus, bad illumination). Roughly 2% of wells per run.
	OutlierInjected bool `json:"outlier_injected"`
}

// AssayResult is the structured record returned by every assay call. It is
// the only artifact external consumers may depend on.
type AssayResult struct {
	Status   ResultStatus `json:"status"`
	VesselID string       `json:"vessel_id"`
	CellLine string       `json:"cell_line"`
	Modality Modality     `json:"modality"`
	// ElapsedHours is the vessel clock at measurement time.
	ElapsedHours float64 `json:"elapsed_hours"`

	// Channels carries one value per painting channel for the fixed channel
	// set. Empty for non-imaging modalities.
	Channels map[Channel]float64 `json:"channels,omitempty"`
	// Value is the scalar readout for single-value modalities (ATP, count).
	Value float64 `json:"value,omitempty"`

	Regime   MorphologyRegime `json:"regime"`
	Detector DetectorMeta     `json:"detector"`

	// Optional fields gated by enabled detector/segmentation features.
	SegmentedCellCount *float64 `json:"segmented_cell_count,omitempty"`
	FocusScore         *float64 `json:"focus_score,omitempty"`

	// Error carries the failure description when Status is StatusFailed.
	Error string `json:"error,omitempty"`
}

// DeathSummary is the flattened, conservation-checked death accounting for
// one vessel at one observation point.
type DeathSummary struct {
	Total        float64                `json:"total"`
	ByCause      map[DeathCause]float64 `json:"by_cause"`
	Unattributed float64                `json:"unattributed"`
}

// WellRecord is the flattened result for one executed well.
type WellRecord struct {
	Status   ResultStatus `json:"status"`
	PlateID  string       `json:"plate_id"`
	Well     string       `json:"well"`
	Mode     WellMode     `json:"mode"`
	CellLine string       `json:"cell_line"`
	// Seed is the derived well-level RNG seed, recorded for reproduction.
	Seed uint64 `json:"seed"`

	Compound     string  `json:"compound,omitempty"`
	DoseUM       float64 `json:"dose_um,omitempty"`
	ElapsedHours float64 `json:"elapsed_hours"`

	Painting  *AssayResult  `json:"painting,omitempty"`
	Viability *AssayResult  `json:"viability,omitempty"`
	Count     *AssayResult  `json:"count,omitempty"`
	Deaths    *DeathSummary `json:"deaths,omitempty"`

	Error string `json:"error,omitempty"`
}

// PlateResult aggregates every well record of one executed plate.
type PlateResult struct {
	PlateID  string `json:"plate_id"`
	RunID    string `json:"run_id"`
	Seed     uint64 `json:"seed"`
	NWells   int    `json:"n_wells"`
	NSuccess int    `json:"n_success"`
	NFailed  int    `json:"n_failed"`
	// BackgroundWells lists the wells parsed as plate background controls.
	BackgroundWells []string     `json:"background_wells,omitempty"`
	Materials       []string     `json:"materials,omitempty"`
	Wells           []WellRecord `json:"wells"`
}
