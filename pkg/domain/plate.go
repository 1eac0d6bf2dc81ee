package domain

// TreatmentSpec describes one compound application within a well protocol.
type TreatmentSpec struct {
	Compound string  `yaml:"compound" json:"compound"`
	DoseUM   float64 `yaml:"dose_um" json:"dose_um"`
	// AtHours schedules the treatment on the vessel clock; treatments are
	// applied in schedule order interleaved with time advancement.
	AtHours float64 `yaml:"at_hours" json:"at_hours"`
}

// ProvocationOverrides are measurement-side perturbations configured per
// well. They bias gain and focus only and never touch vessel biology.
type ProvocationOverrides struct {
	FocusOffset        float64 `yaml:"focus_offset" json:"focus_offset"`
	StainScale         float64 `yaml:"stain_scale" json:"stain_scale"`
	ExposureMultiplier float64 `yaml:"exposure_multiplier" json:"exposure_multiplier"`
}

// WellSpec is one well entry of a declarative plate design document.
type WellSpec struct {
	Well     string   `yaml:"well" json:"well"`
	Mode     WellMode `yaml:"mode" json:"mode"`
	CellLine string   `yaml:"cell_line" json:"cell_line"`
	// InitialCount defaults to the plate-level seeding density when zero.
	InitialCount     float64               `yaml:"initial_count" json:"initial_count"`
	InitialViability float64               `yaml:"initial_viability" json:"initial_viability"`
	Treatments       []TreatmentSpec       `yaml:"treatments" json:"treatments"`
	ElapsedHours     float64               `yaml:"elapsed_hours" json:"elapsed_hours"`
	Overrides        *ProvocationOverrides `yaml:"overrides" json:"overrides,omitempty"`
}

// PlateDesign is the declarative plate description consumed by the plate
// executor's parsing stage.
type PlateDesign struct {
	PlateID string `yaml:"plate_id" json:"plate_id"`
	Seed    uint64 `yaml:"seed" json:"seed"`
	// CellLine is the plate-wide default, overridable per well.
	CellLine string `yaml:"cell_line" json:"cell_line"`
	// SeedingDensity is the default initial cell count per well.
	SeedingDensity float64 `yaml:"seeding_density" json:"seeding_density"`
	// ElapsedHours is the plate-wide default incubation, overridable per well.
	ElapsedHours float64    `yaml:"elapsed_hours" json:"elapsed_hours"`
	Wells        []WellSpec `yaml:"wells" json:"wells"`
}
