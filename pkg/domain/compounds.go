package domain

import (
	"sort"
	"strings"
)

// AxisPotency captures how strongly a compound drives one stress axis.
type AxisPotency struct {
	Axis StressAxis `json:"axis"`
	// EC50uM is the half-maximal induction concentration in micromolar.
	EC50uM float64 `json:"ec50_um"`
	// Hill is the cooperativity coefficient of the induction curve.
	Hill float64 `json:"hill"`
}

// Compound holds potency metadata resolved once at treatment time and cached
// on the vessel's dose map.
type Compound struct {
	Name string `json:"name"`
	// Potencies lists every axis the compound acts on; multi-axis compounds
	// drive several mechanisms simultaneously.
	Potencies []AxisPotency `json:"potencies"`
	// ClearanceHalfLifeHours is the nominal dose decay half-life; the run
	// batch profile scales it through the burden half-life multiplier.
	ClearanceHalfLifeHours float64 `json:"clearance_half_life_hours"`
}

// Potency returns the potency entry for the given axis, if any.
func (c Compound) Potency(axis StressAxis) (AxisPotency, bool) {
	for _, p := range c.Potencies {
		if p.Axis == axis {
			return p, true
		}
	}
	return AxisPotency{}, false
}

// compoundLibrary is the built-in potency registry. Lookup is
// case-insensitive on the canonical name.
var compoundLibrary = map[string]Compound{
	"tunicamycin": {
		Name:                   "tunicamycin",
		Potencies:              []AxisPotency{{Axis: AxisERStress, EC50uM: 0.8, Hill: 1.5}},
		ClearanceHalfLifeHours: 30,
	},
	"thapsigargin": {
		Name:                   "thapsigargin",
		Potencies:              []AxisPotency{{Axis: AxisERStress, EC50uM: 0.05, Hill: 1.8}},
		ClearanceHalfLifeHours: 24,
	},
	"cccp": {
		Name:                   "cccp",
		Potencies:              []AxisPotency{{Axis: AxisMitoDysfunction, EC50uM: 4.0, Hill: 2.0}},
		ClearanceHalfLifeHours: 12,
	},
	"rotenone": {
		Name:                   "rotenone",
		Potencies:              []AxisPotency{{Axis: AxisMitoDysfunction, EC50uM: 0.5, Hill: 1.6}},
		ClearanceHalfLifeHours: 36,
	},
	"oligomycin": {
		Name:                   "oligomycin",
		Potencies:              []AxisPotency{{Axis: AxisMitoDysfunction, EC50uM: 1.2, Hill: 1.4}},
		ClearanceHalfLifeHours: 20,
	},
	"brefeldin-a": {
		Name:                   "brefeldin-a",
		Potencies:              []AxisPotency{{Axis: AxisTransportDysfunction, EC50uM: 0.2, Hill: 1.7}},
		ClearanceHalfLifeHours: 8,
	},
	"monensin": {
		Name:                   "monensin",
		Potencies:              []AxisPotency{{Axis: AxisTransportDysfunction, EC50uM: 1.5, Hill: 1.3}},
		ClearanceHalfLifeHours: 16,
	},
	"etoposide": {
		Name:                   "etoposide",
		Potencies:              []AxisPotency{{Axis: AxisDNADamage, EC50uM: 6.0, Hill: 1.2}},
		ClearanceHalfLifeHours: 40,
	},
	"cisplatin": {
		Name:                   "cisplatin",
		Potencies:              []AxisPotency{{Axis: AxisDNADamage, EC50uM: 10.0, Hill: 1.0}},
		ClearanceHalfLifeHours: 48,
	},
	"doxorubicin": {
		Name: "doxorubicin",
		Potencies: []AxisPotency{
			{Axis: AxisDNADamage, EC50uM: 1.0, Hill: 1.4},
			{Axis: AxisMitoDysfunction, EC50uM: 8.0, Hill: 1.2},
		},
		ClearanceHalfLifeHours: 30,
	},
	"nocodazole": {
		Name:                   "nocodazole",
		Potencies:              []AxisPotency{{Axis: AxisMitotic, EC50uM: 0.4, Hill: 2.2}},
		ClearanceHalfLifeHours: 10,
	},
	"paclitaxel": {
		Name:                   "paclitaxel",
		Potencies:              []AxisPotency{{Axis: AxisMitotic, EC50uM: 0.08, Hill: 2.5}},
		ClearanceHalfLifeHours: 24,
	},
	"staurosporine": {
		Name: "staurosporine",
		Potencies: []AxisPotency{
			{Axis: AxisERStress, EC50uM: 0.5, Hill: 1.2},
			{Axis: AxisMitoDysfunction, EC50uM: 0.3, Hill: 1.5},
			{Axis: AxisDNADamage, EC50uM: 1.5, Hill: 1.1},
		},
		ClearanceHalfLifeHours: 18,
	},
	"dmso": {
		Name:                   "dmso",
		Potencies:              nil, // vehicle control, no induction
		ClearanceHalfLifeHours: 6,
	},
}

// LookupCompound resolves potency metadata for a compound name. It returns
// UnknownCompoundError when the library has no entry.
func LookupCompound(name string) (Compound, error) {
	c, ok := compoundLibrary[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Compound{}, UnknownCompoundError{Compound: name}
	}
	return c, nil
}

// KnownCompounds returns the canonical names in the library, for validation
// error messages and CLI listings.
func KnownCompounds() []string {
	names := make([]string, 0, len(compoundLibrary))
	for name := range compoundLibrary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
