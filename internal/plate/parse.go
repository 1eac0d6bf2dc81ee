// Package plate runs declarative plate designs through the simulation
// kernel: Parse -> Validate -> Execute (parallel, per well) -> Flatten ->
// Persist. Parsing and validation are fail-fast; execution constructs one
// fresh virtual machine per well so results are a pure function of
// (task, run seed, run context) regardless of worker count or order.
package plate

import (
	"fmt"
	"hash/fnv"
	"sort"

	"gopkg.in/yaml.v3"

	"culturecore/pkg/domain"
)

// ParsedWell is one immutable well-execution task. Created once by Parse,
// never mutated afterwards.
type ParsedWell struct {
	Index            int
	Well             string
	Mode             domain.WellMode
	CellLine         string
	InitialCount     float64
	InitialViability float64
	Treatments       []domain.TreatmentSpec
	ElapsedHours     float64
	Overrides        *domain.ProvocationOverrides
	// Seed is the derived well-level RNG seed, a pure function of the run
	// seed, plate id and well id.
	Seed uint64
}

// ParsedPlate is the executable form of a plate design.
type ParsedPlate struct {
	PlateID         string
	Seed            uint64
	Materials       []string
	BackgroundWells []string
	Wells           []ParsedWell
}

// ParseDesign decodes a YAML plate design document.
func ParseDesign(data []byte) (domain.PlateDesign, error) {
	var design domain.PlateDesign
	if err := yaml.Unmarshal(data, &design); err != nil {
		return domain.PlateDesign{}, fmt.Errorf("decode plate design: %w", err)
	}
	return design, nil
}

// Parse validates a design and converts it into immutable well tasks plus
// plate-level metadata. Any validation issue aborts the whole plate.
func Parse(design domain.PlateDesign) (ParsedPlate, error) {
	if err := Validate(design); err != nil {
		return ParsedPlate{}, err
	}
	parsed := ParsedPlate{
		PlateID: design.PlateID,
		Seed:    design.Seed,
		Wells:   make([]ParsedWell, 0, len(design.Wells)),
	}
	materials := map[string]bool{}
	for i, spec := range design.Wells {
		mode := spec.Mode
		if mode == "" {
			mode = domain.WellModeSample
		}
		cellLine := spec.CellLine
		if cellLine == "" {
			cellLine = design.CellLine
		}
		count := spec.InitialCount
		if count == 0 {
			count = design.SeedingDensity
		}
		viability := spec.InitialViability
		if viability == 0 {
			viability = 1.0
		}
		hours := spec.ElapsedHours
		if hours == 0 {
			hours = design.ElapsedHours
		}
		treatments := append([]domain.TreatmentSpec(nil), spec.Treatments...)
		sort.SliceStable(treatments, func(a, b int) bool { return treatments[a].AtHours < treatments[b].AtHours })
		for _, t := range treatments {
			materials[t.Compound] = true
		}
		if mode == domain.WellModeBackground {
			parsed.BackgroundWells = append(parsed.BackgroundWells, spec.Well)
		}
		var overrides *domain.ProvocationOverrides
		if spec.Overrides != nil {
			ov := *spec.Overrides
			overrides = &ov
		}
		parsed.Wells = append(parsed.Wells, ParsedWell{
			Index:            i,
			Well:             spec.Well,
			Mode:             mode,
			CellLine:         cellLine,
			InitialCount:     count,
			InitialViability: viability,
			Treatments:       treatments,
			ElapsedHours:     hours,
			Overrides:        overrides,
			Seed:             WellSeed(design.Seed, design.PlateID, spec.Well),
		})
	}
	parsed.Materials = make([]string, 0, len(materials))
	for m := range materials {
		parsed.Materials = append(parsed.Materials, m)
	}
	sort.Strings(parsed.Materials)
	sort.Strings(parsed.BackgroundWells)
	return parsed, nil
}

// WellSeed derives the per-well RNG seed from the run seed, plate id and
// well id: FNV-64a over "plateID\x00wellID" xor-mixed with the run seed.
// Distinct wells get distinct, reproducible streams.
func WellSeed(runSeed uint64, plateID, well string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(plateID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(well))
	return h.Sum64() ^ runSeed
}
