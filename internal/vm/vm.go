// Package vm hosts the BiologicalVirtualMachine: the orchestrator that owns
// vessels and the three isolated random streams, drives the stress pipeline
// through time, and exposes the assay surface. One VM instance serves one
// well during plate execution; vessels are never shared between VMs.
package vm

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"culturecore/internal/assay"
	"culturecore/internal/observability"
	"culturecore/internal/run"
	"culturecore/internal/sim"
	"culturecore/pkg/domain"
)

// VM is the biological virtual machine for one or more vessels. It owns
// exactly three random streams: biology (cell-intrinsic effects and
// contamination), treatment (reserved) and assay (measurement noise only).
// Swapping the assay seed changes measurements but leaves every biological
// field bit-identical; swapping the biology seed changes trajectories while
// noise-free measurement still reproduces the (new) ground truth exactly.
type VM struct {
	seed uint64
	rc   *run.RunContext
	cfg  assay.Config
	log  observability.Logger

	contaminationEnabled bool

	biology   *rand.Rand
	treatment *rand.Rand
	assayRNG  *rand.Rand

	vessels map[string]*sim.VesselState
}

// Option configures a VM at construction.
type Option func(*vmConfig)

type vmConfig struct {
	assayCfg             assay.Config
	assaySeed            *uint64
	contaminationEnabled bool
	log                  observability.Logger
}

// WithAssayConfig replaces the default assay noise/detector profile.
func WithAssayConfig(cfg assay.Config) Option {
	return func(c *vmConfig) { c.assayCfg = cfg }
}

// WithNoiseFree switches every assay into ground-truth mode (all CVs zero,
// detector off) and disables stochastic contamination.
func WithNoiseFree() Option {
	return func(c *vmConfig) {
		c.assayCfg = c.assayCfg.NoiseFree()
		c.contaminationEnabled = false
	}
}

// WithAssaySeed overrides the assay stream seed independently of the run
// seed, for measurement/biology isolation checks.
func WithAssaySeed(seed uint64) Option {
	return func(c *vmConfig) { c.assaySeed = &seed }
}

// WithContaminationDisabled turns off stochastic contamination onset.
func WithContaminationDisabled() Option {
	return func(c *vmConfig) { c.contaminationEnabled = false }
}

// WithLogger attaches a logger for operation-level debug output.
func WithLogger(log observability.Logger) Option {
	return func(c *vmConfig) { c.log = log }
}

// New constructs a VM from a seed and a shared, already-initialized run
// context. The context is read-only here; the VM never mutates it.
func New(seed uint64, rc *run.RunContext, opts ...Option) *VM {
	cfg := vmConfig{
		assayCfg:             assay.DefaultConfig(),
		contaminationEnabled: true,
		log:                  observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	assaySeed := seed
	if cfg.assaySeed != nil {
		assaySeed = *cfg.assaySeed
	}
	return &VM{
		seed:                 seed,
		rc:                   rc,
		cfg:                  cfg.assayCfg,
		log:                  cfg.log,
		contaminationEnabled: cfg.contaminationEnabled,
		biology:              run.NewStream(seed, run.StreamBiology),
		treatment:            run.NewStream(seed, run.StreamTreatment),
		assayRNG:             run.NewStream(assaySeed, run.StreamAssay),
		vessels:              make(map[string]*sim.VesselState),
	}
}

// Seed returns the VM's construction seed.
func (vm *VM) Seed() uint64 { return vm.seed }

// Context returns the shared run context.
func (vm *VM) Context() *run.RunContext { return vm.rc }

// SeedVessel creates a vessel. It fails if the id is already seeded.
func (vm *VM) SeedVessel(id, cellLine string, initialCount, initialViability float64) error {
	if _, exists := vm.vessels[id]; exists {
		return fmt.Errorf("vessel %q already seeded", id)
	}
	line, known := domain.LookupCellLine(cellLine)
	if !known {
		vm.log.Warn("seeding unregistered cell line with generic profile", "vessel", id, "cell_line", cellLine)
	}
	vm.vessels[id] = sim.NewVessel(id, line, initialCount, initialViability, vm.biology)
	vm.log.Debug("vessel seeded", "vessel", id, "cell_line", line.Name, "count", initialCount)
	return nil
}

// TreatWithCompound merges a dose into the vessel's dose map, resolving and
// caching potency metadata.
func (vm *VM) TreatWithCompound(id, compound string, doseUM float64) error {
	v, err := vm.vessel(id)
	if err != nil {
		return err
	}
	if err := v.ApplyTreatment(compound, doseUM); err != nil {
		return err
	}
	vm.log.Debug("treatment applied", "vessel", id, "compound", compound, "dose_um", doseUM)
	return nil
}

// WashoutCompound zeroes all doses on the vessel.
func (vm *VM) WashoutCompound(id string) error {
	v, err := vm.vessel(id)
	if err != nil {
		return err
	}
	v.Washout()
	return nil
}

// AdvanceTime advances one vessel's latent state. Negative hours fail with
// InvalidDurationError; zero hours is a no-op.
func (vm *VM) AdvanceTime(id string, hours float64) error {
	v, err := vm.vessel(id)
	if err != nil {
		return err
	}
	return sim.Advance(v, vm.env(), hours)
}

// AdvanceAll advances every seeded vessel by the same interval, in sorted
// vessel order so biology-stream consumption is deterministic.
func (vm *VM) AdvanceAll(hours float64) error {
	for _, id := range vm.vesselIDs() {
		if err := sim.Advance(vm.vessels[id], vm.env(), hours); err != nil {
			return err
		}
	}
	return nil
}

// CellPaintingAssay measures the morphology channels of a vessel.
func (vm *VM) CellPaintingAssay(id string, ov *domain.ProvocationOverrides) (domain.AssayResult, error) {
	v, err := vm.vessel(id)
	if err != nil {
		return domain.AssayResult{}, err
	}
	return assay.CellPainting(v, vm.rc, vm.assayRNG, vm.cfg, ov), nil
}

// DarkPaintingAssay reads detector noise for a cell-free blank.
func (vm *VM) DarkPaintingAssay() domain.AssayResult {
	return assay.DarkPainting(vm.assayRNG, vm.cfg)
}

// ATPViabilityAssay measures the viability readout of a vessel.
func (vm *VM) ATPViabilityAssay(id string) (domain.AssayResult, error) {
	v, err := vm.vessel(id)
	if err != nil {
		return domain.AssayResult{}, err
	}
	return assay.ATPViability(v, vm.rc, vm.assayRNG, vm.cfg), nil
}

// CountCells measures the imaged cell count of a vessel.
func (vm *VM) CountCells(id string) (domain.AssayResult, error) {
	v, err := vm.vessel(id)
	if err != nil {
		return domain.AssayResult{}, err
	}
	return assay.CountCells(v, vm.rc, vm.assayRNG, vm.cfg), nil
}

// DeathSummary returns the conservation-checked death accounting.
func (vm *VM) DeathSummary(id string) (domain.DeathSummary, error) {
	v, err := vm.vessel(id)
	if err != nil {
		return domain.DeathSummary{}, err
	}
	if err := v.Deaths.CheckConservation(id); err != nil {
		return domain.DeathSummary{}, err
	}
	return v.Deaths.Summary(), nil
}

// Vessel exposes the latent state for state queries and tests. The pointer
// is owned by this VM; callers must not retain it across workers.
func (vm *VM) Vessel(id string) (*sim.VesselState, bool) {
	v, ok := vm.vessels[id]
	return v, ok
}

func (vm *VM) vessel(id string) (*sim.VesselState, error) {
	v, ok := vm.vessels[id]
	if !ok {
		return nil, domain.UnknownVesselError{VesselID: id}
	}
	return v, nil
}

func (vm *VM) vesselIDs() []string {
	ids := make([]string, 0, len(vm.vessels))
	for id := range vm.vessels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (vm *VM) env() sim.Env {
	return sim.Env{
		Biology:              vm.rc.BiologyModifiers(),
		BiologyRNG:           vm.biology,
		ContaminationEnabled: vm.contaminationEnabled,
	}
}
