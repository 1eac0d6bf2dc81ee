package plate

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"culturecore/internal/observability"
	"culturecore/internal/run"
	"culturecore/internal/vm"
	"culturecore/pkg/domain"
)

// Executor runs parsed plates over a worker pool. One fresh VM per well,
// seeded from the derived well seed; the run context is shared read-only
// across workers, so per-well results are a pure function of the task.
type Executor struct {
	workers   int
	log       observability.Logger
	metrics   observability.MetricsRecorder
	tracer    observability.Tracer
	vmOptions []vm.Option
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithWorkers sets the worker pool size (default: GOMAXPROCS).
func WithWorkers(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log observability.Logger) ExecutorOption {
	return func(e *Executor) { e.log = log }
}

// WithMetrics attaches a metrics recorder observed once per well and once
// per plate.
func WithMetrics(m observability.MetricsRecorder) ExecutorOption {
	return func(e *Executor) { e.metrics = m }
}

// WithTracer attaches a tracer spanning the whole run.
func WithTracer(tr observability.Tracer) ExecutorOption {
	return func(e *Executor) { e.tracer = tr }
}

// WithVMOptions forwards options to every per-well VM (noise-free mode,
// assay configuration, contamination gating).
func WithVMOptions(opts ...vm.Option) ExecutorOption {
	return func(e *Executor) { e.vmOptions = append(e.vmOptions, opts...) }
}

// NewExecutor constructs an Executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		workers: runtime.GOMAXPROCS(0),
		log:     observability.NopLogger{},
		metrics: observability.NopMetricsRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every well of a parsed plate and returns the aggregated
// result. Per-well failures become failed records; only infrastructure
// errors (none today) would fail the whole run.
func (e *Executor) Run(ctx context.Context, parsed ParsedPlate) (domain.PlateResult, error) {
	started := time.Now()
	if e.tracer != nil {
		var span observability.TraceSpan
		ctx, span = e.tracer.Start(ctx, "plate.run")
		defer span.End(nil)
	}
	rc := run.NewRunContext(parsed.Seed)
	// Lazy sampling must finish before workers share the context.
	rc.Init()

	tasks := make(chan ParsedWell)
	records := make([]domain.WellRecord, len(parsed.Wells))
	var wg sync.WaitGroup
	workers := e.workers
	if workers > len(parsed.Wells) && len(parsed.Wells) > 0 {
		workers = len(parsed.Wells)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				wellStart := time.Now()
				record := e.executeWell(parsed.PlateID, rc, task)
				e.metrics.Observe(ctx, "plate.execute_well", record.Status == domain.StatusOK, time.Since(wellStart))
				records[task.Index] = record
			}
		}()
	}
	for _, task := range parsed.Wells {
		tasks <- task
	}
	close(tasks)
	wg.Wait()

	result := domain.PlateResult{
		PlateID:         parsed.PlateID,
		RunID:           uuid.NewString(),
		Seed:            parsed.Seed,
		NWells:          len(records),
		BackgroundWells: parsed.BackgroundWells,
		Materials:       parsed.Materials,
		Wells:           records,
	}
	for _, r := range records {
		if r.Status == domain.StatusOK {
			result.NSuccess++
		} else {
			result.NFailed++
		}
	}
	e.metrics.Observe(ctx, "plate.run", result.NFailed == 0, time.Since(started))
	e.log.Info("plate executed",
		"plate", parsed.PlateID, "run", result.RunID, "wells", result.NWells,
		"ok", result.NSuccess, "failed", result.NFailed)
	return result, nil
}

// executeWell runs one well on a fresh VM. All randomness derives from the
// task's well seed, so the record is independent of scheduling.
func (e *Executor) executeWell(plateID string, rc *run.RunContext, task ParsedWell) domain.WellRecord {
	record := domain.WellRecord{
		Status:       domain.StatusOK,
		PlateID:      plateID,
		Well:         task.Well,
		Mode:         task.Mode,
		CellLine:     task.CellLine,
		Seed:         task.Seed,
		ElapsedHours: task.ElapsedHours,
	}
	for _, t := range task.Treatments {
		if t.DoseUM >= record.DoseUM {
			record.Compound = t.Compound
			record.DoseUM = t.DoseUM
		}
	}

	machine := vm.New(task.Seed, rc, e.vmOptions...)
	if task.Mode == domain.WellModeDark {
		painting := machine.DarkPaintingAssay()
		record.Painting = &painting
		return record
	}

	if err := machine.SeedVessel(task.Well, task.CellLine, task.InitialCount, task.InitialViability); err != nil {
		return failedRecord(record, err)
	}
	clock := 0.0
	for _, t := range task.Treatments {
		if t.AtHours > clock {
			if err := machine.AdvanceTime(task.Well, t.AtHours-clock); err != nil {
				return failedRecord(record, err)
			}
			clock = t.AtHours
		}
		if err := machine.TreatWithCompound(task.Well, t.Compound, t.DoseUM); err != nil {
			return failedRecord(record, err)
		}
	}
	if task.ElapsedHours > clock {
		if err := machine.AdvanceTime(task.Well, task.ElapsedHours-clock); err != nil {
			return failedRecord(record, err)
		}
	}

	painting, err := machine.CellPaintingAssay(task.Well, task.Overrides)
	if err != nil {
		return failedRecord(record, err)
	}
	viability, err := machine.ATPViabilityAssay(task.Well)
	if err != nil {
		return failedRecord(record, err)
	}
	count, err := machine.CountCells(task.Well)
	if err != nil {
		return failedRecord(record, err)
	}
	deaths, err := machine.DeathSummary(task.Well)
	if err != nil {
		return failedRecord(record, err)
	}
	record.Painting = &painting
	record.Viability = &viability
	record.Count = &count
	record.Deaths = &deaths
	return record
}

func failedRecord(record domain.WellRecord, err error) domain.WellRecord {
	record.Status = domain.StatusFailed
	record.Error = fmt.Sprintf("well %s: %v", record.Well, err)
	return record
}
