// Command culturecore executes declarative plate designs against the
// stochastic cell-culture simulation kernel.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"culturecore/internal/infra/artifact"
	"culturecore/internal/infra/persistence/sqlite"
	"culturecore/internal/observability"
	"culturecore/internal/plate"
	"culturecore/internal/vm"
	"culturecore/pkg/domain"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "culturecore",
		Short: "Stochastic cell-culture simulation kernel",
		Long: `culturecore simulates plates of cultured wells under compound exposure
and reads them out through noisy virtual assays.

Plate designs are YAML documents; results land in the configured artifact
store and every run appends a manifest record.`,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log progress to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newValidateCmd(),
		newRunCmd(),
		newRunsCmd(),
		newCompoundsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
				return
			}
			fmt.Printf("culturecore version %s\n", version)
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <design.yaml>",
		Short: "Validate a plate design without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			design, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			parsed, err := plate.Parse(design)
			if err != nil {
				return err
			}
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"plate_id":  parsed.PlateID,
					"wells":     len(parsed.Wells),
					"materials": parsed.Materials,
				})
			}
			fmt.Printf("plate %s: %d wells, %d materials, valid\n", parsed.PlateID, len(parsed.Wells), len(parsed.Materials))
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <design.yaml>",
		Short: "Execute a plate design and persist the results",
		Long: `Execute every well of a plate design in parallel and persist the
flattened results plus a run manifest.

The artifact store is selected via CULTURECORE_ARTIFACT_DRIVER (fs, s3 or
memory; default fs). Manifests append to a local SQLite database.

Examples:
  culturecore run plate.yaml
  culturecore run plate.yaml --workers 8 --seed 42
  culturecore run plate.yaml --noise-free`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			seed, _ := cmd.Flags().GetUint64("seed")
			noiseFree, _ := cmd.Flags().GetBool("noise-free")
			manifestDB, _ := cmd.Flags().GetString("manifest-db")
			jsonOut, _ := cmd.Flags().GetBool("json")

			design, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				design.Seed = seed
			}
			parsed, err := plate.Parse(design)
			if err != nil {
				return err
			}

			log := commandLogger(cmd)
			execOpts := []plate.ExecutorOption{plate.WithLogger(log)}
			if workers > 0 {
				execOpts = append(execOpts, plate.WithWorkers(workers))
			}
			if noiseFree {
				execOpts = append(execOpts, plate.WithVMOptions(vm.WithNoiseFree()))
			}
			executor := plate.NewExecutor(execOpts...)

			ctx := context.Background()
			result, err := executor.Run(ctx, parsed)
			if err != nil {
				return err
			}

			artifacts, err := artifact.Open(ctx)
			if err != nil {
				return fmt.Errorf("open artifact store: %w", err)
			}
			manifests, err := sqlite.NewStore(manifestDB)
			if err != nil {
				return fmt.Errorf("open manifest store: %w", err)
			}
			manifest, info, err := plate.NewPersister(artifacts, manifests, log).Persist(ctx, result)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(manifest)
			}
			fmt.Printf("run %s: %d/%d wells ok, results at %s\n", manifest.RunID, result.NSuccess, result.NWells, info.Key)
			return nil
		},
	}
	cmd.Flags().Int("workers", 0, "Worker pool size (default: GOMAXPROCS)")
	cmd.Flags().Uint64("seed", 0, "Override the design's run seed")
	cmd.Flags().Bool("noise-free", false, "Read ground truth: zero CV, detector off")
	cmd.Flags().String("manifest-db", "culturecore.db", "SQLite manifest database path")
	return cmd
}

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded run manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestDB, _ := cmd.Flags().GetString("manifest-db")
			store, err := sqlite.NewStore(manifestDB)
			if err != nil {
				return fmt.Errorf("open manifest store: %w", err)
			}
			manifests, err := store.List(context.Background())
			if err != nil {
				return err
			}
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(os.Stdout).Encode(manifests)
			}
			for _, m := range manifests {
				fmt.Printf("%s  plate=%s seed=%d wells=%d ok=%d failed=%d  %s\n",
					m.RunID, m.PlateID, m.Seed, m.NWells, m.NSuccess, m.NFailed, m.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().String("manifest-db", "culturecore.db", "SQLite manifest database path")
	return cmd
}

func newCompoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compounds",
		Short: "List the compound library",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := domain.KnownCompounds()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(os.Stdout).Encode(names)
			}
			for _, name := range names {
				compound, err := domain.LookupCompound(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-16s", name)
				for _, p := range compound.Potencies {
					fmt.Printf("  %s ec50=%.3g hill=%.2g", p.Axis, p.EC50uM, p.Hill)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func loadDesign(path string) (domain.PlateDesign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.PlateDesign{}, fmt.Errorf("read plate design: %w", err)
	}
	return plate.ParseDesign(data)
}

func commandLogger(cmd *cobra.Command) observability.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return observability.NewJSONLogger(os.Stderr)
	}
	return observability.NopLogger{}
}
