// Command ecs-stress drives a synthetic world through the scheduler for a
// fixed duration and prints a timing and memory report.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/plus3/sparsecs/ecs"
	ecslog "github.com/plus3/sparsecs/ecs/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		scenario string
		flagCfg  = defaultConfig()
	)

	cmd := &cobra.Command{
		Use:          "ecs-stress",
		Short:        "Run a synthetic ECS workload and report update timings",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := defaultConfig()
			if err := loadEnv(&cfg); err != nil {
				return err
			}
			if scenario != "" {
				if err := loadScenario(&cfg, scenario); err != nil {
					return err
				}
			}
			applyFlags(cmd, &cfg, flagCfg)
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&scenario, "scenario", "", "YAML scenario file describing the component mix and enabled systems.")
	flags.StringVar(&flagCfg.Duration, "duration", flagCfg.Duration, "The total duration the test should run for.")
	flags.IntVar(&flagCfg.Entities, "entities", flagCfg.Entities, "The initial number of entities to create.")
	flags.Uint64Var(&flagCfg.Seed, "seed", flagCfg.Seed, "Seed for the random component mix.")
	flags.Float64Var(&flagCfg.Churn, "churn", flagCfg.Churn, "Fraction of live entities deleted and respawned each pass.")
	flags.BoolVar(&flagCfg.GCPauseMetrics, "gc-pause-metrics", flagCfg.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")
	flags.StringVar(&flagCfg.Profile, "profile", flagCfg.Profile, "Write a pprof profile: cpu or mem.")
	flags.StringVar(&flagCfg.ProfilePath, "profile-path", flagCfg.ProfilePath, "Directory the profile is written to.")
	flags.BoolVarP(&flagCfg.Verbose, "verbose", "v", flagCfg.Verbose, "Log registry lifecycle events.")
	flags.StringSliceVar(&flagCfg.Systems, "systems", flagCfg.Systems, "Systems to enable.")

	return cmd
}

// applyFlags copies the flags the user actually set onto cfg, so flag
// defaults never mask environment or scenario values.
func applyFlags(cmd *cobra.Command, cfg *Config, flagCfg Config) {
	flags := cmd.Flags()
	if flags.Changed("duration") {
		cfg.Duration = flagCfg.Duration
	}
	if flags.Changed("entities") {
		cfg.Entities = flagCfg.Entities
	}
	if flags.Changed("seed") {
		cfg.Seed = flagCfg.Seed
	}
	if flags.Changed("churn") {
		cfg.Churn = flagCfg.Churn
	}
	if flags.Changed("gc-pause-metrics") {
		cfg.GCPauseMetrics = flagCfg.GCPauseMetrics
	}
	if flags.Changed("profile") {
		cfg.Profile = flagCfg.Profile
	}
	if flags.Changed("profile-path") {
		cfg.ProfilePath = flagCfg.ProfilePath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagCfg.Verbose
	}
	if flags.Changed("systems") {
		cfg.Systems = flagCfg.Systems
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func run(ctx context.Context, cfg Config) error {
	duration, err := cfg.validate()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	logger.Info().Msg("Starting ECS stress test...")

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.ProfilePath), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(cfg.ProfilePath), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	// 1. Build the registry, its components and systems, and the initial population
	logger.Info().Int("entities", cfg.Entities).Msg("Populating registry...")
	w, err := newWorld(cfg, ecs.WithLogger(logger))
	if err != nil {
		return err
	}
	ecslog.Registry(w.registry.Logger(), w.registry, zerolog.DebugLevel)
	logger.Info().Msg("Population complete.")

	// 2. Run the simulation loop
	report := &Report{Config: cfg}
	report.startMemory()

	logger.Info().Stringer("duration", duration).Msg("Running simulation...")
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			passStart := time.Now()
			if err := w.registry.RunSystems(); err != nil {
				return err
			}
			report.Pass.Samples = append(report.Pass.Samples, time.Since(passStart))
			report.Passes++
		}
	}

	report.Elapsed = time.Since(startTime)
	report.Pass.Finalize()
	report.endMemory()
	report.Registry = w.registry.CollectStats()
	report.Scheduler = w.registry.SchedulerStats()
	report.Expired = w.lifetime.Expired
	report.Spawned = w.churn.Spawned

	logger.Info().Msg("Simulation finished.")

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return eris.Wrap(err, "generate report")
	}
	fmt.Println("--- End of Report ---")

	logger.Info().Msg("Stress test complete.")
	return nil
}
