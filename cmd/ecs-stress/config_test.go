package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	duration, err := cfg.validate()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, duration)
	assert.Equal(t, []string{"churn", "lifetime", "movement", "regen"}, cfg.Systems)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unparsable duration", func(c *Config) { c.Duration = "soon" }},
		{"negative duration", func(c *Config) { c.Duration = "-1s" }},
		{"negative entities", func(c *Config) { c.Entities = -1 }},
		{"churn above one", func(c *Config) { c.Churn = 1.5 }},
		{"unknown profile", func(c *Config) { c.Profile = "block" }},
		{"unknown system", func(c *Config) { c.Systems = []string{"movement", "physics"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			_, err := cfg.validate()
			assert.Error(t, err)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ECS_STRESS_ENTITIES", "42")
	t.Setenv("ECS_STRESS_DURATION", "1m")
	t.Setenv("ECS_STRESS_VERBOSE", "true")

	cfg := defaultConfig()
	require.NoError(t, loadEnv(&cfg))

	assert.Equal(t, 42, cfg.Entities)
	assert.Equal(t, "1m", cfg.Duration)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, 0.8, cfg.Mix.Velocity)
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	scenario := `
entities: 500
churn: 0.05
mix:
  velocity: 1
  lifetime: 0.5
systems:
  - movement
  - lifetime
`
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o600))

	cfg := defaultConfig()
	require.NoError(t, loadScenario(&cfg, path))

	assert.Equal(t, 500, cfg.Entities)
	assert.Equal(t, 0.05, cfg.Churn)
	assert.Equal(t, 1.0, cfg.Mix.Velocity)
	assert.Equal(t, 0.5, cfg.Mix.Lifetime)
	assert.Equal(t, []string{"movement", "lifetime"}, cfg.Systems)

	// keys missing from the file keep their previous values
	assert.Equal(t, "10s", cfg.Duration)
	assert.Equal(t, 0.5, cfg.Mix.Health)
}

func TestLoadScenarioErrors(t *testing.T) {
	cfg := defaultConfig()
	assert.Error(t, loadScenario(&cfg, filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities: [not, a, number]"), 0o600))
	assert.Error(t, loadScenario(&cfg, path))
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	flagCfg := defaultConfig()
	cmd := &cobra.Command{}
	cmd.Flags().IntVar(&flagCfg.Entities, "entities", flagCfg.Entities, "")
	cmd.Flags().StringVar(&flagCfg.Duration, "duration", flagCfg.Duration, "")
	require.NoError(t, cmd.Flags().Set("entities", "7"))

	cfg := defaultConfig()
	cfg.Duration = "3s"
	applyFlags(cmd, &cfg, flagCfg)

	assert.Equal(t, 7, cfg.Entities)
	assert.Equal(t, "3s", cfg.Duration, "an unset flag must not mask an earlier source")
}

func TestRootCommandRuns(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--duration", "50ms",
		"--entities", "50",
		"--systems", "movement,lifetime,churn",
	})
	assert.NoError(t, cmd.Execute())
}

func TestRootCommandRejectsBadConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--duration", "0s"})
	cmd.SilenceErrors = true
	assert.Error(t, cmd.Execute())
}
