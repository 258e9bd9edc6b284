package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/sparsecs/ecs"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSystem remembers the elapsed time of every run.
type recordingSystem struct {
	elapsed []time.Duration
	log     *[]string
}

func (s *recordingSystem) Run(r *ecs.Registry, elapsed time.Duration) error {
	s.elapsed = append(s.elapsed, elapsed)
	if s.log != nil {
		*s.log = append(*s.log, "recording")
	}
	return nil
}

type secondSystem struct {
	log *[]string
}

func (s *secondSystem) Run(r *ecs.Registry, elapsed time.Duration) error {
	*s.log = append(*s.log, "second")
	return nil
}

var errSystemFailed = eris.New("system failed")

type failingSystem struct {
	runs int
}

func (s *failingSystem) Run(r *ecs.Registry, elapsed time.Duration) error {
	s.runs++
	return errSystemFailed
}

// MovementSystem advances every position by its velocity.
type MovementSystem struct{}

func (MovementSystem) Run(r *ecs.Registry, elapsed time.Duration, positions *ecs.SparseArray[Position], velocities *ecs.SparseArray[Velocity]) error {
	dt := float32(elapsed.Seconds())
	zip := ecs.Zip2[*ecs.Slot[Position], *ecs.Slot[Velocity]](positions, velocities)
	for row := range zip.All() {
		pos, vel := row.V1.Get(), row.V2.Get()
		if pos == nil || vel == nil {
			continue
		}
		pos.X += vel.DX * dt
		pos.Y += vel.DY * dt
	}
	return nil
}

func TestRegisteredSystemStartsDisabled(t *testing.T) {
	r := ecs.NewRegistry()
	sys := &recordingSystem{}
	ecs.RegisterSystem(r, sys)

	assert.True(t, ecs.IsSystemRegistered[recordingSystem](r))
	assert.False(t, ecs.IsSystemEnabled[recordingSystem](r))

	require.NoError(t, r.RunSystems())
	assert.Empty(t, sys.elapsed)
}

func TestSchedulerElapsed(t *testing.T) {
	clock := newFakeClock()
	r := ecs.NewRegistry(ecs.WithClock(clock))
	sys := &recordingSystem{}
	ecs.RegisterSystem(r, sys)
	ecs.EnableSystem[recordingSystem](r)

	require.NoError(t, r.RunSystems())
	clock.Advance(16 * time.Millisecond)
	require.NoError(t, r.RunSystems())
	clock.Advance(34 * time.Millisecond)
	require.NoError(t, r.RunSystems())

	assert.Equal(t, []time.Duration{0, 16 * time.Millisecond, 34 * time.Millisecond}, sys.elapsed)
	assert.Equal(t, 34*time.Millisecond, r.SchedulerStats().LastElapsed)
}

func TestSchedulerElapsedClockGoesBackwards(t *testing.T) {
	clock := newFakeClock()
	r := ecs.NewRegistry(ecs.WithClock(clock))
	sys := &recordingSystem{}
	ecs.RegisterSystem(r, sys)
	ecs.EnableSystem[recordingSystem](r)

	require.NoError(t, r.RunSystems())
	clock.Advance(-time.Second)
	require.NoError(t, r.RunSystems())

	assert.Equal(t, []time.Duration{0, 0}, sys.elapsed)
}

func TestSchedulerEnableDisable(t *testing.T) {
	r := ecs.NewRegistry()
	sys := &recordingSystem{}
	ecs.RegisterSystem(r, sys)

	// pointer and value type parameters name the same system
	ecs.EnableSystem[*recordingSystem](r)
	assert.True(t, ecs.IsSystemEnabled[recordingSystem](r))
	require.NoError(t, r.RunSystems())
	assert.Len(t, sys.elapsed, 1)

	ecs.DisableSystem[recordingSystem](r)
	assert.False(t, ecs.IsSystemEnabled[recordingSystem](r))
	require.NoError(t, r.RunSystems())
	assert.Len(t, sys.elapsed, 1)
}

func TestSchedulerUnknownSystemIsNoop(t *testing.T) {
	r := ecs.NewRegistry()

	ecs.EnableSystem[recordingSystem](r)
	assert.False(t, ecs.IsSystemEnabled[recordingSystem](r))
	ecs.DisableSystem[recordingSystem](r)
	assert.NoError(t, ecs.RunSingleSystem[recordingSystem](r))
	ecs.UnregisterSystem[recordingSystem](r)

	// enabling before registration does not carry over
	ecs.RegisterSystem(r, &recordingSystem{})
	assert.False(t, ecs.IsSystemEnabled[recordingSystem](r))
}

func TestSchedulerReregisterReplaces(t *testing.T) {
	r := ecs.NewRegistry()
	first := &recordingSystem{}
	second := &recordingSystem{}

	ecs.RegisterSystem(r, first)
	ecs.EnableSystem[recordingSystem](r)
	ecs.RegisterSystem(r, second)

	assert.True(t, ecs.IsSystemEnabled[recordingSystem](r), "re-registering keeps the enabled state")
	assert.Equal(t, 1, r.SchedulerStats().SystemCount)

	require.NoError(t, r.RunSystems())
	assert.Empty(t, first.elapsed)
	assert.Len(t, second.elapsed, 1)
}

func TestSchedulerUnregister(t *testing.T) {
	r := ecs.NewRegistry()
	sys := &recordingSystem{}
	ecs.RegisterSystem(r, sys)
	ecs.EnableSystem[recordingSystem](r)

	ecs.UnregisterSystem[recordingSystem](r)
	assert.False(t, ecs.IsSystemRegistered[recordingSystem](r))
	assert.False(t, ecs.IsSystemEnabled[recordingSystem](r))

	require.NoError(t, r.RunSystems())
	assert.Empty(t, sys.elapsed)

	ecs.RegisterSystem(r, sys)
	assert.False(t, ecs.IsSystemEnabled[recordingSystem](r))
}

func TestSchedulerRegistrationOrder(t *testing.T) {
	r := ecs.NewRegistry()
	var log []string
	ecs.RegisterSystem(r, &secondSystem{log: &log})
	ecs.RegisterSystem(r, &recordingSystem{log: &log})

	ecs.EnableSystem[recordingSystem](r)
	ecs.EnableSystem[secondSystem](r)

	require.NoError(t, r.RunSystems())
	require.NoError(t, r.RunSystems())
	assert.Equal(t, []string{"second", "recording", "second", "recording"}, log)
}

func TestRunSingleSystem(t *testing.T) {
	clock := newFakeClock()
	r := ecs.NewRegistry(ecs.WithClock(clock))
	sys := &recordingSystem{}
	ecs.RegisterSystem(r, sys)

	// runs while disabled
	require.NoError(t, ecs.RunSingleSystem[recordingSystem](r))
	assert.Equal(t, []time.Duration{0}, sys.elapsed)

	ecs.EnableSystem[recordingSystem](r)
	require.NoError(t, r.RunSystems())
	clock.Advance(10 * time.Millisecond)
	require.NoError(t, ecs.RunSingleSystem[recordingSystem](r))
	clock.Advance(10 * time.Millisecond)
	require.NoError(t, r.RunSystems())

	// the single run neither sees nor resets the scheduled elapsed time
	assert.Equal(t, []time.Duration{0, 0, 0, 20 * time.Millisecond}, sys.elapsed)
}

func TestSchedulerErrorAbortsPass(t *testing.T) {
	r := ecs.NewRegistry()
	var log []string
	ecs.RegisterSystem(r, &recordingSystem{log: &log})
	failing := &failingSystem{}
	ecs.RegisterSystem(r, failing)
	ecs.RegisterSystem(r, &secondSystem{log: &log})

	ecs.EnableSystem[recordingSystem](r)
	ecs.EnableSystem[failingSystem](r)
	ecs.EnableSystem[secondSystem](r)

	err := r.RunSystems()
	require.Error(t, err)
	assert.ErrorIs(t, err, errSystemFailed)
	assert.True(t, eris.Is(err, errSystemFailed))
	assert.Contains(t, err.Error(), "system failingSystem generated an error")

	assert.Equal(t, []string{"recording"}, log)
	assert.Equal(t, 1, failing.runs)

	stats := r.SchedulerStats()
	assert.Equal(t, int64(1), stats.Systems[1].ErrorCount)
	assert.Equal(t, int64(0), stats.Systems[2].ExecutionCount)
}

func TestSchedulerErrorStillFlushesCommands(t *testing.T) {
	r := newTestRegistry()
	e := r.CreateEntity()
	ecs.RegisterSystem(r, &failingSystem{})
	ecs.EnableSystem[failingSystem](r)

	r.Commands().DeleteEntity(e)
	require.Error(t, r.RunSystems())
	assert.False(t, r.IsAlive(e))
	assert.Equal(t, 0, r.Commands().Len())
}

func TestMovementSystem(t *testing.T) {
	clock := newFakeClock()
	r := newTestRegistry(ecs.WithClock(clock))

	moving := r.CreateEntity()
	_, err := ecs.AddComponent(r, moving, Position{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = ecs.AddComponent(r, moving, Velocity{DX: 1, DY: 2})
	require.NoError(t, err)

	still := r.CreateEntity()
	_, err = ecs.AddComponent(r, still, Position{X: 5, Y: 5})
	require.NoError(t, err)

	ecs.RegisterSystem2[Position, Velocity](r, MovementSystem{})
	ecs.EnableSystem[MovementSystem](r)

	require.NoError(t, r.RunSystems())
	clock.Advance(500 * time.Millisecond)
	require.NoError(t, r.RunSystems())

	positions, err := ecs.GetComponents[Position](r)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 0.5, Y: 1}, *positions.At(moving.Index()).Get())
	assert.Equal(t, Position{X: 5, Y: 5}, *positions.At(still.Index()).Get())
}

func TestSystemStorageUnregistered(t *testing.T) {
	r := newTestRegistry()
	ecs.RegisterSystem2[Position, Velocity](r, MovementSystem{})
	ecs.EnableSystem[MovementSystem](r)

	ecs.UnregisterComponent[Velocity](r)
	err := r.RunSystems()
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrComponentNotRegistered)
}

func TestSchedulerStats(t *testing.T) {
	r := newTestRegistry()
	ecs.RegisterSystem(r, &recordingSystem{})
	ecs.RegisterSystem2[Position, Velocity](r, MovementSystem{})
	ecs.EnableSystem[MovementSystem](r)

	for range 3 {
		require.NoError(t, r.RunSystems())
	}

	stats := r.SchedulerStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, 1, stats.EnabledCount)
	assert.Equal(t, int64(3), stats.TotalExecutions)

	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "recordingSystem", stats.Systems[0].Name)
	assert.False(t, stats.Systems[0].Enabled)
	assert.Equal(t, int64(0), stats.Systems[0].ExecutionCount)
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

	movement := stats.Systems[1]
	assert.Equal(t, "MovementSystem", movement.Name)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Velocity"}, movement.Components)
	assert.True(t, movement.Enabled)
	assert.Equal(t, int64(3), movement.ExecutionCount)
	assert.LessOrEqual(t, movement.MinDuration, movement.MaxDuration)
	assert.Equal(t, movement.TotalDuration/3, movement.AvgDuration)
}

func TestSetSystemEnabledByType(t *testing.T) {
	r := ecs.NewRegistry()
	ecs.RegisterSystem(r, &recordingSystem{})

	sys := r.SchedulerStats().Systems[0]
	r.SetSystemEnabled(sys.Type, true)
	assert.True(t, ecs.IsSystemEnabled[recordingSystem](r))
	r.SetSystemEnabled(sys.Type, false)
	assert.False(t, ecs.IsSystemEnabled[recordingSystem](r))
}

func TestRegistryRunStopsOnCancel(t *testing.T) {
	r := ecs.NewRegistry()
	sys := &recordingSystem{}
	ecs.RegisterSystem(r, sys)
	ecs.EnableSystem[recordingSystem](r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx, time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("run did not stop after context cancellation")
	}
	assert.NotEmpty(t, sys.elapsed)
}

func TestRegistryRunStopsOnError(t *testing.T) {
	r := ecs.NewRegistry()
	ecs.RegisterSystem(r, &failingSystem{})
	ecs.EnableSystem[failingSystem](r)

	err := r.Run(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, errSystemFailed)
}

func TestRegisterNilSystemPanics(t *testing.T) {
	r := ecs.NewRegistry()
	assert.Panics(t, func() {
		ecs.RegisterSystem(r, nil)
	})
}
