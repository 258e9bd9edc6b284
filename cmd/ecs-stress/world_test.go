package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sparsecs/ecs"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func testConfig(entities int, mix Mix, systems ...string) Config {
	cfg := defaultConfig()
	cfg.Entities = entities
	cfg.Mix = mix
	cfg.Systems = systems
	cfg.Churn = 0
	return cfg
}

func count[T any](t *testing.T, r *ecs.Registry) int {
	t.Helper()
	sa, err := ecs.ReadComponents[T](r)
	require.NoError(t, err)
	return sa.Count()
}

func TestNewWorldPopulates(t *testing.T) {
	w, err := newWorld(testConfig(100, Mix{Velocity: 1}))
	require.NoError(t, err)

	assert.Equal(t, 100, w.registry.EntityCount())
	assert.Equal(t, 100, count[Position](t, w.registry))
	assert.Equal(t, 100, count[Velocity](t, w.registry))
	assert.Equal(t, 0, count[Health](t, w.registry))
	assert.Equal(t, 0, w.registry.SchedulerStats().EnabledCount)
}

func TestNewWorldIsDeterministic(t *testing.T) {
	mix := defaultConfig().Mix
	a, err := newWorld(testConfig(200, mix))
	require.NoError(t, err)
	b, err := newWorld(testConfig(200, mix))
	require.NoError(t, err)

	assert.Equal(t, count[Health](t, a.registry), count[Health](t, b.registry))
	assert.Equal(t, count[Tag](t, a.registry), count[Tag](t, b.registry))
}

func TestNewWorldEnablesNamedSystems(t *testing.T) {
	w, err := newWorld(testConfig(0, Mix{}, "movement", "regen"))
	require.NoError(t, err)

	assert.True(t, ecs.IsSystemEnabled[MovementSystem](w.registry))
	assert.True(t, ecs.IsSystemEnabled[RegenSystem](w.registry))
	assert.False(t, ecs.IsSystemEnabled[LifetimeSystem](w.registry))
	assert.False(t, ecs.IsSystemEnabled[ChurnSystem](w.registry))
}

func TestMovementSystemWraps(t *testing.T) {
	positions := ecs.NewSparseArray[Position](0)
	velocities := ecs.NewSparseArray[Velocity](0)
	positions.Insert(0, Position{X: 999, Y: 0})
	velocities.Insert(0, Velocity{DX: 2, DY: -1})
	positions.Insert(1, Position{X: 5, Y: 5})

	require.NoError(t, MovementSystem{}.Run(nil, time.Second, positions, velocities))

	assert.Equal(t, Position{X: 1, Y: 999}, *positions.At(0).Get())
	assert.Equal(t, Position{X: 5, Y: 5}, *positions.At(1).Get())
}

func TestRegenSystemCapsAtMax(t *testing.T) {
	healths := ecs.NewSparseArray[Health](0)
	regens := ecs.NewSparseArray[Regen](0)
	healths.Insert(0, Health{Current: 90, Max: 100})
	regens.Insert(0, Regen{PerSecond: 4})
	healths.Insert(1, Health{Current: 10, Max: 100})
	regens.Insert(1, Regen{PerSecond: 4})

	require.NoError(t, RegenSystem{}.Run(nil, 5*time.Second, healths, regens))

	assert.Equal(t, 100.0, healths.At(0).Get().Current)
	assert.Equal(t, 30.0, healths.At(1).Get().Current)
}

func TestLifetimeSystemDeletesExpired(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0)}
	w, err := newWorld(testConfig(10, Mix{Lifetime: 1}, "lifetime"), ecs.WithClock(clock))
	require.NoError(t, err)

	require.NoError(t, w.registry.RunSystems())
	assert.Equal(t, 10, w.registry.EntityCount())

	clock.now = clock.now.Add(6 * time.Second)
	require.NoError(t, w.registry.RunSystems())
	assert.Equal(t, 0, w.registry.EntityCount())
	assert.Equal(t, 10, w.lifetime.Expired)
}

func TestChurnSystemRestoresPopulation(t *testing.T) {
	w, err := newWorld(testConfig(10, Mix{Velocity: 1}, "churn"))
	require.NoError(t, err)

	for _, e := range []ecs.EntityId{2, 5, 7} {
		w.registry.DeleteEntity(e)
	}
	require.NoError(t, w.registry.RunSystems())

	assert.Equal(t, 10, w.registry.EntityCount())
	assert.Equal(t, 3, w.churn.Spawned)
	// replacements reuse the freed ids
	assert.Equal(t, 10, count[Velocity](t, w.registry))
	assert.Equal(t, 10, w.registry.CollectStats().IssuedCount)
}

func TestChurnSystemDeletesAtRate(t *testing.T) {
	cfg := testConfig(100, Mix{}, "churn")
	cfg.Churn = 0.1
	w, err := newWorld(cfg)
	require.NoError(t, err)

	// replacements are sized before the pass's deletions land
	require.NoError(t, w.registry.RunSystems())
	afterFirst := w.registry.EntityCount()
	assert.GreaterOrEqual(t, afterFirst, 90)
	assert.Less(t, afterFirst, 100)
	assert.Equal(t, 0, w.churn.Spawned)

	require.NoError(t, w.registry.RunSystems())
	assert.Equal(t, 100-afterFirst, w.churn.Spawned)
}

func TestSystemsLogThroughTheirOwnLogger(t *testing.T) {
	var buf bytes.Buffer
	clock := &stepClock{now: time.Unix(0, 0)}
	cfg := testConfig(10, Mix{Lifetime: 1}, "lifetime", "churn")
	w, err := newWorld(cfg, ecs.WithClock(clock), ecs.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	require.NoError(t, w.registry.RunSystems())
	clock.now = clock.now.Add(6 * time.Second)
	require.NoError(t, w.registry.RunSystems())
	require.NoError(t, w.registry.RunSystems())

	out := buf.String()
	assert.Contains(t, out, `"system":"LifetimeSystem","expired":10,"message":"lifetimes ended"`)
	assert.Contains(t, out, `"system":"ChurnSystem"`)
	assert.Contains(t, out, `"spawns":10`)
}
