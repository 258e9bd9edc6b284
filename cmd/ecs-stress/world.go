package main

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/plus3/sparsecs/ecs"
	ecslog "github.com/plus3/sparsecs/ecs/log"
)

const worldSize = 1000.0

type Position struct{ X, Y float64 }

type Velocity struct{ DX, DY float64 }

type Health struct{ Current, Max float64 }

type Regen struct{ PerSecond float64 }

type Lifetime struct{ Remaining time.Duration }

type Tag struct{ Name string }

func registerComponents(r *ecs.Registry) {
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Health](r)
	ecs.RegisterComponent[Regen](r)
	ecs.RegisterComponent[Lifetime](r)
	ecs.RegisterComponent[Tag](r)
}

// spawner attaches a random component mix to new entities.
type spawner struct {
	rng *rand.Rand
	mix Mix
}

func (s *spawner) populate(r *ecs.Registry, e ecs.EntityId) error {
	if _, err := ecs.AddComponent(r, e, Position{X: s.rng.Float64() * worldSize, Y: s.rng.Float64() * worldSize}); err != nil {
		return err
	}
	if s.roll(s.mix.Velocity) {
		if _, err := ecs.AddComponent(r, e, Velocity{DX: s.rng.NormFloat64() * 10, DY: s.rng.NormFloat64() * 10}); err != nil {
			return err
		}
	}
	if s.roll(s.mix.Health) {
		if _, err := ecs.EmplaceComponent(r, e, func(h *Health) {
			h.Max = 100
			h.Current = s.rng.Float64() * h.Max
		}); err != nil {
			return err
		}
	}
	if s.roll(s.mix.Regen) {
		if _, err := ecs.AddComponent(r, e, Regen{PerSecond: 1 + s.rng.Float64()*4}); err != nil {
			return err
		}
	}
	if s.roll(s.mix.Lifetime) {
		lifetime := time.Duration(1+s.rng.IntN(5)) * time.Second
		if _, err := ecs.AddComponent(r, e, Lifetime{Remaining: lifetime}); err != nil {
			return err
		}
	}
	if s.roll(s.mix.Tag) {
		if _, err := ecs.AddComponent(r, e, Tag{Name: "tagged"}); err != nil {
			return err
		}
	}
	return nil
}

func (s *spawner) roll(probability float64) bool {
	return s.rng.Float64() < probability
}

// MovementSystem integrates velocity into position and wraps positions
// around the world edges.
type MovementSystem struct{}

func (MovementSystem) Run(_ *ecs.Registry, elapsed time.Duration, positions *ecs.SparseArray[Position], velocities *ecs.SparseArray[Velocity]) error {
	dt := elapsed.Seconds()
	for row := range ecs.Zip2[*ecs.Slot[Position], *ecs.Slot[Velocity]](positions, velocities).All() {
		pos, vel := row.V1.Get(), row.V2.Get()
		if pos == nil || vel == nil {
			continue
		}
		pos.X = wrap(pos.X + vel.DX*dt)
		pos.Y = wrap(pos.Y + vel.DY*dt)
	}
	return nil
}

func wrap(v float64) float64 {
	for v < 0 {
		v += worldSize
	}
	for v >= worldSize {
		v -= worldSize
	}
	return v
}

// RegenSystem heals entities up to their maximum health.
type RegenSystem struct{}

func (RegenSystem) Run(_ *ecs.Registry, elapsed time.Duration, healths *ecs.SparseArray[Health], regens *ecs.SparseArray[Regen]) error {
	dt := elapsed.Seconds()
	for row := range ecs.Zip2[*ecs.Slot[Health], *ecs.Slot[Regen]](healths, regens).All() {
		health, regen := row.V1.Get(), row.V2.Get()
		if health == nil || regen == nil {
			continue
		}
		health.Current = min(health.Current+regen.PerSecond*dt, health.Max)
	}
	return nil
}

// LifetimeSystem counts lifetimes down and deletes expired entities once
// the pass is over.
type LifetimeSystem struct {
	Expired int
	logger  *zerolog.Logger
}

func (s *LifetimeSystem) Run(r *ecs.Registry, elapsed time.Duration, lifetimes *ecs.SparseArray[Lifetime]) error {
	expired := 0
	for index, lifetime := range lifetimes.Values() {
		lifetime.Remaining -= elapsed
		if lifetime.Remaining <= 0 {
			r.Commands().DeleteEntity(r.EntityFromIndex(index))
			expired++
		}
	}
	s.Expired += expired
	if expired > 0 {
		s.logger.Debug().Int("expired", expired).Msg("lifetimes ended")
	}
	return nil
}

// ChurnSystem keeps the population near its target: it deletes a fraction
// of random entities each pass and spawns replacements for everything that
// went missing.
type ChurnSystem struct {
	Target  int
	Rate    float64
	Spawned int
	spawner *spawner
	logger  *zerolog.Logger
}

func (s *ChurnSystem) Run(r *ecs.Registry, _ time.Duration) error {
	stats := r.CollectStats()
	live := stats.EntityCount
	deletes := 0
	if stats.IssuedCount > 0 && s.Rate > 0 {
		deletes = int(float64(live) * s.Rate)
		for range deletes {
			// Deleting an id that is already free is harmless.
			r.Commands().DeleteEntity(ecs.EntityId(s.spawner.rng.IntN(stats.IssuedCount)))
		}
	}

	spawns := max(s.Target-live, 0)
	for range spawns {
		r.Commands().Spawn(s.spawner.populate)
	}
	s.Spawned += spawns

	if deletes > 0 || spawns > 0 {
		s.logger.Debug().Int("live", live).Int("deletes", deletes).Int("spawns", spawns).Msg("churn queued")
	}
	return nil
}

type world struct {
	registry *ecs.Registry
	lifetime *LifetimeSystem
	churn    *ChurnSystem
}

// systemEnablers enables a stress system by the name used in scenarios.
var systemEnablers = map[string]func(r *ecs.Registry){
	"movement": ecs.EnableSystem[MovementSystem],
	"regen":    ecs.EnableSystem[RegenSystem],
	"lifetime": ecs.EnableSystem[LifetimeSystem],
	"churn":    ecs.EnableSystem[ChurnSystem],
}

func allSystemNames() []string {
	names := make([]string, 0, len(systemEnablers))
	for name := range systemEnablers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// newWorld builds a registry populated per cfg with the named systems
// enabled.
func newWorld(cfg Config, opts ...ecs.Option) (*world, error) {
	r := ecs.NewRegistry(append([]ecs.Option{ecs.WithInitialCapacity(cfg.Entities)}, opts...)...)
	registerComponents(r)

	sp := &spawner{rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)), mix: cfg.Mix}
	w := &world{
		registry: r,
		lifetime: &LifetimeSystem{logger: ecslog.SystemLogger(r.Logger(), "LifetimeSystem")},
		churn: &ChurnSystem{
			Target:  cfg.Entities,
			Rate:    cfg.Churn,
			spawner: sp,
			logger:  ecslog.SystemLogger(r.Logger(), "ChurnSystem"),
		},
	}

	ecs.RegisterSystem2[Position, Velocity](r, MovementSystem{})
	ecs.RegisterSystem2[Health, Regen](r, RegenSystem{})
	ecs.RegisterSystem1[Lifetime](r, w.lifetime)
	ecs.RegisterSystem(r, w.churn)
	for _, name := range cfg.Systems {
		systemEnablers[name](r)
	}

	for range cfg.Entities {
		if err := sp.populate(r, r.CreateEntity()); err != nil {
			return nil, err
		}
	}
	return w, nil
}
