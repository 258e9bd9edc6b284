package ecs

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"time"

	"github.com/rotisserie/eris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	EnabledCount    int
	TotalExecutions int64
	LastElapsed     time.Duration
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Type           reflect.Type
	Name           string
	Components     []string
	Enabled        bool
	ExecutionCount int64
	ErrorCount     int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	errorCount     int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// systemEntry is the registration record for one system type. run looks up
// the storages the system declared and invokes it.
type systemEntry struct {
	name       string
	components []reflect.Type
	run        func(r *Registry, elapsed time.Duration) error
	stats      systemStatsInternal
}

// Scheduler holds one entry per registered system type and, independently,
// the set of system types that take part in scheduled passes.
type Scheduler struct {
	systems map[reflect.Type]*systemEntry
	order   []reflect.Type
	enabled map[reflect.Type]struct{}

	clock       Clock
	last        time.Time
	started     bool
	lastElapsed time.Duration
}

func newScheduler() *Scheduler {
	return &Scheduler{
		systems: make(map[reflect.Type]*systemEntry),
		enabled: make(map[reflect.Type]struct{}),
		clock:   systemClock{},
	}
}

// register stores run under key, replacing any previous closure. The
// enabled set is left as it is.
func (s *Scheduler) register(key reflect.Type, components []reflect.Type, run func(*Registry, time.Duration) error) *systemEntry {
	if entry, ok := s.systems[key]; ok {
		entry.components = components
		entry.run = run
		return entry
	}

	entry := &systemEntry{
		name:       systemName(key),
		components: components,
		run:        run,
		stats:      systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	s.systems[key] = entry
	s.order = append(s.order, key)
	return entry
}

func (s *Scheduler) unregister(key reflect.Type) bool {
	if _, ok := s.systems[key]; !ok {
		return false
	}
	delete(s.systems, key)
	delete(s.enabled, key)
	if i := slices.Index(s.order, key); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

func (s *Scheduler) setEnabled(key reflect.Type, enabled bool) {
	if !enabled {
		delete(s.enabled, key)
		return
	}
	if _, ok := s.systems[key]; ok {
		s.enabled[key] = struct{}{}
	}
}

func (s *Scheduler) isEnabled(key reflect.Type) bool {
	_, ok := s.enabled[key]
	return ok
}

// enabledKeys snapshots the enabled systems in registration order so a
// system may toggle others without disturbing the current pass.
func (s *Scheduler) enabledKeys() []reflect.Type {
	keys := make([]reflect.Type, 0, len(s.enabled))
	for _, key := range s.order {
		if s.isEnabled(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// tick returns the time since the previous tick, zero on the first one.
// A clock that steps backwards yields zero rather than a negative value.
func (s *Scheduler) tick() time.Duration {
	now := s.clock.Now()
	var elapsed time.Duration
	if s.started {
		elapsed = max(now.Sub(s.last), 0)
	}
	s.last = now
	s.started = true
	s.lastElapsed = elapsed
	return elapsed
}

func (s *Scheduler) execute(r *Registry, entry *systemEntry, elapsed time.Duration) error {
	start := time.Now()
	err := entry.run(r, elapsed)
	duration := time.Since(start)

	stats := &entry.stats
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}

	if err != nil {
		stats.errorCount++
		return eris.Wrapf(err, "system %s generated an error", entry.name)
	}
	return nil
}

// RunSystems runs every enabled system once with the time elapsed since the
// previous call, then applies queued commands. The first failing system
// ends the pass.
func (r *Registry) RunSystems() error {
	elapsed := r.scheduler.tick()

	var err error
	for _, key := range r.scheduler.enabledKeys() {
		entry, ok := r.scheduler.systems[key]
		if !ok {
			continue
		}
		if err = r.scheduler.execute(r, entry, elapsed); err != nil {
			break
		}
	}

	return r.flushCommands(err)
}

// Run executes RunSystems at the given interval until the context is
// cancelled or a pass fails.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.RunSystems(); err != nil {
				return err
			}
		}
	}
}

func (r *Registry) runSingle(key reflect.Type) error {
	entry, ok := r.scheduler.systems[key]
	if !ok {
		return nil
	}
	return r.flushCommands(r.scheduler.execute(r, entry, 0))
}

func (r *Registry) flushCommands(err error) error {
	if flushErr := r.commands.Flush(r); flushErr != nil {
		return errors.Join(err, flushErr)
	}
	return err
}

// SetSystemEnabled toggles a system by type. It backs the debug UI, which
// only knows systems through SchedulerStats.
func (r *Registry) SetSystemEnabled(t reflect.Type, enabled bool) {
	r.scheduler.setEnabled(systemKey(t), enabled)
}

// SchedulerStats returns statistics about system execution, in
// registration order.
func (r *Registry) SchedulerStats() *SchedulerStats {
	s := r.scheduler
	stats := &SchedulerStats{
		SystemCount:  len(s.order),
		EnabledCount: len(s.enabled),
		LastElapsed:  s.lastElapsed,
		Systems:      make([]SystemStats, 0, len(s.order)),
	}

	for _, key := range s.order {
		entry := s.systems[key]
		internal := entry.stats

		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		components := make([]string, len(entry.components))
		for i, t := range entry.components {
			components[i] = t.String()
		}

		stats.Systems = append(stats.Systems, SystemStats{
			Type:           key,
			Name:           entry.name,
			Components:     components,
			Enabled:        s.isEnabled(key),
			ExecutionCount: internal.executionCount,
			ErrorCount:     internal.errorCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		})
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
