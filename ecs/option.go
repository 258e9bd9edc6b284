package ecs

import (
	"time"

	"github.com/rs/zerolog"
)

// Clock supplies the time readings the scheduler turns into elapsed time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithClock replaces the clock used to compute elapsed time between
// scheduling passes. time.Now is used by default.
func WithClock(clock Clock) Option {
	return func(r *Registry) {
		if clock != nil {
			r.scheduler.clock = clock
		}
	}
}

// WithInitialCapacity preallocates storage for the expected number of
// entities.
func WithInitialCapacity(entities int) Option {
	return func(r *Registry) {
		r.capacity = entities
		r.entities = newEntityPool(entities)
	}
}
