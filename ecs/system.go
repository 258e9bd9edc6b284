package ecs

import (
	"reflect"
	"time"
)

// System is a behavior that needs no component storages. Implementations
// declaring storages use System1 through System4 instead.
//
// A system is identified by its type: registering a second value of the
// same type replaces the first. Pointer and value receivers of the same
// struct share one identity.
type System interface {
	Run(r *Registry, elapsed time.Duration) error
}

// RegisterSystem registers sys. A newly registered system is disabled until
// EnableSystem is called for its type.
func RegisterSystem(r *Registry, sys System) {
	r.registerSystem(sys, nil, func(r *Registry, elapsed time.Duration) error {
		return sys.Run(r, elapsed)
	})
}

// UnregisterSystem removes S and its enabled state.
func UnregisterSystem[S any](r *Registry) {
	key := systemKey(reflect.TypeFor[S]())
	if r.scheduler.unregister(key) {
		r.logger.Debug().Str("system", systemName(key)).Msg("system unregistered")
	}
}

// EnableSystem adds S to scheduled passes. Unknown systems are ignored.
func EnableSystem[S any](r *Registry) {
	r.scheduler.setEnabled(systemKey(reflect.TypeFor[S]()), true)
}

// DisableSystem removes S from scheduled passes.
func DisableSystem[S any](r *Registry) {
	r.scheduler.setEnabled(systemKey(reflect.TypeFor[S]()), false)
}

// IsSystemEnabled reports whether S takes part in scheduled passes.
func IsSystemEnabled[S any](r *Registry) bool {
	return r.scheduler.isEnabled(systemKey(reflect.TypeFor[S]()))
}

// IsSystemRegistered reports whether a system of type S is registered.
func IsSystemRegistered[S any](r *Registry) bool {
	_, ok := r.scheduler.systems[systemKey(reflect.TypeFor[S]())]
	return ok
}

// RunSingleSystem runs S once with zero elapsed time, enabled or not, and
// applies queued commands. It leaves the time of the last scheduled pass
// alone. Unknown systems are ignored.
func RunSingleSystem[S any](r *Registry) error {
	return r.runSingle(systemKey(reflect.TypeFor[S]()))
}

func (r *Registry) registerSystem(sys any, components []reflect.Type, run func(*Registry, time.Duration) error) {
	if sys == nil {
		panic("ecs: nil system")
	}
	key := systemKey(reflect.TypeOf(sys))
	entry := r.scheduler.register(key, components, run)

	names := make([]string, len(components))
	for i, t := range components {
		names[i] = t.String()
	}
	r.logger.Debug().Str("system", entry.name).Strs("components", names).Msg("system registered")
}

func systemKey(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func systemName(key reflect.Type) string {
	if name := key.Name(); name != "" {
		return name
	}
	return key.String()
}
