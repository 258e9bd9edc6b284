// Package log writes structured zerolog events describing a registry: its
// component storages, its systems and individual entities.
package log

import (
	"reflect"

	"github.com/rs/zerolog"

	"github.com/plus3/sparsecs/ecs"
)

// Loggable is the read-only surface of a registry the log helpers need.
// *ecs.Registry implements it.
type Loggable interface {
	Components() []ecs.ComponentInfo
	SchedulerStats() *ecs.SchedulerStats
	EntityComponents(e ecs.EntityId) []reflect.Type
}

func loadComponentIntoArrayLogger(component ecs.ComponentInfo, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Str("component_name", component.Name)
	dictLogger = dictLogger.Int("len", component.Len)
	dictLogger = dictLogger.Int("count", component.Count)
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	components := target.Components()
	zeroLoggerEvent.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = loadComponentIntoArrayLogger(component, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func loadSystemsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	stats := target.SchedulerStats()
	zeroLoggerEvent.Int("total_systems", stats.SystemCount)
	zeroLoggerEvent.Int("enabled_systems", stats.EnabledCount)
	arrayLogger := zerolog.Arr()
	for _, sys := range stats.Systems {
		dictLogger := zerolog.Dict().
			Str("system_name", sys.Name).
			Bool("enabled", sys.Enabled).
			Strs("components", sys.Components)
		arrayLogger = arrayLogger.Dict(dictLogger)
	}
	return zeroLoggerEvent.Array("systems", arrayLogger)
}

// Components logs every registered component storage.
func Components(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	loadComponentsToEvent(logger.WithLevel(level), target).Send()
}

// Systems logs every registered system and whether it is enabled.
func Systems(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	loadSystemsToEvent(logger.WithLevel(level), target).Send()
}

// Entity logs the components held by e.
func Entity(logger *zerolog.Logger, target Loggable, level zerolog.Level, e ecs.EntityId) {
	types := target.EntityComponents(e)
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	logger.WithLevel(level).
		Uint64("entity_id", uint64(e)).
		Strs("components", names).
		Send()
}

// Registry logs everything about the registry (components and systems).
func Registry(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent = loadSystemsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// SystemLogger creates a sub logger with the entry {"system": systemName}.
func SystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	newLogger := logger.With().Str("system", systemName).Logger()
	return &newLogger
}
