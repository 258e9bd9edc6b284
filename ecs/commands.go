package ecs

import (
	"errors"
	"reflect"

	"github.com/rotisserie/eris"
)

// Commands buffers structural changes requested while systems run. The
// buffer is applied after each scheduling pass so a system never grows or
// shrinks a storage it is iterating.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	init func(r *Registry, e EntityId) error
}

type addComponentCommand struct {
	entity EntityId
	apply  func(r *Registry) error
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after every other queued command.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues the creation of an entity. init, when not nil, receives the
// new id and typically attaches its components.
func (c *Commands) Spawn(init func(r *Registry, e EntityId) error) {
	c.spawns = append(c.spawns, spawnCommand{init: init})
}

// DeleteEntity queues the deletion of entity. Queued additions and removals
// for the same entity are dropped.
func (c *Commands) DeleteEntity(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddCommand queues storing value as entity's T component.
func AddCommand[T any](c *Commands, entity EntityId, value T) {
	c.adds = append(c.adds, addComponentCommand{
		entity: entity,
		apply: func(r *Registry) error {
			_, err := AddComponent(r, entity, value)
			return err
		},
	})
}

// RemoveCommand queues removing entity's T component.
func RemoveCommand[T any](c *Commands, entity EntityId) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: reflect.TypeFor[T](),
	})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the queued commands to r in the order deletes, removes,
// adds, spawns, defers. The buffer is emptied before anything is applied,
// so commands queued by spawn inits or deferred funcs wait for the next
// flush. A failing command does not stop the ones after it; all failures
// are returned joined.
func (c *Commands) Flush(r *Registry) error {
	if c.Len() == 0 {
		return nil
	}

	queued := *c
	*c = Commands{}

	var errs []error
	deletedEntities := make(map[EntityId]bool)

	for _, cmd := range queued.deletes {
		r.DeleteEntity(cmd)
		deletedEntities[cmd] = true
	}

	for _, cmd := range queued.removes {
		if deletedEntities[cmd.entity] {
			continue
		}
		entry, ok := r.components[cmd.compType]
		if !ok {
			errs = append(errs, eris.Wrapf(ErrComponentNotRegistered, "component %s", cmd.compType))
			continue
		}
		entry.destroy(r, cmd.entity)
	}

	for _, cmd := range queued.adds {
		if deletedEntities[cmd.entity] {
			continue
		}
		if err := cmd.apply(r); err != nil {
			errs = append(errs, err)
		}
	}

	// Spawns run after deletes, so a spawned entity may reuse an id deleted
	// in the same flush.
	for _, cmd := range queued.spawns {
		e := r.CreateEntity()
		if cmd.init == nil {
			continue
		}
		if err := cmd.init(r, e); err != nil {
			errs = append(errs, eris.Wrapf(err, "spawn entity %d", e))
		}
	}

	for _, df := range queued.defers {
		df.fn()
	}

	return errors.Join(errs...)
}
