package ecs

import (
	"iter"
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// componentEntry is the type-erased directory record for one component
// type. destroy erases the entity's slot in whatever storage is registered
// for the type at the time it runs.
type componentEntry struct {
	storage componentStorage
	destroy func(r *Registry, e EntityId)
}

// Registry owns the component directory, the entity lifecycle and the
// system scheduler. Each Registry is independent; nothing is shared
// between instances.
type Registry struct {
	components map[reflect.Type]*componentEntry
	order      []reflect.Type
	entities   *entityPool
	scheduler  *Scheduler
	commands   *Commands
	logger     zerolog.Logger
	capacity   int
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		components: make(map[reflect.Type]*componentEntry),
		entities:   newEntityPool(0),
		scheduler:  newScheduler(),
		commands:   newCommands(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Logger returns the logger the registry was configured with.
func (r *Registry) Logger() *zerolog.Logger {
	return &r.logger
}

// Commands returns the queue of structural changes applied after the
// current scheduling pass.
func (r *Registry) Commands() *Commands {
	return r.commands
}

// RegisterComponent makes T known to the registry and returns its storage.
// Registering an already known type returns the existing storage untouched.
func RegisterComponent[T any](r *Registry) *SparseArray[T] {
	t := reflect.TypeFor[T]()
	if entry, ok := r.components[t]; ok {
		return entry.storage.(*SparseArray[T])
	}

	storage := NewSparseArray[T](r.capacity)
	r.components[t] = &componentEntry{
		storage: storage,
		destroy: func(r *Registry, e EntityId) {
			if sa, err := GetComponents[T](r); err == nil {
				sa.Erase(e.Index())
			}
		},
	}
	r.order = append(r.order, t)

	r.logger.Debug().Str("component", t.String()).Msg("component registered")
	return storage
}

// UnregisterComponent drops T and its storage. Unknown types are ignored.
func UnregisterComponent[T any](r *Registry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.components[t]; !ok {
		return
	}
	delete(r.components, t)
	if i := slices.Index(r.order, t); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	r.logger.Debug().Str("component", t.String()).Msg("component unregistered")
}

// GetComponents returns the mutable storage for T.
func GetComponents[T any](r *Registry) (*SparseArray[T], error) {
	t := reflect.TypeFor[T]()
	entry, ok := r.components[t]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotRegistered, "component %s", t)
	}
	return entry.storage.(*SparseArray[T]), nil
}

// ReadComponents returns a read-only view of the storage for T.
func ReadComponents[T any](r *Registry) (ReadOnlyArray[T], error) {
	sa, err := GetComponents[T](r)
	if err != nil {
		return ReadOnlyArray[T]{}, err
	}
	return sa.ReadOnly(), nil
}

// EmplaceComponent constructs T in place at e's slot. init may be nil, in
// which case the slot holds the zero value.
func EmplaceComponent[T any](r *Registry, e EntityId, init func(*T)) (*Slot[T], error) {
	sa, err := GetComponents[T](r)
	if err != nil {
		return nil, err
	}
	return sa.Emplace(e.Index(), init), nil
}

// AddComponent stores value at e's slot, replacing any previous value.
func AddComponent[T any](r *Registry, e EntityId, value T) (*Slot[T], error) {
	sa, err := GetComponents[T](r)
	if err != nil {
		return nil, err
	}
	return sa.Insert(e.Index(), value), nil
}

// RemoveComponent empties e's slot for T. Removing an absent component is
// not an error.
func RemoveComponent[T any](r *Registry, e EntityId) error {
	t := reflect.TypeFor[T]()
	entry, ok := r.components[t]
	if !ok {
		return eris.Wrapf(ErrComponentNotRegistered, "component %s", t)
	}
	entry.destroy(r, e)
	return nil
}

// HasComponent reports whether e holds a T.
func HasComponent[T any](r *Registry, e EntityId) bool {
	entry, ok := r.components[reflect.TypeFor[T]()]
	return ok && entry.storage.has(e.Index())
}

// CreateEntity returns the smallest released id, or a fresh one when none
// has been released.
func (r *Registry) CreateEntity() EntityId {
	return r.entities.create()
}

// EntityFromIndex converts a storage index to an entity id. It does not
// check that the id was ever issued.
func (r *Registry) EntityFromIndex(index int) EntityId {
	if index < 0 {
		panic("ecs: negative entity index")
	}
	return EntityId(index)
}

// DeleteEntity erases every component e holds and releases its id for
// reuse. Deleting an id twice releases it once.
func (r *Registry) DeleteEntity(e EntityId) {
	for _, t := range r.order {
		r.components[t].destroy(r, e)
	}
	r.entities.release(e)
}

// IsAlive reports whether e was issued and has not been released since.
func (r *Registry) IsAlive(e EntityId) bool {
	return r.entities.alive(e)
}

// EntityCount returns the number of live entities.
func (r *Registry) EntityCount() int {
	return r.entities.liveCount()
}

// Entities yields live entity ids in ascending order.
func (r *Registry) Entities() iter.Seq[EntityId] {
	return r.entities.all
}

// ComponentInfo describes one registered component type.
type ComponentInfo struct {
	Type  reflect.Type
	Name  string
	Len   int
	Count int
}

// Components describes the registered component types in registration
// order.
func (r *Registry) Components() []ComponentInfo {
	infos := make([]ComponentInfo, 0, len(r.order))
	for _, t := range r.order {
		storage := r.components[t].storage
		infos = append(infos, ComponentInfo{
			Type:  t,
			Name:  t.String(),
			Len:   storage.Len(),
			Count: storage.Count(),
		})
	}
	return infos
}

// EntityComponents returns the types of the components e holds, in
// registration order.
func (r *Registry) EntityComponents(e EntityId) []reflect.Type {
	var types []reflect.Type
	for _, t := range r.order {
		if r.components[t].storage.has(e.Index()) {
			types = append(types, t)
		}
	}
	return types
}

// ComponentValue returns a pointer to e's component of type t, boxed in an
// interface, or nil when e does not hold one or t is not registered.
func (r *Registry) ComponentValue(t reflect.Type, e EntityId) any {
	entry, ok := r.components[t]
	if !ok {
		return nil
	}
	return entry.storage.value(e.Index())
}

// storageFor returns the type-erased storage registered for t.
func (r *Registry) storageFor(t reflect.Type) (componentStorage, error) {
	entry, ok := r.components[t]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotRegistered, "component %s", t)
	}
	return entry.storage, nil
}
