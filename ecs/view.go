package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/rotisserie/eris"
)

// View represents a query for entities with a specific combination of components
// The type T should be a struct with embedded pointer fields for each component type
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
type View[T any] struct {
	registry    *Registry
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView creates a new view for the given struct type
// The struct T should have embedded or named fields that are pointers to component types
// Embedded fields are always required
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
func NewView[T any](r *Registry) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	types := make([]reflect.Type, 0, structType.NumField())
	optional := make([]bool, 0, structType.NumField())
	fieldOffset := make([]uintptr, 0, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		types = append(types, fieldType.Elem())
		fieldOffset = append(fieldOffset, field.Offset)

		// Embedded fields are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}
		optional = append(optional, isOptional)
	}

	return &View[T]{
		registry:    r,
		types:       types,
		optional:    optional,
		fieldOffset: fieldOffset,
	}
}

// storages looks up the current storage for every field. An unregistered
// optional component yields a nil storage; an unregistered required one is
// an error.
func (v *View[T]) storages() ([]componentStorage, error) {
	storages := make([]componentStorage, len(v.types))
	for i, t := range v.types {
		storage, err := v.registry.storageFor(t)
		if err != nil {
			if v.optional[i] {
				continue
			}
			return nil, eris.Wrap(err, "view")
		}
		storages[i] = storage
	}
	return storages, nil
}

// bound returns the number of indices worth visiting: the shortest required
// storage, or the longest optional one when nothing is required.
func (v *View[T]) bound(storages []componentStorage) int {
	bound, required := 0, false
	for i, storage := range storages {
		if v.optional[i] {
			continue
		}
		if !required || storage.Len() < bound {
			bound = storage.Len()
		}
		required = true
	}
	if required {
		return bound
	}
	for _, storage := range storages {
		if storage != nil {
			bound = max(bound, storage.Len())
		}
	}
	return bound
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, storages []componentStorage, index int) bool {
	for i, storage := range storages {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		var component unsafe.Pointer
		if storage != nil {
			component = storage.pointer(index)
		}
		if component == nil {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = component
	}
	return true
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(id EntityId, ptr *T) (bool, error) {
	storages, err := v.storages()
	if err != nil {
		return false, err
	}
	return v.populateResult(unsafe.Pointer(ptr), storages, id.Index()), nil
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) (*T, error) {
	var result T
	ok, err := v.Fill(id, &result)
	if !ok {
		return nil, err
	}
	return &result, nil
}

// Iter returns an iterator over all entities that have all the required components for this view
// The iterator yields (EntityId, T) pairs where T is the populated view struct
// Optional components are set to nil if not present
func (v *View[T]) Iter() (iter.Seq2[EntityId, T], error) {
	storages, err := v.storages()
	if err != nil {
		return nil, err
	}
	bound := v.bound(storages)

	return func(yield func(EntityId, T) bool) {
		var result T
		resultPtr := unsafe.Pointer(&result)

		for index := range bound {
			if !v.populateResult(resultPtr, storages, index) {
				continue
			}
			if !yield(EntityId(index), result) {
				return
			}
		}
	}, nil
}

// Values returns an iterator over just the view structs (without entity IDs)
// This is useful when you only care about the component data, not which entity it belongs to
func (v *View[T]) Values() (iter.Seq[T], error) {
	entities, err := v.Iter()
	if err != nil {
		return nil, err
	}
	return func(yield func(T) bool) {
		for _, value := range entities {
			if !yield(value) {
				return
			}
		}
	}, nil
}

// Count returns the number of entities the view matches.
func (v *View[T]) Count() (int, error) {
	entities, err := v.Iter()
	if err != nil {
		return 0, err
	}
	count := 0
	for range entities {
		count++
	}
	return count, nil
}

// Spawn creates a new entity with components copied from the view struct.
// Nil optional fields are skipped.
func (v *View[T]) Spawn(data T) (EntityId, error) {
	storages, err := v.storages()
	if err != nil {
		return 0, err
	}

	structPtr := unsafe.Pointer(&data)
	for i := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i]))
		if componentPtr == nil && !v.optional[i] {
			panic("required component is nil in View.Spawn")
		}
		if componentPtr != nil && storages[i] == nil {
			return 0, eris.Wrapf(ErrComponentNotRegistered, "component %s", v.types[i])
		}
	}

	id := v.registry.CreateEntity()
	for i, storage := range storages {
		componentPtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i]))
		if componentPtr == nil {
			continue
		}
		storage.insertFrom(id.Index(), componentPtr)
	}
	return id, nil
}
