package ecs

import (
	"reflect"
	"unsafe"
)

// componentStorage is the type-erased face of a SparseArray. The registry
// holds one per registered component type and only downcasts to the concrete
// *SparseArray[T] with the same type it was stored under.
type componentStorage interface {
	Len() int
	Count() int
	Erase(index int)
	has(index int) bool
	pointer(index int) unsafe.Pointer
	insertFrom(index int, src unsafe.Pointer)
	value(index int) any
	componentType() reflect.Type
}

var _ componentStorage = (*SparseArray[struct{}])(nil)
