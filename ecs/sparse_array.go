package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/rotisserie/eris"
)

const (
	slotBlockSize = 64
)

// SparseArray stores the components of a single type, addressed by entity
// index. Index i always refers to slot i no matter how sparse the population
// is, so memory grows with the highest index ever written.
//
// Slots live in fixed-size blocks: growing the array appends blocks and never
// moves existing slots, so a *Slot returned by At stays valid after growth.
type SparseArray[T any] struct {
	blocks []*[slotBlockSize]Slot[T]
	length int
}

// NewSparseArray creates an empty array with room for capacity slots before
// the first block allocation.
func NewSparseArray[T any](capacity int) *SparseArray[T] {
	sa := &SparseArray[T]{}
	if capacity > 0 {
		sa.blocks = make([]*[slotBlockSize]Slot[T], 0, (capacity+slotBlockSize-1)/slotBlockSize)
	}
	return sa
}

// Len returns the number of slots, absent ones included.
func (sa *SparseArray[T]) Len() int {
	return sa.length
}

// Count returns the number of present slots.
func (sa *SparseArray[T]) Count() int {
	count := 0
	for i := 0; i < sa.length; i++ {
		if sa.slot(i).present {
			count++
		}
	}
	return count
}

// At returns the slot at index, growing the array to index+1 first if
// needed. New slots are absent. Negative indices panic.
func (sa *SparseArray[T]) At(index int) *Slot[T] {
	if index < 0 {
		panic("ecs: negative sparse array index")
	}
	if index >= sa.length {
		sa.grow(index + 1)
	}
	return sa.slot(index)
}

// Lookup returns a copy of the slot at index without growing the array.
func (sa *SparseArray[T]) Lookup(index int) (Slot[T], error) {
	if index < 0 || index >= sa.length {
		return Slot[T]{}, eris.Wrapf(ErrIndexOutOfRange, "index %d, length %d", index, sa.length)
	}
	return *sa.slot(index), nil
}

// Insert stores a copy of value at index and returns the slot.
func (sa *SparseArray[T]) Insert(index int, value T) *Slot[T] {
	s := sa.At(index)
	s.set(value)
	return s
}

// Emplace constructs a value in place at index. The value starts from the
// zero value of T and is then handed to init, which may be nil.
func (sa *SparseArray[T]) Emplace(index int, init func(*T)) *Slot[T] {
	s := sa.At(index)
	s.clear()
	if init != nil {
		init(&s.value)
	}
	s.present = true
	return s
}

// Erase marks the slot at index absent. Indices past the end are ignored and
// never grow the array.
func (sa *SparseArray[T]) Erase(index int) {
	if index < 0 || index >= sa.length {
		return
	}
	sa.slot(index).clear()
}

// IndexFunc returns the index of the first slot for which match returns
// true, or Len() if there is none.
func (sa *SparseArray[T]) IndexFunc(match func(Slot[T]) bool) int {
	for i := 0; i < sa.length; i++ {
		if match(*sa.slot(i)) {
			return i
		}
	}
	return sa.length
}

// All iterates every slot, absent ones included, in index order.
func (sa *SparseArray[T]) All() iter.Seq2[int, *Slot[T]] {
	return func(yield func(int, *Slot[T]) bool) {
		for i := 0; i < sa.length; i++ {
			if !yield(i, sa.slot(i)) {
				return
			}
		}
	}
}

// Values iterates the present values in index order.
func (sa *SparseArray[T]) Values() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < sa.length; i++ {
			s := sa.slot(i)
			if !s.present {
				continue
			}
			if !yield(i, &s.value) {
				return
			}
		}
	}
}

// ReadOnly returns an immutable view over the array.
func (sa *SparseArray[T]) ReadOnly() ReadOnlyArray[T] {
	return ReadOnlyArray[T]{array: sa}
}

// IndexOf returns the index of the first slot structurally equal to slot, or
// sa.Len() if no slot matches. This is a linear scan.
func IndexOf[T comparable](sa *SparseArray[T], slot Slot[T]) int {
	return sa.IndexFunc(func(s Slot[T]) bool {
		return slotsEqual(s, slot)
	})
}

func (sa *SparseArray[T]) slot(index int) *Slot[T] {
	return &sa.blocks[index/slotBlockSize][index%slotBlockSize]
}

func (sa *SparseArray[T]) grow(length int) {
	for len(sa.blocks)*slotBlockSize < length {
		sa.blocks = append(sa.blocks, new([slotBlockSize]Slot[T]))
	}
	sa.length = length
}

func (sa *SparseArray[T]) has(index int) bool {
	if index < 0 || index >= sa.length {
		return false
	}
	return sa.slot(index).present
}

func (sa *SparseArray[T]) pointer(index int) unsafe.Pointer {
	if !sa.has(index) {
		return nil
	}
	return unsafe.Pointer(&sa.slot(index).value)
}

// insertFrom copies the T that src points to into index.
func (sa *SparseArray[T]) insertFrom(index int, src unsafe.Pointer) {
	sa.Insert(index, *(*T)(src))
}

func (sa *SparseArray[T]) value(index int) any {
	if !sa.has(index) {
		return nil
	}
	return &sa.slot(index).value
}

func (sa *SparseArray[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

// ReadOnlyArray is an immutable view of a SparseArray. Reads past the end are
// rejected instead of growing the array.
type ReadOnlyArray[T any] struct {
	array *SparseArray[T]
}

// Len returns the number of slots, absent ones included.
func (ro ReadOnlyArray[T]) Len() int {
	return ro.array.Len()
}

// Count returns the number of present slots.
func (ro ReadOnlyArray[T]) Count() int {
	return ro.array.Count()
}

// Lookup returns a copy of the slot at index, or ErrIndexOutOfRange.
func (ro ReadOnlyArray[T]) Lookup(index int) (Slot[T], error) {
	return ro.array.Lookup(index)
}

// At returns a copy of the slot at index. Like slice indexing it panics when
// index is out of range.
func (ro ReadOnlyArray[T]) At(index int) Slot[T] {
	s, err := ro.array.Lookup(index)
	if err != nil {
		panic(err)
	}
	return s
}

// All iterates copies of every slot in index order.
func (ro ReadOnlyArray[T]) All() iter.Seq2[int, Slot[T]] {
	return func(yield func(int, Slot[T]) bool) {
		for i, s := range ro.array.All() {
			if !yield(i, *s) {
				return
			}
		}
	}
}
