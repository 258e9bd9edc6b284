package ecs

// Slot is a single cell of a SparseArray. It is either absent or holds a
// value of type T. Presence only changes through the owning SparseArray.
type Slot[T any] struct {
	value   T
	present bool
}

// Some returns a present slot holding v.
func Some[T any](v T) Slot[T] {
	return Slot[T]{value: v, present: true}
}

// None returns an absent slot.
func None[T any]() Slot[T] {
	return Slot[T]{}
}

// Present reports whether the slot holds a value.
func (s Slot[T]) Present() bool {
	return s.present
}

// Value returns a copy of the stored value and whether it is present.
func (s Slot[T]) Value() (T, bool) {
	return s.value, s.present
}

// Get returns a pointer to the stored value, or nil if the slot is absent.
// The pointer may be used to mutate the component in place.
func (s *Slot[T]) Get() *T {
	if s == nil || !s.present {
		return nil
	}
	return &s.value
}

func (s *Slot[T]) set(v T) {
	s.value = v
	s.present = true
}

func (s *Slot[T]) clear() {
	var zero T
	s.value = zero
	s.present = false
}

// slotsEqual compares two slots structurally: absent matches absent, present
// matches present with an equal value.
func slotsEqual[T comparable](a, b Slot[T]) bool {
	if a.present != b.present {
		return false
	}
	return !a.present || a.value == b.value
}
