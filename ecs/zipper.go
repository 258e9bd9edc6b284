package ecs

import "slices"

//go:generate go run ../cmd/ecsgen --out .

// Indexable is any container the zipper can walk: a length and random access
// by index. *SparseArray[T] yields *Slot[T], ReadOnlyArray[T] yields Slot[T]
// and Slice adapts a plain slice.
type Indexable[E any] interface {
	Len() int
	At(index int) E
}

// Slice adapts a slice to Indexable, yielding pointers into it.
type Slice[E any] []E

func (s Slice[E]) Len() int {
	return len(s)
}

func (s Slice[E]) At(index int) *E {
	return &s[index]
}

// Position is a zipper position. Two positions are equal when they have
// taken the same number of steps, whatever the sources hold.
type Position struct {
	step int
}

// Step returns the number of steps taken to reach this position.
func (p Position) Step() int {
	return p.step
}

// Equal reports whether p and other are the same step.
func (p Position) Equal(other Position) bool {
	return p.step == other.step
}

// zipBound returns the shortest of the given lengths.
func zipBound(lengths ...int) int {
	if len(lengths) == 0 {
		return 0
	}
	return slices.Min(lengths)
}
