package ecs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sparsecs/ecs"
)

func TestSparseArrayInsertGrows(t *testing.T) {
	sa := ecs.NewSparseArray[int](0)
	assert.Equal(t, 0, sa.Len())

	sa.Insert(3, 9)
	assert.Equal(t, 4, sa.Len())
	assert.Equal(t, 1, sa.Count())

	for i := range 3 {
		assert.False(t, sa.At(i).Present(), "slot %d should be absent", i)
	}
	v, ok := sa.At(3).Value()
	assert.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestSparseArrayInsertOverwrites(t *testing.T) {
	sa := ecs.NewSparseArray[Name](0)
	sa.Insert(1, Name{Value: "a"})
	sa.Insert(1, Name{Value: "b"})

	assert.Equal(t, 2, sa.Len())
	assert.Equal(t, "b", sa.At(1).Get().Value)
}

func TestSparseArrayEmplace(t *testing.T) {
	sa := ecs.NewSparseArray[Health](0)

	slot := sa.Emplace(2, func(h *Health) {
		h.Current = 5
		h.Max = 10
	})
	require.NotNil(t, slot.Get())
	assert.Equal(t, Health{Current: 5, Max: 10}, *slot.Get())

	slot = sa.Emplace(0, nil)
	assert.True(t, slot.Present())
	assert.Equal(t, Health{}, *slot.Get())
}

func TestSparseArrayEraseKeepsLength(t *testing.T) {
	sa := ecs.NewSparseArray[int](0)
	sa.Insert(0, 1)
	sa.Insert(1, 2)

	sa.Erase(1)
	assert.Equal(t, 2, sa.Len())
	assert.Equal(t, 1, sa.Count())
	assert.False(t, sa.At(1).Present())

	// Out of range and absent slots are ignored.
	sa.Erase(1)
	sa.Erase(100)
	sa.Erase(-1)
	assert.Equal(t, 2, sa.Len())
}

func TestSparseArrayAtGrows(t *testing.T) {
	sa := ecs.NewSparseArray[int](0)

	slot := sa.At(70)
	assert.False(t, slot.Present())
	assert.Equal(t, 71, sa.Len())
	assert.Nil(t, slot.Get())
}

func TestSparseArraySlotAddressesAreStable(t *testing.T) {
	sa := ecs.NewSparseArray[Position](0)
	first := sa.Insert(0, Position{X: 1})

	for i := 1; i < 1000; i++ {
		sa.Insert(i, Position{X: float32(i)})
	}

	assert.Same(t, first, sa.At(0))
	assert.Equal(t, float32(1), first.Get().X)
}

func TestSparseArrayLookup(t *testing.T) {
	sa := ecs.NewSparseArray[int](0)
	sa.Insert(1, 7)

	s, err := sa.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, ecs.Some(7), s)

	s, err = sa.Lookup(0)
	require.NoError(t, err)
	assert.Equal(t, ecs.None[int](), s)

	_, err = sa.Lookup(2)
	assert.True(t, errors.Is(err, ecs.ErrIndexOutOfRange))
	assert.Equal(t, 2, sa.Len(), "lookup must not grow the array")
}

func TestSparseArrayIndexOf(t *testing.T) {
	sa := ecs.NewSparseArray[int](0)
	sa.Insert(0, 1)
	sa.Insert(2, 5)
	sa.Insert(4, 5)

	assert.Equal(t, 2, ecs.IndexOf(sa, ecs.Some(5)))
	assert.Equal(t, 1, ecs.IndexOf(sa, ecs.None[int]()))
	assert.Equal(t, sa.Len(), ecs.IndexOf(sa, ecs.Some(42)))
}

func TestSparseArrayAllAndValues(t *testing.T) {
	sa := ecs.NewSparseArray[int](0)
	sa.Insert(0, 10)
	sa.Insert(2, 30)

	var indices []int
	for i, slot := range sa.All() {
		indices = append(indices, i)
		_ = slot
	}
	assert.Equal(t, []int{0, 1, 2}, indices)

	got := map[int]int{}
	for i, v := range sa.Values() {
		got[i] = *v
		*v++
	}
	assert.Equal(t, map[int]int{0: 10, 2: 30}, got)
	assert.Equal(t, 11, *sa.At(0).Get())
}

func TestReadOnlyArray(t *testing.T) {
	sa := ecs.NewSparseArray[int](0)
	sa.Insert(1, 3)
	ro := sa.ReadOnly()

	assert.Equal(t, 2, ro.Len())
	assert.Equal(t, 1, ro.Count())
	assert.Equal(t, ecs.Some(3), ro.At(1))

	_, err := ro.Lookup(5)
	assert.True(t, errors.Is(err, ecs.ErrIndexOutOfRange))
	assert.Panics(t, func() { ro.At(5) })
	assert.Equal(t, 2, sa.Len())

	// Writes through the mutable array are visible through the view.
	sa.Insert(3, 4)
	assert.Equal(t, 4, ro.Len())
}
