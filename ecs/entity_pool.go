package ecs

import (
	"container/heap"
	"slices"

	"github.com/kamstrup/intmap"
)

// freeIds is a min-heap of released entity ids.
type freeIds []EntityId

func (f freeIds) Len() int           { return len(f) }
func (f freeIds) Less(i, j int) bool { return f[i].Less(f[j]) }
func (f freeIds) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *freeIds) Push(x any) {
	*f = append(*f, x.(EntityId))
}

func (f *freeIds) Pop() any {
	old := *f
	n := len(old)
	id := old[n-1]
	*f = old[:n-1]
	return id
}

// entityPool issues entity ids and recycles released ones, smallest first.
// An id is either live (issued and not free) or free, never both.
//
// Releasing an id that was never issued puts it in the free set like any
// other; once handed out again it is tracked in strays, since it lies at or
// past the issued count.
type entityPool struct {
	issued uint64
	live   int
	free   freeIds
	freed  *intmap.Set[EntityId]
	strays *intmap.Set[EntityId]
}

func newEntityPool(capacity int) *entityPool {
	return &entityPool{
		free:   make(freeIds, 0, capacity),
		freed:  intmap.NewSet[EntityId](capacity),
		strays: intmap.NewSet[EntityId](0),
	}
}

func (p *entityPool) create() EntityId {
	p.live++
	if p.free.Len() > 0 {
		id := heap.Pop(&p.free).(EntityId)
		p.freed.Del(id)
		if uint64(id) >= p.issued {
			p.strays.Add(id)
		}
		return id
	}
	id := EntityId(p.issued)
	p.issued++
	p.strays.Del(id)
	return id
}

// release adds id to the free set. Releasing an id that is already free
// leaves the set unchanged.
func (p *entityPool) release(id EntityId) {
	if p.freed.Has(id) {
		return
	}
	if p.alive(id) {
		p.live--
	}
	p.strays.Del(id)
	p.freed.Add(id)
	heap.Push(&p.free, id)
}

func (p *entityPool) alive(id EntityId) bool {
	if uint64(id) < p.issued {
		return !p.freed.Has(id)
	}
	return p.strays.Has(id)
}

func (p *entityPool) liveCount() int {
	return p.live
}

// all yields live ids in ascending order.
func (p *entityPool) all(yield func(EntityId) bool) {
	for i := range p.issued {
		if p.freed.Has(EntityId(i)) {
			continue
		}
		if !yield(EntityId(i)) {
			return
		}
	}
	if p.strays.Len() == 0 {
		return
	}
	for _, id := range slices.Sorted(p.strays.All()) {
		if !yield(id) {
			return
		}
	}
}
