package ecs

import "cmp"

// EntityId identifies an entity. It carries no data of its own: the integer
// value is the index of the entity's slot in every component storage.
type EntityId uint64

// Index returns the storage index addressed by this entity.
func (e EntityId) Index() int {
	return int(e)
}

// Compare orders entities by their integer value.
func (e EntityId) Compare(other EntityId) int {
	return cmp.Compare(uint64(e), uint64(other))
}

// Less reports whether e orders before other.
func (e EntityId) Less(other EntityId) bool {
	return e < other
}
