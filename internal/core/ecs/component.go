package ecs

import (
	"errors"
	"fmt"
)

// ErrMissingComponent is the panic value (wrapped) of MustGet when the
// entity does not hold the component.
var ErrMissingComponent = errors.New("ecs: missing component")

// Removable is implemented by all component stores so the World can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	EntityDestroyed(id EntityID)
}

// Store is a dense, fixed-capacity container for one component type.
// Values live in [0, Len()) with no gaps; index maps entity -> dense slot
// and entities maps slot -> entity. Removal swaps the last value into the
// freed slot, so dense order changes whenever something is removed.
type Store[T any] struct {
	dense    []T
	entities []EntityID
	index    []int32
	size     int
}

// NewStore allocates a store for entity ids in [0, capacity).
func NewStore[T any](capacity int) *Store[T] {
	if capacity <= 0 {
		capacity = DefaultMaxEntities
	}
	s := &Store[T]{
		dense:    make([]T, capacity),
		entities: make([]EntityID, capacity),
		index:    make([]int32, capacity),
	}
	for i := range s.index {
		s.index[i] = -1
	}
	return s
}

// Insert adds c for id. If id already holds a value the call does nothing;
// the existing value is kept.
func (s *Store[T]) Insert(id EntityID, c T) {
	if int(id) >= len(s.index) {
		panic(fmt.Errorf("%w: entity %d outside store capacity %d", ErrEntityLimit, id, len(s.index)))
	}
	if s.index[id] >= 0 {
		return
	}
	i := s.size
	s.dense[i] = c
	s.entities[i] = id
	s.index[id] = int32(i)
	s.size++
}

// Remove swap-removes id's value. Absent ids are ignored.
func (s *Store[T]) Remove(id EntityID) {
	if !s.Has(id) {
		return
	}
	i := s.index[id]
	last := s.size - 1
	if int(i) != last {
		moved := s.entities[last]
		s.dense[i] = s.dense[last]
		s.entities[i] = moved
		s.index[moved] = i
	}
	var zero T
	s.dense[last] = zero
	s.index[id] = -1
	s.size--
}

// EntityDestroyed implements Removable.
func (s *Store[T]) EntityDestroyed(id EntityID) {
	s.Remove(id)
}

// Get returns a pointer to id's value. The pointer addresses a dense slot:
// after any Remove on this store it may point at another entity's value.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	if !s.Has(id) {
		return nil, false
	}
	return &s.dense[s.index[id]], true
}

// MustGet is Get for callers that already checked Has.
func (s *Store[T]) MustGet(id EntityID) *T {
	c, ok := s.Get(id)
	if !ok {
		panic(fmt.Errorf("%w: %T on entity %d", ErrMissingComponent, c, id))
	}
	return c
}

func (s *Store[T]) Has(id EntityID) bool {
	return int(id) < len(s.index) && s.index[id] >= 0
}

func (s *Store[T]) Len() int {
	return s.size
}

// Entities returns the ids holding T in dense order. The slice aliases the
// store: copy it before adding or removing T while walking it.
func (s *Store[T]) Entities() []EntityID {
	return s.entities[:s.size]
}

// Each visits every value in dense order. fn must not insert or remove T.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := 0; i < s.size; i++ {
		fn(s.entities[i], &s.dense[i])
	}
}
