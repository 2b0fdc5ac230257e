package ecs

import "reflect"

// Registry holds exactly one store per component type and supports bulk
// cleanup on entity destroy. Stores are created on first use.
type Registry struct {
	byType   map[reflect.Type]Removable
	stores   []Removable
	capacity int
}

func NewRegistry(capacity int) *Registry {
	return &Registry{
		byType:   make(map[reflect.Type]Removable, 16),
		stores:   make([]Removable, 0, 16),
		capacity: capacity,
	}
}

// Len returns the number of component types seen so far.
func (r *Registry) Len() int {
	return len(r.stores)
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.EntityDestroyed(id)
	}
}

func (r *Registry) lookup(t reflect.Type) (Removable, bool) {
	s, ok := r.byType[t]
	return s, ok
}

func (r *Registry) register(t reflect.Type, s Removable) {
	r.byType[t] = s
	r.stores = append(r.stores, s)
}

// StoreOf returns the World's store for T, creating it on first use.
// The lookup is a map access plus a type assertion; systems resolve their
// stores once at construction and keep the pointers.
func StoreOf[T any](w *World) *Store[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := w.registry.lookup(t); ok {
		return s.(*Store[T])
	}
	s := NewStore[T](w.registry.capacity)
	w.registry.register(t, s)
	return s
}
