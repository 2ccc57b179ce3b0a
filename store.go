package dreamtable

import (
	"fmt"
	"reflect"
)

// removable is implemented by every Store so the world can strip an entity
// from all stores without knowing their element types.
type removable interface {
	Remove(e Entity)
	Has(e Entity) bool
	Len() int
	Entities() []Entity
	name() string
}

// Store is a sparse set of *T keyed by entity. Pointers handed out by Get
// stay valid until the component is removed, so systems mutate components
// in place.
type Store[T any] struct {
	index    map[Entity]int
	entities []Entity
	values   []*T
	label    string
}

// NewStore creates an empty store for component type T.
func NewStore[T any]() *Store[T] {
	var zero T
	return &Store[T]{
		index:    make(map[Entity]int),
		entities: make([]Entity, 0, 64),
		values:   make([]*T, 0, 64),
		label:    reflect.TypeOf(zero).Name(),
	}
}

// Set inserts or replaces the component of e.
func (s *Store[T]) Set(e Entity, v T) *T {
	if i, ok := s.index[e]; ok {
		*s.values[i] = v
		return s.values[i]
	}
	p := new(T)
	*p = v
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, p)
	return p
}

// Get returns the component of e, if present.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return s.values[i], true
}

// MustGet returns the component of e and panics when it is absent. Only use
// it where the component's presence is an invariant of the caller.
func (s *Store[T]) MustGet(e Entity) *T {
	v, ok := s.Get(e)
	if !ok {
		panic(fmt.Sprintf("dreamtable: entity %d (gen %d) has no %s component", e.Index(), e.Generation(), s.label))
	}
	return v
}

// Has reports whether e has this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Remove deletes the component of e. It is a no-op when absent.
func (s *Store[T]) Remove(e Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.values[i] = s.values[last]
		s.index[moved] = i
	}
	s.entities[last] = NoEntity
	s.values[last] = nil
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	delete(s.index, e)
}

// Len returns the number of entities holding this component.
func (s *Store[T]) Len() int { return len(s.entities) }

// Entities returns a snapshot of the entities holding this component.
func (s *Store[T]) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Each visits every entity holding T over a snapshot taken at the start of
// the call. Entities removed during the walk are skipped.
func (s *Store[T]) Each(fn func(e Entity, v *T)) {
	for _, e := range s.Entities() {
		if v, ok := s.Get(e); ok {
			fn(e, v)
		}
	}
}

func (s *Store[T]) name() string { return s.label }
