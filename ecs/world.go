package ecs

import (
	"fmt"

	"github.com/milk9111/trafficgrid/ecs/component"
)

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e from every store and retires its handle. It returns
// false if e was not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add component %d to %s: %w", id, e, component.ErrEntityNotAlive)
	}
	w.store(id, true).Set(e, value)
	return nil
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	return w.store(id, false).Get(e)
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	return w.IsAlive(e) && w.store(id, false).Has(e)
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(id, false).Remove(e)
}

// Query returns the live entities holding every listed component, ordered by
// insertion into the first store.
func (w *World) Query(first component.ComponentID, rest ...component.ComponentID) []Entity {
	if w == nil {
		return nil
	}
	sets := make([]*SparseSet, 0, len(rest))
	for _, id := range rest {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	return IntersectEntities(w.store(first, false), sets...)
}
