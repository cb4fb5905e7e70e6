package ecs

import "github.com/milk9111/trafficgrid/ecs/component"

// Add inserts or replaces e's value in the handle's store.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.AddComponent(e, handle.ID(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.ID())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.ID())
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.GetComponent(e, handle.ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// ForEach visits every live entity holding the handle's component in
// insertion order.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, T)) {
	if w == nil || fn == nil {
		return
	}
	set := w.store(handle.ID(), false)
	if set == nil {
		return
	}
	for _, e := range append([]Entity(nil), set.Entities()...) {
		v, ok := set.Get(e)
		if !ok || !w.IsAlive(e) {
			continue
		}
		if cast, ok := v.(T); ok {
			fn(e, cast)
		}
	}
}
