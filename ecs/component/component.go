package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies one component store inside a world.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentHandle is a typed key for a component store.
type ComponentHandle[T any] struct {
	id ComponentID
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}
