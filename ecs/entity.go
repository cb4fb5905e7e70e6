package ecs

import "fmt"

// Entity identifies a sprite instance. The low 32 bits hold the slot id and
// the high 32 bits its generation, so a recycled slot never aliases an old
// handle.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	if e.generation() == 0 {
		return fmt.Sprintf("#%d", e.id())
	}
	return fmt.Sprintf("#%d.%d", e.id(), e.generation())
}

// Valid reports whether e could refer to an entity. It does not check
// liveness; use World.IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() > 0
}
