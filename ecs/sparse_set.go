package ecs

// SparseSet stores one component value per entity. Unlike a swap-remove set,
// Remove keeps the dense slice in insertion order, which is the order the
// scene draws and hit-tests in.
type SparseSet struct {
	denseEntities []Entity
	denseValues   []any
	sparse        []int
}

func newSparseSet() *SparseSet {
	return &SparseSet{}
}

func (s *SparseSet) index(e Entity) int {
	id := int(e.id())
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return -1
	}
	return idx
}

// Has returns true if e has a value in the set.
func (s *SparseSet) Has(e Entity) bool {
	return s.index(e) >= 0
}

// Get returns the value for e, or nil.
func (s *SparseSet) Get(e Entity) (any, bool) {
	idx := s.index(e)
	if idx < 0 {
		return nil, false
	}
	return s.denseValues[idx], true
}

// Set inserts or updates the value for e. Updating keeps e's position.
func (s *SparseSet) Set(e Entity, v any) {
	id := int(e.id())
	if s == nil || id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.index(e); idx >= 0 {
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	idx := s.index(e)
	if idx < 0 {
		return false
	}
	copy(s.denseEntities[idx:], s.denseEntities[idx+1:])
	copy(s.denseValues[idx:], s.denseValues[idx+1:])
	last := len(s.denseEntities) - 1
	s.denseEntities[last] = 0
	s.denseValues[last] = nil
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	for i := idx; i < len(s.denseEntities); i++ {
		s.sparse[s.denseEntities[i].id()-1] = i
	}
	s.sparse[e.id()-1] = -1
	return true
}

// Entities returns the dense entity list in insertion order. The slice is
// owned by the set.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}
