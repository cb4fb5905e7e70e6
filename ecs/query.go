package ecs

// IntersectEntities returns entities present in every set, in the insertion
// order of the first set.
func IntersectEntities(first *SparseSet, rest ...*SparseSet) []Entity {
	if first == nil {
		return nil
	}
	out := make([]Entity, 0, first.Len())
	for _, e := range first.denseEntities {
		ok := true
		for _, s := range rest {
			if !s.Has(e) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}
