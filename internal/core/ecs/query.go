package ecs

// Each2 iterates over entities that have both component A and B.
// It walks the smaller store in dense order and probes the other one.
// fn must not add or remove A or B.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i := 0; i < sa.size; i++ {
			id := sa.entities[i]
			if b, ok := sb.Get(id); ok {
				fn(id, &sa.dense[i], b)
			}
		}
		return
	}
	for i := 0; i < sb.size; i++ {
		id := sb.entities[i]
		if a, ok := sa.Get(id); ok {
			fn(id, a, &sb.dense[i])
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	// Iterate the smallest store
	smallest := sa.Len()
	which := 0
	if sb.Len() < smallest {
		smallest = sb.Len()
		which = 1
	}
	if sc.Len() < smallest {
		which = 2
	}

	var ids []EntityID
	switch which {
	case 0:
		ids = sa.Entities()
	case 1:
		ids = sb.Entities()
	case 2:
		ids = sc.Entities()
	}
	for _, id := range ids {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		c, ok := sc.Get(id)
		if !ok {
			continue
		}
		fn(id, a, b, c)
	}
}
