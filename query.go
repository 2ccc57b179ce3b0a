package dreamtable

// candidates snapshots the entity list of the smallest store. Joins walk
// this snapshot, so iteration order is stable within one call and entities
// created or deleted by the callback never disturb the walk.
func candidates(stores ...removable) []Entity {
	small := stores[0]
	for _, s := range stores[1:] {
		if s.Len() < small.Len() {
			small = s
		}
	}
	return small.Entities()
}

// Each2 visits every entity holding both A and B.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(Entity, *A, *B)) {
	for _, e := range candidates(sa, sb) {
		a, ok := sa.Get(e)
		if !ok {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// Each3 visits every entity holding A, B and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range candidates(sa, sb, sc) {
		a, ok := sa.Get(e)
		if !ok {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		c, ok := sc.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

// Each4 visits every entity holding A, B, C and D.
func Each4[A, B, C, D any](sa *Store[A], sb *Store[B], sc *Store[C], sd *Store[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range candidates(sa, sb, sc, sd) {
		a, ok := sa.Get(e)
		if !ok {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		c, ok := sc.Get(e)
		if !ok {
			continue
		}
		d, ok := sd.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c, d)
	}
}
