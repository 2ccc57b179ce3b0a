package dreamtable

// Entity encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. The generation increments on delete so stale handles
// never alias a newer entity. The zero Entity is never issued.
type Entity uint64

// NoEntity is the zero Entity.
const NoEntity Entity = 0

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

func (e Entity) Index() uint32      { return uint32(e) }
func (e Entity) Generation() uint32 { return uint32(e >> 32) }
func (e Entity) IsZero() bool       { return e == 0 }

// entityPool allocates entities with generational indices and a free list.
// Index 0 is reserved so that NoEntity is never live.
type entityPool struct {
	generations []uint32
	freeList    []uint32
	live        int
}

func newEntityPool() *entityPool {
	return &entityPool{
		generations: make([]uint32, 1, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *entityPool) create() Entity {
	p.live++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return newEntity(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 0)
	return newEntity(idx, 0)
}

func (p *entityPool) alive(e Entity) bool {
	idx := e.Index()
	if idx == 0 || int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == e.Generation()
}

// destroy retires e. Stale or unknown handles are ignored.
func (p *entityPool) destroy(e Entity) bool {
	if !p.alive(e) {
		return false
	}
	idx := e.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}
