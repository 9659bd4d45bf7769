package registry

// A Registry is an arena of entities. Components live in side Tables keyed
// by Entity; the Registry only tracks which handles are alive. Despawning an
// entity clears its row from every Table created from this Registry.
type Registry struct {
	generations []uint32
	alive       []bool
	free        []uint32
	tables      []table
	numAlive    int
}

// table is the type-erased view of a Table that the Registry uses to clear
// component rows on despawn.
type table interface {
	remove(e Entity)
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Spawn allocates a new live entity. Slot indices are recycled, but the
// generation is bumped on despawn so stale handles stay invalid.
func (r *Registry) Spawn() Entity {
	if n := len(r.free); n > 0 {
		index := r.free[n-1]
		r.free = r.free[:n-1]
		r.alive[index] = true
		r.numAlive++

		return Entity{index: index, generation: r.generations[index]}
	}

	index := uint32(len(r.generations))
	r.generations = append(r.generations, 1)
	r.alive = append(r.alive, true)
	r.numAlive++

	return Entity{index: index, generation: 1}
}

// Despawn removes an entity and all its component rows. Despawning a stale
// or never-spawned handle is a no-op.
func (r *Registry) Despawn(e Entity) {
	if !r.Alive(e) {
		return
	}

	for _, t := range r.tables {
		t.remove(e)
	}

	r.alive[e.index] = false
	r.generations[e.index]++
	r.free = append(r.free, e.index)
	r.numAlive--
}

// Alive reports whether the handle refers to a live entity.
func (r *Registry) Alive(e Entity) bool {
	if e.index >= uint32(len(r.generations)) {
		return false
	}

	return r.alive[e.index] && r.generations[e.index] == e.generation
}

// NumAlive returns the number of live entities.
func (r *Registry) NumAlive() int {
	return r.numAlive
}

func (r *Registry) register(t table) {
	r.tables = append(r.tables, t)
}
