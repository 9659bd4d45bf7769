package registry

// A Table stores one component type as a side table keyed by Entity. A Table
// must be created with NewTable so the owning Registry can clear its rows
// when an entity despawns.
type Table[T any] struct {
	reg  *Registry
	rows map[Entity]T
}

// NewTable creates a Table for one component type and registers it with the
// Registry.
func NewTable[T any](r *Registry) *Table[T] {
	t := &Table[T]{
		reg:  r,
		rows: make(map[Entity]T),
	}
	r.register(t)

	return t
}

// Set attaches component v to entity e, replacing any existing row. Setting
// a component on a dead handle is a no-op.
func (t *Table[T]) Set(e Entity, v T) {
	if !t.reg.Alive(e) {
		return
	}

	t.rows[e] = v
}

// Get returns the component for e, if present.
func (t *Table[T]) Get(e Entity) (T, bool) {
	v, ok := t.rows[e]
	return v, ok
}

// Has reports whether e carries this component.
func (t *Table[T]) Has(e Entity) bool {
	_, ok := t.rows[e]
	return ok
}

// Len returns the number of entities carrying this component.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// Each calls f for every entity carrying this component, in no particular
// order. f must not mutate the table directly; structural changes go through
// a CommandBuffer.
func (t *Table[T]) Each(f func(e Entity, v T)) {
	for e, v := range t.rows {
		f(e, v)
	}
}

// Entities returns the handles of all entities carrying this component.
func (t *Table[T]) Entities() []Entity {
	entities := make([]Entity, 0, len(t.rows))
	for e := range t.rows {
		entities = append(entities, e)
	}

	return entities
}

func (t *Table[T]) remove(e Entity) {
	delete(t.rows, e)
}
