package registry

import "fmt"

// An Entity is a generation-checked handle to one record in a Registry. The
// generation guards against a recycled slot aliasing a despawned entity: a
// handle held across a despawn never matches the slot's new occupant.
type Entity struct {
	index      uint32
	generation uint32
}

// NullEntity is the zero value of Entity. It never refers to a live record.
var NullEntity = Entity{}

func (e Entity) String() string {
	return fmt.Sprintf("entity-%d.%d", e.index, e.generation)
}
