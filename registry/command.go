package registry

// A Command is one queued structural mutation against a Registry.
type Command interface {
	Apply(r *Registry)
}

// CommandFunc adapts a plain function to the Command interface.
type CommandFunc func(r *Registry)

// Apply runs the function.
func (f CommandFunc) Apply(r *Registry) {
	f(r)
}

type despawnCommand struct {
	entity Entity
}

func (c despawnCommand) Apply(r *Registry) {
	r.Despawn(c.entity)
}

// A CommandBuffer queues structural mutations so systems never edit the
// entity store while iterating it. Queued commands are invisible to reads
// until Flush runs; the scheduler flushes after each system, so a system
// never observes its own mutations within one invocation.
type CommandBuffer struct {
	reg  *Registry
	cmds []Command
}

// NewCommandBuffer creates a CommandBuffer targeting one Registry.
func NewCommandBuffer(r *Registry) *CommandBuffer {
	return &CommandBuffer{reg: r}
}

// Push queues one command.
func (b *CommandBuffer) Push(c Command) {
	b.cmds = append(b.cmds, c)
}

// Despawn queues the removal of an entity. A despawn of an already-dead
// handle applies as a no-op.
func (b *CommandBuffer) Despawn(e Entity) {
	b.Push(despawnCommand{entity: e})
}

// Flush applies all queued commands in push order and empties the buffer.
func (b *CommandBuffer) Flush() {
	for _, c := range b.cmds {
		c.Apply(b.reg)
	}

	b.cmds = b.cmds[:0]
}

// Pending returns the number of queued commands.
func (b *CommandBuffer) Pending() int {
	return len(b.cmds)
}

// Insert queues the insertion of component v for entity e into table t.
func Insert[T any](b *CommandBuffer, t *Table[T], e Entity, v T) {
	b.Push(CommandFunc(func(*Registry) {
		t.Set(e, v)
	}))
}
