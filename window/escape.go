package window

import "github.com/sarchlab/fenestra/registry"

// CloseOnEscape despawns every focused window when the escape key is just
// pressed. It is a prototyping convenience: the despawn bypasses the
// surface-token protocol entirely.
type CloseOnEscape struct {
	windows  *registry.Table[Window]
	keyboard Keyboard
	commands *registry.CommandBuffer
}

// NewCloseOnEscape creates a CloseOnEscape system.
func NewCloseOnEscape(
	windows *registry.Table[Window],
	keyboard Keyboard,
	commands *registry.CommandBuffer,
) *CloseOnEscape {
	return &CloseOnEscape{
		windows:  windows,
		keyboard: keyboard,
		commands: commands,
	}
}

// Name returns the name of the system.
func (s *CloseOnEscape) Name() string {
	return "CloseOnEscape"
}

// Tick queues a despawn for each focused window if escape was just pressed
// this pass.
func (s *CloseOnEscape) Tick() {
	s.windows.Each(func(e registry.Entity, w Window) {
		if !w.Focused {
			return
		}

		if s.keyboard.JustPressed(KeyEscape) {
			s.commands.Despawn(e)
		}
	})
}
