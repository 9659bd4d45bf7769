package window

import (
	"github.com/sarchlab/fenestra/event"
	"github.com/sarchlab/fenestra/hooking"
	"github.com/sarchlab/fenestra/registry"
)

// HookPosExitRequested triggers when an exit evaluator emits an AppExit.
// Item is the AppExit event; Detail names the policy that fired.
var HookPosExitRequested = &hooking.HookPos{Name: "ExitRequested"}

// ExitOnAllClosed emits an AppExit signal on every pass where no window
// entities remain. It observes the post-despawn entity set and issues no
// structural mutation.
type ExitOnAllClosed struct {
	hooking.HookableBase

	windows *registry.Table[Window]
	exits   *event.Queue[AppExit]
}

// NewExitOnAllClosed creates an ExitOnAllClosed evaluator.
func NewExitOnAllClosed(
	windows *registry.Table[Window],
	exits *event.Queue[AppExit],
) *ExitOnAllClosed {
	return &ExitOnAllClosed{windows: windows, exits: exits}
}

// Name returns the name of the system.
func (s *ExitOnAllClosed) Name() string {
	return "ExitOnAllClosed"
}

// Tick emits one AppExit if zero entities carry a Window component.
func (s *ExitOnAllClosed) Tick() {
	if s.windows.Len() != 0 {
		return
	}

	s.exits.Write(AppExit{})
	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosExitRequested,
		Item:   AppExit{},
		Detail: "all_closed",
	})
}

// ExitOnPrimaryClosed emits an AppExit signal on every pass where no entity
// carries both a Window component and the PrimaryWindow marker. It is
// independent of ExitOnAllClosed; both may fire in the same pass.
type ExitOnPrimaryClosed struct {
	hooking.HookableBase

	windows   *registry.Table[Window]
	primaries *registry.Table[PrimaryWindow]
	exits     *event.Queue[AppExit]
}

// NewExitOnPrimaryClosed creates an ExitOnPrimaryClosed evaluator.
func NewExitOnPrimaryClosed(
	windows *registry.Table[Window],
	primaries *registry.Table[PrimaryWindow],
	exits *event.Queue[AppExit],
) *ExitOnPrimaryClosed {
	return &ExitOnPrimaryClosed{
		windows:   windows,
		primaries: primaries,
		exits:     exits,
	}
}

// Name returns the name of the system.
func (s *ExitOnPrimaryClosed) Name() string {
	return "ExitOnPrimaryClosed"
}

// Tick emits one AppExit if no live entity is both a Window and the
// primary.
func (s *ExitOnPrimaryClosed) Tick() {
	count := 0
	s.primaries.Each(func(e registry.Entity, _ PrimaryWindow) {
		if s.windows.Has(e) {
			count++
		}
	})

	if count != 0 {
		return
	}

	s.exits.Write(AppExit{})
	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosExitRequested,
		Item:   AppExit{},
		Detail: "primary_closed",
	})
}
