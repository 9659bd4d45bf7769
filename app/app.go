// Package app wires a registry, the window event channels, and the
// lifecycle systems into one runnable coordinator.
package app

import (
	"log"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/fenestra/event"
	"github.com/sarchlab/fenestra/registry"
	"github.com/sarchlab/fenestra/schedule"
	"github.com/sarchlab/fenestra/window"
)

// An App owns the entity store and the window lifecycle systems and runs
// them one pass at a time.
type App struct {
	Registry  *registry.Registry
	Windows   *registry.Table[window.Window]
	Primaries *registry.Table[window.PrimaryWindow]
	Tokens    *registry.Table[window.SurfaceToken]
	Commands  *registry.CommandBuffer

	CloseRequests *event.Queue[window.CloseRequested]
	Exits         *event.Queue[window.AppExit]

	Scheduler   *schedule.Scheduler
	Coordinator *window.CloseCoordinator

	exitRequested bool
}

// SpawnWindow creates a window entity before or between passes. The surface
// token is provisioned by the TokenProvisioner on the next pass unless a
// renderer attaches one first.
func (a *App) SpawnWindow(title string, focused, primary bool) registry.Entity {
	e := a.Registry.Spawn()
	a.Windows.Set(e, window.Window{Title: title, Focused: focused})

	if primary {
		a.Primaries.Set(e, window.PrimaryWindow{})
	}

	return e
}

// RequestClose asks the coordinator to close one window on the next pass.
func (a *App) RequestClose(e registry.Entity) {
	a.CloseRequests.Write(window.CloseRequested{Window: e})
}

// Tick runs one pass and consumes any exit signals it produced. It returns
// false once an exit has been requested.
func (a *App) Tick() bool {
	a.Scheduler.Tick()

	if len(a.Exits.Drain()) > 0 && !a.exitRequested {
		a.exitRequested = true
		log.Printf("exit requested after pass %d", a.Scheduler.Pass())
	}

	return !a.exitRequested
}

// Run ticks until an exit is requested or maxPasses passes have run.
func (a *App) Run(maxPasses uint64) {
	for i := uint64(0); i < maxPasses; i++ {
		if !a.Tick() {
			return
		}
	}
}

// RunUntilExit ticks until an exit is requested and then terminates the
// process, running registered exit handlers (e.g. trace flushes) first.
func (a *App) RunUntilExit() {
	for a.Tick() {
	}

	atexit.Exit(0)
}

// ExitRequested reports whether an exit signal has been consumed.
func (a *App) ExitRequested() bool {
	return a.exitRequested
}
