package app

import (
	"github.com/sarchlab/fenestra/event"
	"github.com/sarchlab/fenestra/monitoring"
	"github.com/sarchlab/fenestra/registry"
	"github.com/sarchlab/fenestra/schedule"
	"github.com/sarchlab/fenestra/trace"
	"github.com/sarchlab/fenestra/window"
)

// Builder can be used to build an App.
type Builder struct {
	keyboard      window.Keyboard
	monitorOn     bool
	monitorPort   int
	traceOn       bool
	traceFileName string
}

// MakeBuilder creates a new builder with monitoring and tracing disabled.
func MakeBuilder() Builder {
	return Builder{}
}

// WithKeyboard sets the keyboard-state provider backing the escape-close
// system. Without one, the escape-close system never fires.
func (b Builder) WithKeyboard(k window.Keyboard) Builder {
	b.keyboard = k
	return b
}

// WithMonitoring enables the HTTP monitoring server.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithTracing enables the SQLite lifecycle trace recorder.
func (b Builder) WithTracing() Builder {
	b.traceOn = true
	return b
}

// WithTraceFileName sets a custom output file name for the trace recorder.
func (b Builder) WithTraceFileName(filename string) Builder {
	b.traceFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.traceOn && b.traceFileName != "" {
		panic("trace file name cannot be set when tracing is disabled")
	}
}

// Build builds the App. Systems are registered in dependency order: token
// provisioning, close coordination, the escape-close convenience action,
// and the two exit evaluators, so the evaluators observe every despawn
// queued earlier in the same pass.
func (b Builder) Build() *App {
	b.parametersMustBeValid()

	a := &App{}

	a.Registry = registry.NewRegistry()
	a.Windows = registry.NewTable[window.Window](a.Registry)
	a.Primaries = registry.NewTable[window.PrimaryWindow](a.Registry)
	a.Tokens = registry.NewTable[window.SurfaceToken](a.Registry)
	a.Commands = registry.NewCommandBuffer(a.Registry)

	a.CloseRequests = event.NewQueue[window.CloseRequested]()
	a.Exits = event.NewQueue[window.AppExit]()

	a.Scheduler = schedule.NewScheduler(a.Commands)
	a.Coordinator = window.NewCloseCoordinator(
		a.Tokens, a.CloseRequests, a.Commands)

	keyboard := b.keyboard
	if keyboard == nil {
		keyboard = inertKeyboard{}
	}

	exitAll := window.NewExitOnAllClosed(a.Windows, a.Exits)
	exitPrimary := window.NewExitOnPrimaryClosed(
		a.Windows, a.Primaries, a.Exits)

	a.Scheduler.AddSystem(
		window.NewTokenProvisioner(a.Windows, a.Tokens, a.Commands))
	a.Scheduler.AddSystem(a.Coordinator)
	a.Scheduler.AddSystem(
		window.NewCloseOnEscape(a.Windows, keyboard, a.Commands))
	a.Scheduler.AddSystem(exitAll)
	a.Scheduler.AddSystem(exitPrimary)

	// Requests not consumed this pass must not leak into the next one.
	a.Scheduler.RegisterQueue(a.CloseRequests)

	if b.traceOn {
		recorder := trace.NewRecorder(a.Scheduler.Pass)
		if b.traceFileName != "" {
			recorder.WithFileName(b.traceFileName)
		}
		recorder.Init()
		a.Scheduler.AcceptHook(recorder)
		a.Coordinator.AcceptHook(recorder)
		exitAll.AcceptHook(recorder)
		exitPrimary.AcceptHook(recorder)
	}

	if b.monitorOn {
		monitor := monitoring.NewMonitor()
		if b.monitorPort > 0 {
			monitor.WithPortNumber(b.monitorPort)
		}
		monitor.RegisterScheduler(a.Scheduler)
		monitor.RegisterCoordinator(a.Coordinator)
		monitor.RegisterWindows(a.Windows, a.Primaries)
		monitor.StartServer()
	}

	return a
}

// inertKeyboard reports every key as not pressed.
type inertKeyboard struct{}

func (inertKeyboard) JustPressed(window.Key) bool {
	return false
}
