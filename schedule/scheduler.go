// Package schedule runs coordinator systems in a fixed order, one pass at a
// time, applying queued structural mutations between systems.
package schedule

import (
	"sync"

	"github.com/sarchlab/fenestra/event"
	"github.com/sarchlab/fenestra/hooking"
	"github.com/sarchlab/fenestra/registry"
)

// A System updates one slice of coordinator state once per pass.
type System interface {
	Name() string
	Tick()
}

// HookPosBeforeSystem triggers before a system runs. Item is the System.
var HookPosBeforeSystem = &hooking.HookPos{Name: "BeforeSystem"}

// HookPosAfterSystem triggers after a system's queued mutations are applied.
// Item is the System.
var HookPosAfterSystem = &hooking.HookPos{Name: "AfterSystem"}

// A Scheduler runs registered systems in registration order, once per pass.
// The command buffer is flushed after each system, so a later system
// observes the despawns an earlier system queued, while no system sees its
// own mutations within one invocation. Registered event queues are cleared
// when the pass ends, giving events a single-pass lifetime.
type Scheduler struct {
	hooking.HookableBase

	systems  []System
	commands *registry.CommandBuffer
	queues   []event.Clearer

	passLock sync.RWMutex
	pass     uint64

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex
}

// NewScheduler creates a Scheduler that flushes the given command buffer.
func NewScheduler(commands *registry.CommandBuffer) *Scheduler {
	return &Scheduler{commands: commands}
}

// AddSystem appends a system. Systems run in the order they are added.
func (s *Scheduler) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
}

// Systems returns the registered systems in run order.
func (s *Scheduler) Systems() []System {
	return s.systems
}

// RegisterQueue adds an event queue to be cleared at the end of each pass.
// Queues whose consumer runs outside the pass must not be registered.
func (s *Scheduler) RegisterQueue(q event.Clearer) {
	s.queues = append(s.queues, q)
}

// Tick runs one full pass. It blocks while the scheduler is paused.
func (s *Scheduler) Tick() {
	s.pauseLock.Lock()
	defer s.pauseLock.Unlock()

	for _, sys := range s.systems {
		ctx := hooking.HookCtx{
			Domain: s,
			Pos:    HookPosBeforeSystem,
			Item:   sys,
			Detail: s.readPass(),
		}
		s.InvokeHook(ctx)

		sys.Tick()
		s.commands.Flush()

		ctx.Pos = HookPosAfterSystem
		s.InvokeHook(ctx)
	}

	for _, q := range s.queues {
		q.Clear()
	}

	s.incrementPass()
}

// Pause prevents the Scheduler from starting another pass, letting other
// goroutines read the tables the systems mutate.
func (s *Scheduler) Pause() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if s.isPaused {
		return
	}

	s.pauseLock.Lock()
	s.isPaused = true
}

// Continue allows the Scheduler to run more passes.
func (s *Scheduler) Continue() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if !s.isPaused {
		return
	}

	s.pauseLock.Unlock()
	s.isPaused = false
}

// Pass returns the number of completed passes.
func (s *Scheduler) Pass() uint64 {
	return s.readPass()
}

func (s *Scheduler) readPass() uint64 {
	s.passLock.RLock()
	defer s.passLock.RUnlock()

	return s.pass
}

func (s *Scheduler) incrementPass() {
	s.passLock.Lock()
	defer s.passLock.Unlock()

	s.pass++
}
