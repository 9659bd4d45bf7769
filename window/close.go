package window

import (
	"github.com/sarchlab/fenestra/event"
	"github.com/sarchlab/fenestra/hooking"
	"github.com/sarchlab/fenestra/registry"
)

// HookPosCloseDropped triggers when a close request targets an entity with
// no surface token. Item is the target Entity.
var HookPosCloseDropped = &hooking.HookPos{Name: "CloseDropped"}

// HookPosCloseDeferred triggers when a close request is stashed because the
// surface is still in use. Item is the target Entity.
var HookPosCloseDeferred = &hooking.HookPos{Name: "CloseDeferred"}

// HookPosWindowReleased triggers when a window's despawn is queued after its
// token reported the surface released. Item is the target Entity.
var HookPosWindowReleased = &hooking.HookPos{Name: "WindowReleased"}

// CloseCoordinator honors close requests. A request is granted immediately
// when the window's SurfaceToken reports the surface released; otherwise the
// window is stashed in an owned waiting set and re-checked every pass until
// the renderer cleans up the surface.
type CloseCoordinator struct {
	hooking.HookableBase

	tokens   *registry.Table[SurfaceToken]
	requests *event.Queue[CloseRequested]
	commands *registry.CommandBuffer

	waitingToClose map[registry.Entity]struct{}
}

// NewCloseCoordinator creates a CloseCoordinator. The waiting set is owned
// by the returned instance, so independent coordinators never share retry
// state.
func NewCloseCoordinator(
	tokens *registry.Table[SurfaceToken],
	requests *event.Queue[CloseRequested],
	commands *registry.CommandBuffer,
) *CloseCoordinator {
	return &CloseCoordinator{
		tokens:         tokens,
		requests:       requests,
		commands:       commands,
		waitingToClose: make(map[registry.Entity]struct{}),
	}
}

// Name returns the name of the system.
func (c *CloseCoordinator) Name() string {
	return "CloseCoordinator"
}

// Tick drains this pass's close requests and then retries every window
// whose close was deferred on an earlier pass.
func (c *CloseCoordinator) Tick() {
	c.processRequests()
	c.retryPending()
}

func (c *CloseCoordinator) processRequests() {
	for _, req := range c.requests.Drain() {
		token, ok := c.tokens.Get(req.Window)
		if !ok {
			// The window is already gone or its token is not provisioned
			// yet. Not an error; drop the request.
			c.InvokeHook(hooking.HookCtx{
				Domain: c,
				Pos:    HookPosCloseDropped,
				Item:   req.Window,
			})
			continue
		}

		if token.SafeToCloseWindow() {
			c.release(req.Window)
			continue
		}

		// Stash for later, when the renderer cleans up the surface.
		c.waitingToClose[req.Window] = struct{}{}
		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosCloseDeferred,
			Item:   req.Window,
		})
	}
}

func (c *CloseCoordinator) retryPending() {
	for e := range c.waitingToClose {
		token, ok := c.tokens.Get(e)
		if !ok {
			// A window that vanished through another path keeps its entry.
			// This mirrors the reference retain/remove split; see
			// DESIGN.md.
			continue
		}

		if !token.SafeToCloseWindow() {
			continue
		}

		c.release(e)
		delete(c.waitingToClose, e)
	}
}

func (c *CloseCoordinator) release(e registry.Entity) {
	c.commands.Despawn(e)
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosWindowReleased,
		Item:   e,
	})
}

// NumPending returns the number of windows whose close is deferred.
func (c *CloseCoordinator) NumPending() int {
	return len(c.waitingToClose)
}

// PendingWindows returns the handles of all windows whose close is
// deferred, in no particular order.
func (c *CloseCoordinator) PendingWindows() []registry.Entity {
	entities := make([]registry.Entity, 0, len(c.waitingToClose))
	for e := range c.waitingToClose {
		entities = append(entities, e)
	}

	return entities
}
