// Package window coordinates the lifecycle of application windows: it
// provisions surface tokens, mediates close requests against the renderer's
// release signal, retries deferred closes, and derives process-exit
// decisions from the surviving window set.
package window

import "github.com/sarchlab/fenestra/registry"

// Window marks an entity as a live application window and carries the
// display state the coordinator reads.
type Window struct {
	Title   string
	Focused bool
}

// PrimaryWindow marks the single window whose closure is treated as
// equivalent to "the application should exit". At most one entity should
// carry it.
type PrimaryWindow struct{}

// CloseRequested asks the coordinator to close one window. Platform glue
// emits it when a close signal arrives, e.g. the title-bar close button.
type CloseRequested struct {
	Window registry.Entity
}

// AppExit instructs the host process to begin shutdown. It carries no
// payload; consumers must treat repeated signals in one pass as one.
type AppExit struct{}
