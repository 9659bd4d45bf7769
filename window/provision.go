package window

import "github.com/sarchlab/fenestra/registry"

// TokenProvisioner attaches a default SurfaceToken to every window entity
// that lacks one. It must run before the close systems in each pass, since
// they require the token to exist. Entities that already carry a token are
// untouched.
type TokenProvisioner struct {
	windows  *registry.Table[Window]
	tokens   *registry.Table[SurfaceToken]
	commands *registry.CommandBuffer
}

// NewTokenProvisioner creates a TokenProvisioner.
func NewTokenProvisioner(
	windows *registry.Table[Window],
	tokens *registry.Table[SurfaceToken],
	commands *registry.CommandBuffer,
) *TokenProvisioner {
	return &TokenProvisioner{
		windows:  windows,
		tokens:   tokens,
		commands: commands,
	}
}

// Name returns the name of the system.
func (p *TokenProvisioner) Name() string {
	return "TokenProvisioner"
}

// Tick queues a token insertion for every window without one.
func (p *TokenProvisioner) Tick() {
	p.windows.Each(func(e registry.Entity, _ Window) {
		if p.tokens.Has(e) {
			return
		}

		registry.Insert[SurfaceToken](
			p.commands, p.tokens, e, ReleasedSurfaceToken{})
	})
}
