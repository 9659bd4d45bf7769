package window

// A SurfaceToken reports whether the renderer has released a window's
// graphics surface, making despawn safe. The coordinator polls it every
// pass for every pending window, so implementations must be cheap and must
// eventually report true once the surface is gone, or the window will never
// close through the safety path.
type SurfaceToken interface {
	SafeToCloseWindow() bool
}

// ReleasedSurfaceToken is the default token, attached by the
// TokenProvisioner when no renderer has claimed the window. It always
// reports the surface as released.
type ReleasedSurfaceToken struct{}

// SafeToCloseWindow always returns true.
func (ReleasedSurfaceToken) SafeToCloseWindow() bool {
	return true
}
