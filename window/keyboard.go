package window

// Key identifies one key on the keyboard-state provider.
type Key int

// KeyEscape is the cancel key that CloseOnEscape reacts to.
const KeyEscape Key = 27

// A Keyboard answers edge-triggered key queries. JustPressed must report
// true for exactly one pass per physical press; holding a key must not
// re-fire it.
type Keyboard interface {
	JustPressed(k Key) bool
}
