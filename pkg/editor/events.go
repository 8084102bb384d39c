package editor

// Key identifies the editing keys the session understands. Hosts translate
// their native key events into these values and are responsible for not
// forwarding keys while host-level text input has focus.
type Key string

// Editing keys.
const (
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyEscape Key = "escape"
)

// PointerEvent is one pointer sample in canvas coordinate space. Hosts
// translate device coordinates (screen pixels, terminal cells) into canvas
// units before delivery.
type PointerEvent struct {
	X, Y              int
	PrimaryButtonDown bool
}

// KeyEvent is one key press.
type KeyEvent struct {
	Key       Key
	ShiftHeld bool
}
