package viewport

import "github.com/vanderheijden86/chartview/pkg/debug"

// Listener names one input registration held by a Binding.
type Listener int

const (
	// ListenWheel receives wheel events over the plot area.
	ListenWheel Listener = iota
	// ListenPointerDown receives presses over the plot area.
	ListenPointerDown
	// ListenPointerMove receives pointer motion anywhere while a drag is active.
	ListenPointerMove
	// ListenPointerUp receives releases anywhere while a drag is active.
	ListenPointerUp
)

func (l Listener) String() string {
	switch l {
	case ListenWheel:
		return "wheel"
	case ListenPointerDown:
		return "pointer-down"
	case ListenPointerMove:
		return "pointer-move"
	case ListenPointerUp:
		return "pointer-up"
	default:
		return "unknown"
	}
}

// Binding is the set of input listeners a mounted viewport holds. Input only
// reaches the viewport through a live binding. Wheel and press listeners live
// as long as the binding; move and release listeners exist only during a drag.
type Binding struct {
	v         *Viewport
	listeners map[Listener]bool
	released  bool
}

// Mount registers the plot-area listeners and returns the binding that owns
// them. Mounting an already mounted viewport releases the previous binding.
func (v *Viewport) Mount() *Binding {
	if v.binding != nil {
		v.binding.Release()
	}
	b := &Binding{
		v: v,
		listeners: map[Listener]bool{
			ListenWheel:       true,
			ListenPointerDown: true,
		},
	}
	v.binding = b
	debug.Log("viewport mounted")
	return b
}

// Mounted reports whether the viewport currently holds a live binding.
func (v *Viewport) Mounted() bool {
	return v.binding != nil && !v.binding.released
}

// Listening reports whether the listener is registered.
func (b *Binding) Listening(l Listener) bool {
	return !b.released && b.listeners[l]
}

// Released reports whether Release has been called.
func (b *Binding) Released() bool {
	return b.released
}

// Wheel delivers one wheel event.
func (b *Binding) Wheel(ev WheelEvent) bool {
	if !b.Listening(ListenWheel) {
		return false
	}
	return b.v.wheel(ev)
}

// PointerDown starts a drag at the given position and registers the move and
// release listeners for its duration.
func (b *Binding) PointerDown(at Point) {
	if !b.Listening(ListenPointerDown) {
		return
	}
	b.listeners[ListenPointerMove] = true
	b.listeners[ListenPointerUp] = true
	b.v.panStart(at)
}

// PointerMove delivers pointer motion. Motion outside a drag is ignored.
func (b *Binding) PointerMove(at Point) bool {
	if !b.Listening(ListenPointerMove) {
		return false
	}
	return b.v.panMove(at)
}

// PointerUp ends the drag and drops the move and release listeners.
func (b *Binding) PointerUp(Point) {
	if !b.Listening(ListenPointerUp) {
		return
	}
	delete(b.listeners, ListenPointerMove)
	delete(b.listeners, ListenPointerUp)
	b.v.panEnd()
}

// Release drops every listener. A drag in progress is discarded and the
// domain keeps whatever the last move produced. Release is idempotent.
func (b *Binding) Release() {
	if b.released {
		return
	}
	b.released = true
	b.listeners = nil
	b.v.pan.End()
	if b.v.binding == b {
		b.v.binding = nil
	}
	debug.Log("viewport released")
}
