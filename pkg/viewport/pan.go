package viewport

// Point is a pointer position in screen units (cells or pixels).
type Point struct {
	X float64
	Y float64
}

// Size is the extent of the plot area in the same units as Point.
type Size struct {
	Width  float64
	Height float64
}

// PanState is the state of the drag state machine.
type PanState int

const (
	// PanIdle means no drag gesture is active.
	PanIdle PanState = iota
	// Panning means a drag gesture is active.
	Panning
)

func (s PanState) String() string {
	if s == Panning {
		return "panning"
	}
	return "idle"
}

// panSession is the reference point of one drag gesture.
type panSession struct {
	anchor   Point
	snapshot ZoomDomain
}

// PanController turns drag gestures into shifted domains. Every move is
// computed against the domain captured when the gesture started, so moves
// never accumulate error.
type PanController struct {
	session *panSession
}

// Start begins a gesture at the given pointer position. Starting while a
// gesture is already active restarts it from the new position and domain.
func (p *PanController) Start(at Point, current ZoomDomain) {
	p.session = &panSession{anchor: at, snapshot: current}
}

// Move returns the candidate domain for the pointer at the given position.
// Dragging right moves the window left, so content follows the pointer;
// vertical drags are not inverted. A window that would cross an axis limit is
// placed flush against it with its width unchanged. Deltas are snapped to the
// domain grid so the shift is exact. ok is false when no gesture is active or
// the surface has no area.
func (p *PanController) Move(at Point, surface Size, b Bounds) (ZoomDomain, bool) {
	if p.session == nil || surface.Width <= 0 || surface.Height <= 0 {
		return ZoomDomain{}, false
	}
	s := p.session.snapshot
	ratioX := (at.X - p.session.anchor.X) / surface.Width
	ratioY := (at.Y - p.session.anchor.Y) / surface.Height

	return ZoomDomain{
		X:  s.X.Shift(snap(-ratioX * s.X.Width())).reflect(b.X),
		Y1: s.Y1.Shift(snap(ratioY * s.Y1.Width())).reflect(b.Y1),
		Y2: s.Y2.Shift(snap(ratioY * s.Y2.Width())).reflect(b.Y2),
	}, true
}

// End finishes the gesture and discards its session.
func (p *PanController) End() {
	p.session = nil
}

// State reports whether a gesture is active.
func (p *PanController) State() PanState {
	if p.session != nil {
		return Panning
	}
	return PanIdle
}
