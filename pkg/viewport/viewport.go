package viewport

import (
	"fmt"
	"math"

	"github.com/vanderheijden86/chartview/pkg/debug"
	"github.com/vanderheijden86/chartview/pkg/metrics"
	"github.com/vanderheijden86/chartview/pkg/model"
)

// State is what a renderer needs to draw one frame.
type State struct {
	Domain     ZoomDomain
	Visible    []model.DataPoint
	Highlights []bool
	Search     SearchState
	SearchOpen bool
	Pan        PanState
}

// Subscriber is called with the new state after every visible change.
type Subscriber func(State)

type subscription struct {
	id int
	fn Subscriber
}

// Viewport owns the zoom domain of one chart and the highlight flags of its
// dataset. Handlers always read the current domain when they run.
type Viewport struct {
	data       *model.Dataset
	guard      Guard
	domain     ZoomDomain
	pan        PanController
	search     SearchState
	searchOpen bool
	surface    Size

	subs    []subscription
	nextSub int
	binding *Binding
}

// New creates a viewport over ds showing its full extent.
func New(ds *model.Dataset) (*Viewport, error) {
	if ds.Len() < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientData, ds.Len())
	}
	ds.ResetHighlights()
	return &Viewport{
		data:   ds,
		guard:  NewGuard(ds.Len()),
		domain: FullExtent(ds.Len()),
	}, nil
}

// Dataset returns the dataset behind the viewport.
func (v *Viewport) Dataset() *model.Dataset {
	return v.data
}

// Domain returns the current zoom domain.
func (v *Viewport) Domain() ZoomDomain {
	return v.domain
}

// Bounds returns the axis limits of the viewport.
func (v *Viewport) Bounds() Bounds {
	return v.guard.Bounds()
}

// SearchState returns the state of the last search.
func (v *Viewport) SearchState() SearchState {
	return v.search
}

// SearchOpen reports whether the search panel is open.
func (v *Viewport) SearchOpen() bool {
	return v.searchOpen
}

// PanState reports whether a drag gesture is active.
func (v *Viewport) PanState() PanState {
	return v.pan.State()
}

// Visible returns the points inside the current x range.
func (v *Viewport) Visible() []model.DataPoint {
	defer metrics.Timer(metrics.Project)()
	return Project(v.domain, v.data)
}

// State returns a snapshot of everything a renderer needs.
func (v *Viewport) State() State {
	return State{
		Domain:     v.domain,
		Visible:    v.Visible(),
		Highlights: v.data.HighlightFlags(),
		Search:     v.search,
		SearchOpen: v.searchOpen,
		Pan:        v.pan.State(),
	}
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (v *Viewport) Subscribe(fn Subscriber) (unsubscribe func()) {
	id := v.nextSub
	v.nextSub++
	v.subs = append(v.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range v.subs {
			if s.id == id {
				v.subs = append(v.subs[:i], v.subs[i+1:]...)
				return
			}
		}
	}
}

func (v *Viewport) notify() {
	if len(v.subs) == 0 {
		return
	}
	st := v.State()
	subs := make([]subscription, len(v.subs))
	copy(subs, v.subs)
	for _, s := range subs {
		s.fn(st)
	}
}

// SetSurface records the size of the plot area used to convert drag
// distances into domain units.
func (v *Viewport) SetSurface(size Size) {
	v.surface = size
}

// Surface returns the size of the plot area.
func (v *Viewport) Surface() Size {
	return v.surface
}

// apply passes candidate through the guard and, if it is accepted and
// differs from the current domain, replaces the domain and notifies
// subscribers.
func (v *Viewport) apply(candidate ZoomDomain, why string) bool {
	next, err := v.guard.ClampOrReject(candidate)
	if err != nil {
		debug.Log("%s: %v", why, err)
		return false
	}
	if next == v.domain {
		return false
	}
	v.domain = next
	debug.Log("%s: %s", why, next)
	return true
}

// ZoomIn narrows every axis by ZoomStep of its width on each side.
func (v *Viewport) ZoomIn() bool {
	return v.applyAndNotify(ZoomInCandidate(v.domain), "zoom in")
}

// ZoomOut widens every axis by ZoomStep of its width on each side, up to the
// axis limits.
func (v *Viewport) ZoomOut() bool {
	return v.applyAndNotify(ZoomOutCandidate(v.domain), "zoom out")
}

func (v *Viewport) applyAndNotify(candidate ZoomDomain, why string) bool {
	if !v.apply(candidate, why) {
		return false
	}
	v.notify()
	return true
}

func (v *Viewport) wheel(ev WheelEvent) bool {
	candidate, ok := WheelCandidate(v.domain, ev)
	if !ok {
		return false
	}
	return v.applyAndNotify(candidate, "wheel")
}

func (v *Viewport) panStart(at Point) {
	v.pan.Start(at, v.domain)
	v.notify()
}

func (v *Viewport) panMove(at Point) bool {
	candidate, ok := v.pan.Move(at, v.surface, v.guard.Bounds())
	if !ok {
		return false
	}
	return v.applyAndNotify(candidate, "pan")
}

func (v *Viewport) panEnd() {
	if v.pan.State() == PanIdle {
		return
	}
	v.pan.End()
	v.notify()
}

// Search highlights every point whose label contains term, ignoring case.
// An empty term changes nothing. When nothing matches, highlights are left as
// they were. Exactly one match also focuses the x axis on that point and its
// neighbours, leaving both y axes alone.
func (v *Viewport) Search(term string) SearchState {
	if term == "" {
		return v.search
	}
	done := metrics.Timer(metrics.Search)
	matches := Search(v.data, term)
	done()

	v.search = SearchState{Term: term, Matches: matches}
	if len(matches) > 0 {
		v.data.ApplyHighlights(matches)
	}
	if len(matches) == 1 {
		focus := v.domain
		focus.X = FocusWindow(matches[0], v.data.Len())
		v.apply(focus, "search focus")
	}
	debug.Log("search %q: %d matches", term, len(matches))
	v.notify()
	return v.search
}

// ResetHighlights clears every highlight flag.
func (v *Viewport) ResetHighlights() {
	v.data.ResetHighlights()
	v.notify()
}

// ToggleSearch opens or closes the search panel and reports whether it is
// now open. Either way the previous search and its highlights are cleared.
func (v *Viewport) ToggleSearch() bool {
	v.searchOpen = !v.searchOpen
	v.search = SearchState{}
	v.data.ResetHighlights()
	v.notify()
	return v.searchOpen
}

// Home restores the full extent, clears highlights and the search, and
// closes the search panel.
func (v *Viewport) Home() {
	v.domain = FullExtent(v.data.Len())
	v.data.ResetHighlights()
	v.search = SearchState{}
	v.searchOpen = false
	debug.Log("home: %s", v.domain)
	v.notify()
}

// PointAt returns the visible point nearest to a normalized horizontal
// cursor position across the plot area.
func (v *Viewport) PointAt(cursorX float64) (model.DataPoint, bool) {
	if math.IsNaN(cursorX) || cursorX < 0 || cursorX > 1 {
		return model.DataPoint{}, false
	}
	x := v.domain.X.Min + cursorX*v.domain.X.Width()
	i := int(math.Round(x))
	lo, hi := VisibleBounds(v.domain, v.data.Len())
	if i < lo || i > hi {
		return model.DataPoint{}, false
	}
	return v.data.At(i), true
}
