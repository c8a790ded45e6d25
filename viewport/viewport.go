// Package viewport implements the zoom and pan state machine of the
// editing surface. Handlers are pure: Reduce maps a State and an
// Event to the next State.
package viewport

import "math"

// Point is a position or an offset, in screen pixels.
type Point struct{ X, Y float64 }

// Size is the size of the visible viewport, in screen pixels.
type Size struct{ W, H float64 }

// Config holds the tuning constants of the controller.
type Config struct {
	ZoomSpeed float64 // zoom change per unit of wheel delta
	MinZoom   float64 // zoom floor; there is no ceiling
	PanFactor float64 // scroll pixels per pointer pixel
}

// DefaultConfig returns the standard constants.
func DefaultConfig() Config {
	return Config{ZoomSpeed: 0.05, MinZoom: 0.1, PanFactor: 1}
}

// State is the complete viewport state.
type State struct {
	Zoom    float64
	Scroll  Point
	Panning bool
	Anchor  Point // last pointer position while panning
	Size    Size
}

// NewState returns an idle state at zoom 1 with no scroll.
func NewState(size Size) State {
	return State{Zoom: 1, Size: size}
}

// Event is one of Wheel, PointerDown, PointerMove, PointerUp, Resize.
type Event interface {
	isEvent()
}

// Wheel is a scroll wheel input; negative DeltaY zooms in.
type Wheel struct {
	DeltaY float64
}

// PointerDown is a button press. Only presses over the viewport
// start a pan.
type PointerDown struct {
	Pos          Point
	OverViewport bool
}

// PointerMove is a pointer motion.
type PointerMove struct {
	Pos Point
}

// PointerUp is a button release, anywhere on the page.
type PointerUp struct{}

// Resize reports a new viewport size.
type Resize struct {
	Size Size
}

func (Wheel) isEvent()       {}
func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Resize) isEvent()      {}

// Reduce returns the state following s after ev.
// Unknown events leave the state unchanged.
func (cfg Config) Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case Wheel:
		return cfg.zoom(s, ev.DeltaY)
	case PointerDown:
		if !ev.OverViewport {
			return s
		}
		s.Panning = true
		s.Anchor = ev.Pos
	case PointerMove:
		if !s.Panning {
			return s
		}
		// each move is measured from the previous one, not from the press
		s.Scroll.X -= (ev.Pos.X - s.Anchor.X) * cfg.PanFactor
		s.Scroll.Y -= (ev.Pos.Y - s.Anchor.Y) * cfg.PanFactor
		s.Anchor = ev.Pos
	case PointerUp:
		s.Panning = false
	case Resize:
		s.Size = ev.Size
	}
	return s
}

// zoom applies a wheel delta then recenters the scroll offsets.
// The recentering formula reduces to center - size/(2*zoom): the
// offset is never rescaled to content space, as in the original
// viewer.
func (cfg Config) zoom(s State, d float64) State {
	s.Zoom = math.Max(cfg.MinZoom, s.Zoom+d*-cfg.ZoomSpeed)

	cx := s.Scroll.X + s.Size.W/2
	cy := s.Scroll.Y + s.Size.H/2
	s.Scroll.X = (cx*s.Zoom - s.Size.W/2) / s.Zoom
	s.Scroll.Y = (cy*s.Zoom - s.Size.H/2) / s.Zoom
	return s
}

// Cursor values for the viewport.
const (
	CursorGrab     = "grab"
	CursorGrabbing = "grabbing"
)

// Transform is what the rendering surface needs to display the state.
type Transform struct {
	ScalePercent float64 `json:"scalePercent"` // on both axes
	ScrollX      float64 `json:"scrollX"`
	ScrollY      float64 `json:"scrollY"`
	Cursor       string  `json:"cursor"`
}

// Transform returns the display transform of s.
func (s State) Transform() Transform {
	cursor := CursorGrab
	if s.Panning {
		cursor = CursorGrabbing
	}
	return Transform{
		ScalePercent: 100 * s.Zoom,
		ScrollX:      s.Scroll.X,
		ScrollY:      s.Scroll.Y,
		Cursor:       cursor,
	}
}
