package viewport

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoomFloor(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	s := NewState(Size{W: 800, H: 600})
	for i := 0; i < 1000; i++ {
		d := (rng.Float64() - 0.3) * 2000
		s = cfg.Reduce(s, Wheel{DeltaY: d})
		if s.Zoom < 0.1 {
			t.Fatalf("zoom dropped to %v after delta %v", s.Zoom, d)
		}
	}
}

func TestZoomLargeDelta(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(Size{})

	// 1 + 100 * -0.05 = -4, clamped
	assert.Equal(t, 0.1, cfg.Reduce(s, Wheel{DeltaY: 100}).Zoom)
	// 1 + -100 * -0.05 = 6, no ceiling
	assert.InDelta(t, 6, cfg.Reduce(s, Wheel{DeltaY: -100}).Zoom, 1e-12)
	assert.InDelta(t, 1.05, cfg.Reduce(s, Wheel{DeltaY: -1}).Zoom, 1e-12)
}

func TestZoomRecenter(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(Size{W: 200, H: 100})
	s.Scroll = Point{X: 50, Y: 20}

	s = cfg.Reduce(s, Wheel{DeltaY: -20}) // zoom 2
	assert.InDelta(t, 2, s.Zoom, 1e-12)
	// center (150, 70): (150*2 - 100)/2, (70*2 - 50)/2
	assert.InDelta(t, 100, s.Scroll.X, 1e-9)
	assert.InDelta(t, 45, s.Scroll.Y, 1e-9)

	tr := s.Transform()
	assert.InDelta(t, 200, tr.ScalePercent, 1e-9)
	assert.Equal(t, s.Scroll.X, tr.ScrollX)
}

func TestZoomRecenterNotRescaled(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(Size{W: 300, H: 120})
	s.Scroll = Point{X: 10, Y: 40}

	for _, d := range []float64{-10, -35, 4, 60} {
		before := s
		s = cfg.Reduce(s, Wheel{DeltaY: d})
		cx := before.Scroll.X + before.Size.W/2
		cy := before.Scroll.Y + before.Size.H/2
		assert.InDelta(t, cx-s.Size.W/(2*s.Zoom), s.Scroll.X, 1e-9)
		assert.InDelta(t, cy-s.Size.H/(2*s.Zoom), s.Scroll.Y, 1e-9)
	}
}

func TestPanStateMachine(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(Size{W: 100, H: 100})

	// moves while idle do nothing
	s = cfg.Reduce(s, PointerMove{Pos: Point{10, 10}})
	assert.Equal(t, Point{}, s.Scroll)

	// a press outside the viewport does not start a pan
	s = cfg.Reduce(s, PointerDown{Pos: Point{5, 5}})
	assert.False(t, s.Panning)

	s = cfg.Reduce(s, PointerDown{Pos: Point{5, 5}, OverViewport: true})
	assert.True(t, s.Panning)
	assert.Equal(t, CursorGrabbing, s.Transform().Cursor)

	s = cfg.Reduce(s, PointerMove{Pos: Point{8, 1}})
	assert.Equal(t, Point{-3, 4}, s.Scroll)
	assert.Equal(t, Point{8, 1}, s.Anchor)

	s = cfg.Reduce(s, PointerUp{})
	assert.False(t, s.Panning)
	assert.Equal(t, CursorGrab, s.Transform().Cursor)

	s = cfg.Reduce(s, PointerMove{Pos: Point{100, 100}})
	assert.Equal(t, Point{-3, 4}, s.Scroll)
}

func TestPanAdditive(t *testing.T) {
	cfg := DefaultConfig()
	start := cfg.Reduce(NewState(Size{}), PointerDown{Pos: Point{10, 10}, OverViewport: true})

	twoSteps := cfg.Reduce(start, PointerMove{Pos: Point{13, 5}})
	twoSteps = cfg.Reduce(twoSteps, PointerMove{Pos: Point{20, 30}})

	oneStep := cfg.Reduce(start, PointerMove{Pos: Point{20, 30}})

	assert.InDelta(t, oneStep.Scroll.X, twoSteps.Scroll.X, 1e-12)
	assert.InDelta(t, oneStep.Scroll.Y, twoSteps.Scroll.Y, 1e-12)
	assert.Equal(t, Point{-10, -20}, oneStep.Scroll)
}

func TestPanFactor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PanFactor = 0.5
	s := cfg.Reduce(NewState(Size{}), PointerDown{OverViewport: true})
	s = cfg.Reduce(s, PointerMove{Pos: Point{10, -4}})
	assert.Equal(t, Point{-5, 2}, s.Scroll)
}

func TestResize(t *testing.T) {
	s := DefaultConfig().Reduce(NewState(Size{}), Resize{Size: Size{W: 3, H: 4}})
	assert.Equal(t, Size{W: 3, H: 4}, s.Size)
}
