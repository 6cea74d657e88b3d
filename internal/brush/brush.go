// Package brush implements the per-axis range selectors of a parallel-coordinates plot.
//
// Each [Brush] is an independent state machine over a pixel-space selection:
//
//	Idle --Start--> Dragging --End(non-empty)--> Active
//	Dragging --End(empty)--> Idle
//	Active --Start--> Dragging
//
// Readers pull the selection in value space with [Brush.ExtentValue]; nothing
// is pushed to them.
package brush

import (
	"fmt"

	"github.com/san-kum/parcoord/internal/scale"
)

type State int

const (
	Idle State = iota
	Dragging
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Active:
		return "active"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type dragMode int

const (
	modeSelect dragMode = iota
	modeMove
)

// Brush is the vertical range selector of one dimension.
type Brush struct {
	dim    string
	scale  *scale.Linear
	bounds scale.Interval

	state  State
	sel    scale.Interval
	mode   dragMode
	anchor float64
	origin scale.Interval

	// values is the exact extent given to SetValues; it stands until the
	// selection is next changed in pixel space.
	values *scale.Interval
}

// New creates an idle brush over the pixel span bounds.
func New(dim string, s *scale.Linear, bounds scale.Interval) *Brush {
	return &Brush{dim: dim, scale: s, bounds: bounds}
}

func (b *Brush) Dimension() string { return b.dim }

func (b *Brush) State() State { return b.state }

// Start begins a gesture at pixel y. Pressing inside an active selection
// moves it; pressing anywhere else starts a new selection anchored at y.
func (b *Brush) Start(y float64) {
	y = b.bounds.Clamp(y)
	if b.state == Active && y >= b.sel.Lo && y <= b.sel.Hi {
		b.mode = modeMove
		b.origin = b.sel
	} else {
		b.mode = modeSelect
		b.sel = scale.Interval{Lo: y, Hi: y}
	}
	b.anchor = y
	b.state = Dragging
	b.values = nil
}

// Move updates the selection while dragging; it is ignored otherwise.
func (b *Brush) Move(y float64) {
	if b.state != Dragging {
		return
	}
	y = b.bounds.Clamp(y)
	if b.mode == modeSelect {
		b.sel = scale.NewInterval(b.anchor, y)
		return
	}
	delta := y - b.anchor
	if b.origin.Lo+delta < b.bounds.Lo {
		delta = b.bounds.Lo - b.origin.Lo
	}
	if b.origin.Hi+delta > b.bounds.Hi {
		delta = b.bounds.Hi - b.origin.Hi
	}
	b.sel = scale.Interval{Lo: b.origin.Lo + delta, Hi: b.origin.Hi + delta}
}

// End finishes the gesture. A zero-height selection collapses to Idle.
func (b *Brush) End() {
	if b.state != Dragging {
		return
	}
	if b.sel.Empty() {
		b.Clear()
		return
	}
	b.state = Active
}

// Clear drops the selection.
func (b *Brush) Clear() {
	b.state = Idle
	b.sel = scale.Interval{}
	b.mode = modeSelect
	b.values = nil
}

// SetPixels replaces the selection outside of any gesture.
func (b *Brush) SetPixels(y0, y1 float64) {
	b.values = nil
	b.sel = scale.NewInterval(b.bounds.Clamp(y0), b.bounds.Clamp(y1))
	if b.sel.Empty() {
		b.Clear()
		return
	}
	b.state = Active
}

// SetValues selects the value range [lo, hi], clamped to the axis domain.
// ExtentValue reports the clamped values exactly, not their pixel round trip.
func (b *Brush) SetValues(lo, hi float64) {
	dom := b.scale.Domain()
	v := scale.NewInterval(dom.Clamp(lo), dom.Clamp(hi))
	b.SetPixels(b.scale.ToPixel(v.Lo), b.scale.ToPixel(v.Hi))
	if b.state == Active {
		b.values = &v
	}
}

// Selection returns the raw pixel selection. ok is false when there is none
// or it has zero height.
func (b *Brush) Selection() (scale.Interval, bool) {
	if b.state == Idle || b.sel.Empty() {
		return scale.Interval{}, false
	}
	return b.sel, true
}

// ExtentValue inverts the pixel selection through the dimension's scale.
// The larger pixel maps to the smaller value, so the result is reordered.
func (b *Brush) ExtentValue() (scale.Interval, bool) {
	sel, ok := b.Selection()
	if !ok {
		return scale.Interval{}, false
	}
	if b.values != nil {
		return *b.values, true
	}
	v0 := b.scale.ToValue(sel.Hi)
	v1 := b.scale.ToValue(sel.Lo)
	return scale.NewInterval(v0, v1), true
}
