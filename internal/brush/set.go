package brush

import (
	"errors"
	"fmt"

	"github.com/san-kum/parcoord/internal/scale"
)

var (
	ErrUnknownDimension = errors.New("brush: unknown dimension")

	// ErrGestureCaptured is returned when a gesture already owns another brush.
	ErrGestureCaptured = errors.New("brush: gesture already captured")
)

// Set holds one brush per dimension and routes a pointer gesture to exactly one of them.
type Set struct {
	order   []string
	brushes map[string]*Brush
	grabbed *Brush
}

// NewSet creates an idle brush for every dimension of reg over its pixel range.
func NewSet(reg *scale.Registry) (*Set, error) {
	dims := reg.Dimensions()
	s := &Set{
		order:   append([]string(nil), dims...),
		brushes: make(map[string]*Brush, len(dims)),
	}
	for _, d := range dims {
		sc, err := reg.ScaleFor(d)
		if err != nil {
			return nil, err
		}
		s.brushes[d] = New(d, sc, reg.PixelRange())
	}
	return s, nil
}

func (s *Set) Dimensions() []string { return s.order }

// Brush returns the brush of dim.
func (s *Set) Brush(dim string) (*Brush, error) {
	b, ok := s.brushes[dim]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}
	return b, nil
}

// Start captures the gesture for dim's brush. While captured, no other
// brush can be started until End.
func (s *Set) Start(dim string, y float64) error {
	b, err := s.Brush(dim)
	if err != nil {
		return err
	}
	if s.grabbed != nil && s.grabbed != b {
		return fmt.Errorf("%w by %q", ErrGestureCaptured, s.grabbed.dim)
	}
	s.grabbed = b
	b.Start(y)
	return nil
}

// Move forwards pointer motion to the captured brush and returns its dimension.
func (s *Set) Move(y float64) (string, bool) {
	if s.grabbed == nil {
		return "", false
	}
	s.grabbed.Move(y)
	return s.grabbed.dim, true
}

// End releases the gesture at pixel y and returns the dimension it drove.
func (s *Set) End(y float64) (string, bool) {
	b := s.grabbed
	if b == nil {
		return "", false
	}
	b.Move(y)
	b.End()
	s.grabbed = nil
	return b.dim, true
}

// Captured returns the dimension owning the current gesture, if any.
func (s *Set) Captured() (string, bool) {
	if s.grabbed == nil {
		return "", false
	}
	return s.grabbed.dim, true
}

// CurrentExtentValue returns dim's selection in value space, ordered lo <= hi.
func (s *Set) CurrentExtentValue(dim string) (scale.Interval, bool) {
	b, ok := s.brushes[dim]
	if !ok {
		return scale.Interval{}, false
	}
	return b.ExtentValue()
}

// Clear drops dim's selection. A gesture on that brush is released too.
func (s *Set) Clear(dim string) error {
	b, err := s.Brush(dim)
	if err != nil {
		return err
	}
	if s.grabbed == b {
		s.grabbed = nil
	}
	b.Clear()
	return nil
}

func (s *Set) ClearAll() {
	s.grabbed = nil
	for _, b := range s.brushes {
		b.Clear()
	}
}

// SetValues selects [lo, hi] on dim without a gesture.
func (s *Set) SetValues(dim string, lo, hi float64) error {
	b, err := s.Brush(dim)
	if err != nil {
		return err
	}
	b.SetValues(lo, hi)
	return nil
}

// ActiveCount returns how many dimensions currently have a selection.
func (s *Set) ActiveCount() int {
	n := 0
	for _, d := range s.order {
		if _, ok := s.brushes[d].Selection(); ok {
			n++
		}
	}
	return n
}
