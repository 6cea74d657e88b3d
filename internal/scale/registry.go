package scale

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownDimension = errors.New("scale: unknown dimension")

// Spec describes how one dimension's scale is built.
// A nil Domain means the domain comes from the observed data extent.
type Spec struct {
	Name    string
	Domain  *Interval
	Ticks   []float64
	Integer bool
}

// ExtentFunc reports the observed finite min/max of a dimension.
type ExtentFunc func(dim string) (Interval, bool)

// Registry holds one y scale per dimension. It is read-only once built.
type Registry struct {
	order  []string
	scales map[string]*Linear
	height float64
}

// Build creates every dimension's scale over the pixel range [height, 0].
func Build(specs []Spec, height float64, extent ExtentFunc) (*Registry, error) {
	if height <= 0 {
		return nil, fmt.Errorf("scale: non-positive height %v", height)
	}
	r := &Registry{
		order:  make([]string, 0, len(specs)),
		scales: make(map[string]*Linear, len(specs)),
		height: height,
	}
	for _, sp := range specs {
		if _, dup := r.scales[sp.Name]; dup {
			return nil, fmt.Errorf("scale: duplicate dimension %q", sp.Name)
		}
		dom := observedDomain(sp.Name, extent)
		if sp.Domain != nil {
			dom = *sp.Domain
		}
		s := NewLinear(dom.Lo, dom.Hi, height, 0)
		if len(sp.Ticks) > 0 || sp.Integer {
			s.WithTicks(sp.Ticks, sp.Integer)
		}
		r.order = append(r.order, sp.Name)
		r.scales[sp.Name] = s
	}
	return r, nil
}

func observedDomain(dim string, extent ExtentFunc) Interval {
	if extent == nil {
		return Interval{Lo: 0, Hi: 1}
	}
	iv, ok := extent(dim)
	if !ok || math.IsNaN(iv.Lo) || math.IsNaN(iv.Hi) {
		return Interval{Lo: 0, Hi: 1}
	}
	if iv.Empty() {
		return Interval{Lo: iv.Lo - 0.5, Hi: iv.Hi + 0.5}
	}
	return iv
}

// ScaleFor returns the scale registered for dim.
func (r *Registry) ScaleFor(dim string) (*Linear, error) {
	s, ok := r.scales[dim]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}
	return s, nil
}

// Dimensions returns the dimension names in axis order.
func (r *Registry) Dimensions() []string { return r.order }

func (r *Registry) Height() float64 { return r.height }

// PixelRange is the shared pixel span of every y scale, top first.
func (r *Registry) PixelRange() Interval { return Interval{Lo: 0, Hi: r.height} }
