package scale

import (
	"math"
	"strconv"
)

// Linear is a continuous linear transform from a value domain to a pixel range.
// Range may be inverted (Range[0] > Range[1]); the y axes of the plot always are.
type Linear struct {
	domain     Interval
	d0, d1     float64
	r0, r1     float64
	tickValues []float64
	integer    bool
}

// NewLinear builds a scale mapping d0 -> r0 and d1 -> r1.
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{
		domain: NewInterval(d0, d1),
		d0:     d0, d1: d1,
		r0: r0, r1: r1,
	}
}

// WithTicks fixes the tick values and formats them as integers when integer is set.
func (s *Linear) WithTicks(values []float64, integer bool) *Linear {
	s.tickValues = append([]float64(nil), values...)
	s.integer = integer
	return s
}

// Domain returns the value-space bounds, ordered.
func (s *Linear) Domain() Interval { return s.domain }

// Range returns the pixel endpoints in declaration order.
func (s *Linear) Range() (float64, float64) { return s.r0, s.r1 }

// ToPixel maps a value to pixel space. Values outside the domain extrapolate.
func (s *Linear) ToPixel(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	t := (v - s.d0) / (s.d1 - s.d0)
	return s.r0 + t*(s.r1-s.r0)
}

// ToValue is the inverse of ToPixel.
func (s *Linear) ToValue(px float64) float64 {
	if s.r1 == s.r0 {
		return s.d0
	}
	t := (px - s.r0) / (s.r1 - s.r0)
	return s.d0 + t*(s.d1-s.d0)
}

// Ticks returns the fixed tick values, or roughly count nice ticks over the domain.
func (s *Linear) Ticks(count int) []float64 {
	if len(s.tickValues) > 0 {
		return append([]float64(nil), s.tickValues...)
	}
	return NiceTicks(s.domain.Lo, s.domain.Hi, count)
}

// FormatTick renders a tick label.
func (s *Linear) FormatTick(v float64) string {
	if s.integer {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NiceTicks returns evenly spaced round values covering [lo, hi] with a step
// of 1, 2 or 5 times a power of ten.
func NiceTicks(lo, hi float64, count int) []float64 {
	if count <= 0 || lo == hi || math.IsNaN(lo) || math.IsNaN(hi) {
		return []float64{lo}
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	step := tickStep(lo, hi, count)
	start := math.Ceil(lo / step)
	stop := math.Floor(hi / step)
	ticks := make([]float64, 0, int(stop-start)+1)
	for i := start; i <= stop; i++ {
		// round away float noise like 0.30000000000000004
		ticks = append(ticks, roundTo(i*step, step))
	}
	return ticks
}

func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	errRatio := raw / power
	switch {
	case errRatio >= math.Sqrt(50):
		return power * 10
	case errRatio >= math.Sqrt(10):
		return power * 5
	case errRatio >= math.Sqrt(2):
		return power * 2
	}
	return power
}

func roundTo(v, step float64) float64 {
	digits := 0
	if step < 1 {
		digits = int(math.Ceil(-math.Log10(step)))
	}
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
