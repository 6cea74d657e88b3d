package scale

import "math"

// Interval is a closed range [Lo, Hi].
type Interval struct {
	Lo, Hi float64
}

// NewInterval orders the endpoints so that Lo <= Hi.
func NewInterval(a, b float64) Interval {
	if b < a {
		a, b = b, a
	}
	return Interval{Lo: a, Hi: b}
}

// Contains reports whether v is finite and inside the interval, bounds included.
func (iv Interval) Contains(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= iv.Lo && v <= iv.Hi
}

func (iv Interval) Span() float64 { return iv.Hi - iv.Lo }

// Empty reports a zero-width interval.
func (iv Interval) Empty() bool { return iv.Hi <= iv.Lo }

// Clamp limits v to the interval.
func (iv Interval) Clamp(v float64) float64 {
	if v < iv.Lo {
		return iv.Lo
	}
	if v > iv.Hi {
		return iv.Hi
	}
	return v
}
