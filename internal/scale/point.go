package scale

// Point places n discrete names at evenly spaced positions across [r0, r1],
// leaving padding steps of empty space at each end.
type Point struct {
	names   []string
	index   map[string]int
	start   float64
	step    float64
	padding float64
}

func NewPoint(names []string, r0, r1, padding float64) *Point {
	n := len(names)
	denom := float64(n-1) + 2*padding
	if denom < 1 {
		denom = 1
	}
	step := (r1 - r0) / denom
	start := r0 + (r1-r0-step*float64(n-1))/2
	if n == 0 {
		start = r0
	}
	idx := make(map[string]int, n)
	for i, name := range names {
		idx[name] = i
	}
	return &Point{
		names:   append([]string(nil), names...),
		index:   idx,
		start:   start,
		step:    step,
		padding: padding,
	}
}

// X returns the slot of name; ok is false for unknown names.
func (p *Point) X(name string) (float64, bool) {
	i, ok := p.index[name]
	if !ok {
		return 0, false
	}
	return p.At(i), true
}

// At returns the slot of the i-th name.
func (p *Point) At(i int) float64 { return p.start + p.step*float64(i) }

func (p *Point) Step() float64 { return p.step }

func (p *Point) Names() []string { return p.names }

// Nearest returns the index of the slot closest to x.
func (p *Point) Nearest(x float64) int {
	if len(p.names) == 0 {
		return -1
	}
	best, bestDist := 0, -1.0
	for i := range p.names {
		d := x - p.At(i)
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
