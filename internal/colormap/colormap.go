// Package colormap maps a numeric value onto a perceptual sequential color ramp.
package colormap

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/parcoord/internal/scale"
)

// Unknown is used for values that cannot be placed on the ramp.
const Unknown = "#999999"

// evenly spaced samples of the matplotlib ramps
var ramps = map[string][]string{
	"viridis": {"#440154", "#482475", "#414487", "#355f8d", "#2a788e", "#21918c", "#22a884", "#44bf70", "#7ad151", "#bddf26", "#fde725"},
	"magma":   {"#000004", "#140e36", "#3b0f70", "#641a80", "#8c2981", "#b73779", "#de4968", "#f7705c", "#fe9f6d", "#fecf92", "#fcfdbf"},
	"plasma":  {"#0d0887", "#41049d", "#6a00a8", "#8f0da4", "#b12a90", "#cc4778", "#e16462", "#f2844b", "#fca636", "#fcce25", "#f0f921"},
	"cividis": {"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838"},
}

// Sequential maps a domain onto one ramp.
type Sequential struct {
	name   string
	domain scale.Interval
	stops  []colorful.Color
}

// New builds the named ramp over domain. Unknown names fall back to viridis.
func New(name string, domain scale.Interval) *Sequential {
	hexes, ok := ramps[name]
	if !ok {
		name, hexes = "viridis", ramps["viridis"]
	}
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("colormap: bad ramp color " + h)
		}
		stops[i] = c
	}
	return &Sequential{name: name, domain: domain, stops: stops}
}

// Viridis is the ramp used to color records by birth year.
func Viridis(domain scale.Interval) *Sequential { return New("viridis", domain) }

func (s *Sequential) Name() string { return s.name }

func (s *Sequential) Domain() scale.Interval { return s.domain }

// At returns the color of v. ok is false for non-finite v.
func (s *Sequential) At(v float64) (colorful.Color, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return colorful.Color{}, false
	}
	t := 0.5
	if span := s.domain.Span(); span > 0 {
		t = (v - s.domain.Lo) / span
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(s.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(s.stops)-1 {
		return s.stops[len(s.stops)-1], true
	}
	return s.stops[i].BlendRgb(s.stops[i+1], pos-float64(i)).Clamped(), true
}

// Hex returns the color of v as #rrggbb, or Unknown.
func (s *Sequential) Hex(v float64) string {
	c, ok := s.At(v)
	if !ok {
		return Unknown
	}
	return c.Hex()
}

// Names lists the available ramps.
func Names() []string {
	names := make([]string, 0, len(ramps))
	for n := range ramps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
