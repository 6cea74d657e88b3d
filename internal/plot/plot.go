// Package plot ties the scales, cached paths, brushes, filter and throttle of
// one parallel-coordinates plot into a single explicitly constructed context.
//
// Several plots may coexist; nothing here is global. All methods are meant to
// be called from one event loop and none of them block.
package plot

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/san-kum/parcoord/internal/brush"
	"github.com/san-kum/parcoord/internal/colormap"
	"github.com/san-kum/parcoord/internal/config"
	"github.com/san-kum/parcoord/internal/dataset"
	"github.com/san-kum/parcoord/internal/filter"
	"github.com/san-kum/parcoord/internal/path"
	"github.com/san-kum/parcoord/internal/scale"
	"github.com/san-kum/parcoord/internal/throttle"
)

var ErrDimensionMismatch = errors.New("plot: dataset dimensions do not match configuration")

type Plot struct {
	cfg     *config.Config
	Data    *dataset.Dataset
	Scales  *scale.Registry
	X       *scale.Point
	Paths   *path.Cache
	Brushes *brush.Set
	Colors  *colormap.Sequential

	throttle *throttle.Throttle[string]
	visible  []bool
	applied  int
	onApply  func(vis []bool)
	log      *slog.Logger
}

// Open loads cfg.Dataset and builds the plot over it. A load failure is
// logged and returned; no partial dataset is used.
func Open(cfg *config.Config) (*Plot, error) {
	ds, err := dataset.LoadFile(cfg.Dataset, cfg.DimensionNames())
	if err != nil {
		slog.Error("dataset load failed", slog.String("path", cfg.Dataset), slog.Any("error", err))
		return nil, err
	}
	return New(cfg, ds)
}

// New builds scales, axis slots, the path cache and one idle brush per dimension.
func New(cfg *config.Config, ds *dataset.Dataset) (*Plot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dims := cfg.DimensionNames()
	if !slices.Equal(dims, ds.Dimensions) {
		return nil, fmt.Errorf("%w: config %v, dataset %v", ErrDimensionMismatch, dims, ds.Dimensions)
	}

	reg, err := scale.Build(cfg.ScaleSpecs(), cfg.PlotHeight(), ds.Extent)
	if err != nil {
		return nil, err
	}
	x := scale.NewPoint(dims, 0, cfg.PlotWidth(), cfg.Padding)
	paths, err := path.NewCache(ds, reg, x)
	if err != nil {
		return nil, err
	}
	brushes, err := brush.NewSet(reg)
	if err != nil {
		return nil, err
	}

	var colors *colormap.Sequential
	if cfg.ColorBy != "" {
		dom, ok := ds.Extent(cfg.ColorBy)
		if !ok {
			dom = scale.Interval{Lo: 0, Hi: 1}
		}
		colors = colormap.New(cfg.Theme, dom)
	}

	p := &Plot{
		cfg:     cfg,
		Data:    ds,
		Scales:  reg,
		X:       x,
		Paths:   paths,
		Brushes: brushes,
		Colors:  colors,
		log:     slog.Default().With(slog.String("component", "plot")),
	}
	p.throttle = throttle.New(cfg.ThrottleInterval(), p.apply)
	p.visible = filter.ComputeVisibility(ds, brushes)

	p.log.Info("plot ready",
		slog.String("source", ds.Source),
		slog.Int("records", ds.Len()),
		slog.Int("dimensions", len(dims)))
	return p, nil
}

func (p *Plot) Config() *config.Config { return p.cfg }

// OnApply registers fn to receive every freshly computed visibility.
func (p *Plot) OnApply(fn func(vis []bool)) { p.onApply = fn }

func (p *Plot) apply(dim string) {
	p.visible = filter.ComputeInto(p.visible, p.Data, p.Brushes)
	p.applied++
	p.log.Debug("visibility applied",
		slog.String("dimension", dim),
		slog.Int("visible", filter.Count(p.visible)),
		slog.Int("active", p.Brushes.ActiveCount()))
	if p.onApply != nil {
		p.onApply(p.visible)
	}
}

// HitTest returns the dimension whose brush area contains the plot-space
// point. slack widens the brush area for coarse pointers such as terminal cells.
func (p *Plot) HitTest(x, y, slack float64) (string, bool) {
	if y < 0 || y > p.Scales.Height() {
		return "", false
	}
	i := p.X.Nearest(x)
	if i < 0 {
		return "", false
	}
	ax, half := p.X.At(i), max(p.cfg.BrushHalfWidth, slack)
	if x < ax-half || x > ax+half {
		return "", false
	}
	return p.X.Names()[i], true
}

// BrushStart begins a drag on dim at plot pixel y. The gesture is captured
// by that brush alone.
func (p *Plot) BrushStart(dim string, y float64) error {
	if err := p.Brushes.Start(dim, y); err != nil {
		return err
	}
	p.log.Debug("brush start", slog.String("dimension", dim), slog.Float64("y", y))
	return nil
}

// BrushMove drags the captured brush to y and requests a throttled recompute.
// When schedule is true the caller must deliver d to Fire after d.Delay.
func (p *Plot) BrushMove(y float64, now time.Time) (d throttle.Deferred, schedule bool) {
	dim, ok := p.Brushes.Move(y)
	if !ok {
		return throttle.Deferred{}, false
	}
	return p.throttle.Call(now, dim)
}

// Fire delivers a deferred throttled recompute.
func (p *Plot) Fire(d throttle.Deferred) bool {
	return p.throttle.Fire(d)
}

// BrushEnd releases the gesture at y and recomputes immediately, so the
// final state is never stale.
func (p *Plot) BrushEnd(y float64) {
	dim, ok := p.Brushes.End(y)
	if !ok {
		return
	}
	p.log.Debug("brush end", slog.String("dimension", dim), slog.Bool("active", p.isActive(dim)))
	p.throttle.Flush(dim)
}

func (p *Plot) isActive(dim string) bool {
	_, ok := p.Brushes.CurrentExtentValue(dim)
	return ok
}

// SetBrush selects [lo, hi] in value space on dim and recomputes.
func (p *Plot) SetBrush(dim string, lo, hi float64) error {
	if err := p.Brushes.SetValues(dim, lo, hi); err != nil {
		return err
	}
	p.throttle.Flush(dim)
	return nil
}

// ClearBrush drops dim's selection and recomputes.
func (p *Plot) ClearBrush(dim string) error {
	if err := p.Brushes.Clear(dim); err != nil {
		return err
	}
	p.throttle.Flush(dim)
	return nil
}

// ClearAll drops every selection and recomputes.
func (p *Plot) ClearAll() {
	p.Brushes.ClearAll()
	p.throttle.Flush("")
}

// Visible returns the visibility flags of the last recompute. The slice is
// owned by the plot and must not be modified.
func (p *Plot) Visible() []bool { return p.visible }

func (p *Plot) IsVisible(i int) bool { return p.visible[i] }

func (p *Plot) VisibleCount() int { return filter.Count(p.visible) }

func (p *Plot) VisibleIndices() []int { return filter.Indices(p.visible) }

// Applied counts visibility recomputes since construction.
func (p *Plot) Applied() int { return p.applied }

// Constraints returns the active selections in axis order.
func (p *Plot) Constraints() []filter.Constraint {
	return filter.Active(p.Data, p.Brushes)
}

// VisibleValues returns the finite values of dim among visible records.
func (p *Plot) VisibleValues(dim string) []float64 {
	col, ok := p.Data.Column(dim)
	if !ok {
		return nil
	}
	var out []float64
	for i, rec := range p.Data.Records {
		if p.visible[i] && dataset.IsFinite(rec[col]) {
			out = append(out, rec[col])
		}
	}
	return out
}

// Histogram counts the visible finite values of dim in bins equal-width bins
// over its scale domain. Values outside the domain fall into the end bins.
func (p *Plot) Histogram(dim string, bins int) ([]float64, error) {
	s, err := p.Scales.ScaleFor(dim)
	if err != nil {
		return nil, err
	}
	if bins < 1 {
		bins = 1
	}
	counts := make([]float64, bins)
	dom := s.Domain()
	for _, v := range p.VisibleValues(dim) {
		f := 0.0
		if dom.Span() > 0 {
			f = (v - dom.Lo) / dom.Span() * float64(bins)
		}
		// clamp before converting: huge values overflow int
		f = min(max(f, 0), float64(bins-1))
		counts[int(f)]++
	}
	return counts, nil
}

// UseRamp switches the foreground color ramp, keeping its domain.
func (p *Plot) UseRamp(name string) {
	if p.Colors == nil {
		return
	}
	p.Colors = colormap.New(name, p.Colors.Domain())
}

// Color returns the foreground color of record i.
func (p *Plot) Color(i int) string {
	if p.Colors == nil {
		return colormap.Unknown
	}
	return p.Colors.Hex(p.Data.Value(i, p.cfg.ColorBy))
}
