// Package path turns records into polylines across the plot's axes.
package path

import (
	"fmt"

	"github.com/san-kum/parcoord/internal/dataset"
	"github.com/san-kum/parcoord/internal/scale"
)

// Point is one vertex of a record's polyline in plot pixel space.
type Point struct {
	X, Y float64
}

// Path is the ordered vertices of one record, one per dimension, left to right.
type Path []Point

// Build computes the polyline of rec. rec must be indexed like dims.
func Build(rec dataset.Record, dims []string, reg *scale.Registry, x *scale.Point) (Path, error) {
	if len(rec) < len(dims) {
		return nil, fmt.Errorf("path: record has %d values for %d dimensions", len(rec), len(dims))
	}
	p := make(Path, len(dims))
	for i, d := range dims {
		s, err := reg.ScaleFor(d)
		if err != nil {
			return nil, err
		}
		px, ok := x.X(d)
		if !ok {
			return nil, fmt.Errorf("path: no axis slot for %q", d)
		}
		p[i] = Point{X: px, Y: s.ToPixel(rec[i])}
	}
	return p, nil
}

// Defined reports whether vertex i has a finite y.
func (p Path) Defined(i int) bool {
	return dataset.IsFinite(p[i].Y)
}

// SVG renders the path as SVG path data. Undefined vertices split the line.
func (p Path) SVG() string {
	buf := make([]byte, 0, len(p)*16)
	pen := false
	for i, pt := range p {
		if !p.Defined(i) {
			pen = false
			continue
		}
		if pen {
			buf = append(buf, 'L')
		} else {
			buf = append(buf, 'M')
		}
		buf = fmt.Appendf(buf, "%.2f,%.2f", pt.X, pt.Y)
		pen = true
	}
	return string(buf)
}

// Cache holds every record's path, computed once at load time.
type Cache struct {
	paths []Path
	svg   []string
}

// NewCache builds the path of every record in ds.
func NewCache(ds *dataset.Dataset, reg *scale.Registry, x *scale.Point) (*Cache, error) {
	c := &Cache{
		paths: make([]Path, ds.Len()),
		svg:   make([]string, ds.Len()),
	}
	for i, rec := range ds.Records {
		p, err := Build(rec, ds.Dimensions, reg, x)
		if err != nil {
			return nil, fmt.Errorf("path: record %d: %w", i, err)
		}
		c.paths[i] = p
		c.svg[i] = p.SVG()
	}
	return c, nil
}

func (c *Cache) Len() int { return len(c.paths) }

// At returns the cached path of record i.
func (c *Cache) At(i int) Path { return c.paths[i] }

// SVG returns the cached SVG path data of record i.
func (c *Cache) SVG(i int) string { return c.svg[i] }
