// Package filter computes which records survive the current brush selections.
package filter

import (
	"github.com/san-kum/parcoord/internal/dataset"
	"github.com/san-kum/parcoord/internal/scale"
)

// ExtentSource exposes the current value-space selection per dimension.
// *brush.Set satisfies it.
type ExtentSource interface {
	Dimensions() []string
	CurrentExtentValue(dim string) (scale.Interval, bool)
}

// Constraint is one active dimension resolved to its record column.
type Constraint struct {
	Dimension string
	Column    int
	Extent    scale.Interval
}

// Active resolves every dimension of src with a selection. Dimensions the
// dataset does not carry are skipped.
func Active(ds *dataset.Dataset, src ExtentSource) []Constraint {
	var out []Constraint
	for _, dim := range src.Dimensions() {
		ext, ok := src.CurrentExtentValue(dim)
		if !ok {
			continue
		}
		col, ok := ds.Column(dim)
		if !ok {
			continue
		}
		out = append(out, Constraint{Dimension: dim, Column: col, Extent: ext})
	}
	return out
}

// Visible reports whether rec satisfies every constraint. Non-finite values
// never satisfy one.
func Visible(rec dataset.Record, cs []Constraint) bool {
	for _, c := range cs {
		if !c.Extent.Contains(rec[c.Column]) {
			return false
		}
	}
	return true
}

// ComputeVisibility returns one flag per record. With no active selection
// every record is visible.
func ComputeVisibility(ds *dataset.Dataset, src ExtentSource) []bool {
	return ComputeInto(nil, ds, src)
}

// ComputeInto is ComputeVisibility reusing dst when it is large enough.
// Large datasets are scanned in parallel chunks; the call still returns only
// once every flag is written.
func ComputeInto(dst []bool, ds *dataset.Dataset, src ExtentSource) []bool {
	n := ds.Len()
	if cap(dst) < n {
		dst = make([]bool, n)
	}
	dst = dst[:n]
	cs := Active(ds, src)
	parallelFor(n, parallelMin, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = Visible(ds.Records[i], cs)
		}
	})
	return dst
}

// Count returns the number of true flags.
func Count(vis []bool) int {
	n := 0
	for _, v := range vis {
		if v {
			n++
		}
	}
	return n
}

// Indices returns the positions of visible records.
func Indices(vis []bool) []int {
	out := make([]int, 0, Count(vis))
	for i, v := range vis {
		if v {
			out = append(out, i)
		}
	}
	return out
}
