// Package dataset holds the tabular records a plot is drawn from.
//
// A [Record] is one row coerced to float64 per dimension. Fields that are
// empty or not numeric are stored as NaN and never match an active filter.
package dataset

import (
	"math"

	"github.com/san-kum/parcoord/internal/scale"
)

// Record is one row, indexed by dimension position. Records are immutable
// after load and shared by reference.
type Record []float64

// Dataset is the ordered collection of records plus the dimension index.
type Dataset struct {
	Source     string
	Dimensions []string
	Records    []Record
	index      map[string]int
}

// New wraps already-coerced records. Every record must have len(dims) values.
func New(dims []string, records []Record) *Dataset {
	idx := make(map[string]int, len(dims))
	for i, d := range dims {
		idx[d] = i
	}
	return &Dataset{
		Dimensions: append([]string(nil), dims...),
		Records:    records,
		index:      idx,
	}
}

// Column returns the position of dim in each record.
func (d *Dataset) Column(dim string) (int, bool) {
	i, ok := d.index[dim]
	return i, ok
}

// Value returns record i's value for dim, NaN when dim is unknown.
func (d *Dataset) Value(i int, dim string) float64 {
	c, ok := d.index[dim]
	if !ok || i < 0 || i >= len(d.Records) {
		return math.NaN()
	}
	return d.Records[i][c]
}

func (d *Dataset) Len() int { return len(d.Records) }

// Extent returns the finite min/max of dim. ok is false when no finite value exists.
func (d *Dataset) Extent(dim string) (scale.Interval, bool) {
	c, ok := d.index[dim]
	if !ok {
		return scale.Interval{}, false
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range d.Records {
		v := r[c]
		if !IsFinite(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return scale.Interval{}, false
	}
	return scale.Interval{Lo: lo, Hi: hi}, true
}

// Column values of dim in record order.
func (d *Dataset) Values(dim string) []float64 {
	c, ok := d.index[dim]
	if !ok {
		return nil
	}
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r[c]
	}
	return out
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
