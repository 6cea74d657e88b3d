package path

import (
	"math"
	"testing"

	"github.com/san-kum/parcoord/internal/dataset"
	"github.com/san-kum/parcoord/internal/scale"
)

func fixture(t *testing.T) (*dataset.Dataset, *scale.Registry, *scale.Point) {
	t.Helper()
	dims := []string{"gest", "bpdgrade"}
	gest := scale.Interval{Lo: 23, Hi: 32}
	bpd := scale.Interval{Lo: -1, Hi: 3}
	reg, err := scale.Build([]scale.Spec{
		{Name: "gest", Domain: &gest},
		{Name: "bpdgrade", Domain: &bpd},
	}, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	ds := dataset.New(dims, []dataset.Record{{23, 3}, {32, math.NaN()}})
	return ds, reg, scale.NewPoint(dims, 0, 300, 1)
}

func TestBuild(t *testing.T) {
	ds, reg, x := fixture(t)

	p, err := Build(ds.Records[0], ds.Dimensions, reg, x)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := Path{{X: 100, Y: 100}, {X: 200, Y: 0}}
	if len(p) != len(want) {
		t.Fatalf("len = %d", len(p))
	}
	for i := range want {
		if math.Abs(p[i].X-want[i].X) > 1e-9 || math.Abs(p[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("vertex %d = %+v, want %+v", i, p[i], want[i])
		}
	}
	if got := p.SVG(); got != "M100.00,100.00L200.00,0.00" {
		t.Errorf("SVG() = %q", got)
	}
}

func TestBuild_UnknownDimension(t *testing.T) {
	_, reg, x := fixture(t)
	if _, err := Build(dataset.Record{1}, []string{"weight"}, reg, x); err == nil {
		t.Error("expected error for unknown dimension")
	}
	if _, err := Build(dataset.Record{}, []string{"gest"}, reg, x); err == nil {
		t.Error("expected error for short record")
	}
}

func TestCache(t *testing.T) {
	ds, reg, x := fixture(t)
	c, err := NewCache(ds, reg, x)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d", c.Len())
	}
	if c.At(1).Defined(1) {
		t.Error("NaN vertex should be undefined")
	}
	if got := c.SVG(1); got != "M100.00,0.00" {
		t.Errorf("SVG(1) = %q", got)
	}
}
