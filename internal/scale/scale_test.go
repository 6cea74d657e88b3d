package scale

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLinear_InvertedRange(t *testing.T) {
	s := NewLinear(23, 32, 560, 0)

	tests := []struct {
		value, pixel float64
	}{
		{23, 560},
		{32, 0},
		{27.5, 280},
	}
	for _, tt := range tests {
		if got := s.ToPixel(tt.value); !approx(got, tt.pixel) {
			t.Errorf("ToPixel(%v) = %v, want %v", tt.value, got, tt.pixel)
		}
		if got := s.ToValue(tt.pixel); !approx(got, tt.value) {
			t.Errorf("ToValue(%v) = %v, want %v", tt.pixel, got, tt.value)
		}
	}
}

func TestLinear_NaNPropagates(t *testing.T) {
	s := NewLinear(0, 10, 100, 0)
	if got := s.ToPixel(math.NaN()); !math.IsNaN(got) {
		t.Errorf("ToPixel(NaN) = %v, want NaN", got)
	}
}

func TestLinear_FixedTicks(t *testing.T) {
	s := NewLinear(-1, 3, 560, 0).WithTicks([]float64{-1, 0, 1, 2, 3}, true)
	ticks := s.Ticks(10)
	if len(ticks) != 5 || ticks[0] != -1 || ticks[4] != 3 {
		t.Errorf("Ticks() = %v", ticks)
	}
	if got := s.FormatTick(2); got != "2" {
		t.Errorf("FormatTick(2) = %q", got)
	}
}

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		lo, hi float64
		count  int
		want   []float64
	}{
		{0, 10, 5, []float64{0, 2, 4, 6, 8, 10}},
		{-4, 4, 8, []float64{-4, -3, -2, -1, 0, 1, 2, 3, 4}},
		{2010, 2022, 6, []float64{2010, 2012, 2014, 2016, 2018, 2020, 2022}},
		{0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
	}
	for _, tt := range tests {
		got := NiceTicks(tt.lo, tt.hi, tt.count)
		if len(got) != len(tt.want) {
			t.Errorf("NiceTicks(%v,%v,%d) = %v, want %v", tt.lo, tt.hi, tt.count, got, tt.want)
			continue
		}
		for i := range got {
			if !approx(got[i], tt.want[i]) {
				t.Errorf("NiceTicks(%v,%v,%d)[%d] = %v, want %v", tt.lo, tt.hi, tt.count, i, got[i], tt.want[i])
			}
		}
	}
}

func TestPoint_Padding(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	p := NewPoint(names, 0, 1090, 1)

	step := 1090.0 / 8
	if !approx(p.Step(), step) {
		t.Fatalf("Step() = %v, want %v", p.Step(), step)
	}
	for i, n := range names {
		x, ok := p.X(n)
		if !ok || !approx(x, step*float64(i+1)) {
			t.Errorf("X(%s) = %v, want %v", n, x, step*float64(i+1))
		}
	}
	if _, ok := p.X("missing"); ok {
		t.Error("expected unknown name to miss")
	}
	if got := p.Nearest(step*3 + 10); got != 2 {
		t.Errorf("Nearest = %d, want 2", got)
	}
}

func TestBuild_FixedAndObserved(t *testing.T) {
	fixed := Interval{Lo: -10, Hi: 550}
	specs := []Spec{
		{Name: "dischage", Domain: &fixed, Ticks: []float64{-10, 0, 50}, Integer: true},
		{Name: "weight"},
		{Name: "constant"},
		{Name: "empty"},
	}
	extent := func(dim string) (Interval, bool) {
		switch dim {
		case "dischage":
			return Interval{Lo: 0, Hi: 20}, true
		case "weight":
			return Interval{Lo: 400, Hi: 1800}, true
		case "constant":
			return Interval{Lo: 3, Hi: 3}, true
		}
		return Interval{}, false
	}

	r, err := Build(specs, 560, extent)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := map[string]Interval{
		"dischage": {Lo: -10, Hi: 550},
		"weight":   {Lo: 400, Hi: 1800},
		"constant": {Lo: 2.5, Hi: 3.5},
		"empty":    {Lo: 0, Hi: 1},
	}
	for dim, iv := range want {
		s, err := r.ScaleFor(dim)
		if err != nil {
			t.Fatalf("ScaleFor(%s): %v", dim, err)
		}
		if s.Domain() != iv {
			t.Errorf("%s domain = %v, want %v", dim, s.Domain(), iv)
		}
		if !approx(s.ToPixel(iv.Lo), 560) || !approx(s.ToPixel(iv.Hi), 0) {
			t.Errorf("%s pixel range not inverted", dim)
		}
	}

	if _, err := r.ScaleFor("nope"); !errors.Is(err, ErrUnknownDimension) {
		t.Errorf("expected ErrUnknownDimension, got %v", err)
	}
}

func TestBuild_Rejects(t *testing.T) {
	if _, err := Build([]Spec{{Name: "a"}}, 0, nil); err == nil {
		t.Error("expected error for zero height")
	}
	if _, err := Build([]Spec{{Name: "a"}, {Name: "a"}}, 10, nil); err == nil {
		t.Error("expected error for duplicate dimension")
	}
}

func TestInterval(t *testing.T) {
	iv := NewInterval(31, 26)
	if iv.Lo != 26 || iv.Hi != 31 {
		t.Fatalf("NewInterval not ordered: %v", iv)
	}
	for _, v := range []float64{26, 28, 31} {
		if !iv.Contains(v) {
			t.Errorf("Contains(%v) = false", v)
		}
	}
	for _, v := range []float64{25.9, 31.1, math.NaN(), math.Inf(1)} {
		if iv.Contains(v) {
			t.Errorf("Contains(%v) = true", v)
		}
	}
	if got := iv.Clamp(40); got != 31 {
		t.Errorf("Clamp(40) = %v", got)
	}
}
