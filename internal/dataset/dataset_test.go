package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"
)

var clinicalDims = []string{"anon_id", "birthyear", "dischage", "deathageday", "gest", "zpreterm", "bpdgrade"}

func TestLoadFile(t *testing.T) {
	ds, err := LoadFile("testdata/clinical.csv", clinicalDims)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", ds.Len())
	}
	if ds.Source != "testdata/clinical.csv" {
		t.Errorf("Source = %q", ds.Source)
	}

	if got := ds.Value(0, "gest"); got != 24 {
		t.Errorf("gest[0] = %v, want 24", got)
	}
	if got := ds.Value(0, "deathageday"); got != -10 {
		t.Errorf("deathageday[0] = %v, want -10", got)
	}
	if got := ds.Value(1, "deathageday"); !math.IsNaN(got) {
		t.Errorf("empty field should be NaN, got %v", got)
	}
	if got := ds.Value(2, "zpreterm"); !math.IsNaN(got) {
		t.Errorf("unparsable field should be NaN, got %v", got)
	}
	if _, ok := ds.Column("site"); ok {
		t.Error("unconfigured column should not be loaded")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrNoHeader},
		{"header only", "gest\n", ErrNoRows},
		{"missing column", "birthyear\n2012\n", ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), tt.name, []string{"gest"})
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_ParseError(t *testing.T) {
	input := "gest\n24\n\"30\n"
	_, err := Load(strings.NewReader(input), "broken.csv", []string{"gest"})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Source != "broken.csv" || pe.Line == 0 {
		t.Errorf("unexpected position %+v", pe)
	}
}

func TestLoad_ShortRow(t *testing.T) {
	ds, err := Load(strings.NewReader("a,b\n1\n"), "short", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := ds.Value(0, "b"); !math.IsNaN(got) {
		t.Errorf("missing trailing field should be NaN, got %v", got)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"24", 24, true},
		{" -1.5 ", -1.5, true},
		{"1e3", 1000, true},
		{"", math.NaN(), false},
		{"NA", math.NaN(), false},
		{"Inf", math.Inf(1), false},
	}
	for _, tt := range tests {
		got, ok := Coerce(tt.in)
		if ok != tt.ok {
			t.Errorf("Coerce(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if math.IsNaN(tt.want) {
			if !math.IsNaN(got) {
				t.Errorf("Coerce(%q) = %v, want NaN", tt.in, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("Coerce(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtent(t *testing.T) {
	nan := math.NaN()
	ds := New([]string{"x", "y"}, []Record{{1, nan}, {5, nan}, {nan, nan}, {-2, nan}})

	iv, ok := ds.Extent("x")
	if !ok || iv.Lo != -2 || iv.Hi != 5 {
		t.Errorf("Extent(x) = %v, %v", iv, ok)
	}
	if _, ok := ds.Extent("y"); ok {
		t.Error("all-NaN column should have no extent")
	}
	if _, ok := ds.Extent("z"); ok {
		t.Error("unknown column should have no extent")
	}
}

func TestValues(t *testing.T) {
	ds := New([]string{"gest", "zpreterm"}, []Record{{24, -1.2}, {30, math.NaN()}})

	got := ds.Values("zpreterm")
	if len(got) != 2 || got[0] != -1.2 || !math.IsNaN(got[1]) {
		t.Errorf("Values = %v", got)
	}
	if ds.Values("weight") != nil {
		t.Error("unknown dimension should give nil")
	}
}
