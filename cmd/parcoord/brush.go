package main

import (
	"fmt"
	"strconv"
	"strings"
)

type brushArg struct {
	dim    string
	lo, hi float64
}

// parseBrush reads "dim=lo:hi". The bounds may be given in either order.
func parseBrush(s string) (brushArg, error) {
	dim, rng, ok := strings.Cut(s, "=")
	dim = strings.TrimSpace(dim)
	if !ok || dim == "" {
		return brushArg{}, fmt.Errorf("invalid brush %q: want dim=lo:hi", s)
	}
	a, b, ok := strings.Cut(rng, ":")
	if !ok {
		return brushArg{}, fmt.Errorf("invalid brush %q: want dim=lo:hi", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return brushArg{}, fmt.Errorf("invalid brush %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return brushArg{}, fmt.Errorf("invalid brush %q: %w", s, err)
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return brushArg{dim: dim, lo: lo, hi: hi}, nil
}

func formatCell(v float64) string {
	if v != v {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
