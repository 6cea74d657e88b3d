package export

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/san-kum/parcoord/internal/plot"
)

// SVG renders the plot as a standalone SVG document: a light background copy
// of every path, the color-coded foreground with filtered records hidden,
// one axis per dimension and the active brush selections.
func SVG(p *plot.Plot) string {
	cfg := p.Config()
	height := cfg.PlotHeight()

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="10">
<g transform="translate(%d,%d)">
`, cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Margin.Left, cfg.Margin.Top))

	sb.WriteString(`<g class="background" fill="none" stroke="#ffffff" opacity="0.6">` + "\n")
	for i := 0; i < p.Paths.Len(); i++ {
		if d := p.Paths.SVG(i); d != "" {
			sb.WriteString(fmt.Sprintf(`<path d="%s"/>`+"\n", d))
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g class="foreground" fill="none" opacity="0.7" pointer-events="none">` + "\n")
	for i := 0; i < p.Paths.Len(); i++ {
		d := p.Paths.SVG(i)
		if d == "" {
			continue
		}
		display := ""
		if !p.IsVisible(i) {
			display = ` display="none"`
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s"%s/>`+"\n", d, p.Color(i), display))
	}
	sb.WriteString("</g>\n")

	for _, dim := range p.Scales.Dimensions() {
		x, _ := p.X.X(dim)
		s, err := p.Scales.ScaleFor(dim)
		if err != nil {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<g class="axis" transform="translate(%.2f,0)">`+"\n", x))
		sb.WriteString(fmt.Sprintf(`<path stroke="#000000" fill="none" d="M-6,0.5H0.5V%.1fH-6"/>`+"\n", height+0.5))
		for _, tv := range s.Ticks(10) {
			y := s.ToPixel(tv)
			sb.WriteString(fmt.Sprintf(`<g class="tick" transform="translate(0,%.2f)"><line stroke="#000000" x2="-6"/>`, y))
			sb.WriteString(fmt.Sprintf(`<text x="-9" dy="0.32em" text-anchor="end" fill="#000000" paint-order="stroke" stroke="#ffffff" stroke-width="3" stroke-linejoin="round" stroke-opacity="0.8">%s</text></g>`+"\n",
				html.EscapeString(s.FormatTick(tv))))
		}
		sb.WriteString(fmt.Sprintf(`<text y="-9" text-anchor="middle" fill="black">%s</text>`+"\n", html.EscapeString(dim)))

		if b, err := p.Brushes.Brush(dim); err == nil {
			if sel, ok := b.Selection(); ok {
				w := cfg.BrushHalfWidth
				sb.WriteString(fmt.Sprintf(`<rect class="selection" x="%.1f" y="%.2f" width="%.1f" height="%.2f" fill="#777777" fill-opacity="0.3" stroke="#ffffff"/>`+"\n",
					-w, sel.Lo, 2*w, sel.Span()))
			}
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WriteSVG renders p into path.
func WriteSVG(path string, p *plot.Plot) error {
	return os.WriteFile(path, []byte(SVG(p)), 0644)
}
