package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/parcoord/internal/path"
	"github.com/san-kum/parcoord/internal/plot"
)

// Frame maps plot pixel space onto a canvas of cols x rows cells.
type Frame struct {
	Cols, Rows   int
	PlotW, PlotH float64
}

func NewFrame(p *plot.Plot, cols, rows int) Frame {
	cfg := p.Config()
	return Frame{Cols: cols, Rows: rows, PlotW: cfg.PlotWidth(), PlotH: cfg.PlotHeight()}
}

// Sub converts a plot point to canvas sub-pixels.
func (f Frame) Sub(pt path.Point) (int, int) {
	sx := pt.X / f.PlotW * float64(f.Cols*2-1)
	sy := pt.Y / f.PlotH * float64(f.Rows*4-1)
	return int(math.Round(sx)), int(math.Round(sy))
}

// Column is the cell column holding plot x.
func (f Frame) Column(x float64) int {
	sx, _ := f.Sub(path.Point{X: x})
	return sx / 2
}

// CellCenter converts a cell to the plot point at its center.
func (f Frame) CellCenter(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) / float64(f.Cols) * f.PlotW
	y := (float64(row) + 0.5) / float64(f.Rows) * f.PlotH
	return x, y
}

// CellWidth is the plot width covered by one cell.
func (f Frame) CellWidth() float64 { return f.PlotW / float64(f.Cols) }

// Draw renders the plot: every record faintly, visible records in their
// color on top, then the axes with brushed spans highlighted.
func Draw(c *Canvas, p *plot.Plot, th Theme) {
	c.Clear()
	f := Frame{Cols: c.Width, Rows: c.Height, PlotW: p.Config().PlotWidth(), PlotH: p.Config().PlotHeight()}

	for i := 0; i < p.Paths.Len(); i++ {
		if !p.IsVisible(i) {
			drawPath(c, f, p.Paths.At(i), th.Faint)
		}
	}
	for i := 0; i < p.Paths.Len(); i++ {
		if p.IsVisible(i) {
			drawPath(c, f, p.Paths.At(i), lipgloss.Color(p.Color(i)))
		}
	}

	for _, dim := range p.Scales.Dimensions() {
		x, _ := p.X.X(dim)
		col := f.Column(x)
		b, err := p.Brushes.Brush(dim)
		if err != nil {
			continue
		}
		sel, active := b.Selection()
		for row := 0; row < c.Height; row++ {
			top := float64(row) / float64(c.Height) * f.PlotH
			bottom := float64(row+1) / float64(c.Height) * f.PlotH
			if active && sel.Hi >= top && sel.Lo <= bottom {
				c.PutRune(col, row, '┃', th.Accent)
			} else {
				c.PutRune(col, row, '│', th.Muted)
			}
		}
	}
}

func drawPath(c *Canvas, f Frame, p path.Path, color lipgloss.Color) {
	for i := 1; i < len(p); i++ {
		if !p.Defined(i-1) || !p.Defined(i) {
			continue
		}
		x0, y0 := f.Sub(p[i-1])
		x1, y1 := f.Sub(p[i])
		c.DrawLine(x0, y0, x1, y1, color)
	}
}

// AxisLabels centers each dimension name under its axis column, truncated
// so neighbours never overlap.
func AxisLabels(p *plot.Plot, cols int) string {
	f := Frame{Cols: cols, Rows: 1, PlotW: p.Config().PlotWidth(), PlotH: 1}
	line := []rune(strings.Repeat(" ", cols))
	room := int(p.X.Step()/f.CellWidth()) - 1
	if room < 1 {
		room = 1
	}
	for _, dim := range p.Scales.Dimensions() {
		x, _ := p.X.X(dim)
		name := []rune(dim)
		if len(name) > room {
			name = name[:room]
		}
		start := f.Column(x) - len(name)/2
		for i, r := range name {
			if j := start + i; j >= 0 && j < cols {
				line[j] = r
			}
		}
	}
	return string(line)
}
