package viz

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/parcoord/internal/export"
	"github.com/san-kum/parcoord/internal/plot"
	"github.com/san-kum/parcoord/internal/store"
	"github.com/san-kum/parcoord/internal/throttle"
)

const (
	panelWidth = 38
	canvasTop  = 1
	minCols    = 20
	minRows    = 8
	histBins   = 24
)

// fireMsg delivers a deferred throttled recompute back to the event loop.
type fireMsg throttle.Deferred

type Options struct {
	SnapshotDir string
	SVGPath     string
	Theme       string
	// Watch reloads the plot when the dataset file changes.
	Watch bool
	// Now is the clock used for throttling; nil means time.Now.
	Now func() time.Time
}

// Explorer is the interactive Bubble Tea model around one plot.
type Explorer struct {
	plot          *plot.Plot
	canvas        *Canvas
	theme         Theme
	help          help.Model
	axis          int
	width, height int
	dirty         bool
	status        string
	store         *store.Store
	svgPath       string
	now           func() time.Time
	watch         *watcher
}

func NewExplorer(p *plot.Plot, opts Options) *Explorer {
	e := &Explorer{
		theme:   GetTheme(opts.Theme),
		help:    help.New(),
		width:   120,
		height:  36,
		dirty:   true,
		svgPath: opts.SVGPath,
		now:     opts.Now,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.svgPath == "" {
		e.svgPath = "parcoord.svg"
	}
	if opts.SnapshotDir != "" {
		e.store = store.New(opts.SnapshotDir)
	}
	if opts.Watch {
		w, err := newWatcher(p.Config(), reloadDebounce)
		if err != nil {
			e.status = "watch failed: " + err.Error()
			slog.Warn("dataset watch failed", slog.Any("error", err))
		} else {
			e.watch = w
		}
	}
	e.bind(p)
	e.resize()
	return e
}

func (e *Explorer) bind(p *plot.Plot) {
	e.plot = p
	p.UseRamp(e.theme.Ramp)
	p.OnApply(func([]bool) { e.dirty = true })
	e.dirty = true
}

// Run starts the explorer with mouse motion reporting on the alternate screen.
func Run(p *plot.Plot, opts Options) error {
	e := NewExplorer(p, opts)
	_, err := tea.NewProgram(e, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if e.watch != nil {
		e.watch.Close()
	}
	return err
}

func (e *Explorer) Init() tea.Cmd {
	if e.watch != nil {
		return e.watch.next()
	}
	return nil
}

func (e *Explorer) resize() {
	cols := max(e.width-panelWidth-1, minCols)
	rows := max(e.height-3, minRows)
	e.canvas = NewCanvas(cols, rows)
	e.help.Width = e.width
	e.dirty = true
}

func (e *Explorer) frame() Frame {
	return NewFrame(e.plot, e.canvas.Width, e.canvas.Height)
}

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
		e.resize()
	case tea.KeyMsg:
		return e, e.handleKey(msg)
	case tea.MouseMsg:
		return e, e.handleMouse(msg)
	case fireMsg:
		e.plot.Fire(throttle.Deferred(msg))
	case reloadMsg:
		e.reload(msg)
		if e.watch != nil {
			return e, e.watch.next()
		}
	}
	return e, nil
}

// reload swaps in a rebuilt plot and carries the active selections over in
// value space. On error the current plot stays.
func (e *Explorer) reload(msg reloadMsg) {
	if msg.err != nil {
		e.status = "reload failed: " + msg.err.Error()
		return
	}
	old := e.plot
	e.bind(msg.plot)
	for _, c := range old.Constraints() {
		if err := msg.plot.SetBrush(c.Dimension, c.Extent.Lo, c.Extent.Hi); err != nil {
			slog.Warn("brush dropped on reload", slog.String("dimension", c.Dimension), slog.Any("error", err))
		}
	}
	if n := len(msg.plot.Scales.Dimensions()); e.axis >= n {
		e.axis = 0
	}
	e.status = fmt.Sprintf("reloaded %d records", msg.plot.Data.Len())
}

func (e *Explorer) handleKey(msg tea.KeyMsg) tea.Cmd {
	dims := e.plot.Scales.Dimensions()
	switch {
	case key.Matches(msg, keys.Quit):
		if e.watch != nil {
			e.watch.Close()
			e.watch = nil
		}
		return tea.Quit
	case key.Matches(msg, keys.NextAxis):
		e.axis = (e.axis + 1) % len(dims)
	case key.Matches(msg, keys.PrevAxis):
		e.axis = (e.axis + len(dims) - 1) % len(dims)
	case key.Matches(msg, keys.Clear):
		if err := e.plot.ClearBrush(dims[e.axis]); err != nil {
			e.status = err.Error()
		}
	case key.Matches(msg, keys.ClearAll):
		e.plot.ClearAll()
	case key.Matches(msg, keys.Theme):
		e.theme = NextTheme(e.theme)
		e.plot.UseRamp(e.theme.Ramp)
		e.dirty = true
	case key.Matches(msg, keys.Save):
		e.saveSnapshot()
	case key.Matches(msg, keys.Export):
		if err := export.WriteSVG(e.svgPath, e.plot); err != nil {
			e.status = "export failed: " + err.Error()
			slog.Error("svg export failed", slog.String("path", e.svgPath), slog.Any("error", err))
		} else {
			e.status = "wrote " + filepath.Base(e.svgPath)
		}
	case key.Matches(msg, keys.Help):
		e.help.ShowAll = !e.help.ShowAll
	}
	return nil
}

func (e *Explorer) saveSnapshot() {
	if e.store == nil {
		e.status = "no snapshot directory configured"
		return
	}
	if err := e.store.Init(); err != nil {
		e.status = "snapshot failed: " + err.Error()
		return
	}
	id, err := e.store.Save(e.plot)
	if err != nil {
		e.status = "snapshot failed: " + err.Error()
		slog.Error("snapshot failed", slog.Any("error", err))
		return
	}
	e.status = "saved snapshot " + id[:8]
}

// handleMouse routes a left-button gesture. A press on an axis is captured
// by that axis' brush and goes no further; a press elsewhere on the plot
// only selects the nearest axis.
func (e *Explorer) handleMouse(msg tea.MouseMsg) tea.Cmd {
	f := e.frame()
	col, row := msg.X, msg.Y-canvasTop
	x, y := f.CellCenter(col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || col >= e.canvas.Width {
			return nil
		}
		if dim, ok := e.plot.HitTest(x, y, f.CellWidth()); ok {
			if err := e.plot.BrushStart(dim, y); err != nil {
				e.status = err.Error()
				return nil
			}
			e.selectAxis(dim)
			e.dirty = true
			return nil
		}
		if row >= 0 && row < e.canvas.Height {
			e.axis = max(e.plot.X.Nearest(x), 0)
		}
	case tea.MouseActionMotion:
		if _, captured := e.plot.Brushes.Captured(); !captured {
			return nil
		}
		e.dirty = true
		d, schedule := e.plot.BrushMove(y, e.now())
		if schedule {
			return tea.Tick(d.Delay, func(time.Time) tea.Msg { return fireMsg(d) })
		}
	case tea.MouseActionRelease:
		e.plot.BrushEnd(y)
	}
	return nil
}

func (e *Explorer) selectAxis(dim string) {
	for i, d := range e.plot.Scales.Dimensions() {
		if d == dim {
			e.axis = i
			return
		}
	}
}

func (e *Explorer) View() string {
	if e.dirty {
		Draw(e.canvas, e.plot, e.theme)
		e.dirty = false
	}

	title := lipgloss.NewStyle().Foreground(e.theme.Primary).Bold(true).Render("PARCOORD")
	source := lipgloss.NewStyle().Foreground(e.theme.Muted).Render(e.plot.Data.Source)
	header := headerStyle.MaxWidth(e.width).Render(title + "  " + source)

	left := e.canvas.Render() + "\n" +
		lipgloss.NewStyle().Foreground(e.theme.Text).Render(AxisLabels(e.plot, e.canvas.Width))
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, panelStyle.Render(e.panel()))

	return header + "\n" + main + "\n" + e.help.View(keys)
}

func (e *Explorer) panel() string {
	var s strings.Builder
	accent := lipgloss.NewStyle().Foreground(e.theme.Accent).Bold(true)

	total := e.plot.Data.Len()
	visible := e.plot.VisibleCount()
	ratio := 0.0
	if total > 0 {
		ratio = float64(visible) / float64(total)
	}
	s.WriteString(accent.Render("VISIBLE") + "\n")
	s.WriteString(ProgressBar(ratio, panelWidth-6, e.theme) + "\n")
	s.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d records", visible, total)) + "\n\n")

	s.WriteString(accent.Render("BRUSHES") + "\n")
	cs := e.plot.Constraints()
	if len(cs) == 0 {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	for _, c := range cs {
		s.WriteString(labelStyle.Render(c.Dimension) +
			valueStyle.Render(fmt.Sprintf("%.2f – %.2f", c.Extent.Lo, c.Extent.Hi)) + "\n")
	}

	s.WriteString("\n" + Separator(panelWidth-6, e.theme.Muted) + "\n")
	dim := e.plot.Scales.Dimensions()[e.axis]
	if counts, err := e.plot.Histogram(dim, histBins); err == nil {
		chart := asciigraph.Plot(counts,
			asciigraph.Height(6),
			asciigraph.Width(panelWidth-14),
			asciigraph.Caption(dim+" (visible)"))
		s.WriteString(graphStyle.Foreground(e.theme.Secondary).Render(chart) + "\n")
	}

	if e.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(e.theme.Warning).Render(e.status) + "\n")
	}
	return s.String()
}
