package viz

import (
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/san-kum/parcoord/internal/config"
	"github.com/san-kum/parcoord/internal/plot"
)

const reloadDebounce = 100 * time.Millisecond

// reloadMsg carries a plot rebuilt from a changed dataset file, or the error
// that prevented it.
type reloadMsg struct {
	plot *plot.Plot
	err  error
}

// watcher rebuilds the plot whenever the dataset file is written. Bursts of
// events within the debounce window produce one reload.
type watcher struct {
	fs     *fsnotify.Watcher
	cfg    *config.Config
	target string
	out    chan reloadMsg
	done   chan struct{}
}

func newWatcher(cfg *config.Config, debounce time.Duration) (*watcher, error) {
	target, err := filepath.Abs(cfg.Dataset)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &watcher{
		fs:     fw,
		cfg:    cfg,
		target: target,
		out:    make(chan reloadMsg),
		done:   make(chan struct{}),
	}
	go w.loop(debounce)
	return w, nil
}

func (w *watcher) loop(debounce time.Duration) {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			p, err := plot.Open(w.cfg)
			if err == nil {
				slog.Info("dataset reloaded", slog.String("path", w.cfg.Dataset), slog.Int("records", p.Data.Len()))
			}
			select {
			case w.out <- reloadMsg{plot: p, err: err}:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("dataset watcher error", slog.Any("error", err))
		}
	}
}

// next waits for the following reload.
func (w *watcher) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case m := <-w.out:
			return m
		case <-w.done:
			return nil
		}
	}
}

func (w *watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
