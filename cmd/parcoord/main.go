package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/parcoord/internal/config"
	"github.com/san-kum/parcoord/internal/export"
	"github.com/san-kum/parcoord/internal/logging"
	"github.com/san-kum/parcoord/internal/plot"
	"github.com/san-kum/parcoord/internal/store"
	"github.com/san-kum/parcoord/internal/viz"
)

var (
	configFile  string
	preset      string
	dataset     string
	snapshotDir string
	logFile     string
	logLevel    string
	brushes     []string
	// explorer
	theme   string
	svgPath string
	watch   bool
	// filter
	limit int
	save  bool
	// hist
	bins int
	// plot
	cols int
	rows int

	closeLog = func() {}
)

// main registers the commands and runs the interactive explorer when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "parcoord",
		Short:        "brush and filter a clinical cohort on parallel coordinates",
		SilenceUsage: true,
		RunE:         runExplorer,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := logging.Setup(logFile, logLevel, cmd.Name() == "parcoord")
			if err != nil {
				return err
			}
			closeLog = cleanup
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLog()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&dataset, "data", config.DefaultDataset, "dataset csv")
	pf.StringVar(&snapshotDir, "snapshots", ".parcoord", "snapshot directory")
	pf.StringVar(&logFile, "log", "", "log file (default: stderr, discarded in the explorer)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringArrayVar(&brushes, "brush", nil, "initial brush dim=lo:hi (repeatable)")

	rootCmd.Flags().StringVar(&theme, "theme", "", "explorer theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.Flags().StringVar(&svgPath, "svg", "parcoord.svg", "svg export path")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload when the dataset file changes")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "print a static render of the plot",
		Args:  cobra.NoArgs,
		RunE:  printPlot,
	}
	plotCmd.Flags().IntVar(&cols, "cols", 100, "canvas columns")
	plotCmd.Flags().IntVar(&rows, "rows", 30, "canvas rows")

	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "list the records passing every brush",
		Args:  cobra.NoArgs,
		RunE:  filterRecords,
	}
	filterCmd.Flags().IntVar(&limit, "limit", 50, "max rows to print (0 = all)")
	filterCmd.Flags().BoolVar(&save, "save", false, "save the visible records as a snapshot")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [file]",
		Short: "render the plot to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [file]",
		Short: "write the visible records as CSV (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	histCmd := &cobra.Command{
		Use:   "hist [dimension]",
		Short: "distribution of visible values on one axis",
		Args:  cobra.ExactArgs(1),
		RunE:  histogram,
	}
	histCmd.Flags().IntVar(&bins, "bins", 20, "number of bins")

	dimsCmd := &cobra.Command{
		Use:   "dims",
		Short: "list axes with their domains",
		Args:  cobra.NoArgs,
		RunE:  listDims,
	}

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "list saved snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(plotCmd, filterCmd, exportSVGCmd, exportCSVCmd, histCmd, dimsCmd, snapshotsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: a config file wins over a preset,
// and --data overrides either only when given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}
	if cmd.Flags().Changed("data") || (configFile == "" && preset == "") {
		cfg.Dataset = dataset
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = theme
	}
	return cfg, nil
}

// openPlot loads the dataset and applies every --brush.
func openPlot(cmd *cobra.Command) (*plot.Plot, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	p, err := plot.Open(cfg)
	if err != nil {
		return nil, err
	}
	for _, s := range brushes {
		b, err := parseBrush(s)
		if err != nil {
			return nil, err
		}
		if err := p.SetBrush(b.dim, b.lo, b.hi); err != nil {
			return nil, fmt.Errorf("brush %q: %w", s, err)
		}
	}
	return p, nil
}

// runExplorer starts the interactive explorer, or prints a static plot when
// stdout is not a terminal.
func runExplorer(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		slog.Info("stdout is not a terminal, printing a static plot")
		return printPlot(cmd, args)
	}
	p, err := openPlot(cmd)
	if err != nil {
		return err
	}
	return viz.Run(p, viz.Options{
		SnapshotDir: snapshotDir,
		SVGPath:     svgPath,
		Theme:       p.Config().Theme,
		Watch:       watch,
	})
}

func printPlot(cmd *cobra.Command, args []string) error {
	p, err := openPlot(cmd)
	if err != nil {
		return err
	}
	th := viz.GetTheme(p.Config().Theme)
	p.UseRamp(th.Ramp)
	c := viz.NewCanvas(cols, rows)
	viz.Draw(c, p, th)
	fmt.Println(c.Render())
	fmt.Println(viz.AxisLabels(p, cols))
	fmt.Printf("\nvisible: %d / %d\n", p.VisibleCount(), p.Data.Len())
	return nil
}

func filterRecords(cmd *cobra.Command, args []string) error {
	p, err := openPlot(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(p.Data.Dimensions, "\t")))
	idx := p.VisibleIndices()
	for n, i := range idx {
		if limit > 0 && n == limit {
			break
		}
		cells := make([]string, len(p.Data.Dimensions))
		for j, v := range p.Data.Records[i] {
			cells[j] = formatCell(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if limit > 0 && len(idx) > limit {
		fmt.Printf("... %d more\n", len(idx)-limit)
	}
	fmt.Printf("\nvisible: %d / %d\n", len(idx), p.Data.Len())

	if save {
		st := store.New(snapshotDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(p)
		if err != nil {
			return err
		}
		fmt.Printf("snapshot id: %s\n", id)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	p, err := openPlot(cmd)
	if err != nil {
		return err
	}
	out := "parcoord.svg"
	if len(args) > 0 {
		out = args[0]
	}
	if err := export.WriteSVG(out, p); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", out)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	p, err := openPlot(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "-" {
		return store.WriteCSV(os.Stdout, p)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := store.WriteCSV(f, p); err != nil {
		return err
	}
	fmt.Printf("exported %d rows to %s\n", p.VisibleCount(), args[0])
	return nil
}

func histogram(cmd *cobra.Command, args []string) error {
	p, err := openPlot(cmd)
	if err != nil {
		return err
	}
	dim := args[0]
	counts, err := p.Histogram(dim, bins)
	if err != nil {
		return err
	}
	s, err := p.Scales.ScaleFor(dim)
	if err != nil {
		return err
	}
	d := s.Domain()
	graph := asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s [%s, %s], %d visible", dim, s.FormatTick(d.Lo), s.FormatTick(d.Hi), p.VisibleCount())),
	)
	fmt.Println(graph)
	return nil
}

func listDims(cmd *cobra.Command, args []string) error {
	p, err := openPlot(cmd)
	if err != nil {
		return err
	}
	cfg := p.Config()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIMENSION\tLABEL\tDOMAIN\tOBSERVED\tFINITE\tTICKS\tBRUSH")
	for _, dim := range p.Scales.Dimensions() {
		s, err := p.Scales.ScaleFor(dim)
		if err != nil {
			return err
		}
		dc, _ := cfg.Dimension(dim)
		d := s.Domain()
		observed := "-"
		if ext, ok := p.Data.Extent(dim); ok {
			observed = fmt.Sprintf("[%g, %g]", ext.Lo, ext.Hi)
		}
		brush := "-"
		if ext, ok := p.Brushes.CurrentExtentValue(dim); ok {
			brush = fmt.Sprintf("[%.2f, %.2f]", ext.Lo, ext.Hi)
		}
		finite := 0
		for _, v := range p.Data.Values(dim) {
			if !math.IsNaN(v) {
				finite++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t[%s, %s]\t%s\t%d/%d\t%d\t%s\n",
			dim, dc.Label, s.FormatTick(d.Lo), s.FormatTick(d.Hi), observed,
			finite, p.Data.Len(), len(s.Ticks(10)), brush)
	}
	return w.Flush()
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := store.New(snapshotDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSOURCE\tVISIBLE\tBRUSHES")
	for _, s := range snaps {
		sel := make([]string, len(s.Selections))
		for i, b := range s.Selections {
			sel[i] = fmt.Sprintf("%s=%g:%g", b.Dimension, b.Lo, b.Hi)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Source,
			s.Visible, s.Total,
			strings.Join(sel, " "),
		)
	}
	return w.Flush()
}
