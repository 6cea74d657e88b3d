package plot_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/parcoord/internal/brush"
	"github.com/san-kum/parcoord/internal/config"
	"github.com/san-kum/parcoord/internal/dataset"
	"github.com/san-kum/parcoord/internal/plot"
)

var nan = math.NaN()

// columns: anon_id, birthyear, dischage, deathageday, gest, zpreterm, bpdgrade
func cohort() *dataset.Dataset {
	cfg := config.DefaultConfig()
	return dataset.New(cfg.DimensionNames(), []dataset.Record{
		{1042, 2012, 84, -10, 24, -1.2, 2},
		{20517, 2015, 61, nan, 30, 0.4, 0},
		{133001, 2019, nan, 120, 28, nan, 1},
	})
}

var _ = Describe("Plot", func() {
	var (
		cfg   *config.Config
		p     *plot.Plot
		epoch time.Time
	)

	pixel := func(dim string, v float64) float64 {
		s, err := p.Scales.ScaleFor(dim)
		Expect(err).NotTo(HaveOccurred())
		return s.ToPixel(v)
	}
	at := func(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		var err error
		p, err = plot.New(cfg, cohort())
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts with every record visible", func() {
		Expect(p.Visible()).To(Equal([]bool{true, true, true}))
		Expect(p.Constraints()).To(BeEmpty())
	})

	It("uses the clinical domains regardless of the data extent", func() {
		s, err := p.Scales.ScaleFor("dischage")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Domain().Lo).To(Equal(-10.0))
		Expect(s.Domain().Hi).To(Equal(550.0))
		Expect(s.Ticks(10)).To(HaveLen(13))
		Expect(s.ToPixel(-10)).To(BeNumerically("~", 560, 1e-9))
	})

	It("caches one path per record with a vertex per axis", func() {
		Expect(p.Paths.Len()).To(Equal(3))
		Expect(p.Paths.At(0)).To(HaveLen(7))
		x, _ := p.X.X("gest")
		Expect(p.Paths.At(0)[4].X).To(Equal(x))
		Expect(p.Paths.At(0)[4].Y).To(BeNumerically("~", pixel("gest", 24), 1e-9))
	})

	It("keeps records lying exactly on non-integer bounds", func() {
		Expect(p.SetBrush("zpreterm", -1.2, 0.4)).To(Succeed())
		Expect(p.Visible()).To(Equal([]bool{true, true, false}))

		cs := p.Constraints()
		Expect(cs).To(HaveLen(1))
		Expect(cs[0].Extent.Lo).To(Equal(-1.2))
		Expect(cs[0].Extent.Hi).To(Equal(0.4))
	})

	It("does not drift when selections are carried over repeatedly", func() {
		Expect(p.SetBrush("zpreterm", -1.2, 0.4)).To(Succeed())
		for range 5 {
			next, err := plot.New(cfg, cohort())
			Expect(err).NotTo(HaveOccurred())
			for _, c := range p.Constraints() {
				Expect(next.SetBrush(c.Dimension, c.Extent.Lo, c.Extent.Hi)).To(Succeed())
			}
			p = next
		}
		Expect(p.Constraints()[0].Extent.Hi).To(Equal(0.4))
		Expect(p.Visible()).To(Equal([]bool{true, true, false}))
	})

	It("filters gestational age to [26, 31]", func() {
		Expect(p.SetBrush("gest", 26, 31)).To(Succeed())
		Expect(p.Visible()).To(Equal([]bool{false, true, true}))
		Expect(p.VisibleIndices()).To(Equal([]int{1, 2}))
		Expect(p.VisibleValues("gest")).To(Equal([]float64{30, 28}))
	})

	It("applies a dragged brush the same in either direction", func() {
		Expect(p.BrushStart("gest", pixel("gest", 31))).To(Succeed())
		p.BrushMove(pixel("gest", 26), at(0))
		p.BrushEnd(pixel("gest", 26))
		down := append([]bool(nil), p.Visible()...)

		p.ClearAll()
		Expect(p.BrushStart("gest", pixel("gest", 26))).To(Succeed())
		p.BrushEnd(pixel("gest", 31))

		Expect(p.Visible()).To(Equal(down))
		Expect(down).To(Equal([]bool{false, true, true}))
	})

	It("hides records whose value on an active dimension is missing", func() {
		Expect(p.SetBrush("deathageday", -10, 550)).To(Succeed())
		Expect(p.Visible()).To(Equal([]bool{true, false, true}))
	})

	It("intersects every active dimension", func() {
		Expect(p.SetBrush("gest", 26, 31)).To(Succeed())
		Expect(p.SetBrush("bpdgrade", 0.5, 3)).To(Succeed())
		Expect(p.Visible()).To(Equal([]bool{false, false, true}))
		Expect(p.Constraints()).To(HaveLen(2))
	})

	It("restores records when a brush collapses to zero height", func() {
		Expect(p.SetBrush("gest", 26, 31)).To(Succeed())
		Expect(p.SetBrush("bpdgrade", 0.5, 3)).To(Succeed())

		Expect(p.BrushStart("gest", 5)).To(Succeed())
		p.BrushEnd(5)

		b, err := p.Brushes.Brush("gest")
		Expect(err).NotTo(HaveOccurred())
		Expect(b.State()).To(Equal(brush.Idle))
		// still hidden by bpdgrade
		Expect(p.Visible()).To(Equal([]bool{true, false, true}))
	})

	It("refuses to start a second brush during one gesture", func() {
		Expect(p.BrushStart("gest", 100)).To(Succeed())
		Expect(p.BrushStart("birthyear", 100)).To(MatchError(brush.ErrGestureCaptured))
		p.BrushEnd(300)
		Expect(p.BrushStart("birthyear", 100)).To(Succeed())
	})

	Describe("throttled redraw", func() {
		It("coalesces drag events and flushes on release", func() {
			var seen []int
			p.OnApply(func(vis []bool) {
				n := 0
				for _, v := range vis {
					if v {
						n++
					}
				}
				seen = append(seen, n)
			})
			base := p.Applied()

			Expect(p.BrushStart("gest", pixel("gest", 32))).To(Succeed())

			_, sched := p.BrushMove(pixel("gest", 29), at(0))
			Expect(sched).To(BeFalse())
			Expect(p.Applied()).To(Equal(base + 1))

			d, sched := p.BrushMove(pixel("gest", 27), at(5))
			Expect(sched).To(BeTrue())
			Expect(d.At).To(BeTemporally("~", at(30), time.Millisecond))

			_, sched = p.BrushMove(pixel("gest", 25), at(10))
			Expect(sched).To(BeFalse())
			Expect(p.Applied()).To(Equal(base + 1))

			Expect(p.Fire(d)).To(BeTrue())
			Expect(p.Applied()).To(Equal(base + 2))
			// the deferred recompute sees the brush at its latest position
			Expect(p.Visible()).To(Equal([]bool{false, true, true}))

			d2, sched := p.BrushMove(pixel("gest", 29), at(35))
			Expect(sched).To(BeTrue())
			p.BrushEnd(pixel("gest", 29))
			Expect(p.Applied()).To(Equal(base + 3))
			Expect(p.Fire(d2)).To(BeFalse())

			Expect(p.Visible()).To(Equal([]bool{false, true, false}))
			Expect(seen).To(Equal([]int{1, 2, 1}))
		})

		It("ignores motion without a captured gesture", func() {
			_, sched := p.BrushMove(10, at(0))
			Expect(sched).To(BeFalse())
			p.BrushEnd(10)
			Expect(p.Applied()).To(Equal(0))
		})
	})

	It("hit-tests the brush area around each axis", func() {
		x, _ := p.X.X("gest")
		dim, ok := p.HitTest(x+7, 100, 0)
		Expect(ok).To(BeTrue())
		Expect(dim).To(Equal("gest"))

		_, ok = p.HitTest(x+9, 100, 0)
		Expect(ok).To(BeFalse())
		_, ok = p.HitTest(x, -1, 0)
		Expect(ok).To(BeFalse())
	})

	It("widens the hit area by the pointer slack", func() {
		x, _ := p.X.X("gest")
		dim, ok := p.HitTest(x+12, 100, 15)
		Expect(ok).To(BeTrue())
		Expect(dim).To(Equal("gest"))
	})

	It("bins visible values over the axis domain", func() {
		counts, err := p.Histogram("bpdgrade", 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(counts).To(Equal([]float64{0, 1, 1, 1}))

		Expect(p.SetBrush("gest", 26, 31)).To(Succeed())
		counts, err = p.Histogram("bpdgrade", 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(counts).To(Equal([]float64{0, 1, 1, 0}))

		_, err = p.Histogram("weight", 4)
		Expect(err).To(HaveOccurred())
	})

	It("puts huge out-of-domain values into the end bins", func() {
		ds := dataset.New(cfg.DimensionNames(), []dataset.Record{
			{1, 2012, 84, -10, 24, 1e300, 2},
			{2, 2015, 61, -10, 30, -1e300, 0},
			{3, 2019, 12, 120, 28, 0.5, 1},
		})
		wide, err := plot.New(cfg, ds)
		Expect(err).NotTo(HaveOccurred())

		counts, err := wide.Histogram("zpreterm", 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(counts).To(Equal([]float64{1, 0, 1, 1}))
	})

	It("colors records by birth year", func() {
		Expect(p.Color(0)).To(Equal("#440154"))
		Expect(p.Color(2)).To(Equal("#fde725"))

		p.UseRamp("magma")
		Expect(p.Colors.Name()).To(Equal("magma"))
		Expect(p.Color(0)).To(Equal("#000004"))
	})

	It("rejects a dataset whose columns differ from the axes", func() {
		ds := dataset.New([]string{"gest"}, []dataset.Record{{24}})
		_, err := plot.New(cfg, ds)
		Expect(err).To(MatchError(plot.ErrDimensionMismatch))
	})

	It("reports a missing dataset instead of building a plot", func() {
		cfg.Dataset = "does-not-exist.csv"
		_, err := plot.Open(cfg)
		Expect(err).To(HaveOccurred())
	})
})
