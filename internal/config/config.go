package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/parcoord/internal/colormap"
	"github.com/san-kum/parcoord/internal/scale"
)

const (
	DefaultDataset        = "dataset_filled.csv"
	DefaultWidth          = 1100
	DefaultHeight         = 600
	DefaultThrottleMS     = 30
	DefaultBrushHalfWidth = 8
	DefaultPadding        = 1.0
	DefaultColorBy        = "birthyear"
	DefaultTheme          = "viridis"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Dataset        string            `yaml:"dataset"`
	Width          int               `yaml:"width" validate:"gt=0"`
	Height         int               `yaml:"height" validate:"gt=0"`
	Margin         Margin            `yaml:"margin"`
	Padding        float64           `yaml:"padding" validate:"gte=0"`
	Dimensions     []DimensionConfig `yaml:"dimensions" validate:"min=1,dive"`
	ColorBy        string            `yaml:"color_by"`
	ThrottleMS     int               `yaml:"throttle_ms" validate:"gt=0"`
	BrushHalfWidth float64           `yaml:"brush_half_width" validate:"gt=0"`
	Theme          string            `yaml:"theme"`
}

type Margin struct {
	Top    int `yaml:"top" validate:"gte=0"`
	Right  int `yaml:"right" validate:"gte=0"`
	Bottom int `yaml:"bottom" validate:"gte=0"`
	Left   int `yaml:"left" validate:"gte=0"`
}

// DimensionConfig is one axis. An empty Domain means the data extent is used.
type DimensionConfig struct {
	Name    string    `yaml:"name" validate:"required"`
	Label   string    `yaml:"label,omitempty"`
	Domain  []float64 `yaml:"domain,omitempty" validate:"omitempty,len=2"`
	Ticks   []float64 `yaml:"ticks,omitempty"`
	Integer bool      `yaml:"integer,omitempty"`
}

var validate = validator.New()

// ageTicks are the day ticks of the discharge and death age axes.
var ageTicks = []float64{-10, 0, 50, 100, 150, 200, 250, 300, 350, 400, 450, 500, 550}

func clinicalDimensions() []DimensionConfig {
	return []DimensionConfig{
		{Name: "anon_id", Label: "anonymized id", Domain: []float64{0, 220000}},
		{Name: "birthyear", Label: "birth year", Domain: []float64{2010, 2022}},
		{Name: "dischage", Label: "discharge age (days)", Domain: []float64{-10, 550}, Ticks: ageTicks, Integer: true},
		{Name: "deathageday", Label: "death age (days)", Domain: []float64{-10, 550}, Ticks: ageTicks, Integer: true},
		{Name: "gest", Label: "gestational age (weeks)", Domain: []float64{23, 32}},
		{Name: "zpreterm", Label: "preterm z-score", Domain: []float64{-4, 4}},
		{Name: "bpdgrade", Label: "BPD grade", Domain: []float64{-1, 3}, Ticks: []float64{-1, 0, 1, 2, 3}, Integer: true},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Dataset:        DefaultDataset,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Margin:         Margin{Top: 30, Right: 10, Bottom: 10, Left: 0},
		Padding:        DefaultPadding,
		Dimensions:     clinicalDimensions(),
		ColorBy:        DefaultColorBy,
		ThrottleMS:     DefaultThrottleMS,
		BrushHalfWidth: DefaultBrushHalfWidth,
		Theme:          DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PlotWidth is the drawable width inside the margins.
func (c *Config) PlotWidth() float64 {
	return float64(c.Width - c.Margin.Left - c.Margin.Right)
}

// PlotHeight is the drawable height inside the margins.
func (c *Config) PlotHeight() float64 {
	return float64(c.Height - c.Margin.Top - c.Margin.Bottom)
}

func (c *Config) ThrottleInterval() time.Duration {
	return time.Duration(c.ThrottleMS) * time.Millisecond
}

// DimensionNames returns the axis order.
func (c *Config) DimensionNames() []string {
	names := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		names[i] = d.Name
	}
	return names
}

// Dimension looks up an axis by name.
func (c *Config) Dimension(name string) (DimensionConfig, bool) {
	for _, d := range c.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return DimensionConfig{}, false
}

// ScaleSpecs converts the dimension list for scale.Build.
func (c *Config) ScaleSpecs() []scale.Spec {
	specs := make([]scale.Spec, len(c.Dimensions))
	for i, d := range c.Dimensions {
		sp := scale.Spec{Name: d.Name, Ticks: d.Ticks, Integer: d.Integer}
		if len(d.Domain) == 2 {
			iv := scale.Interval{Lo: d.Domain[0], Hi: d.Domain[1]}
			sp.Domain = &iv
		}
		specs[i] = sp
	}
	return specs
}

// Validate checks field bounds with struct tags, then the cross-field rules:
// unique dimension names, increasing domains, a known color dimension and a
// non-empty plot area and a known theme.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalid, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	seen := make(map[string]bool, len(c.Dimensions))
	for _, d := range c.Dimensions {
		if seen[d.Name] {
			return fmt.Errorf("%w: duplicate dimension %q", ErrInvalid, d.Name)
		}
		seen[d.Name] = true
		if len(d.Domain) == 2 && d.Domain[0] >= d.Domain[1] {
			return fmt.Errorf("%w: dimension %q domain %v is not increasing", ErrInvalid, d.Name, d.Domain)
		}
	}
	if c.ColorBy != "" && !seen[c.ColorBy] {
		return fmt.Errorf("%w: color_by %q is not a dimension", ErrInvalid, c.ColorBy)
	}
	if c.PlotWidth() <= 0 || c.PlotHeight() <= 0 {
		return fmt.Errorf("%w: margins leave no plot area", ErrInvalid)
	}
	if c.Theme != "" && !slices.Contains(colormap.Names(), c.Theme) {
		return fmt.Errorf("%w: unknown theme %q (available: %v)", ErrInvalid, c.Theme, colormap.Names())
	}
	return nil
}
