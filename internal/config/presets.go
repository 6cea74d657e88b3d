package config

import "sort"

// Presets are named starting configurations.
var Presets = map[string]func() *Config{
	"clinical": DefaultConfig,
	"observed": func() *Config {
		cfg := DefaultConfig()
		for i := range cfg.Dimensions {
			cfg.Dimensions[i].Domain = nil
			cfg.Dimensions[i].Ticks = nil
		}
		return cfg
	},
	"compact": func() *Config {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height = 800, 400
		cfg.ThrottleMS = 50
		return cfg
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
