package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/parcoord/internal/config"
)

// newCmd registers the flags loadConfig reads and resets the globals behind them.
func newCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "parcoord"}
	cmd.Flags().StringVar(&dataset, "data", config.DefaultDataset, "")
	cmd.Flags().StringVar(&theme, "theme", "", "")
	configFile, preset = "", ""
	t.Cleanup(func() { configFile, preset = "", "" })
	return cmd
}

func TestLoadConfig_PresetKeepsItsDataset(t *testing.T) {
	config.Presets["cohort"] = func() *config.Config {
		cfg := config.DefaultConfig()
		cfg.Dataset = "cohort.csv"
		return cfg
	}
	t.Cleanup(func() { delete(config.Presets, "cohort") })

	cmd := newCmd(t)
	preset = "cohort"
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "cohort.csv", cfg.Dataset)

	require.NoError(t, cmd.Flags().Set("data", "other.csv"))
	cfg, err = loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "other.csv", cfg.Dataset)
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	cmd := newCmd(t)
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDataset, cfg.Dataset)

	path := filepath.Join(t.TempDir(), "plot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataset: from-file.csv\n"), 0644))
	configFile = path
	cfg, err = loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", cfg.Dataset)

	preset = "nope"
	configFile = ""
	_, err = loadConfig(cmd)
	assert.Error(t, err)
}
