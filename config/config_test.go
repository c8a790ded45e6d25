package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgstyler/svgdoc"
	"github.com/benoitkugler/svgstyler/viewport"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, viewport.DefaultConfig(), cfg.ViewportConfig())
	assert.Equal(t, "#000000", cfg.Palette.DefaultColor)
	assert.Equal(t, []string{"path"}, cfg.Loader.ShapeTags)
	assert.Equal(t, LoadLastCallback, cfg.Loader.LoadPolicy)

	opts, err := cfg.LoaderOptions()
	require.NoError(t, err)
	assert.Equal(t, svgdoc.IgnoreErrorMode, opts.ErrorMode)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svgstyler.yml")

	original := DefaultConfig()
	original.Server.Addr = ":9000"
	original.Viewport.PanFactor = 0.5
	original.Loader.ShapeTags = []string{"path", "rect", "circle"}
	original.Loader.StableIDs = true
	original.Loader.SkipDefs = true
	original.Loader.LoadPolicy = LoadLastInitiated
	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svgstyler.yml")
	require.NoError(t, os.WriteFile(path, []byte("viewport:\n  min_zoom: 0.25\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Viewport.MinZoom)
	assert.Equal(t, 0.05, cfg.Viewport.ZoomSpeed)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SVGSTYLER_SERVER__ADDR", ":7000")
	t.Setenv("SVGSTYLER_VIEWPORT__ZOOM_SPEED", "0.1")
	t.Setenv("SVGSTYLER_LOADER__SHAPE_TAGS", "path, rect")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 0.1, cfg.Viewport.ZoomSpeed)
	assert.Equal(t, []string{"path", "rect"}, cfg.Loader.ShapeTags)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"addr":        func(c *Config) { c.Server.Addr = "" },
		"zoom speed":  func(c *Config) { c.Viewport.ZoomSpeed = 0 },
		"min zoom":    func(c *Config) { c.Viewport.MinZoom = -1 },
		"pan factor":  func(c *Config) { c.Viewport.PanFactor = 0 },
		"color":       func(c *Config) { c.Palette.DefaultColor = "nope" },
		"shape tags":  func(c *Config) { c.Loader.ShapeTags = nil },
		"error mode":  func(c *Config) { c.Loader.ErrorMode = "loud" },
		"load policy": func(c *Config) { c.Loader.LoadPolicy = "first" },
	} {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}
