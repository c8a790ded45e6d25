package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/benoitkugler/svgstyler/palette"
	"github.com/benoitkugler/svgstyler/svgdoc"
	"github.com/benoitkugler/svgstyler/viewport"
)

// EnvPrefix prefixes the environment overrides. Nested keys are
// separated by a double underscore: SVGSTYLER_SERVER__ADDR.
const EnvPrefix = "SVGSTYLER_"

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	vp := viewport.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownSeconds: 5,
		},
		Viewport: ViewportConfig{
			ZoomSpeed: vp.ZoomSpeed,
			MinZoom:   vp.MinZoom,
			PanFactor: vp.PanFactor,
			Width:     800,
			Height:    600,
		},
		Palette: PaletteConfig{DefaultColor: palette.DefaultColor},
		Loader: LoaderConfig{
			ShapeTags:  append([]string(nil), svgdoc.DefaultShapeTags...),
			ErrorMode:  svgdoc.IgnoreErrorMode.String(),
			LoadPolicy: LoadLastCallback,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from the given YAML file, if it exists,
// then overlays environment variable overrides (SVGSTYLER_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	// a list coming from the environment arrives as one comma separated string
	if len(cfg.Loader.ShapeTags) == 1 && strings.Contains(cfg.Loader.ShapeTags[0], ",") {
		cfg.Loader.ShapeTags = splitList(cfg.Loader.ShapeTags[0])
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ShutdownSeconds < 0 {
		return fmt.Errorf("server.shutdown_seconds must be non-negative")
	}
	if c.Viewport.ZoomSpeed <= 0 {
		return fmt.Errorf("viewport.zoom_speed must be positive")
	}
	if c.Viewport.MinZoom <= 0 {
		return fmt.Errorf("viewport.min_zoom must be positive")
	}
	if c.Viewport.PanFactor <= 0 {
		return fmt.Errorf("viewport.pan_factor must be positive")
	}
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("viewport size must be non-negative")
	}
	if _, err := svgdoc.ParseColor(c.Palette.DefaultColor); err != nil {
		return fmt.Errorf("palette.default_color: %w", err)
	}
	if len(c.Loader.ShapeTags) == 0 {
		return fmt.Errorf("loader.shape_tags must not be empty")
	}
	if _, err := svgdoc.ParseErrorMode(c.Loader.ErrorMode); err != nil {
		return fmt.Errorf("loader.error_mode: %w", err)
	}
	switch c.Loader.LoadPolicy {
	case LoadLastCallback, LoadLastInitiated:
	default:
		return fmt.Errorf("invalid loader.load_policy %q: must be one of %s, %s",
			c.Loader.LoadPolicy, LoadLastCallback, LoadLastInitiated)
	}
	return nil
}

// ViewportConfig returns the controller constants.
func (c *Config) ViewportConfig() viewport.Config {
	return viewport.Config{
		ZoomSpeed: c.Viewport.ZoomSpeed,
		MinZoom:   c.Viewport.MinZoom,
		PanFactor: c.Viewport.PanFactor,
	}
}

// ViewportSize returns the initial viewport size.
func (c *Config) ViewportSize() viewport.Size {
	return viewport.Size{W: c.Viewport.Width, H: c.Viewport.Height}
}

// LoaderOptions returns the document loader options.
func (c *Config) LoaderOptions() (svgdoc.Options, error) {
	mode, err := svgdoc.ParseErrorMode(c.Loader.ErrorMode)
	if err != nil {
		return svgdoc.Options{}, err
	}
	return svgdoc.Options{
		ShapeTags: append([]string(nil), c.Loader.ShapeTags...),
		StableIDs: c.Loader.StableIDs,
		SkipDefs:  c.Loader.SkipDefs,
		ErrorMode: mode,
	}, nil
}
