package config

// LoadPolicy decides which of several overlapping loads ends up displayed.
type LoadPolicy string

const (
	// LoadLastCallback keeps whichever load completes last.
	LoadLastCallback LoadPolicy = "last-callback"
	// LoadLastInitiated keeps the most recently started load and drops
	// completions of the loads it superseded.
	LoadLastInitiated LoadPolicy = "last-initiated"
)

// Config is the top-level svgstyler configuration, corresponding to svgstyler.yml.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Viewport ViewportConfig `yaml:"viewport" koanf:"viewport"`
	Palette  PaletteConfig  `yaml:"palette" koanf:"palette"`
	Loader   LoaderConfig   `yaml:"loader" koanf:"loader"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Addr            string `yaml:"addr" koanf:"addr"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ShutdownSeconds int    `yaml:"shutdown_seconds" koanf:"shutdown_seconds"`
}

// ViewportConfig holds the zoom and pan constants and the initial viewport size.
type ViewportConfig struct {
	ZoomSpeed float64 `yaml:"zoom_speed" koanf:"zoom_speed"`
	MinZoom   float64 `yaml:"min_zoom" koanf:"min_zoom"`
	PanFactor float64 `yaml:"pan_factor" koanf:"pan_factor"`
	Width     float64 `yaml:"width" koanf:"width"`
	Height    float64 `yaml:"height" koanf:"height"`
}

// PaletteConfig holds the color picker settings.
type PaletteConfig struct {
	DefaultColor string `yaml:"default_color" koanf:"default_color"`
}

// LoaderConfig holds the document loading settings.
type LoaderConfig struct {
	ShapeTags  []string   `yaml:"shape_tags" koanf:"shape_tags"`
	StableIDs  bool       `yaml:"stable_ids" koanf:"stable_ids"`
	SkipDefs   bool       `yaml:"skip_defs" koanf:"skip_defs"`
	ErrorMode  string     `yaml:"error_mode" koanf:"error_mode"`
	LoadPolicy LoadPolicy `yaml:"load_policy" koanf:"load_policy"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
