package model

// AppConfig holds user preferences and the defaults applied to new packing sessions.
type AppConfig struct {
	// Default packing settings applied to new sessions
	DefaultMaxWidth  float64 `json:"default_max_width" yaml:"default_max_width" toml:"default_max_width"`
	DefaultMaxHeight float64 `json:"default_max_height" yaml:"default_max_height" toml:"default_max_height"`
	DefaultPadding   float64 `json:"default_padding" yaml:"default_padding" toml:"default_padding"`
	DefaultOptions   Options `json:"default_options" yaml:"default_options" toml:"default_options"`

	// Application preferences
	SessionFormat  string   `json:"session_format" yaml:"session_format" toml:"session_format"` // "json", "cbor", "cbor.zst", "json.zst"
	OutputDir      string   `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	RecentSessions []string `json:"recent_sessions" yaml:"recent_sessions" toml:"recent_sessions"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultMaxWidth:  2048,
		DefaultMaxHeight: 2048,
		DefaultPadding:   0,
		DefaultOptions:   DefaultOptions(),
		SessionFormat:    "json",
		OutputDir:        ".",
		RecentSessions:   []string{},
	}
}

// ApplyToConfig copies the default values from AppConfig into a PackerConfig.
// Zero values in the AppConfig leave the target untouched.
func (c AppConfig) ApplyToConfig(pc *PackerConfig) {
	if c.DefaultMaxWidth > 0 {
		pc.MaxWidth = c.DefaultMaxWidth
	}
	if c.DefaultMaxHeight > 0 {
		pc.MaxHeight = c.DefaultMaxHeight
	}
	if c.DefaultPadding > 0 {
		pc.Padding = c.DefaultPadding
	}
	pc.Options = c.DefaultOptions
	if pc.Options.Logic == "" {
		pc.Options.Logic = LogicMaxArea
	}
}

// AddRecentSession moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentSession(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentSessions {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentSessions = recent
}
