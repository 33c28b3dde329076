// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	References ReferencesConfig `yaml:"references"`
	Timer      TimerConfig      `yaml:"timer"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ReferencesConfig holds reference model settings.
type ReferencesConfig struct {
	Folder       string  `yaml:"folder"`         // Directory scanned for .obj models
	Thickness    float32 `yaml:"thickness"`      // Outline shell offset along smoothed normals
	SharpLowDeg  float32 `yaml:"sharp_low_deg"`  // Lower dihedral angle bound, degrees
	SharpHighDeg float32 `yaml:"sharp_high_deg"` // Upper dihedral angle bound, degrees
}

// TimerConfig holds practice timer settings.
type TimerConfig struct {
	IntervalSeconds float64 `yaml:"interval_seconds"`
}

// ViewerConfig holds viewer display settings.
type ViewerConfig struct {
	ShowFPS    bool `yaml:"show_fps"`
	ShowBounds bool `yaml:"show_bounds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		References: ReferencesConfig{
			Folder:       "references",
			Thickness:    0.02,
			SharpLowDeg:  45,
			SharpHighDeg: 135,
		},
		Timer: TimerConfig{
			IntervalSeconds: 3.0,
		},
		Viewer: ViewerConfig{
			ShowFPS:    false,
			ShowBounds: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
