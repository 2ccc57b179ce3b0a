package dreamtable

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable of the editor.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Editor  EditorConfig  `toml:"editor"`
	Camera  CameraConfig  `toml:"camera"`
	Theme   Theme         `toml:"theme"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Title   string `toml:"title"`
	TPS     int    `toml:"tps"`
	ShowFPS bool   `toml:"show_fps"`
}

type EditorConfig struct {
	SnapX           float64 `toml:"snap_x"`
	SnapY           float64 `toml:"snap_y"`
	Seed            uint64  `toml:"seed"` // 0 = random per run
	ExportDir       string  `toml:"export_dir"`
	RecenterSeconds float32 `toml:"recenter_seconds"`
	Font            string  `toml:"font"`          // res:// path, empty = built-in face
	SampleCanvas    string  `toml:"sample_canvas"` // res:// path, empty = none
}

type CameraConfig struct {
	WorldZoom    float64 `toml:"world_zoom"`
	UIZoom       float64 `toml:"ui_zoom"`
	ZoomSpeed    float64 `toml:"zoom_speed"`
	ZoomFriction float64 `toml:"zoom_friction"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

type DebugConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoadConfig reads a TOML file and overlays it on DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig overlays TOML data on DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "dreamtable",
			TPS:    60,
		},
		Editor: EditorConfig{
			SnapX:           8,
			SnapY:           8,
			ExportDir:       "save",
			RecenterSeconds: 0.25,
			SampleCanvas:    "res://palettes/sweetie-16-8x.png",
		},
		Camera: CameraConfig{
			WorldZoom:    4,
			UIZoom:       3,
			ZoomSpeed:    0.025,
			ZoomFriction: 0.85,
		},
		Theme: DefaultTheme(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window tps %d must be positive", c.Window.TPS)
	}
	if c.Camera.WorldZoom <= 0 || c.Camera.UIZoom <= 0 {
		return fmt.Errorf("camera zoom must be positive")
	}
	if c.Camera.ZoomFriction < 0 || c.Camera.ZoomFriction >= 1 {
		return fmt.Errorf("camera zoom_friction %v must be in [0, 1)", c.Camera.ZoomFriction)
	}
	if c.Editor.SnapX < 0 || c.Editor.SnapY < 0 {
		return fmt.Errorf("editor snap must not be negative")
	}
	return nil
}
