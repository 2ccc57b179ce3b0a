package dreamtable_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dt "github.com/phanxgames/dreamtable"
)

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg, err := dt.ParseConfig([]byte(`
[window]
title = "sketchbook"

[editor]
snap_x = 16

[theme]
background = "#102030"
`))
	require.NoError(t, err)

	def := dt.DefaultConfig()
	assert.Equal(t, "sketchbook", cfg.Window.Title)
	assert.Equal(t, def.Window.Width, cfg.Window.Width)
	assert.Equal(t, 16.0, cfg.Editor.SnapX)
	assert.Equal(t, def.Editor.SnapY, cfg.Editor.SnapY)
	assert.Equal(t, dt.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, cfg.Theme.Background)
	assert.Equal(t, def.Theme.ButtonFill, cfg.Theme.ButtonFill)
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero width", "[window]\nwidth = 0"},
		{"negative tps", "[window]\ntps = -1"},
		{"zero zoom", "[camera]\nworld_zoom = 0"},
		{"friction of one", "[camera]\nzoom_friction = 1.0"},
		{"negative snap", "[editor]\nsnap_y = -8"},
		{"bad color", "[theme]\nbackground = \"#12\""},
		{"not toml", "[window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dt.ParseConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dreamtable.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644))

	cfg, err := dt.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := dt.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg   dt.LoggingConfig
		debug bool
	}{
		{dt.LoggingConfig{Level: "debug", Format: "console"}, true},
		{dt.LoggingConfig{Level: "warn", Format: "json"}, false},
		{dt.LoggingConfig{Level: "chatty"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			log, err := dt.NewLogger(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, log.Core().Enabled(zap.DebugLevel))
			assert.True(t, log.Core().Enabled(zap.ErrorLevel))
		})
	}
}
