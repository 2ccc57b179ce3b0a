package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/phanxgames/dreamtable"
	"github.com/phanxgames/dreamtable/ebitenhal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the defaults below apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfgPath := "config/dreamtable.toml"
	if p := os.Getenv("DREAMTABLE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := dreamtable.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	assetDir := "res"
	if p := os.Getenv("DREAMTABLE_ASSETS"); p != "" {
		assetDir = p
	}

	hal := ebitenhal.New(ebitenhal.Config{
		Assets:  os.DirFS(assetDir),
		ShowFPS: cfg.Window.ShowFPS,
		TPS:     cfg.Window.TPS,
		Logger:  log.Named("hal"),
	})
	if err := hal.InitWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title); err != nil {
		return err
	}

	world, err := dreamtable.NewEditor(cfg, hal, dreamtable.WithLogger(log))
	if err != nil {
		return fmt.Errorf("build editor: %w", err)
	}
	log.Info("starting",
		zap.String("config", cfgPath),
		zap.String("assets", assetDir),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height))

	return hal.Run(world)
}

// loadConfig reads path when it exists and falls back to the defaults
// otherwise.
func loadConfig(path string) (*dreamtable.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return dreamtable.DefaultConfig(), nil
	}
	return dreamtable.LoadConfig(path)
}
