// Package ebitenhal implements [dreamtable.HAL] on Ebitengine.
//
// Input is snapshotted once at the start of every tick. The whole pipeline
// then runs inside the same Update call and draws into an offscreen
// framebuffer, which Draw presents. This keeps "sample input, process,
// present" in lockstep even when Ebitengine runs several updates per draw.
package ebitenhal

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	dt "github.com/phanxgames/dreamtable"
)

// Config configures the backend.
type Config struct {
	// Assets resolves res:// paths. res://icons/hand.png opens
	// icons/hand.png in Assets.
	Assets fs.FS
	// ShowFPS overlays the current FPS and TPS.
	ShowFPS bool
	// TPS is the update rate. Zero keeps Ebitengine's default.
	TPS int
	// Logger receives backend diagnostics. Nil discards them.
	Logger *zap.Logger
}

// HAL is the Ebitengine backend.
type HAL struct {
	cfg Config
	log *zap.Logger

	width, height int
	clearColor    dt.Color

	frame    *ebiten.Image // offscreen framebuffer the pipeline draws into
	camStack []dt.Camera2D
	input    inputSnapshot
	fonts    map[string]dt.FontHandle
}

// New creates the backend. Call InitWindow before Run.
func New(cfg Config) *HAL {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &HAL{
		cfg:   cfg,
		log:   log,
		input: newInputSnapshot(),
		fonts: make(map[string]dt.FontHandle),
	}
}

// InitWindow sizes and titles the window.
func (h *HAL) InitWindow(width, height int, title string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("init window: invalid size %dx%d", width, height)
	}
	h.width, h.height = width, height
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if h.cfg.TPS > 0 {
		ebiten.SetTPS(h.cfg.TPS)
	}
	return nil
}

func (h *HAL) ScreenSize() dt.Vec2 {
	return dt.Vec2{X: float64(h.width), Y: float64(h.height)}
}

func (h *HAL) ScreenRect() dt.Rect {
	return dt.RectFrom(dt.Vec2{}, h.ScreenSize())
}

func (h *HAL) SetClearColor(c dt.Color) { h.clearColor = c }

// Run drives w until the window is closed.
func (h *HAL) Run(w *dt.World) error {
	if h.width == 0 || h.height == 0 {
		return errors.New("run: InitWindow was not called")
	}
	g := &game{hal: h, world: w}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// game adapts the world to ebiten.Game.
type game struct {
	hal   *HAL
	world *dt.World
}

func (g *game) Update() error {
	h := g.hal
	h.input.sample()
	h.ensureFrame()
	h.frame.Fill(h.clearColor)
	h.camStack = h.camStack[:0]

	g.world.Process(h)

	if n := len(h.camStack); n > 0 {
		h.log.Warn("camera stack not empty at end of frame", zap.Int("depth", n))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	h := g.hal
	if h.frame != nil {
		screen.DrawImage(h.frame, nil)
	}
	if h.cfg.ShowFPS {
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		ebitenutil.DebugPrintAt(screen, msg, h.width-100, h.height-32)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.hal.width, g.hal.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// ensureFrame (re)allocates the framebuffer when the layout size changes.
func (h *HAL) ensureFrame() {
	if h.frame != nil {
		b := h.frame.Bounds()
		if b.Dx() == h.width && b.Dy() == h.height {
			return
		}
		h.frame.Deallocate()
	}
	h.frame = ebiten.NewImage(max(h.width, 1), max(h.height, 1))
}

// resolve maps a res:// path to a path inside the asset FS.
func resolve(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "res://")
	if !ok {
		return "", fmt.Errorf("resource %q: missing res:// scheme", path)
	}
	rest = strings.TrimPrefix(rest, "/")
	if !fs.ValidPath(rest) {
		return "", fmt.Errorf("resource %q: invalid path", path)
	}
	return rest, nil
}

func (h *HAL) readAsset(path string) ([]byte, error) {
	name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if h.cfg.Assets == nil {
		return nil, fmt.Errorf("resource %q: %w", path, fs.ErrNotExist)
	}
	return fs.ReadFile(h.cfg.Assets, name)
}
