package dreamtable_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	dt "github.com/phanxgames/dreamtable"
	"github.com/phanxgames/dreamtable/haltest"
)

const screenW, screenH = 320, 240

// newEditor builds the full editor on a headless HAL with both cameras at
// zoom 1, so a world point p sits at screen p + (160, 120) and UI space is
// screen space. One frame is stepped so the cameras are published and
// centered.
func newEditor(t *testing.T, opts ...dt.Option) (*dt.World, *haltest.HAL) {
	t.Helper()
	cfg := dt.DefaultConfig()
	cfg.Window.Width, cfg.Window.Height = screenW, screenH
	cfg.Camera.WorldZoom = 1
	cfg.Camera.UIZoom = 1
	cfg.Editor.SampleCanvas = ""
	cfg.Editor.RecenterSeconds = 0
	cfg.Editor.Seed = 42

	hal := haltest.New(screenW, screenH)
	require.NoError(t, hal.InitWindow(screenW, screenH, cfg.Window.Title))
	w, err := dt.NewEditor(cfg, hal, opts...)
	require.NoError(t, err)
	hal.Step(w)
	return w, hal
}

// newHAL returns a bare HAL for worlds assembled by hand.
func newHAL() *haltest.HAL { return haltest.New(screenW, screenH) }

// observed returns a logger option plus the log sink it writes to.
func observed() (dt.Option, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return dt.WithLogger(zap.New(core)), logs
}

// scr converts world coordinates to screen coordinates for newEditor.
func scr(x, y float64) (float64, float64) {
	return x + screenW/2, y + screenH/2
}

// addCanvas creates a gridded canvas filled with c at a world position.
func addCanvas(t *testing.T, w *dt.World, hal *haltest.HAL, x, y, width, height float64, c dt.Color) dt.Entity {
	t.Helper()
	raster, err := hal.GenImageColor(dt.V(width, height), c)
	require.NoError(t, err)
	return w.CreateEntity(
		dt.Name{Label: "Canvas"},
		dt.Position{Vec2: dt.V(x, y), Space: dt.SpaceWorld},
		dt.Extent{Vec2: dt.V(width, height)},
		dt.Canvas{},
		dt.CellGrid{Cols: 3, Rows: 3},
		dt.CellRefs{Refs: make(map[dt.CellIndex]dt.CellRef)},
		dt.Image{Raster: raster},
		dt.Draggable{},
		dt.Hoverable{},
		dt.Selectable{},
		dt.Deletable{},
	)
}

// pixel reads a pixel of an entity's raster.
func pixel(t *testing.T, w *dt.World, e dt.Entity, x, y int) dt.Color {
	t.Helper()
	img, ok := w.C.Image.Get(e)
	require.True(t, ok)
	r, ok := img.Raster.(*haltest.Raster)
	require.True(t, ok, "raster is %T", img.Raster)
	return dt.ColorOf(r.At(x, y))
}

var red = dt.Color{R: 255, A: 255}
