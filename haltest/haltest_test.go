package haltest

import (
	"image"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dt "github.com/phanxgames/dreamtable"
)

// probe records the input it observes each frame.
type probe struct {
	pressed  []bool
	released []bool
	down     []bool
	mouse    []dt.Vec2
	wheel    []float64
}

func (p *probe) Process(_ *dt.World, _ *dt.Context, hal dt.HAL) {
	p.pressed = append(p.pressed, hal.IsMouseButtonPressed(dt.MouseLeft))
	p.released = append(p.released, hal.IsMouseButtonReleased(dt.MouseLeft))
	p.down = append(p.down, hal.IsMouseButtonDown(dt.MouseLeft))
	p.mouse = append(p.mouse, hal.MousePosition())
	p.wheel = append(p.wheel, hal.MouseWheel())
}

func probed(t *testing.T) (*dt.World, *probe) {
	t.Helper()
	w := dt.NewWorld()
	p := &probe{}
	require.NoError(t, w.AddSystem(dt.PhaseControl, "probe", p))
	return w, p
}

func TestClickEdgesSpanTwoFrames(t *testing.T) {
	w, p := probed(t)
	h := New(100, 100)

	h.InjectClick(dt.MouseLeft, 5, 6)
	require.NoError(t, h.Run(w))
	h.Step(w)

	assert.Equal(t, []bool{true, false, false}, p.pressed)
	assert.Equal(t, []bool{false, true, false}, p.released)
	assert.Equal(t, []bool{true, false, false}, p.down)
	assert.Equal(t, dt.Vec2{X: 5, Y: 6}, p.mouse[0])
	assert.Equal(t, 3, h.Frames())
}

func TestInjectDragFrames(t *testing.T) {
	w, p := probed(t)
	h := New(100, 100)

	h.InjectDrag(dt.MouseLeft, 0, 0, 40, 20, 5)
	require.NoError(t, h.Run(w))

	require.Len(t, p.mouse, 5)
	assert.Equal(t, dt.Vec2{X: 10, Y: 5}, p.mouse[1])
	assert.Equal(t, dt.Vec2{X: 40, Y: 20}, p.mouse[4])
	assert.Equal(t, []bool{true, true, true, true, false}, p.down)
}

func TestWheelLastsOneFrame(t *testing.T) {
	w, p := probed(t)
	h := New(100, 100)

	h.InjectWheel(2)
	h.StepN(w, 2)
	assert.Equal(t, []float64{2, 0}, p.wheel)
}

func TestKeyEdges(t *testing.T) {
	h := New(100, 100)
	w := dt.NewWorld()

	h.InjectKeyTap(dt.KeyS)
	h.Step(w)
	assert.True(t, h.IsKeyPressed(dt.KeyS))
	assert.True(t, h.IsKeyDown(dt.KeyS))
	h.ClearKeyPressed(dt.KeyS)
	assert.False(t, h.IsKeyPressed(dt.KeyS))

	h.Step(w)
	assert.True(t, h.IsKeyReleased(dt.KeyS))
	assert.False(t, h.IsKeyDown(dt.KeyS))
}

func TestRunRespectsMaxFrames(t *testing.T) {
	h := New(100, 100)
	h.MaxFrames = 3
	h.InjectWait(10)
	assert.Error(t, h.Run(dt.NewWorld()))
	assert.Equal(t, 3, h.Frames())
}

// unbalanced pushes a camera it never pops.
type unbalanced struct{}

func (unbalanced) Process(_ *dt.World, _ *dt.Context, hal dt.HAL) {
	hal.PushCamera(dt.Camera2D{Zoom: 1})
	hal.DrawRectangle(dt.Rect{Width: 1, Height: 1}, dt.ColorWhite)
}

func TestUnbalancedCameraStack(t *testing.T) {
	h := New(100, 100)
	h.PopCamera()
	assert.Equal(t, 1, h.Unbalanced)

	w := dt.NewWorld()
	require.NoError(t, w.AddSystem(dt.PhaseRender, "unbalanced", unbalanced{}))
	h.Step(w)
	assert.Equal(t, 2, h.Unbalanced)
	rects := h.CallsOf("rect")
	require.Len(t, rects, 1)
	require.NotNil(t, rects[0].Camera)
	assert.Equal(t, 1.0, rects[0].Camera.Zoom)
}

func TestDoubleFreeCounted(t *testing.T) {
	h := New(100, 100)
	img, err := h.GenImageColor(dt.Vec2{X: 2, Y: 2}, dt.ColorBlack)
	require.NoError(t, err)
	tex, err := h.LoadTextureFromImage(img)
	require.NoError(t, err)
	assert.Equal(t, 1, h.LiveImages())
	assert.Equal(t, 1, h.LiveTextures())

	h.UnloadTexture(tex)
	h.UnloadImage(img)
	h.UnloadImage(img)
	h.UnloadTexture(tex)
	assert.Equal(t, 0, h.LiveImages())
	assert.Equal(t, 0, h.LiveTextures())
	assert.Equal(t, 2, h.DoubleFrees)

	_, err = h.LoadTextureFromImage(img)
	assert.Error(t, err)
}

func TestUpdateTextureCopiesPixels(t *testing.T) {
	h := New(100, 100)
	img, err := h.GenImageColor(dt.Vec2{X: 2, Y: 1}, dt.ColorBlack)
	require.NoError(t, err)
	tex, err := h.LoadTextureFromImage(img)
	require.NoError(t, err)

	h.ImageDrawPixel(img, dt.Vec2{X: 1}, dt.ColorWhite)
	texture := tex.(*Texture)
	assert.Equal(t, uint8(0), texture.Pix[4], "upload is a snapshot")

	require.NoError(t, h.UpdateTexture(tex, img))
	assert.Equal(t, uint8(255), texture.Pix[4])
	assert.Equal(t, 2, texture.Version)
}

func TestLoadImageFromAssets(t *testing.T) {
	pic := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	pic.Set(2, 1, color.NRGBA{G: 255, A: 255})
	h := New(100, 100)
	h.AddImage("res://mem.png", pic)
	h.Assets = fstest.MapFS{}

	img, err := h.LoadImage("res://mem.png")
	require.NoError(t, err)
	assert.Equal(t, dt.Vec2{X: 3, Y: 2}, h.ImageSize(img))
	assert.Equal(t, dt.Color{G: 255, A: 255}, h.ImageColor(img, dt.Vec2{X: 2, Y: 1}))
	assert.Equal(t, dt.ColorTransparent, h.ImageColor(img, dt.Vec2{X: 3, Y: 0}))

	_, err = h.LoadImage("res://missing.png")
	assert.Error(t, err)
	_, err = h.LoadFont("res://missing.ttf")
	assert.Error(t, err)
}

func TestInitWindowRejectsEmptySize(t *testing.T) {
	h := New(1, 1)
	assert.Error(t, h.InitWindow(0, 10, "x"))
	require.NoError(t, h.InitWindow(64, 32, "dreamtable"))
	assert.Equal(t, dt.Vec2{X: 64, Y: 32}, h.ScreenSize())
	assert.Equal(t, "dreamtable", h.Title())
}
