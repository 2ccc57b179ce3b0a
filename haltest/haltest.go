// Package haltest provides an in-memory [dreamtable.HAL] for tests.
//
// Input is driven either directly (Hold, Release, MoveMouse, HoldKey) or
// through a queue of synthetic events consumed one per frame, the same way
// a recorded session would replay. Draw calls are recorded instead of
// rendered, and every image and texture handle is tracked so tests can
// assert nothing leaks.
package haltest

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png" // decoder for LoadImage
	"io/fs"
	"strings"

	dt "github.com/phanxgames/dreamtable"
)

// DefaultMaxFrames bounds Run when no script or queue ends it earlier.
const DefaultMaxFrames = 10000

// Raster is the image handle issued by the HAL.
type Raster struct {
	*image.NRGBA
	Path  string
	freed bool
}

// Texture is the texture handle issued by the HAL. Pix is a copy of the
// raster taken at the last upload.
type Texture struct {
	Source  *Raster
	Pix     []byte
	Version int
	freed   bool
}

// Font is the font handle issued by the HAL.
type Font struct{ Path string }

// DrawCall is one recorded draw operation.
type DrawCall struct {
	Op      string
	Camera  *dt.Camera2D // nil when drawn in raw screen pixels
	Rect    dt.Rect
	A, B    dt.Vec2
	Width   float64
	Color   dt.Color
	Texture *Texture
	Text    string
}

// Export is one recorded ExportImage call.
type Export struct {
	Path  string
	Image *image.NRGBA
}

// HAL is a deterministic, headless HAL.
type HAL struct {
	screen     dt.Vec2
	title      string
	clearColor dt.Color

	// Assets resolves res:// paths not registered with AddImage.
	Assets fs.FS
	images map[string]*image.NRGBA

	input    inputState
	queue    []event
	script   *Script
	frames   int
	camStack []dt.Camera2D

	Calls   []DrawCall
	Exports []Export
	// Unbalanced counts PopCamera calls on an empty stack plus cameras
	// still pushed at the end of a frame.
	Unbalanced int
	// DoubleFrees counts unload calls on already released handles.
	DoubleFrees int
	// ExportErr, when set, is returned by ExportImage.
	ExportErr error

	liveImages   int
	liveTextures int

	// MaxFrames bounds Run. Zero means DefaultMaxFrames.
	MaxFrames int
}

// New creates a HAL with a screen of the given size.
func New(width, height int) *HAL {
	return &HAL{
		screen: dt.Vec2{X: float64(width), Y: float64(height)},
		images: make(map[string]*image.NRGBA),
		input:  newInputState(),
	}
}

// AddImage registers an in-memory image under a res:// path.
func (h *HAL) AddImage(path string, img image.Image) {
	h.images[path] = toNRGBA(img)
}

// LiveImages returns the number of rasters not yet unloaded.
func (h *HAL) LiveImages() int { return h.liveImages }

// LiveTextures returns the number of textures not yet unloaded.
func (h *HAL) LiveTextures() int { return h.liveTextures }

// Frames returns the number of frames stepped so far.
func (h *HAL) Frames() int { return h.frames }

// Title returns the window title set by InitWindow.
func (h *HAL) Title() string { return h.title }

// ClearColor returns the color set by SetClearColor.
func (h *HAL) ClearColor() dt.Color { return h.clearColor }

// Step advances one frame: it applies the next scripted or queued event,
// snapshots input edges and runs w.Process.
func (h *HAL) Step(w *dt.World) {
	if h.script != nil {
		h.script.step(h)
	}
	if len(h.queue) > 0 {
		evt := h.queue[0]
		copy(h.queue, h.queue[1:])
		h.queue = h.queue[:len(h.queue)-1]
		evt.apply(&h.input)
	}
	h.input.snapshot()
	h.Calls = h.Calls[:0]
	h.camStack = h.camStack[:0]
	h.frames++

	w.Process(h)

	if len(h.camStack) > 0 {
		h.Unbalanced += len(h.camStack)
	}
	h.input.endFrame()
}

// StepN advances n frames.
func (h *HAL) StepN(w *dt.World, n int) {
	for range n {
		h.Step(w)
	}
}

// Pending reports whether queued events or script steps remain.
func (h *HAL) Pending() bool {
	return len(h.queue) > 0 || (h.script != nil && !h.script.Done())
}

// Run steps frames until the queue and script are exhausted.
func (h *HAL) Run(w *dt.World) error {
	limit := h.MaxFrames
	if limit <= 0 {
		limit = DefaultMaxFrames
	}
	for i := 0; h.Pending(); i++ {
		if i >= limit {
			return fmt.Errorf("haltest: still pending after %d frames", limit)
		}
		h.Step(w)
	}
	return nil
}

// CallsOf returns the recorded draw calls with the given op.
func (h *HAL) CallsOf(op string) []DrawCall {
	var out []DrawCall
	for _, c := range h.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// --- Window ---

func (h *HAL) InitWindow(width, height int, title string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("init window: invalid size %dx%d", width, height)
	}
	h.screen = dt.Vec2{X: float64(width), Y: float64(height)}
	h.title = title
	return nil
}

func (h *HAL) ScreenSize() dt.Vec2      { return h.screen }
func (h *HAL) ScreenRect() dt.Rect      { return dt.RectFrom(dt.Vec2{}, h.screen) }
func (h *HAL) SetClearColor(c dt.Color) { h.clearColor = c }

// Image returns the raster registered under path with AddImage.
func (h *HAL) Image(path string) *image.NRGBA { return h.images[path] }

// --- Resources ---

func (h *HAL) LoadFont(path string) (dt.FontHandle, error) {
	if _, err := h.open(path); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Font{Path: path}, nil
}

func (h *HAL) open(path string) (*image.NRGBA, error) {
	if img, ok := h.images[path]; ok {
		return img, nil
	}
	if h.Assets == nil {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	f, err := h.Assets.Open(strings.TrimPrefix(path, "res://"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

func (h *HAL) LoadImage(path string) (dt.ImageHandle, error) {
	src, err := h.open(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	h.liveImages++
	return &Raster{NRGBA: toNRGBA(src), Path: path}, nil
}

func (h *HAL) GenImageColor(size dt.Vec2, c dt.Color) (dt.ImageHandle, error) {
	w, ht := int(size.X), int(size.Y)
	if w <= 0 || ht <= 0 {
		return nil, fmt.Errorf("gen image: invalid size %dx%d", w, ht)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, ht))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{c.R, c.G, c.B, c.A}), image.Point{}, draw.Src)
	h.liveImages++
	return &Raster{NRGBA: img}, nil
}

func raster(img dt.ImageHandle) (*Raster, error) {
	r, ok := img.(*Raster)
	if !ok || r == nil {
		return nil, fmt.Errorf("haltest: not a raster: %T", img)
	}
	if r.freed {
		return nil, errors.New("haltest: raster already unloaded")
	}
	return r, nil
}

func (h *HAL) LoadTextureFromImage(img dt.ImageHandle) (dt.TextureHandle, error) {
	r, err := raster(img)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	h.liveTextures++
	return &Texture{Source: r, Pix: clonePix(r), Version: 1}, nil
}

func (h *HAL) UpdateTexture(tex dt.TextureHandle, img dt.ImageHandle) error {
	t, ok := tex.(*Texture)
	if !ok || t == nil || t.freed {
		return fmt.Errorf("update texture: invalid texture %T", tex)
	}
	r, err := raster(img)
	if err != nil {
		return fmt.Errorf("update texture: %w", err)
	}
	t.Source = r
	t.Pix = clonePix(r)
	t.Version++
	return nil
}

func (h *HAL) UnloadImage(img dt.ImageHandle) {
	r, ok := img.(*Raster)
	if !ok || r == nil {
		return
	}
	if r.freed {
		h.DoubleFrees++
		return
	}
	r.freed = true
	h.liveImages--
}

func (h *HAL) UnloadTexture(tex dt.TextureHandle) {
	t, ok := tex.(*Texture)
	if !ok || t == nil {
		return
	}
	if t.freed {
		h.DoubleFrees++
		return
	}
	t.freed = true
	h.liveTextures--
}

func (h *HAL) ImageSize(img dt.ImageHandle) dt.Vec2 {
	r, err := raster(img)
	if err != nil {
		return dt.Vec2{}
	}
	b := r.Bounds()
	return dt.Vec2{X: float64(b.Dx()), Y: float64(b.Dy())}
}

func (h *HAL) ImageColor(img dt.ImageHandle, p dt.Vec2) dt.Color {
	r, err := raster(img)
	if err != nil {
		return dt.ColorTransparent
	}
	x, y := int(p.X), int(p.Y)
	if !(image.Point{X: x, Y: y}).In(r.Bounds()) {
		return dt.ColorTransparent
	}
	c := r.NRGBAAt(x, y)
	return dt.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (h *HAL) ImageDrawPixel(img dt.ImageHandle, p dt.Vec2, c dt.Color) {
	r, err := raster(img)
	if err != nil {
		return
	}
	r.SetNRGBA(int(p.X), int(p.Y), color.NRGBA{c.R, c.G, c.B, c.A})
}

func (h *HAL) ImageDrawLine(img dt.ImageHandle, a, b dt.Vec2, c dt.Color) {
	r, err := raster(img)
	if err != nil {
		return
	}
	nc := color.NRGBA{c.R, c.G, c.B, c.A}
	dt.RasterLine(a, b, func(x, y int) { r.SetNRGBA(x, y, nc) })
}

func (h *HAL) ExportImage(img dt.ImageHandle, filename string) error {
	r, err := raster(img)
	if err != nil {
		return fmt.Errorf("export image: %w", err)
	}
	if h.ExportErr != nil {
		return h.ExportErr
	}
	h.Exports = append(h.Exports, Export{Path: filename, Image: toNRGBA(r.NRGBA)})
	return nil
}

// --- Renderer ---

func (h *HAL) PushCamera(cam dt.Camera2D) { h.camStack = append(h.camStack, cam) }

func (h *HAL) PopCamera() {
	if len(h.camStack) == 0 {
		h.Unbalanced++
		return
	}
	h.camStack = h.camStack[:len(h.camStack)-1]
}

func (h *HAL) ScreenToWorld(p dt.Vec2, cam dt.Camera2D) dt.Vec2 { return cam.ScreenToWorld(p) }

func (h *HAL) record(c DrawCall) {
	if n := len(h.camStack); n > 0 {
		cam := h.camStack[n-1]
		c.Camera = &cam
	}
	h.Calls = append(h.Calls, c)
}

func (h *HAL) DrawRectangle(r dt.Rect, c dt.Color) {
	h.record(DrawCall{Op: "rect", Rect: r, Color: c})
}

func (h *HAL) DrawRectangleLines(r dt.Rect, thickness float64, c dt.Color) {
	h.record(DrawCall{Op: "rect_lines", Rect: r, Width: thickness, Color: c})
}

func (h *HAL) DrawLine(a, b dt.Vec2, c dt.Color) {
	h.record(DrawCall{Op: "line", A: a, B: b, Width: 1, Color: c})
}

func (h *HAL) DrawLineWidth(a, b dt.Vec2, width float64, c dt.Color) {
	h.record(DrawCall{Op: "line", A: a, B: b, Width: width, Color: c})
}

func (h *HAL) DrawTexture(tex dt.TextureHandle, pos dt.Vec2, tint dt.Color) {
	t, _ := tex.(*Texture)
	rect := dt.Rect{X: pos.X, Y: pos.Y}
	if t != nil && t.Source != nil {
		b := t.Source.Bounds()
		rect.Width, rect.Height = float64(b.Dx()), float64(b.Dy())
	}
	h.record(DrawCall{Op: "texture", Rect: rect, A: pos, Color: tint, Texture: t})
}

func (h *HAL) DrawTextureRect(tex dt.TextureHandle, src dt.Rect, pos dt.Vec2, tint dt.Color) {
	t, _ := tex.(*Texture)
	h.record(DrawCall{Op: "texture_rect", Rect: src, A: pos, Color: tint, Texture: t})
}

func (h *HAL) DrawText(_ dt.FontHandle, text string, pos dt.Vec2, size, _ float64, c dt.Color) {
	h.record(DrawCall{Op: "text", A: pos, Width: size, Color: c, Text: text})
}

// MeasureText uses a fixed advance of 0.75*size per rune.
func (h *HAL) MeasureText(_ dt.FontHandle, text string, size, spacing float64) dt.Vec2 {
	n := float64(len([]rune(text)))
	if n == 0 {
		return dt.Vec2{Y: size}
	}
	return dt.Vec2{X: n*size*0.75 + (n-1)*spacing, Y: size}
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func clonePix(r *Raster) []byte {
	out := make([]byte, len(r.Pix))
	copy(out, r.Pix)
	return out
}
