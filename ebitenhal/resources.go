package ebitenhal

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	dt "github.com/phanxgames/dreamtable"
)

// Rasters are *image.NRGBA, textures are *ebiten.Image and fonts are
// *text.GoTextFaceSource.

func (h *HAL) LoadFont(path string) (dt.FontHandle, error) {
	if f, ok := h.fonts[path]; ok {
		return f, nil
	}
	data, err := h.readAsset(path)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	h.fonts[path] = src
	return src, nil
}

func (h *HAL) LoadImage(path string) (dt.ImageHandle, error) {
	data, err := h.readAsset(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

func (h *HAL) GenImageColor(size dt.Vec2, c dt.Color) (dt.ImageHandle, error) {
	w, ht := int(size.X), int(size.Y)
	if w <= 0 || ht <= 0 {
		return nil, fmt.Errorf("gen image: invalid size %dx%d", w, ht)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, ht))
	draw.Draw(img, img.Bounds(), image.NewUniform(nrgba(c)), image.Point{}, draw.Src)
	return img, nil
}

func raster(img dt.ImageHandle) (*image.NRGBA, error) {
	r, ok := img.(*image.NRGBA)
	if !ok || r == nil {
		return nil, fmt.Errorf("not a raster: %T", img)
	}
	return r, nil
}

func texture(tex dt.TextureHandle) (*ebiten.Image, error) {
	t, ok := tex.(*ebiten.Image)
	if !ok || t == nil {
		return nil, fmt.Errorf("not a texture: %T", tex)
	}
	return t, nil
}

func (h *HAL) LoadTextureFromImage(img dt.ImageHandle) (dt.TextureHandle, error) {
	r, err := raster(img)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	return ebiten.NewImageFromImage(r), nil
}

func (h *HAL) UpdateTexture(tex dt.TextureHandle, img dt.ImageHandle) error {
	t, err := texture(tex)
	if err != nil {
		return fmt.Errorf("update texture: %w", err)
	}
	r, err := raster(img)
	if err != nil {
		return fmt.Errorf("update texture: %w", err)
	}
	if !t.Bounds().Size().Eq(r.Bounds().Size()) {
		return fmt.Errorf("update texture: size %v does not match raster %v",
			t.Bounds().Size(), r.Bounds().Size())
	}
	t.WritePixels(premultiply(r))
	return nil
}

// UnloadImage is a no-op: rasters live on the Go heap.
func (h *HAL) UnloadImage(dt.ImageHandle) {}

func (h *HAL) UnloadTexture(tex dt.TextureHandle) {
	if t, err := texture(tex); err == nil {
		t.Deallocate()
	}
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
	pt := image.Pt(int(p.X), int(p.Y))
	if !pt.In(r.Bounds()) {
		return dt.ColorTransparent
	}
	c := r.NRGBAAt(pt.X, pt.Y)
	return dt.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (h *HAL) ImageDrawPixel(img dt.ImageHandle, p dt.Vec2, c dt.Color) {
	if r, err := raster(img); err == nil {
		r.SetNRGBA(int(p.X), int(p.Y), nrgba(c))
	}
}

func (h *HAL) ImageDrawLine(img dt.ImageHandle, a, b dt.Vec2, c dt.Color) {
	r, err := raster(img)
	if err != nil {
		return
	}
	nc := nrgba(c)
	dt.RasterLine(a, b, func(x, y int) { r.SetNRGBA(x, y, nc) })
}

// ExportImage writes img as a PNG, creating parent directories as needed.
func (h *HAL) ExportImage(img dt.ImageHandle, filename string) error {
	r, err := raster(img)
	if err != nil {
		return fmt.Errorf("export image: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export image: create dir: %w", err)
		}
	}
	if err := writePNG(filename, r); err != nil {
		return fmt.Errorf("export image: %w", err)
	}
	h.log.Debug("image exported", zap.String("path", filename))
	return nil
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		return errors.Join(fmt.Errorf("encode %s: %w", path, err), f.Close())
	}
	return f.Close()
}

func nrgba(c dt.Color) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// premultiply returns r's pixels with alpha premultiplied, the layout
// ebiten.Image.WritePixels expects.
func premultiply(r *image.NRGBA) []byte {
	b := r.Bounds()
	out := make([]byte, 0, 4*b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := r.Pix[r.PixOffset(b.Min.X, y):r.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			a := uint16(row[i+3])
			out = append(out,
				uint8(uint16(row[i])*a/255),
				uint8(uint16(row[i+1])*a/255),
				uint8(uint16(row[i+2])*a/255),
				row[i+3])
		}
	}
	return out
}
