package ebitenhal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	dt "github.com/phanxgames/dreamtable"
)

// fallbackFace is used when no font is loaded. It is 13px tall and gets
// scaled to the requested size.
var fallbackFace = text.NewGoXFace(basicfont.Face7x13)

const fallbackSize = 13

func (h *HAL) PushCamera(cam dt.Camera2D) { h.camStack = append(h.camStack, cam) }

func (h *HAL) PopCamera() {
	if len(h.camStack) == 0 {
		h.log.Warn("pop camera on empty stack")
		return
	}
	h.camStack = h.camStack[:len(h.camStack)-1]
}

func (h *HAL) ScreenToWorld(p dt.Vec2, cam dt.Camera2D) dt.Vec2 { return cam.ScreenToWorld(p) }

// camera returns the active camera, or false when drawing in raw screen
// pixels.
func (h *HAL) camera() (dt.Camera2D, bool) {
	if len(h.camStack) == 0 {
		return dt.Camera2D{}, false
	}
	return h.camStack[len(h.camStack)-1], true
}

func (h *HAL) toScreen(p dt.Vec2) dt.Vec2 {
	if cam, ok := h.camera(); ok {
		return cam.WorldToScreen(p)
	}
	return p
}

func (h *HAL) scale() float64 {
	if cam, ok := h.camera(); ok {
		return cam.Zoom
	}
	return 1
}

// geoM returns the camera transform as an ebiten.GeoM, applied after a
// translation to pos.
func (h *HAL) geoM(pos dt.Vec2) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(pos.X, pos.Y)
	if cam, ok := h.camera(); ok {
		m := cam.Matrix()
		var c ebiten.GeoM
		c.SetElement(0, 0, m[0])
		c.SetElement(1, 0, m[1])
		c.SetElement(0, 1, m[2])
		c.SetElement(1, 1, m[3])
		c.SetElement(0, 2, m[4])
		c.SetElement(1, 2, m[5])
		g.Concat(c)
	}
	return g
}

// screenRect maps r through the camera and returns its screen-space bounds.
func (h *HAL) screenRect(r dt.Rect) (x, y, w, ht float32) {
	a := h.toScreen(r.Pos())
	b := h.toScreen(r.Pos().Add(r.Size()))
	minX, maxX := min(a.X, b.X), max(a.X, b.X)
	minY, maxY := min(a.Y, b.Y), max(a.Y, b.Y)
	return float32(minX), float32(minY), float32(maxX - minX), float32(maxY - minY)
}

func (h *HAL) DrawRectangle(r dt.Rect, c dt.Color) {
	x, y, w, ht := h.screenRect(r)
	vector.DrawFilledRect(h.frame, x, y, w, ht, c, false)
}

func (h *HAL) DrawRectangleLines(r dt.Rect, thickness float64, c dt.Color) {
	x, y, w, ht := h.screenRect(r)
	s := float32(thickness * h.scale())
	// StrokeRect centers the stroke on the edge; inset it so the outline
	// stays inside r.
	vector.StrokeRect(h.frame, x+s/2, y+s/2, w-s, ht-s, s, c, false)
}

func (h *HAL) DrawLine(a, b dt.Vec2, c dt.Color) { h.DrawLineWidth(a, b, 1, c) }

func (h *HAL) DrawLineWidth(a, b dt.Vec2, width float64, c dt.Color) {
	sa, sb := h.toScreen(a), h.toScreen(b)
	vector.StrokeLine(h.frame,
		float32(sa.X), float32(sa.Y), float32(sb.X), float32(sb.Y),
		float32(width*h.scale()), c, false)
}

func (h *HAL) DrawTexture(tex dt.TextureHandle, pos dt.Vec2, tint dt.Color) {
	t, err := texture(tex)
	if err != nil {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: h.geoM(pos)}
	op.ColorScale.ScaleWithColor(tint)
	h.frame.DrawImage(t, op)
}

func (h *HAL) DrawTextureRect(tex dt.TextureHandle, src dt.Rect, pos dt.Vec2, tint dt.Color) {
	t, err := texture(tex)
	if err != nil {
		return
	}
	sub := image.Rect(int(src.X), int(src.Y), int(src.X+src.Width), int(src.Y+src.Height))
	region, ok := t.SubImage(sub).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: h.geoM(pos)}
	op.ColorScale.ScaleWithColor(tint)
	h.frame.DrawImage(region, op)
}

// face returns a text face for font at size, plus the extra scale to apply
// when the fallback bitmap face stands in.
func face(font dt.FontHandle, size float64) (text.Face, float64) {
	if src, ok := font.(*text.GoTextFaceSource); ok && src != nil {
		return &text.GoTextFace{Source: src, Size: size}, 1
	}
	return fallbackFace, size / fallbackSize
}

// DrawText draws s with its top-left corner at pos. text/v2 has no letter
// spacing, so spacing is ignored.
func (h *HAL) DrawText(font dt.FontHandle, s string, pos dt.Vec2, size, _ float64, c dt.Color) {
	f, k := face(font, size)
	op := &text.DrawOptions{}
	op.GeoM.Scale(k, k)
	g := h.geoM(pos)
	op.GeoM.Concat(g)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = size
	text.Draw(h.frame, s, f, op)
}

func (h *HAL) MeasureText(font dt.FontHandle, s string, size, _ float64) dt.Vec2 {
	f, k := face(font, size)
	w, ht := text.Measure(s, f, size/k)
	return dt.Vec2{X: w * k, Y: ht * k}
}
