package dreamtable

import (
	"fmt"
	"math"
)

const (
	labelSize    = 8
	labelSpacing = 1
)

// inSpace runs draw with the camera of space pushed. It reports false, and
// draws nothing, when the space has no active camera.
func inSpace(ctx *Context, hal HAL, s Space, draw func()) bool {
	cam, ok := ctx.Camera(s)
	if !ok {
		return false
	}
	hal.PushCamera(cam.Camera2D)
	draw()
	hal.PopCamera()
	return true
}

// outlineRect grows r by one pixel on every side.
func outlineRect(r Rect) Rect {
	return Rect{X: r.X - 1, Y: r.Y - 1, Width: r.Width + 2, Height: r.Height + 2}
}

// pixelRect truncates r to whole pixels.
func pixelRect(r Rect) Rect {
	return Rect{X: math.Trunc(r.X), Y: math.Trunc(r.Y), Width: math.Trunc(r.Width), Height: math.Trunc(r.Height)}
}

// BackgroundGridRenderer draws the infinite world grids in screen pixels.
type BackgroundGridRenderer struct{}

func (BackgroundGridRenderer) Process(w *World, ctx *Context, hal HAL) {
	cam, ok := ctx.Camera(SpaceWorld)
	if !ok {
		return
	}
	screen := hal.ScreenSize()
	Each2(w.C.BackgroundGrid, w.C.Extent, func(_ Entity, g *BackgroundGrid, ext *Extent) {
		step := ext.X * cam.Zoom
		if step >= g.MinStep && step > 0 {
			x := math.Mod(-cam.Target.X*cam.Zoom+screen.X/2, step)
			if x < 0 {
				x += step
			}
			for ; x < screen.X; x += step {
				hal.DrawLineWidth(Vec2{math.Trunc(x), 0}, Vec2{math.Trunc(x), math.Trunc(screen.Y)}, g.LineWidth, g.Color)
			}
		}
		step = ext.Y * cam.Zoom
		if step >= g.MinStep && step > 0 {
			y := math.Mod(-cam.Target.Y*cam.Zoom+screen.Y/2, step)
			if y < 0 {
				y += step
			}
			for ; y < screen.Y; y += step {
				hal.DrawLineWidth(Vec2{0, math.Trunc(y)}, Vec2{math.Trunc(screen.X), math.Trunc(y)}, g.LineWidth, g.Color)
			}
		}
	})
}

// PositionMarkerRenderer draws a cross at each marker.
type PositionMarkerRenderer struct{}

func (PositionMarkerRenderer) Process(w *World, ctx *Context, hal HAL) {
	Each2(w.C.PositionMarker, w.C.Position, func(_ Entity, m *PositionMarker, pos *Position) {
		inSpace(ctx, hal, pos.Space, func() {
			p := pos.Vec2.Floor()
			hal.DrawLine(Vec2{p.X - m.Size, p.Y}, Vec2{p.X + m.Size, p.Y}, ctx.Theme.PositionMarker)
			hal.DrawLine(Vec2{p.X, p.Y - m.Size}, Vec2{p.X, p.Y + m.Size}, ctx.Theme.PositionMarker)
		})
	})
}

// CanvasRenderer draws canvases, their referenced cells, outlines and cell
// grids.
type CanvasRenderer struct{}

func (CanvasRenderer) Process(w *World, ctx *Context, hal HAL) {
	theme := &ctx.Theme
	Each3(w.C.Canvas, w.C.Position, w.C.Extent, func(e Entity, canvas *Canvas, pos *Position, ext *Extent) {
		inSpace(ctx, hal, pos.Space, func() {
			rect := pixelRect(entityRect(pos, ext))
			if canvas.Background.A > 0 {
				hal.DrawRectangle(rect, canvas.Background)
			}
			if img, ok := w.C.Image.Get(e); ok && img.Texture != nil {
				hal.DrawTexture(img.Texture, rect.Pos(), ColorWhite)
			}
			drawCellRefs(w, hal, e, rect)

			outline := theme.ThingyOutline
			if h, ok := w.C.Hoverable.Get(e); ok && h.Hovered {
				outline = theme.ThingyHoveredOutline
			}
			if s, ok := w.C.Selectable.Get(e); ok && s.Selected {
				outline = theme.ThingySelectedOutline
			}
			hal.DrawRectangleLines(outlineRect(rect), 1, outline)

			grid, ok := w.C.CellGrid.Get(e)
			if !ok || (ctx.Tool != ToolGrid && !canvas.GridAlwaysVisible) {
				return
			}
			c := theme.GridCellsSubtle
			if ctx.Tool == ToolGrid && canvas.GridAlwaysVisible {
				c = theme.GridCellsObvious
			}
			for i := 1; i < grid.Cols; i++ {
				x := math.Trunc(rect.X + float64(i)/float64(grid.Cols)*rect.Width)
				hal.DrawLine(Vec2{x, rect.Y}, Vec2{x, rect.Y + rect.Height}, c)
			}
			for i := 1; i < grid.Rows; i++ {
				y := math.Trunc(rect.Y + float64(i)/float64(grid.Rows)*rect.Height)
				hal.DrawLine(Vec2{rect.X, y}, Vec2{rect.X + rect.Width, y}, c)
			}
		})
	})
}

// drawCellRefs draws every referenced source cell over the target cell,
// cropped to the smaller of the two cell sizes.
func drawCellRefs(w *World, hal HAL, e Entity, rect Rect) {
	refs, ok := w.C.CellRefs.Get(e)
	if !ok || len(refs.Refs) == 0 {
		return
	}
	grid, ok := w.C.CellGrid.Get(e)
	if !ok {
		return
	}
	dstCell := grid.CellSize(rect.Size())
	for cell, ref := range refs.Refs {
		img, ok := w.C.Image.Get(ref.Source)
		if !ok || img.Texture == nil {
			continue
		}
		srcGrid, ok := w.C.CellGrid.Get(ref.Source)
		if !ok {
			continue
		}
		srcExt := w.C.Extent.MustGet(ref.Source)
		srcCell := srcGrid.CellSize(srcExt.Vec2)
		src := pixelRect(Rect{
			X:      float64(ref.Cell.X) * srcCell.X,
			Y:      float64(ref.Cell.Y) * srcCell.Y,
			Width:  math.Min(srcCell.X, dstCell.X),
			Height: math.Min(srcCell.Y, dstCell.Y),
		})
		dst := Vec2{rect.X + float64(cell.X)*dstCell.X, rect.Y + float64(cell.Y)*dstCell.Y}.Floor()
		hal.DrawTextureRect(img.Texture, src, dst, ColorWhite)
	}
}

// SpriteRegionRenderer draws a region of an entity's texture.
type SpriteRegionRenderer struct{}

func (SpriteRegionRenderer) Process(w *World, ctx *Context, hal HAL) {
	Each4(w.C.SpriteRegion, w.C.Image, w.C.Position, w.C.Extent, func(_ Entity, spr *SpriteRegion, img *Image, pos *Position, ext *Extent) {
		if img.Texture == nil {
			return
		}
		inSpace(ctx, hal, pos.Space, func() {
			src := pixelRect(RectFrom(spr.Offset, ext.Vec2))
			tint := spr.Tint
			if tint == ColorTransparent {
				tint = ColorWhite
			}
			hal.DrawTextureRect(img.Texture, src, pos.Vec2.Floor(), tint)
		})
	})
}

// DebugOutlineRenderer draws magenta boxes with a centered name.
type DebugOutlineRenderer struct{}

func (DebugOutlineRenderer) Process(w *World, ctx *Context, hal HAL) {
	theme := &ctx.Theme
	Each3(w.C.DebugOutline, w.C.Position, w.C.Extent, func(e Entity, _ *DebugOutline, pos *Position, ext *Extent) {
		inSpace(ctx, hal, pos.Space, func() {
			rect := pixelRect(entityRect(pos, ext))
			hal.DrawRectangleLines(rect, 1, theme.DebugMagenta)

			var outline *Color
			if h, ok := w.C.Hoverable.Get(e); ok && h.Hovered {
				outline = &theme.ThingyHoveredOutline
			}
			if s, ok := w.C.Selectable.Get(e); ok && s.Selected {
				outline = &theme.SelectionNormalOutline
			}
			if outline != nil {
				hal.DrawRectangleLines(outlineRect(rect), 1, *outline)
			}

			if n, ok := w.C.Name.Get(e); ok {
				size := hal.MeasureText(theme.Font, n.Label, labelSize, labelSpacing)
				at := Vec2{pos.X + ext.X/2 - size.X/2, pos.Y + ext.Y/2 - size.Y/2}.Floor()
				hal.DrawText(theme.Font, n.Label, at, labelSize, labelSpacing, theme.DebugMagenta)
			}
		})
	})
}

// BoxSelectionRenderer draws selection boxes. Create boxes are labeled with
// their size.
type BoxSelectionRenderer struct{}

func (BoxSelectionRenderer) Process(w *World, ctx *Context, hal HAL) {
	theme := &ctx.Theme
	Each3(w.C.BoxSelection, w.C.Position, w.C.Extent, func(_ Entity, sel *BoxSelection, pos *Position, ext *Extent) {
		inSpace(ctx, hal, pos.Space, func() {
			rect := pixelRect(entityRect(pos, ext))
			fill, outline := theme.SelectionNormalFill, theme.SelectionNormalOutline
			if sel.Kind == SelectCreate {
				fill, outline = theme.SelectionCreateFill, theme.SelectionCreateOutline
			}
			hal.DrawRectangle(rect, fill)
			hal.DrawRectangleLines(rect, 1, outline)
			if sel.Kind == SelectCreate {
				label := fmt.Sprintf("%dx%d", int(rect.Width), int(rect.Height))
				hal.DrawText(theme.Font, label, Vec2{rect.X, rect.Y - 8}, labelSize, labelSpacing, theme.TextNormal)
			}
		})
	})
}
