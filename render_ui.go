package dreamtable

import (
	"fmt"
	"math"
)

// ButtonRenderer draws toolbar buttons with their icons.
type ButtonRenderer struct{}

func (ButtonRenderer) Process(w *World, ctx *Context, hal HAL) {
	theme := &ctx.Theme
	Each3(w.C.Button, w.C.Position, w.C.Extent, func(e Entity, b *Button, pos *Position, ext *Extent) {
		inSpace(ctx, hal, pos.Space, func() {
			rect := pixelRect(entityRect(pos, ext))
			fill, border := theme.ButtonFill, theme.ButtonBorder
			if b.Lit {
				fill, border = theme.ButtonLitFill, theme.ButtonLitBorder
			}
			hal.DrawRectangle(rect, fill)
			hal.DrawRectangleLines(rect, 1, border)
			if h, ok := w.C.Hoverable.Get(e); ok && h.Hovered {
				hal.DrawRectangle(rect, theme.ButtonHoverOverlay)
			}
			if img, ok := w.C.Image.Get(e); ok && img.Texture != nil {
				hal.DrawTexture(img.Texture, rect.Pos(), ColorWhite)
			}
		})
	})
}

// swatch draws a filled square with a white outline in screen pixels.
func swatch(hal HAL, r Rect, c Color) {
	hal.DrawRectangle(r, c)
	hal.DrawRectangleLines(outlineRect(r), 1, ColorWhite)
}

// PencilCursorRenderer shows the primary and secondary colors next to the
// pointer while painting or picking.
type PencilCursorRenderer struct{}

func (PencilCursorRenderer) Process(_ *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolPencil && ctx.Tool != ToolDropper && ctx.Tool != ToolFill {
		return
	}
	m := ctx.Mouse.Floor()
	swatch(hal, Rect{X: m.X + 16, Y: m.Y - 16, Width: 16, Height: 16}, ctx.Primary)
	swatch(hal, Rect{X: m.X + 33, Y: m.Y - 16, Width: 16, Height: 16}, ctx.Secondary)
}

// DropperCursorRenderer previews the color under the dropper.
type DropperCursorRenderer struct{}

func (DropperCursorRenderer) Process(_ *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolDropper {
		return
	}
	m := ctx.Mouse.Floor()
	swatch(hal, Rect{X: m.X + 16, Y: m.Y - 50, Width: 33, Height: 33}, ctx.Sampled)
}

// GridToolRenderer labels every gridded canvas with its cell layout while
// the grid tool is active. Fractional cell sizes use the error color.
type GridToolRenderer struct{}

func (GridToolRenderer) Process(w *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolGrid {
		return
	}
	theme := &ctx.Theme
	Each4(w.C.Canvas, w.C.CellGrid, w.C.Position, w.C.Extent, func(_ Entity, _ *Canvas, g *CellGrid, pos *Position, ext *Extent) {
		inSpace(ctx, hal, pos.Space, func() {
			cell := g.CellSize(ext.Vec2)
			c := theme.TextNormal
			dims := fmt.Sprintf("%dx%d", int(cell.X), int(cell.Y))
			if cell.X != math.Trunc(cell.X) || cell.Y != math.Trunc(cell.Y) {
				c = theme.TextError
				dims = fmt.Sprintf("%.2fx%.2f", cell.X, cell.Y)
			}
			label := fmt.Sprintf("%dx%d @ %s", g.Cols, g.Rows, dims)
			hal.DrawText(theme.Font, label, Vec2{pos.X, pos.Y - 8}, labelSize, labelSpacing, c)
		})
	})
}

// CellRefCursorRenderer previews the picked cell references next to the
// pointer while the cell-ref tools are active.
type CellRefCursorRenderer struct{}

func (CellRefCursorRenderer) Process(w *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolCellRef && ctx.Tool != ToolCellRefDropper {
		return
	}
	m := ctx.Mouse.Floor()
	for i, ref := range []*CellRef{ctx.CellRefPrimary, ctx.CellRefSecondary} {
		box := Rect{X: m.X + 16 + float64(i)*17, Y: m.Y - 16, Width: 16, Height: 16}
		hal.DrawRectangleLines(outlineRect(box), 1, ColorWhite)
		if ref == nil {
			continue
		}
		img, ok := w.C.Image.Get(ref.Source)
		if !ok || img.Texture == nil {
			continue
		}
		grid, ok := w.C.CellGrid.Get(ref.Source)
		if !ok {
			continue
		}
		size := grid.CellSize(w.C.Extent.MustGet(ref.Source).Vec2)
		src := pixelRect(Rect{
			X:      float64(ref.Cell.X) * size.X,
			Y:      float64(ref.Cell.Y) * size.Y,
			Width:  math.Min(size.X, box.Width),
			Height: math.Min(size.Y, box.Height),
		})
		hal.DrawTextureRect(img.Texture, src, box.Pos(), ColorWhite)
	}
}
