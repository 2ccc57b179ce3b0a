package dreamtable

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ToolSwitcherSystem selects the active tool from toolbar buttons, hotkeys
// and held override keys, then lights the matching button.
type ToolSwitcherSystem struct{}

func (ToolSwitcherSystem) Process(w *World, ctx *Context, hal HAL) {
	// An explicit selection ends any override in progress.
	Each2(w.C.ToolSwitcher, w.C.Pressable, func(_ Entity, sw *ToolSwitcher, pr *Pressable) {
		if pr.Pressed {
			ctx.Tool, ctx.UnderlyingTool = sw.Tool, ToolNone
		}
	})

	for _, t := range Tools {
		if hal.IsKeyPressed(t.Hotkey()) {
			ctx.Tool, ctx.UnderlyingTool = t, ToolNone
		}
	}

	for _, o := range toolOverrides {
		if ctx.Tool != o.From && ctx.UnderlyingTool != o.From {
			continue
		}
		if hal.IsKeyDown(o.Key) {
			if ctx.UnderlyingTool == ToolNone {
				ctx.UnderlyingTool = ctx.Tool
			}
			ctx.Tool = o.To
		} else if ctx.UnderlyingTool == o.From {
			ctx.Tool = o.From
			ctx.UnderlyingTool = ToolNone
		}
	}

	Each2(w.C.ToolSwitcher, w.C.Button, func(_ Entity, sw *ToolSwitcher, b *Button) {
		b.Lit = ctx.Tool == sw.Tool
	})
}

// pressedButton returns the first of left or right pressed this frame.
func pressedButton(hal Input) (MouseButton, bool) {
	switch {
	case hal.IsMouseButtonPressed(MouseLeft):
		return MouseLeft, true
	case hal.IsMouseButtonPressed(MouseRight):
		return MouseRight, true
	}
	return 0, false
}

func colorFor(ctx *Context, b MouseButton) Color {
	if b == MouseRight {
		return ctx.Secondary
	}
	return ctx.Primary
}

// PencilToolSystem paints freehand strokes onto canvases. A stroke claims
// the pointer from press to release.
type PencilToolSystem struct {
	painting bool
	button   MouseButton
	last     Vec2
}

func (s *PencilToolSystem) Process(w *World, ctx *Context, hal HAL) {
	if s.painting && hal.IsMouseButtonReleased(s.button) {
		s.painting = false
		ctx.MouseReserved = false
		return
	}
	if !s.painting {
		if ctx.Tool != ToolPencil || ctx.MouseReserved || ctx.PointerOverUI {
			return
		}
		b, ok := pressedButton(hal)
		if !ok {
			return
		}
		if _, _, over := canvasAt(w, ctx, hal); !over {
			return
		}
		p, _ := ctx.PointerIn(hal, SpaceWorld)
		s.painting, s.button, s.last = true, b, p
		ctx.MouseReserved = true
		hal.ClearMouseButtonPressed(b)
	}

	p, ok := ctx.PointerIn(hal, SpaceWorld)
	if !ok {
		return
	}
	c := colorFor(ctx, s.button)
	Each4(w.C.Canvas, w.C.Image, w.C.Position, w.C.Extent, func(_ Entity, _ *Canvas, img *Image, pos *Position, ext *Extent) {
		if img.Raster == nil || pos.Space != SpaceWorld {
			return
		}
		r := entityRect(pos, ext)
		if !r.Contains(p) && !r.Contains(s.last) {
			return
		}
		hal.ImageDrawLine(img.Raster, s.last.Sub(pos.Vec2).Floor(), p.Sub(pos.Vec2).Floor(), c)
		img.Dirty = true
	})
	s.last = p
}

// DropperToolSystem samples canvas colors into the primary and secondary
// slots.
type DropperToolSystem struct{}

func (DropperToolSystem) Process(w *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolDropper {
		return
	}
	ctx.Sampled = ColorTransparent
	if e, local, ok := canvasAt(w, ctx, hal); ok {
		if img, has := w.C.Image.Get(e); has && img.Raster != nil {
			ctx.Sampled = hal.ImageColor(img.Raster, local.Floor())
		}
	}
	if ctx.MouseReserved || ctx.PointerOverUI {
		return
	}
	if hal.IsMouseButtonPressed(MouseLeft) {
		ctx.Primary = ctx.Sampled
		hal.ClearMouseButtonPressed(MouseLeft)
	}
	if hal.IsMouseButtonPressed(MouseRight) {
		ctx.Secondary = ctx.Sampled
		hal.ClearMouseButtonPressed(MouseRight)
	}
}

// FillToolSystem flood fills the clicked region of a canvas.
type FillToolSystem struct{}

func (FillToolSystem) Process(w *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolFill || ctx.MouseReserved || ctx.PointerOverUI {
		return
	}
	b, ok := pressedButton(hal)
	if !ok {
		return
	}
	e, local, ok := canvasAt(w, ctx, hal)
	if !ok {
		return
	}
	img, ok := w.C.Image.Get(e)
	if !ok || img.Raster == nil {
		return
	}
	if n := floodFill(hal, img.Raster, local.Floor(), colorFor(ctx, b)); n > 0 {
		img.Dirty = true
	}
	hal.ClearMouseButtonPressed(b)
}

// floodFill paints the 4-connected region of equal color around start and
// returns the number of pixels changed.
func floodFill(hal Resources, img ImageHandle, start Vec2, c Color) int {
	size := hal.ImageSize(img)
	w, h := int(size.X), int(size.Y)
	sx, sy := int(start.X), int(start.Y)
	if sx < 0 || sy < 0 || sx >= w || sy >= h {
		return 0
	}
	target := hal.ImageColor(img, start)
	if target == c {
		return 0
	}
	seen := make([]bool, w*h)
	stack := [][2]int{{sx, sy}}
	n := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p[0], p[1]
		if x < 0 || y < 0 || x >= w || y >= h || seen[y*w+x] {
			continue
		}
		seen[y*w+x] = true
		pt := Vec2{float64(x), float64(y)}
		if hal.ImageColor(img, pt) != target {
			continue
		}
		hal.ImageDrawPixel(img, pt, c)
		n++
		stack = append(stack, [2]int{x + 1, y}, [2]int{x - 1, y}, [2]int{x, y + 1}, [2]int{x, y - 1})
	}
	return n
}

// GridToolSystem resizes a canvas's cell grid with the wheel.
type GridToolSystem struct{}

func (GridToolSystem) Process(w *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolGrid || ctx.MouseWheel == 0 {
		return
	}
	e, _, ok := canvasAt(w, ctx, hal)
	if !ok {
		return
	}
	grid, ok := w.C.CellGrid.Get(e)
	if !ok {
		return
	}
	step := int(math.Round(ctx.MouseWheel))
	if step == 0 {
		step = int(math.Copysign(1, ctx.MouseWheel))
	}
	grid.Cols = max(1, grid.Cols+step)
	grid.Rows = max(1, grid.Rows+step)
	ctx.MouseWheel = 0
	hal.ClearMouseWheel()
}

// cellAt returns the gridded canvas under the pointer and the cell pointed at.
func cellAt(w *World, ctx *Context, hal HAL) (Entity, CellIndex, bool) {
	e, local, ok := canvasAt(w, ctx, hal)
	if !ok {
		return NoEntity, CellIndex{}, false
	}
	grid, ok := w.C.CellGrid.Get(e)
	if !ok {
		return NoEntity, CellIndex{}, false
	}
	ext := w.C.Extent.MustGet(e)
	cell := grid.CellAt(ext.Vec2, local)
	cell.X = min(max(cell.X, 0), grid.Cols-1)
	cell.Y = min(max(cell.Y, 0), grid.Rows-1)
	return e, cell, true
}

// CellRefDropperSystem picks cells of a canvas as the sources for the
// cell-ref tool.
type CellRefDropperSystem struct{}

func (CellRefDropperSystem) Process(w *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolCellRefDropper || ctx.MouseReserved || ctx.PointerOverUI {
		return
	}
	b, ok := pressedButton(hal)
	if !ok {
		return
	}
	e, cell, ok := cellAt(w, ctx, hal)
	if !ok {
		return
	}
	ref := &CellRef{Source: e, Cell: cell}
	if b == MouseRight {
		ctx.CellRefSecondary = ref
	} else {
		ctx.CellRefPrimary = ref
	}
	hal.ClearMouseButtonPressed(b)
}

// CellRefToolSystem paints cell references into gridded canvases. Holding
// control while painting clears references instead.
type CellRefToolSystem struct{}

func (CellRefToolSystem) Process(w *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolCellRef || ctx.MouseReserved || ctx.PointerOverUI {
		return
	}
	var ref *CellRef
	b := MouseLeft
	switch {
	case hal.IsMouseButtonDown(MouseLeft):
		ref = ctx.CellRefPrimary
	case hal.IsMouseButtonDown(MouseRight):
		ref, b = ctx.CellRefSecondary, MouseRight
	default:
		return
	}
	e, cell, ok := cellAt(w, ctx, hal)
	if !ok {
		return
	}
	hal.ClearMouseButtonPressed(b)
	refs, ok := w.C.CellRefs.Get(e)
	if !ok {
		refs = w.C.CellRefs.Set(e, CellRefs{})
	}
	if refs.Refs == nil {
		refs.Refs = make(map[CellIndex]CellRef)
	}
	if hal.IsKeyDown(KeyLeftControl) || hal.IsKeyDown(KeyRightControl) {
		delete(refs.Refs, cell)
		return
	}
	if ref == nil || !w.Alive(ref.Source) {
		return
	}
	refs.Refs[cell] = *ref
}

const eggSpriteSheet = "res://sprites/16x16babies.png"

// EggToolSystem drops a mystery egg where the user clicks.
type EggToolSystem struct{}

func (EggToolSystem) Process(w *World, ctx *Context, hal HAL) {
	if ctx.Tool != ToolEgg || ctx.MouseReserved || ctx.Hovering {
		return
	}
	if !hal.IsMouseButtonPressed(MouseLeft) {
		return
	}
	p, ok := ctx.PointerIn(hal, SpaceWorld)
	if !ok {
		return
	}
	e := SpawnEgg(w, p)
	hal.ClearMouseButtonPressed(MouseLeft)
	w.Log().Debug("egg spawned", zap.Uint64("entity", uint64(e)))
}

// SpawnEgg creates a mystery egg centered near p that hatches after a
// random delay.
func SpawnEgg(w *World, p Vec2) Entity {
	return w.CreateEntity(
		Position{Vec2: p.Sub(Vec2{8, 12}).Floor(), Space: SpaceWorld},
		Extent{Vec2: Vec2{16, 16}},
		Image{Source: eggSpriteSheet},
		SpriteRegion{Offset: Vec2{88, 65}, Tint: ColorWhite},
		EggTimer{TicksLeft: 200 + w.Rand().IntN(301)},
		Draggable{},
		Hoverable{},
		Selectable{},
		Deletable{},
		Name{Label: "Mystery egg"},
	)
}

// CanvasExportSystem writes every selected canvas to a PNG on Ctrl+S.
type CanvasExportSystem struct {
	Dir string
}

func (s CanvasExportSystem) Process(w *World, _ *Context, hal HAL) {
	ctrl := hal.IsKeyDown(KeyLeftControl) || hal.IsKeyDown(KeyRightControl)
	if !ctrl || !hal.IsKeyPressed(KeyS) {
		return
	}
	hal.ClearKeyPressed(KeyS)
	dir := s.Dir
	if dir == "" {
		dir = "save"
	}
	stamp := w.Now().Format("20060102150405")

	Each4(w.C.Canvas, w.C.Selectable, w.C.Image, w.C.Extent, func(e Entity, _ *Canvas, sel *Selectable, img *Image, ext *Extent) {
		if !sel.Selected || img.Raster == nil {
			return
		}
		label := "canvas"
		if n, ok := w.C.Name.Get(e); ok {
			label = n.Label
		}
		name := fmt.Sprintf("%s_%dx%d_%s.png", sanitizeLabel(label), int(ext.X), int(ext.Y), stamp)
		path := filepath.Join(dir, name)
		if err := hal.ExportImage(img.Raster, path); err != nil {
			w.Log().Warn("export canvas", zap.String("path", path), zap.Error(err))
			return
		}
		w.Log().Info("canvas exported", zap.String("path", path))
	})
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
