package dreamtable

import "go.uber.org/zap"

// HoverSystem sets Hoverable.Hovered from the pointer, converted into each
// entity's own space.
type HoverSystem struct{}

func (HoverSystem) Process(w *World, ctx *Context, hal HAL) {
	ctx.Hovering, ctx.PointerOverUI = false, false
	Each3(w.C.Hoverable, w.C.Position, w.C.Extent, func(_ Entity, h *Hoverable, pos *Position, ext *Extent) {
		p, ok := ctx.PointerIn(hal, pos.Space)
		if !ok {
			return
		}
		h.Hovered = entityRect(pos, ext).Contains(p)
		if h.Hovered {
			ctx.Hovering = true
			ctx.PointerOverUI = ctx.PointerOverUI || pos.Space == SpaceScreen
		}
	})
}

// PressSystem tracks left clicks on Pressable entities.
type PressSystem struct{}

func (PressSystem) Process(w *World, ctx *Context, hal HAL) {
	pressed := hal.IsMouseButtonPressed(MouseLeft)
	released := hal.IsMouseButtonReleased(MouseLeft)
	Each3(w.C.Pressable, w.C.Position, w.C.Extent, func(_ Entity, pr *Pressable, pos *Position, ext *Extent) {
		pr.Pressed = false
		if released {
			pr.Down = false
		}
		if !pressed || ctx.MouseReserved {
			return
		}
		p, ok := ctx.PointerIn(hal, pos.Space)
		if ok && entityRect(pos, ext).Contains(p) {
			pr.Pressed = true
			pr.Down = true
		}
	})
}

// DragSystem moves Draggable entities with the left button while the Move
// tool is active. Starting a drag claims the pointer.
type DragSystem struct {
	claimed bool
}

func (s *DragSystem) Process(w *World, ctx *Context, hal HAL) {
	pressed := hal.IsMouseButtonPressed(MouseLeft)
	released := hal.IsMouseButtonReleased(MouseLeft)

	Each3(w.C.Draggable, w.C.Position, w.C.Extent, func(_ Entity, d *Draggable, pos *Position, ext *Extent) {
		p, ok := ctx.PointerIn(hal, pos.Space)
		if d.Dragging {
			if ok {
				pos.Vec2 = p.Sub(d.Offset).Floor()
			}
			if released {
				d.Dragging = false
			}
			return
		}
		if !ok {
			return
		}
		if !pressed || ctx.Tool != ToolMove || ctx.MouseReserved {
			return
		}
		if entityRect(pos, ext).Contains(p) {
			ctx.MouseReserved = true
			s.claimed = true
			d.Dragging = true
			d.Offset = p.Sub(pos.Vec2)
		}
	})

	if released && s.claimed {
		ctx.MouseReserved = false
		s.claimed = false
	}
}

// BoxSelectionSystem handles click selection and rubber-band boxes. A left
// box live-selects what it touches; a right box becomes a new canvas. It
// works under every tool: tools that act on a press consume it or claim the
// pointer first.
type BoxSelectionSystem struct {
	active bool
	button MouseButton
}

func (s *BoxSelectionSystem) Process(w *World, ctx *Context, hal HAL) {
	if !ctx.MouseReserved {
		s.clickSelect(w, ctx, hal)
		s.start(w, ctx, hal)
	}

	Each3(w.C.BoxSelection, w.C.Position, w.C.Extent, func(_ Entity, sel *BoxSelection, pos *Position, ext *Extent) {
		p, ok := ctx.PointerIn(hal, pos.Space)
		if !ok {
			return
		}
		r := selectionRect(sel, p, ctx.Snap)
		pos.Vec2, ext.Vec2 = r.Pos(), r.Size()
		if sel.Kind == SelectNormal {
			liveSelect(w, pos.Space, r)
		}
	})

	if s.active && hal.IsMouseButtonReleased(s.button) {
		s.finish(w, ctx, hal)
	}
}

func (s *BoxSelectionSystem) clickSelect(w *World, ctx *Context, hal HAL) {
	if !hal.IsMouseButtonPressed(MouseLeft) {
		return
	}
	hovered := false
	Each2(w.C.Selectable, w.C.Hoverable, func(_ Entity, _ *Selectable, h *Hoverable) {
		hovered = hovered || h.Hovered
	})
	if !hovered {
		return
	}
	w.C.Selectable.Each(func(e Entity, sel *Selectable) {
		h, ok := w.C.Hoverable.Get(e)
		sel.Selected = ok && h.Hovered
	})
}

func (s *BoxSelectionSystem) start(w *World, ctx *Context, hal HAL) {
	if ctx.Hovering || s.active {
		return
	}
	for _, b := range []MouseButton{MouseLeft, MouseRight} {
		if !hal.IsMouseButtonPressed(b) {
			continue
		}
		p, ok := ctx.PointerIn(hal, SpaceWorld)
		if !ok {
			return
		}
		kind := SelectNormal
		if b == MouseRight {
			kind = SelectCreate
		}
		sel := BoxSelection{Kind: kind, Anchor: p}
		r := selectionRect(&sel, p, ctx.Snap)
		w.CreateEntity(
			Position{Vec2: r.Pos(), Space: SpaceWorld},
			Extent{Vec2: r.Size()},
			sel,
		)
		ctx.MouseReserved = true
		s.active = true
		s.button = b
		return
	}
}

func (s *BoxSelectionSystem) finish(w *World, ctx *Context, hal HAL) {
	Each3(w.C.BoxSelection, w.C.Position, w.C.Extent, func(e Entity, sel *BoxSelection, pos *Position, ext *Extent) {
		if sel.Kind == SelectCreate {
			spawnCanvas(w, ctx, hal, pos.Vec2, ext.Vec2)
		}
		w.DeleteEntity(e)
	})
	ctx.MouseReserved = false
	s.active = false
}

// selectionRect returns the rect spanned by the anchor and the pointer.
// Create boxes snap to the grid and span at least one snap cell.
func selectionRect(sel *BoxSelection, p, snap Vec2) Rect {
	if sel.Kind == SelectNormal {
		return AABB(sel.Anchor, p, Vec2{1, 1})
	}
	r := AABB(sel.Anchor, p, snap)
	r.Width = max(r.Width, snap.X, 1)
	r.Height = max(r.Height, snap.Y, 1)
	return r
}

func liveSelect(w *World, space Space, r Rect) {
	Each3(w.C.Selectable, w.C.Position, w.C.Extent, func(_ Entity, sel *Selectable, pos *Position, ext *Extent) {
		if pos.Space == space {
			sel.Selected = r.Intersects(entityRect(pos, ext))
		}
	})
}

// spawnCanvas creates a blank canvas filled with the secondary color.
func spawnCanvas(w *World, ctx *Context, hal HAL, pos, size Vec2) Entity {
	raster, err := hal.GenImageColor(size, ctx.Secondary)
	if err != nil {
		w.Log().Error("create canvas image", zap.Error(err),
			zap.Float64("width", size.X), zap.Float64("height", size.Y))
		raster = nil
	}
	e := w.CreateEntity(
		Position{Vec2: pos, Space: SpaceWorld},
		Extent{Vec2: size},
		Canvas{Background: ctx.Secondary},
		CellGrid{Cols: 3, Rows: 3},
		CellRefs{Refs: make(map[CellIndex]CellRef)},
		Image{Raster: raster},
		Draggable{},
		Hoverable{},
		Selectable{},
		Deletable{},
		Name{Label: "Canvas"},
	)
	w.Log().Debug("canvas created", zap.Uint64("entity", uint64(e)),
		zap.Float64("width", size.X), zap.Float64("height", size.Y))
	return e
}
