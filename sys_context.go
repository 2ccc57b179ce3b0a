package dreamtable

// CameraContextSystem republishes the active camera of every space.
type CameraContextSystem struct{}

func (CameraContextSystem) Process(w *World, ctx *Context, _ HAL) {
	clear(ctx.Cameras)
	w.C.Camera.Each(func(_ Entity, cam *Camera) {
		if cam.Active {
			ctx.Cameras[cam.Space] = cam
		}
	})
}

// MouseSystem copies the frame's pointer snapshot into the context.
type MouseSystem struct{}

func (MouseSystem) Process(_ *World, ctx *Context, hal HAL) {
	ctx.Mouse = hal.MousePosition()
	ctx.MouseDelta = hal.MouseDelta()
	ctx.MouseWheel = hal.MouseWheel()
}

// entityRect returns the rect of an entity from its Position and Extent.
func entityRect(pos *Position, ext *Extent) Rect {
	return RectFrom(pos.Vec2, ext.Vec2)
}

// canvasAt finds the canvas under the pointer. local is the pointer in the
// canvas's pixel coordinates.
func canvasAt(w *World, ctx *Context, hal HAL) (e Entity, local Vec2, ok bool) {
	Each3(w.C.Canvas, w.C.Position, w.C.Extent, func(ent Entity, _ *Canvas, pos *Position, ext *Extent) {
		if ok {
			return
		}
		p, has := ctx.PointerIn(hal, pos.Space)
		if !has || !entityRect(pos, ext).Contains(p) {
			return
		}
		e, local, ok = ent, p.Sub(pos.Vec2), true
	})
	return e, local, ok
}
