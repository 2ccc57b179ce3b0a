package dreamtable

import "github.com/tanema/gween/ease"

var zoomKeys = [...]Key{Key1, Key2, Key3, Key4}

// CameraSystem pans and zooms the active world camera and steps the zoom
// spring of every camera.
type CameraSystem struct {
	// RecenterSeconds is how long Home takes to glide back to the origin.
	// Zero jumps there immediately.
	RecenterSeconds float32
}

func (s CameraSystem) Process(w *World, ctx *Context, hal HAL) {
	screen := hal.ScreenSize()
	wheelUsed := false
	w.C.Camera.Each(func(e Entity, cam *Camera) {
		if cam.Active && cam.Space == SpaceWorld {
			cam.Offset = screen.Div(2)
			if hal.IsMouseButtonDown(MouseMiddle) && cam.Zoom != 0 {
				cam.Target = cam.Target.Sub(ctx.MouseDelta.Div(cam.Zoom))
				w.C.Glide.Remove(e)
			}
			if ctx.MouseWheel != 0 {
				cam.ZoomVelocity += cam.ZoomSpeed * ctx.MouseWheel
				wheelUsed = true
			}
			for i, k := range zoomKeys {
				if hal.IsKeyPressed(k) {
					cam.Zoom = float64(i + 1)
					cam.ZoomVelocity = 0
				}
			}
			if hal.IsKeyPressed(KeyHome) {
				s.recenter(w, e, cam)
			}
		}
		cam.stepZoom()
	})
	if wheelUsed {
		ctx.MouseWheel = 0
		hal.ClearMouseWheel()
	}
}

func (s CameraSystem) recenter(w *World, e Entity, cam *Camera) {
	if s.RecenterSeconds <= 0 {
		cam.Target = Vec2{}
		w.C.Glide.Remove(e)
		return
	}
	w.AddComponent(e, NewGlide(cam.Target, Vec2{}, s.RecenterSeconds, ease.OutCubic))
}

// GlideSystem advances camera glides by one frame and drops finished ones.
type GlideSystem struct{}

func (GlideSystem) Process(w *World, _ *Context, _ HAL) {
	Each2(w.C.Glide, w.C.Camera, func(e Entity, g *Glide, cam *Camera) {
		if g.step(w.FrameTime, &cam.Target) {
			w.C.Glide.Remove(e)
		}
	})
}
