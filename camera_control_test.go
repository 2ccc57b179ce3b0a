package dreamtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dt "github.com/phanxgames/dreamtable"
)

func worldCamera(t *testing.T, w *dt.World) *dt.Camera {
	t.Helper()
	cam, ok := w.Ctx.Camera(dt.SpaceWorld)
	require.True(t, ok)
	return cam
}

func TestCameraCentersOnScreen(t *testing.T) {
	w, _ := newEditor(t)
	assert.Equal(t, dt.V(screenW/2, screenH/2), worldCamera(t, w).Offset)
}

func TestMiddleDragPans(t *testing.T) {
	w, hal := newEditor(t)
	cam := worldCamera(t, w)
	cam.Zoom = 2

	hal.InjectHover(100, 100)
	hal.InjectPress(dt.MouseMiddle, 100, 100)
	hal.InjectMove(dt.MouseMiddle, 120, 90)
	hal.InjectRelease(dt.MouseMiddle, 120, 90)
	require.NoError(t, hal.Run(w))

	assert.Equal(t, dt.V(-10, 5), cam.Target)
}

func TestWheelZoomSpring(t *testing.T) {
	w, hal := newEditor(t)
	cam := worldCamera(t, w)

	hal.InjectWheel(1)
	hal.Step(w)
	assert.Greater(t, cam.Zoom, 1.0)
	assert.Greater(t, cam.ZoomVelocity, 0.0)

	hal.StepN(w, 200)
	assert.Zero(t, cam.ZoomVelocity, "spring settles")
	settled := cam.Zoom
	hal.StepN(w, 10)
	assert.Equal(t, settled, cam.Zoom)
}

func TestLargeWheelZoomOutStaysPositive(t *testing.T) {
	w, hal := newEditor(t)
	cam := worldCamera(t, w)

	hal.InjectWheel(-50)
	hal.Step(w)
	assert.Equal(t, dt.MinZoom, cam.Zoom)

	hal.StepN(w, 100)
	assert.Equal(t, dt.MinZoom, cam.Zoom)
	assert.Zero(t, cam.ZoomVelocity)

	hal.InjectWheel(1)
	hal.StepN(w, 2)
	assert.Greater(t, cam.Zoom, dt.MinZoom, "zoom recovers from the floor")
}

func TestZoomKeysSetZoom(t *testing.T) {
	w, hal := newEditor(t)
	cam := worldCamera(t, w)
	for i, k := range []dt.Key{dt.Key1, dt.Key2, dt.Key3, dt.Key4} {
		hal.InjectKeyTap(k)
		require.NoError(t, hal.Run(w))
		assert.Equal(t, float64(i+1), cam.Zoom)
	}
}

func TestHomeRecentersInstantly(t *testing.T) {
	w, hal := newEditor(t)
	cam := worldCamera(t, w)
	cam.Target = dt.V(300, -80)

	hal.InjectKeyTap(dt.KeyHome)
	hal.Step(w)
	assert.Equal(t, dt.V(0, 0), cam.Target)
}

func TestHomeGlidesWhenConfigured(t *testing.T) {
	w := dt.NewWorld()
	require.NoError(t, w.AddSystem(dt.PhaseContext, "camera context", dt.CameraContextSystem{}))
	require.NoError(t, w.AddSystem(dt.PhaseControl, "camera", dt.CameraSystem{RecenterSeconds: 0.25}))
	require.NoError(t, w.AddSystem(dt.PhaseControl, "glide", dt.GlideSystem{}))
	e := w.CreateEntity(dt.Camera{
		Camera2D: dt.Camera2D{Target: dt.V(100, 0), Zoom: 1},
		Space:    dt.SpaceWorld,
		Active:   true,
	})
	hal := newHAL()

	hal.InjectKeyTap(dt.KeyHome)
	hal.Step(w)
	cam := w.C.Camera.MustGet(e)
	assert.True(t, w.C.Glide.Has(e))
	assert.Greater(t, cam.Target.X, 0.0, "glide starts from the old target")
	assert.Less(t, cam.Target.X, 100.0)

	hal.StepN(w, 30)
	assert.False(t, w.C.Glide.Has(e), "finished glide removed")
	assert.InDelta(t, 0, cam.Target.X, 1e-3)
}

func TestPanCancelsGlide(t *testing.T) {
	w := dt.NewWorld()
	require.NoError(t, w.AddSystem(dt.PhaseContext, "camera context", dt.CameraContextSystem{}))
	require.NoError(t, w.AddSystem(dt.PhaseContext, "mouse", dt.MouseSystem{}))
	require.NoError(t, w.AddSystem(dt.PhaseControl, "camera", dt.CameraSystem{RecenterSeconds: 1}))
	require.NoError(t, w.AddSystem(dt.PhaseControl, "glide", dt.GlideSystem{}))
	e := w.CreateEntity(dt.Camera{
		Camera2D: dt.Camera2D{Target: dt.V(100, 0), Zoom: 1},
		Space:    dt.SpaceWorld,
		Active:   true,
	})
	hal := newHAL()

	hal.InjectKeyTap(dt.KeyHome)
	require.NoError(t, hal.Run(w))
	require.True(t, w.C.Glide.Has(e))

	hal.InjectPress(dt.MouseMiddle, 10, 10)
	hal.Step(w)
	assert.False(t, w.C.Glide.Has(e))
}
