package dreamtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dt "github.com/phanxgames/dreamtable"
)

func TestHoverUsesEachEntitysSpace(t *testing.T) {
	w, hal := newEditor(t)
	ui := w.CreateEntity(
		dt.Position{Vec2: dt.V(100, 50), Space: dt.SpaceScreen},
		dt.Extent{Vec2: dt.V(10, 10)},
		dt.Hoverable{},
	)
	world := w.CreateEntity(
		dt.Position{Vec2: dt.V(100, 50), Space: dt.SpaceWorld},
		dt.Extent{Vec2: dt.V(10, 10)},
		dt.Hoverable{},
	)

	hal.InjectHover(105, 55)
	hal.Step(w)
	assert.True(t, w.C.Hoverable.MustGet(ui).Hovered)
	assert.False(t, w.C.Hoverable.MustGet(world).Hovered)
	assert.True(t, w.Ctx.Hovering)

	hal.InjectHover(scr(105, 55))
	hal.Step(w)
	assert.False(t, w.C.Hoverable.MustGet(ui).Hovered)
	assert.True(t, w.C.Hoverable.MustGet(world).Hovered)

	hal.InjectHover(scr(-50, -50))
	hal.Step(w)
	assert.False(t, w.Ctx.Hovering)
}

func TestHoverWithoutCameraLeavesStateAlone(t *testing.T) {
	w := dt.NewWorld()
	require.NoError(t, w.AddSystem(dt.PhaseControl, "hover", dt.HoverSystem{}))
	e := w.CreateEntity(
		dt.Position{Space: dt.SpaceWorld},
		dt.Extent{Vec2: dt.V(10, 10)},
		dt.Hoverable{Hovered: true},
	)
	hal := newHAL()
	hal.InjectHover(1, 1)
	hal.Step(w)
	assert.True(t, w.C.Hoverable.MustGet(e).Hovered, "no camera, no update")
}

func TestDragMovesByPointerOffset(t *testing.T) {
	w, hal := newEditor(t)
	canvas := addCanvas(t, w, hal, 0, 0, 16, 16, dt.ColorBlack)

	x0, y0 := scr(4, 4)
	x1, y1 := scr(24, 14)
	hal.InjectDrag(dt.MouseLeft, x0, y0, x1, y1, 4)
	require.NoError(t, hal.Run(w))

	assert.Equal(t, dt.V(20, 10), w.C.Position.MustGet(canvas).Vec2)
	assert.False(t, w.C.Draggable.MustGet(canvas).Dragging)
	assert.True(t, w.C.Selectable.MustGet(canvas).Selected, "click selects")
	assert.False(t, w.Ctx.MouseReserved, "drag released its claim")
}

func TestDragOnlyWithMoveTool(t *testing.T) {
	w, hal := newEditor(t)
	canvas := addCanvas(t, w, hal, 0, 0, 16, 16, dt.ColorBlack)
	w.Ctx.Tool = dt.ToolGrid

	x0, y0 := scr(4, 4)
	x1, y1 := scr(24, 14)
	hal.InjectDrag(dt.MouseLeft, x0, y0, x1, y1, 3)
	require.NoError(t, hal.Run(w))

	assert.Equal(t, dt.V(0, 0), w.C.Position.MustGet(canvas).Vec2)
}

func TestCreateSelectionSpawnsSnappedCanvas(t *testing.T) {
	w, hal := newEditor(t)

	x0, y0 := scr(-60, -60)
	x1, y1 := scr(-43, -43)
	hal.InjectDrag(dt.MouseRight, x0, y0, x1, y1, 3)
	hal.Step(w)
	require.Equal(t, 1, w.C.BoxSelection.Len(), "box created on press")
	assert.True(t, w.Ctx.MouseReserved)
	require.NoError(t, hal.Run(w))

	assert.Equal(t, 0, w.C.BoxSelection.Len(), "box removed on release")
	assert.False(t, w.Ctx.MouseReserved)

	canvases := w.C.Canvas.Entities()
	require.Len(t, canvases, 1)
	e := canvases[0]
	assert.Equal(t, dt.V(-64, -64), w.C.Position.MustGet(e).Vec2)
	assert.Equal(t, dt.V(24, 24), w.C.Extent.MustGet(e).Vec2)
	assert.Equal(t, w.Ctx.Secondary, pixel(t, w, e, 5, 5))
	assert.Equal(t, dt.CellGrid{Cols: 3, Rows: 3}, *w.C.CellGrid.MustGet(e))

	hal.Step(w)
	assert.Equal(t, 1, hal.LiveImages())
	assert.Equal(t, 1, hal.LiveTextures())
}

func TestCreateSelectionWorksUnderAnyTool(t *testing.T) {
	for _, tool := range []dt.Tool{dt.ToolPencil, dt.ToolFill, dt.ToolGrid, dt.ToolCellRef} {
		t.Run(tool.String(), func(t *testing.T) {
			w, hal := newEditor(t)
			w.Ctx.Tool = tool

			x0, y0 := scr(-50, -50)
			x1, y1 := scr(-20, -20)
			hal.InjectDrag(dt.MouseRight, x0, y0, x1, y1, 3)
			require.NoError(t, hal.Run(w))

			canvases := w.C.Canvas.Entities()
			require.Len(t, canvases, 1)
			assert.Equal(t, dt.V(-56, -56), w.C.Position.MustGet(canvases[0]).Vec2)
			assert.False(t, w.Ctx.MouseReserved)
		})
	}
}

func TestCreateSelectionClickMakesOneSnapCell(t *testing.T) {
	w, hal := newEditor(t)
	x, y := scr(3, 3)
	hal.InjectClick(dt.MouseRight, x, y)
	require.NoError(t, hal.Run(w))

	canvases := w.C.Canvas.Entities()
	require.Len(t, canvases, 1)
	assert.Equal(t, dt.V(8, 8), w.C.Extent.MustGet(canvases[0]).Vec2)
}

func TestNormalSelectionSelectsTouchedEntities(t *testing.T) {
	w, hal := newEditor(t)
	inside := addCanvas(t, w, hal, 0, 0, 16, 16, dt.ColorBlack)
	outside := addCanvas(t, w, hal, 60, 60, 16, 16, dt.ColorBlack)
	w.C.Selectable.MustGet(outside).Selected = true

	x0, y0 := scr(-20, -20)
	x1, y1 := scr(4, 4)
	hal.InjectDrag(dt.MouseLeft, x0, y0, x1, y1, 3)
	require.NoError(t, hal.Run(w))

	assert.True(t, w.C.Selectable.MustGet(inside).Selected)
	assert.False(t, w.C.Selectable.MustGet(outside).Selected, "live select deselects")
	assert.Equal(t, 0, w.C.BoxSelection.Len())
	assert.Len(t, w.C.Canvas.Entities(), 2, "normal box creates nothing")
}

func TestPointerClaimIsExclusive(t *testing.T) {
	w, hal := newEditor(t)
	// Draggable but not hoverable: the press starts a box selection, which
	// claims the pointer before the drag system sees it.
	e := w.CreateEntity(
		dt.Position{Space: dt.SpaceWorld},
		dt.Extent{Vec2: dt.V(16, 16)},
		dt.Draggable{},
	)

	x0, y0 := scr(4, 4)
	x1, y1 := scr(30, 30)
	hal.InjectDrag(dt.MouseLeft, x0, y0, x1, y1, 3)
	hal.Step(w)
	assert.Equal(t, 1, w.C.BoxSelection.Len())
	assert.False(t, w.C.Draggable.MustGet(e).Dragging)
	require.NoError(t, hal.Run(w))

	assert.Equal(t, dt.V(0, 0), w.C.Position.MustGet(e).Vec2)
	assert.False(t, w.Ctx.MouseReserved)
}

func TestDragEndsWhenCameraIsGone(t *testing.T) {
	w, hal := newEditor(t)
	canvas := addCanvas(t, w, hal, 0, 0, 16, 16, dt.ColorBlack)

	x, y := scr(4, 4)
	hal.InjectPress(dt.MouseLeft, x, y)
	hal.Step(w)
	require.True(t, w.C.Draggable.MustGet(canvas).Dragging)

	worldCamera(t, w).Active = false
	hal.InjectRelease(dt.MouseLeft, x, y)
	require.NoError(t, hal.Run(w))
	assert.False(t, w.C.Draggable.MustGet(canvas).Dragging)
	assert.False(t, w.Ctx.MouseReserved)
	assert.Equal(t, dt.V(0, 0), w.C.Position.MustGet(canvas).Vec2)
}

func TestClickOnEmptySpaceClearsSelection(t *testing.T) {
	w, hal := newEditor(t)
	canvas := addCanvas(t, w, hal, 0, 0, 16, 16, dt.ColorBlack)
	w.C.Selectable.MustGet(canvas).Selected = true

	// A left click on empty space starts a zero-size box that touches
	// nothing, so the selection is cleared by the live select.
	x, y := scr(-40, -40)
	hal.InjectClick(dt.MouseLeft, x, y)
	require.NoError(t, hal.Run(w))
	assert.False(t, w.C.Selectable.MustGet(canvas).Selected)
}
