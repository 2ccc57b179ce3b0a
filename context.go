package dreamtable

// Context is the per-world blackboard shared by every system. Systems earlier
// in the pipeline write it; later systems in the same frame read the result.
type Context struct {
	Tool Tool
	// UnderlyingTool is the tool to restore when a temporary override ends,
	// or ToolNone when no override is active.
	UnderlyingTool Tool

	Primary   Color
	Secondary Color
	// Sampled is the color under the dropper, transparent off-canvas.
	Sampled Color

	CellRefPrimary   *CellRef
	CellRefSecondary *CellRef

	// Cameras holds the active camera of each space, republished every
	// frame. A space without a camera has no entry.
	Cameras map[Space]*Camera

	Mouse      Vec2
	MouseDelta Vec2
	MouseWheel float64
	// MouseReserved is claimed by the system that starts an exclusive
	// pointer gesture and cleared by that same system on release.
	MouseReserved bool
	// Hovering is true when the pointer is over any hoverable entity.
	Hovering bool
	// PointerOverUI is true when a hovered entity lives in screen space.
	PointerOverUI bool

	Snap  Vec2
	Theme Theme
}

// NewContext returns a context with the editor defaults.
func NewContext() *Context {
	return &Context{
		Tool:           ToolMove,
		UnderlyingTool: ToolNone,
		Primary:        Color{255, 255, 255, 255},
		Secondary:      Color{0, 0, 0, 255},
		Sampled:        ColorTransparent,
		Cameras:        make(map[Space]*Camera, 2),
		Snap:           Vec2{8, 8},
		Theme:          DefaultTheme(),
	}
}

// Camera returns the active camera of space s.
func (c *Context) Camera(s Space) (*Camera, bool) {
	cam, ok := c.Cameras[s]
	return cam, ok && cam != nil
}

// PointerIn converts the pointer to space s. ok is false when s has no
// active camera.
func (c *Context) PointerIn(hal Renderer, s Space) (p Vec2, ok bool) {
	cam, ok := c.Camera(s)
	if !ok {
		return Vec2{}, false
	}
	return hal.ScreenToWorld(c.Mouse, cam.Camera2D), true
}

// Theme is the editor palette.
type Theme struct {
	Background     Color `toml:"background"`
	PositionMarker Color `toml:"position_marker"`

	GridCellsSubtle  Color `toml:"grid_cells_subtle"`
	GridCellsObvious Color `toml:"grid_cells_obvious"`
	GridMinor        Color `toml:"grid_minor"`
	GridMajor        Color `toml:"grid_major"`

	TextNormal Color `toml:"text_normal"`
	TextError  Color `toml:"text_error"`

	SelectionCreateOutline Color `toml:"selection_create_outline"`
	SelectionCreateFill    Color `toml:"selection_create_fill"`
	SelectionNormalOutline Color `toml:"selection_normal_outline"`
	SelectionNormalFill    Color `toml:"selection_normal_fill"`

	ThingyOutline         Color `toml:"thingy_outline"`
	ThingyHoveredOutline  Color `toml:"thingy_hovered_outline"`
	ThingySelectedOutline Color `toml:"thingy_selected_outline"`

	DebugMagenta Color `toml:"debug_magenta"`

	ButtonFill         Color `toml:"button_fill"`
	ButtonBorder       Color `toml:"button_border"`
	ButtonLitFill      Color `toml:"button_lit_fill"`
	ButtonLitBorder    Color `toml:"button_lit_border"`
	ButtonHoverOverlay Color `toml:"button_hover_overlay"`

	Font FontHandle `toml:"-"`
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		Background:     Color{9, 12, 17, 255},
		PositionMarker: Color{164, 84, 30, 255},

		GridCellsSubtle:  Color{255, 255, 255, 32},
		GridCellsObvious: Color{255, 255, 255, 64},
		GridMinor:        Color{68, 93, 144, 16},
		GridMajor:        Color{68, 93, 144, 32},

		TextNormal: Color{255, 255, 255, 255},
		TextError:  Color{164, 84, 30, 255},

		SelectionCreateOutline: Color{0, 255, 0, 128},
		SelectionCreateFill:    Color{0, 255, 0, 32},
		SelectionNormalOutline: Color{68, 93, 144, 128},
		SelectionNormalFill:    Color{68, 93, 144, 32},

		ThingyOutline:         Color{68, 93, 144, 16},
		ThingyHoveredOutline:  Color{68, 93, 144, 48},
		ThingySelectedOutline: Color{68, 93, 144, 128},

		DebugMagenta: Color{255, 0, 255, 255},

		ButtonFill:         Color{32, 32, 32, 255},
		ButtonBorder:       Color{64, 64, 64, 255},
		ButtonLitFill:      Color{84, 30, 0, 255},
		ButtonLitBorder:    Color{164, 84, 30, 255},
		ButtonHoverOverlay: Color{255, 255, 255, 32},
	}
}
