package dreamtable

// Space names the coordinate space a Position is expressed in. Each space is
// mapped to the screen by its own active camera.
type Space uint8

const (
	SpaceWorld Space = iota
	SpaceScreen
)

func (s Space) String() string {
	switch s {
	case SpaceWorld:
		return "world"
	case SpaceScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// Component is implemented by every component type. attach stores the value
// in its typed store, so CreateEntity and AddComponent never reflect.
type Component interface {
	attach(c *Components, e Entity)
}

type Position struct {
	Vec2
	Space Space
}

// Extent is the size of an entity. Together with Position it forms the
// entity's rect.
type Extent struct {
	Vec2
}

type Velocity struct {
	Vec2
	// Friction multiplies the velocity after every step; 1 keeps it.
	Friction float64
}

// Wandering gives an entity a random kick of Force every Interval ticks.
type Wandering struct {
	Interval int
	Tick     int
	Force    float64
}

// Camera is a camera entity. The active camera of each space is published in
// Context.Cameras every frame.
type Camera struct {
	Camera2D
	Space        Space
	Active       bool
	ZoomVelocity float64
	ZoomSpeed    float64
	ZoomFriction float64
}

// SelectionKind distinguishes what a box selection does on release.
type SelectionKind uint8

const (
	// SelectNormal live-selects what it touches and vanishes on release.
	SelectNormal SelectionKind = iota
	// SelectCreate turns into a new canvas on release.
	SelectCreate
)

type BoxSelection struct {
	Kind   SelectionKind
	Anchor Vec2
}

type Hoverable struct{ Hovered bool }
type Selectable struct{ Selected bool }
type Deletable struct{ Deleted bool }

type Draggable struct {
	Dragging bool
	Offset   Vec2
}

// Pressable tracks a left click on the entity. Pressed is true only on the
// frame the press began; Down stays true until the button is released.
type Pressable struct {
	Pressed bool
	Down    bool
}

// Image owns an external raster and its uploaded texture. Source is loaded
// into Raster on demand; Texture is non-nil only after a successful upload.
// Setting Dirty re-uploads the raster on the next frame.
type Image struct {
	Source   string
	Raster   ImageHandle
	Texture  TextureHandle
	Dirty    bool
	Attempts int
}

type ToolSwitcher struct{ Tool Tool }
type Button struct{ Lit bool }

type Canvas struct {
	// Background is drawn under the texture. Transparent draws nothing.
	Background        Color
	GridAlwaysVisible bool
}

// CellGrid splits a canvas into Cols x Rows cells.
type CellGrid struct {
	Cols, Rows int
}

// CellSize returns the size of one cell of a canvas with the given extent.
func (g CellGrid) CellSize(extent Vec2) Vec2 {
	return Vec2{extent.X / float64(max(g.Cols, 1)), extent.Y / float64(max(g.Rows, 1))}
}

// CellAt returns the cell containing the canvas-local point p.
func (g CellGrid) CellAt(extent, p Vec2) CellIndex {
	size := g.CellSize(extent)
	return CellIndex{X: int(p.X / size.X), Y: int(p.Y / size.Y)}
}

// SpriteRegion draws a sub-rect of the entity's texture, sized by Extent.
// A zero Tint draws untinted.
type SpriteRegion struct {
	Offset Vec2
	Tint   Color
}

type EggTimer struct{ TicksLeft int }

type TinyFriend struct {
	Kind  int
	Angle float64
}

type Name struct{ Label string }

type PositionMarker struct{ Size float64 }

// BackgroundGrid draws an infinite grid whose cell size is the entity's
// Extent. Lines fade out when cells shrink below MinStep screen pixels.
type BackgroundGrid struct {
	Color     Color
	LineWidth float64
	MinStep   float64
}

// DebugOutline marks entities drawn as plain magenta outlines.
type DebugOutline struct{}

type CellIndex struct{ X, Y int }

// CellRef points at one cell of another canvas.
type CellRef struct {
	Source Entity
	Cell   CellIndex
}

// CellRefs maps cells of a canvas to cells of other canvases. The canvas
// renderer draws each referenced cell over the canvas texture.
type CellRefs struct {
	Refs map[CellIndex]CellRef
}

// Components holds one typed store per component type.
type Components struct {
	Position       *Store[Position]
	Extent         *Store[Extent]
	Velocity       *Store[Velocity]
	Wandering      *Store[Wandering]
	Camera         *Store[Camera]
	BoxSelection   *Store[BoxSelection]
	Hoverable      *Store[Hoverable]
	Selectable     *Store[Selectable]
	Deletable      *Store[Deletable]
	Draggable      *Store[Draggable]
	Pressable      *Store[Pressable]
	Image          *Store[Image]
	ToolSwitcher   *Store[ToolSwitcher]
	Button         *Store[Button]
	Canvas         *Store[Canvas]
	CellGrid       *Store[CellGrid]
	SpriteRegion   *Store[SpriteRegion]
	EggTimer       *Store[EggTimer]
	TinyFriend     *Store[TinyFriend]
	Name           *Store[Name]
	PositionMarker *Store[PositionMarker]
	BackgroundGrid *Store[BackgroundGrid]
	DebugOutline   *Store[DebugOutline]
	CellRefs       *Store[CellRefs]
	Glide          *Store[Glide]

	all []removable
}

func newComponents() *Components {
	c := &Components{
		Position:       NewStore[Position](),
		Extent:         NewStore[Extent](),
		Velocity:       NewStore[Velocity](),
		Wandering:      NewStore[Wandering](),
		Camera:         NewStore[Camera](),
		BoxSelection:   NewStore[BoxSelection](),
		Hoverable:      NewStore[Hoverable](),
		Selectable:     NewStore[Selectable](),
		Deletable:      NewStore[Deletable](),
		Draggable:      NewStore[Draggable](),
		Pressable:      NewStore[Pressable](),
		Image:          NewStore[Image](),
		ToolSwitcher:   NewStore[ToolSwitcher](),
		Button:         NewStore[Button](),
		Canvas:         NewStore[Canvas](),
		CellGrid:       NewStore[CellGrid](),
		SpriteRegion:   NewStore[SpriteRegion](),
		EggTimer:       NewStore[EggTimer](),
		TinyFriend:     NewStore[TinyFriend](),
		Name:           NewStore[Name](),
		PositionMarker: NewStore[PositionMarker](),
		BackgroundGrid: NewStore[BackgroundGrid](),
		DebugOutline:   NewStore[DebugOutline](),
		CellRefs:       NewStore[CellRefs](),
		Glide:          NewStore[Glide](),
	}
	c.all = []removable{
		c.Position, c.Extent, c.Velocity, c.Wandering, c.Camera,
		c.BoxSelection, c.Hoverable, c.Selectable, c.Deletable, c.Draggable,
		c.Pressable, c.Image, c.ToolSwitcher, c.Button, c.Canvas, c.CellGrid,
		c.SpriteRegion, c.EggTimer, c.TinyFriend, c.Name, c.PositionMarker,
		c.BackgroundGrid, c.DebugOutline, c.CellRefs, c.Glide,
	}
	return c
}

func (v Position) attach(c *Components, e Entity)       { c.Position.Set(e, v) }
func (v Extent) attach(c *Components, e Entity)         { c.Extent.Set(e, v) }
func (v Velocity) attach(c *Components, e Entity)       { c.Velocity.Set(e, v) }
func (v Wandering) attach(c *Components, e Entity)      { c.Wandering.Set(e, v) }
func (v Camera) attach(c *Components, e Entity)         { c.Camera.Set(e, v) }
func (v BoxSelection) attach(c *Components, e Entity)   { c.BoxSelection.Set(e, v) }
func (v Hoverable) attach(c *Components, e Entity)      { c.Hoverable.Set(e, v) }
func (v Selectable) attach(c *Components, e Entity)     { c.Selectable.Set(e, v) }
func (v Deletable) attach(c *Components, e Entity)      { c.Deletable.Set(e, v) }
func (v Draggable) attach(c *Components, e Entity)      { c.Draggable.Set(e, v) }
func (v Pressable) attach(c *Components, e Entity)      { c.Pressable.Set(e, v) }
func (v Image) attach(c *Components, e Entity)          { c.Image.Set(e, v) }
func (v ToolSwitcher) attach(c *Components, e Entity)   { c.ToolSwitcher.Set(e, v) }
func (v Button) attach(c *Components, e Entity)         { c.Button.Set(e, v) }
func (v Canvas) attach(c *Components, e Entity)         { c.Canvas.Set(e, v) }
func (v CellGrid) attach(c *Components, e Entity)       { c.CellGrid.Set(e, v) }
func (v SpriteRegion) attach(c *Components, e Entity)   { c.SpriteRegion.Set(e, v) }
func (v EggTimer) attach(c *Components, e Entity)       { c.EggTimer.Set(e, v) }
func (v TinyFriend) attach(c *Components, e Entity)     { c.TinyFriend.Set(e, v) }
func (v Name) attach(c *Components, e Entity)           { c.Name.Set(e, v) }
func (v PositionMarker) attach(c *Components, e Entity) { c.PositionMarker.Set(e, v) }
func (v BackgroundGrid) attach(c *Components, e Entity) { c.BackgroundGrid.Set(e, v) }
func (v DebugOutline) attach(c *Components, e Entity)   { c.DebugOutline.Set(e, v) }
func (v CellRefs) attach(c *Components, e Entity)       { c.CellRefs.Set(e, v) }
func (v Glide) attach(c *Components, e Entity)          { c.Glide.Set(e, v) }
