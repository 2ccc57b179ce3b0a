package dreamtable

// Opaque resource handles. Only the HAL that issued a handle knows its
// concrete type; nil means absent.
type (
	ImageHandle   any
	TextureHandle any
	FontHandle    any
)

// Key identifies a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyS
	Key1
	Key2
	Key3
	Key4
	KeyHome
	KeyDelete
	KeyLeftAlt
	KeyLeftControl
	KeyRightControl
	KeyEscape
	keyCount
)

// Keys lists every key the editor reads. HALs snapshot exactly these.
var Keys = func() []Key {
	out := make([]Key, 0, keyCount-1)
	for k := KeyNone + 1; k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}()

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	mouseButtonCount
)

// MouseButtons lists every button the editor reads.
var MouseButtons = []MouseButton{MouseLeft, MouseRight, MouseMiddle}

// Window covers window setup and frame presentation.
type Window interface {
	InitWindow(width, height int, title string) error
	ScreenSize() Vec2
	ScreenRect() Rect
	SetClearColor(c Color)
}

// Resources loads, edits and releases images, textures and fonts. Paths use
// the res:// scheme and are resolved against the HAL's asset root.
type Resources interface {
	LoadFont(path string) (FontHandle, error)
	LoadImage(path string) (ImageHandle, error)
	GenImageColor(size Vec2, c Color) (ImageHandle, error)
	LoadTextureFromImage(img ImageHandle) (TextureHandle, error)
	UpdateTexture(tex TextureHandle, img ImageHandle) error
	UnloadImage(img ImageHandle)
	UnloadTexture(tex TextureHandle)
	ImageSize(img ImageHandle) Vec2
	ImageColor(img ImageHandle, p Vec2) Color
	ImageDrawPixel(img ImageHandle, p Vec2, c Color)
	ImageDrawLine(img ImageHandle, a, b Vec2, c Color)
	ExportImage(img ImageHandle, filename string) error
}

// Renderer issues draw calls. Coordinates are in the space of the camera on
// top of the camera stack, or screen pixels when the stack is empty.
type Renderer interface {
	PushCamera(cam Camera2D)
	PopCamera()
	ScreenToWorld(p Vec2, cam Camera2D) Vec2

	DrawRectangle(r Rect, c Color)
	DrawRectangleLines(r Rect, thickness float64, c Color)
	DrawLine(a, b Vec2, c Color)
	DrawLineWidth(a, b Vec2, width float64, c Color)
	DrawTexture(tex TextureHandle, pos Vec2, tint Color)
	DrawTextureRect(tex TextureHandle, src Rect, pos Vec2, tint Color)
	DrawText(font FontHandle, text string, pos Vec2, size, spacing float64, c Color)
	MeasureText(font FontHandle, text string, size, spacing float64) Vec2
}

// Input exposes the input snapshot taken at the start of the frame. The
// Clear methods consume an edge so later systems in the same frame do not
// see it.
type Input interface {
	IsKeyDown(k Key) bool
	IsKeyPressed(k Key) bool
	IsKeyReleased(k Key) bool
	ClearKeyPressed(k Key)
	ClearKeyReleased(k Key)

	IsMouseButtonDown(b MouseButton) bool
	IsMouseButtonPressed(b MouseButton) bool
	IsMouseButtonReleased(b MouseButton) bool
	ClearMouseButtonPressed(b MouseButton)
	ClearMouseButtonReleased(b MouseButton)

	MousePosition() Vec2
	MouseDelta() Vec2
	MouseWheel() float64
	ClearMouseWheel()
}

// HAL is the rendering and input backend the world runs on.
type HAL interface {
	Window
	Resources
	Renderer
	Input

	// Run drives the frame loop, calling w.Process once per frame until
	// the window closes.
	Run(w *World) error
}
