package ebitenhal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	dt "github.com/phanxgames/dreamtable"
)

var keyMap = map[dt.Key]ebiten.Key{
	dt.KeyQ:            ebiten.KeyQ,
	dt.KeyW:            ebiten.KeyW,
	dt.KeyE:            ebiten.KeyE,
	dt.KeyR:            ebiten.KeyR,
	dt.KeyT:            ebiten.KeyT,
	dt.KeyY:            ebiten.KeyY,
	dt.KeyU:            ebiten.KeyU,
	dt.KeyI:            ebiten.KeyI,
	dt.KeyS:            ebiten.KeyS,
	dt.Key1:            ebiten.KeyDigit1,
	dt.Key2:            ebiten.KeyDigit2,
	dt.Key3:            ebiten.KeyDigit3,
	dt.Key4:            ebiten.KeyDigit4,
	dt.KeyHome:         ebiten.KeyHome,
	dt.KeyDelete:       ebiten.KeyDelete,
	dt.KeyLeftAlt:      ebiten.KeyAltLeft,
	dt.KeyLeftControl:  ebiten.KeyControlLeft,
	dt.KeyRightControl: ebiten.KeyControlRight,
	dt.KeyEscape:       ebiten.KeyEscape,
}

var buttonMap = [...]ebiten.MouseButton{
	dt.MouseLeft:   ebiten.MouseButtonLeft,
	dt.MouseRight:  ebiten.MouseButtonRight,
	dt.MouseMiddle: ebiten.MouseButtonMiddle,
}

// inputSnapshot is the input state for one tick. Systems may clear edges
// and the wheel to consume them; the next sample starts fresh.
type inputSnapshot struct {
	down     map[dt.Key]bool
	pressed  map[dt.Key]bool
	released map[dt.Key]bool

	btnDown     [3]bool
	btnPressed  [3]bool
	btnReleased [3]bool

	mouse     dt.Vec2
	prevMouse dt.Vec2
	delta     dt.Vec2
	wheel     float64
	sampled   bool
}

func newInputSnapshot() inputSnapshot {
	return inputSnapshot{
		down:     make(map[dt.Key]bool, len(keyMap)),
		pressed:  make(map[dt.Key]bool, len(keyMap)),
		released: make(map[dt.Key]bool, len(keyMap)),
	}
}

func (s *inputSnapshot) sample() {
	for k, ek := range keyMap {
		s.down[k] = ebiten.IsKeyPressed(ek)
		s.pressed[k] = inpututil.IsKeyJustPressed(ek)
		s.released[k] = inpututil.IsKeyJustReleased(ek)
	}
	for i, eb := range buttonMap {
		s.btnDown[i] = ebiten.IsMouseButtonPressed(eb)
		s.btnPressed[i] = inpututil.IsMouseButtonJustPressed(eb)
		s.btnReleased[i] = inpututil.IsMouseButtonJustReleased(eb)
	}

	x, y := ebiten.CursorPosition()
	s.mouse = dt.Vec2{X: float64(x), Y: float64(y)}
	if s.sampled {
		s.delta = s.mouse.Sub(s.prevMouse)
	}
	s.prevMouse = s.mouse
	s.sampled = true

	_, wy := ebiten.Wheel()
	s.wheel = wy
}

func validButton(b dt.MouseButton) bool { return b >= 0 && int(b) < len(buttonMap) }

func (h *HAL) IsKeyDown(k dt.Key) bool     { return h.input.down[k] }
func (h *HAL) IsKeyPressed(k dt.Key) bool  { return h.input.pressed[k] }
func (h *HAL) IsKeyReleased(k dt.Key) bool { return h.input.released[k] }
func (h *HAL) ClearKeyPressed(k dt.Key)    { h.input.pressed[k] = false }
func (h *HAL) ClearKeyReleased(k dt.Key)   { h.input.released[k] = false }

func (h *HAL) IsMouseButtonDown(b dt.MouseButton) bool {
	return validButton(b) && h.input.btnDown[b]
}

func (h *HAL) IsMouseButtonPressed(b dt.MouseButton) bool {
	return validButton(b) && h.input.btnPressed[b]
}

func (h *HAL) IsMouseButtonReleased(b dt.MouseButton) bool {
	return validButton(b) && h.input.btnReleased[b]
}

func (h *HAL) ClearMouseButtonPressed(b dt.MouseButton) {
	if validButton(b) {
		h.input.btnPressed[b] = false
	}
}

func (h *HAL) ClearMouseButtonReleased(b dt.MouseButton) {
	if validButton(b) {
		h.input.btnReleased[b] = false
	}
}

func (h *HAL) MousePosition() dt.Vec2 { return h.input.mouse }
func (h *HAL) MouseDelta() dt.Vec2    { return h.input.delta }
func (h *HAL) MouseWheel() float64    { return h.input.wheel }
func (h *HAL) ClearMouseWheel()       { h.input.wheel = 0 }
