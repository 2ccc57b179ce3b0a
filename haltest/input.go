package haltest

import dt "github.com/phanxgames/dreamtable"

// inputState holds raw device state plus the per-frame edges derived from
// it. Raw state changes between frames; edges are computed once per frame
// in snapshot.
type inputState struct {
	keys     map[dt.Key]bool
	prevKeys map[dt.Key]bool
	pressed  map[dt.Key]bool
	released map[dt.Key]bool

	buttons     [3]bool
	prevButtons [3]bool
	btnPressed  [3]bool
	btnReleased [3]bool

	mouse     dt.Vec2
	prevMouse dt.Vec2
	delta     dt.Vec2

	pendingWheel float64
	wheel        float64
}

func newInputState() inputState {
	return inputState{
		keys:     make(map[dt.Key]bool),
		prevKeys: make(map[dt.Key]bool),
		pressed:  make(map[dt.Key]bool),
		released: make(map[dt.Key]bool),
	}
}

func (s *inputState) snapshot() {
	clear(s.pressed)
	clear(s.released)
	for _, k := range dt.Keys {
		now, was := s.keys[k], s.prevKeys[k]
		s.pressed[k] = now && !was
		s.released[k] = !now && was
	}
	for i := range s.buttons {
		s.btnPressed[i] = s.buttons[i] && !s.prevButtons[i]
		s.btnReleased[i] = !s.buttons[i] && s.prevButtons[i]
	}
	s.delta = s.mouse.Sub(s.prevMouse)
	s.wheel = s.pendingWheel
	s.pendingWheel = 0
}

func (s *inputState) endFrame() {
	clear(s.prevKeys)
	for k, v := range s.keys {
		s.prevKeys[k] = v
	}
	s.prevButtons = s.buttons
	s.prevMouse = s.mouse
}

func validButton(b dt.MouseButton) bool { return b >= 0 && int(b) < 3 }

// --- Direct control ---

// MoveMouse sets the pointer position for the next frame.
func (h *HAL) MoveMouse(x, y float64) { h.input.mouse = dt.Vec2{X: x, Y: y} }

// Hold presses b for the next frame and keeps it down until Release.
func (h *HAL) Hold(b dt.MouseButton) {
	if validButton(b) {
		h.input.buttons[b] = true
	}
}

// Release lifts b for the next frame.
func (h *HAL) Release(b dt.MouseButton) {
	if validButton(b) {
		h.input.buttons[b] = false
	}
}

// HoldKey presses k until ReleaseKey.
func (h *HAL) HoldKey(k dt.Key) { h.input.keys[k] = true }

// ReleaseKey lifts k.
func (h *HAL) ReleaseKey(k dt.Key) { h.input.keys[k] = false }

// Scroll adds wheel movement to the next frame.
func (h *HAL) Scroll(v float64) { h.input.pendingWheel += v }

// --- Input interface ---

func (h *HAL) IsKeyDown(k dt.Key) bool     { return h.input.keys[k] }
func (h *HAL) IsKeyPressed(k dt.Key) bool  { return h.input.pressed[k] }
func (h *HAL) IsKeyReleased(k dt.Key) bool { return h.input.released[k] }
func (h *HAL) ClearKeyPressed(k dt.Key)    { h.input.pressed[k] = false }
func (h *HAL) ClearKeyReleased(k dt.Key)   { h.input.released[k] = false }

func (h *HAL) IsMouseButtonDown(b dt.MouseButton) bool {
	return validButton(b) && h.input.buttons[b]
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

// --- Synthetic event queue ---

type eventKind uint8

const (
	evtPointer eventKind = iota
	evtKey
	evtWheel
	evtIdle
)

// event is one queued input change. Each event consumes one frame.
type event struct {
	kind   eventKind
	pos    dt.Vec2
	button dt.MouseButton
	down   bool
	key    dt.Key
	wheel  float64
}

func (e event) apply(s *inputState) {
	switch e.kind {
	case evtPointer:
		s.mouse = e.pos
		if validButton(e.button) {
			s.buttons[e.button] = e.down
		}
	case evtKey:
		s.keys[e.key] = e.down
	case evtWheel:
		s.pendingWheel += e.wheel
	}
}

// InjectPress queues a press of b at the given screen coordinates.
func (h *HAL) InjectPress(b dt.MouseButton, x, y float64) {
	h.queue = append(h.queue, event{kind: evtPointer, pos: dt.Vec2{X: x, Y: y}, button: b, down: true})
}

// InjectMove queues a pointer move with b held. Use it between InjectPress
// and InjectRelease to simulate a drag.
func (h *HAL) InjectMove(b dt.MouseButton, x, y float64) {
	h.queue = append(h.queue, event{kind: evtPointer, pos: dt.Vec2{X: x, Y: y}, button: b, down: true})
}

// InjectHover queues a pointer move with no button change.
func (h *HAL) InjectHover(x, y float64) {
	h.queue = append(h.queue, event{kind: evtPointer, pos: dt.Vec2{X: x, Y: y}, button: -1})
}

// InjectRelease queues a release of b at the given screen coordinates.
func (h *HAL) InjectRelease(b dt.MouseButton, x, y float64) {
	h.queue = append(h.queue, event{kind: evtPointer, pos: dt.Vec2{X: x, Y: y}, button: b, down: false})
}

// InjectClick queues a press followed by a release. Consumes two frames.
func (h *HAL) InjectClick(b dt.MouseButton, x, y float64) {
	h.InjectPress(b, x, y)
	h.InjectRelease(b, x, y)
}

// InjectDrag queues a press at from, frames-2 interpolated moves and a
// release at to. The sequence consumes at least two frames.
func (h *HAL) InjectDrag(b dt.MouseButton, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(b, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(b, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease(b, toX, toY)
}

// InjectKey queues a key state change.
func (h *HAL) InjectKey(k dt.Key, down bool) {
	h.queue = append(h.queue, event{kind: evtKey, key: k, down: down})
}

// InjectKeyTap queues a key press followed by its release.
func (h *HAL) InjectKeyTap(k dt.Key) {
	h.InjectKey(k, true)
	h.InjectKey(k, false)
}

// InjectWheel queues wheel movement.
func (h *HAL) InjectWheel(v float64) {
	h.queue = append(h.queue, event{kind: evtWheel, wheel: v})
}

// InjectWait queues frames with no input change.
func (h *HAL) InjectWait(frames int) {
	for range frames {
		h.queue = append(h.queue, event{kind: evtIdle})
	}
}
