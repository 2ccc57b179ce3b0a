package haltest

import (
	"fmt"
	"strings"

	dt "github.com/phanxgames/dreamtable"
	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Button string  `yaml:"button,omitempty"`
	Key    string  `yaml:"key,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Amount float64 `yaml:"amount,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script sequences input actions across frames. Attach it with
// HAL.SetScript; it feeds the inject queue and waits for it to drain
// before moving to the next step.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var buttonNames = map[string]dt.MouseButton{
	"":       dt.MouseLeft,
	"left":   dt.MouseLeft,
	"right":  dt.MouseRight,
	"middle": dt.MouseMiddle,
}

var keyNames = map[string]dt.Key{
	"q":      dt.KeyQ,
	"w":      dt.KeyW,
	"e":      dt.KeyE,
	"r":      dt.KeyR,
	"t":      dt.KeyT,
	"y":      dt.KeyY,
	"u":      dt.KeyU,
	"i":      dt.KeyI,
	"s":      dt.KeyS,
	"1":      dt.Key1,
	"2":      dt.Key2,
	"3":      dt.Key3,
	"4":      dt.Key4,
	"home":   dt.KeyHome,
	"delete": dt.KeyDelete,
	"alt":    dt.KeyLeftAlt,
	"ctrl":   dt.KeyLeftControl,
	"rctrl":  dt.KeyRightControl,
	"escape": dt.KeyEscape,
}

// LoadScript parses a YAML (or JSON) input script:
//
//	steps:
//	  - {action: click, x: 10, y: 4}
//	  - {action: drag, button: right, fromX: 0, fromY: 0, toX: 40, toY: 40, frames: 5}
//	  - {action: keydown, key: ctrl}
//	  - {action: tap, key: s}
//	  - {action: keyup, key: ctrl}
//	  - {action: wheel, amount: 1}
//	  - {action: wait, frames: 10}
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

func (st scriptStep) validate() error {
	if _, ok := buttonNames[strings.ToLower(st.Button)]; !ok {
		return fmt.Errorf("unknown button %q", st.Button)
	}
	switch st.Action {
	case "click", "press", "release", "move", "hover", "drag", "wheel", "wait":
		return nil
	case "tap", "keydown", "keyup":
		if _, ok := keyNames[strings.ToLower(st.Key)]; !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// SetScript attaches a script. Its steps run from the next Step call.
func (h *HAL) SetScript(s *Script) { h.script = s }

// Done reports whether every step has been executed.
func (s *Script) Done() bool { return s.done }

func (s *Script) step(h *HAL) {
	if s.done || len(h.queue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++
	b := buttonNames[strings.ToLower(st.Button)]
	k := keyNames[strings.ToLower(st.Key)]

	switch st.Action {
	case "click":
		h.InjectClick(b, st.X, st.Y)
	case "press":
		h.InjectPress(b, st.X, st.Y)
	case "release":
		h.InjectRelease(b, st.X, st.Y)
	case "move":
		h.InjectMove(b, st.X, st.Y)
	case "hover":
		h.InjectHover(st.X, st.Y)
	case "drag":
		h.InjectDrag(b, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "tap":
		h.InjectKeyTap(k)
	case "keydown":
		h.InjectKey(k, true)
	case "keyup":
		h.InjectKey(k, false)
	case "wheel":
		h.InjectWheel(st.Amount)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(h.queue) == 0 {
		s.done = true
	}
}
