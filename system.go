package dreamtable

import "fmt"

// Phase groups systems within a frame. Phases run in ascending order and
// systems within a phase run in registration order.
type Phase int

const (
	PhaseContext Phase = iota // publish cameras and pointer state
	PhaseControl              // input, tools, gameplay
	PhaseRender               // draw calls only
	PhaseCleanup              // resource release and entity removal
)

func (p Phase) String() string {
	switch p {
	case PhaseContext:
		return "context"
	case PhaseControl:
		return "control"
	case PhaseRender:
		return "render"
	case PhaseCleanup:
		return "cleanup"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// System is one step of the frame pipeline. Process is called exactly once
// per frame and must not block.
type System interface {
	Process(w *World, ctx *Context, hal HAL)
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(w *World, ctx *Context, hal HAL)

func (f SystemFunc) Process(w *World, ctx *Context, hal HAL) { f(w, ctx, hal) }

type registeredSystem struct {
	name   string
	phase  Phase
	system System
}
