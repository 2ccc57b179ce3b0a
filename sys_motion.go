package dreamtable

import (
	"math"

	"go.uber.org/zap"
)

// MotionSystem integrates velocity into position and applies friction.
type MotionSystem struct{}

func (MotionSystem) Process(w *World, _ *Context, _ HAL) {
	Each2(w.C.Velocity, w.C.Position, func(_ Entity, vel *Velocity, pos *Position) {
		pos.Vec2 = pos.Add(vel.Vec2)
		vel.Vec2 = vel.Scale(vel.Friction)
		if math.Abs(vel.X) < Epsilon {
			vel.X = 0
		}
		if math.Abs(vel.Y) < Epsilon {
			vel.Y = 0
		}
	})
}

// WanderingSystem kicks wandering entities in a random direction every
// Interval ticks.
type WanderingSystem struct{}

func (WanderingSystem) Process(w *World, _ *Context, _ HAL) {
	Each2(w.C.Wandering, w.C.Velocity, func(_ Entity, wd *Wandering, vel *Velocity) {
		wd.Tick--
		if wd.Tick > 0 {
			return
		}
		wd.Tick = wd.Interval
		angle := w.Rand().Float64() * 2 * math.Pi
		vel.Vec2 = Vec2{math.Cos(angle), math.Sin(angle)}.Scale(wd.Force)
	})
}

// EggTimerSystem hatches eggs into tiny friends. The timer is swapped for
// the friend's components within the same frame.
type EggTimerSystem struct{}

func (EggTimerSystem) Process(w *World, _ *Context, _ HAL) {
	w.C.EggTimer.Each(func(e Entity, t *EggTimer) {
		t.TicksLeft--
		if t.TicksLeft > 0 {
			return
		}
		Hatch(w, e)
	})
}

// Hatch turns the egg e into a tiny friend immediately.
func Hatch(w *World, e Entity) {
	rng := w.Rand()
	w.C.EggTimer.Remove(e)
	w.AddComponent(e,
		Velocity{Friction: 0.8},
		Wandering{Interval: 100, Tick: 100, Force: 1 + rng.Float64()*3},
		TinyFriend{Kind: rng.IntN(4)},
		Name{Label: "A tiny friend"},
	)
	if !w.C.SpriteRegion.Has(e) {
		w.AddComponent(e, SpriteRegion{Tint: ColorWhite})
	}
	w.Log().Debug("egg hatched", zap.Uint64("entity", uint64(e)))
}

// TinyFriendSystem points each friend's sprite in its direction of travel.
type TinyFriendSystem struct{}

func (TinyFriendSystem) Process(w *World, _ *Context, _ HAL) {
	Each3(w.C.TinyFriend, w.C.Velocity, w.C.SpriteRegion, func(_ Entity, f *TinyFriend, vel *Velocity, spr *SpriteRegion) {
		if math.Abs(vel.X) > Epsilon || math.Abs(vel.Y) > Epsilon {
			f.Angle = (math.Atan2(vel.Y, vel.X) + math.Pi) / (2 * math.Pi)
		}
		spr.Offset = Vec2{float64(f.Kind*4) * 16, float64(friendFacing(f.Angle)) * 16}
	})
}

// friendFacing maps a heading in turns to a sprite sheet row.
func friendFacing(angle float64) int {
	switch {
	case angle < 0.125:
		return 1
	case angle < 0.375:
		return 3
	case angle < 0.625:
		return 2
	case angle < 0.875:
		return 0
	default:
		return 1
	}
}
