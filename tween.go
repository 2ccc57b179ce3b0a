package dreamtable

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Glide animates a camera target towards a point. It is attached to the
// camera entity and removed once both axes arrive.
type Glide struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// NewGlide creates a glide from one point to another over seconds.
func NewGlide(from, to Vec2, seconds float32, easeFn ease.TweenFunc) Glide {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	return Glide{
		tweenX: gween.New(float32(from.X), float32(to.X), seconds, easeFn),
		tweenY: gween.New(float32(from.Y), float32(to.Y), seconds, easeFn),
	}
}

// step advances the glide by dt seconds, writing into target. It reports
// whether the glide has finished.
func (g *Glide) step(dt float32, target *Vec2) bool {
	if g.tweenX == nil || g.tweenY == nil {
		return true
	}
	if !g.doneX {
		v, done := g.tweenX.Update(dt)
		target.X = float64(v)
		g.doneX = done
	}
	if !g.doneY {
		v, done := g.tweenY.Update(dt)
		target.Y = float64(v)
		g.doneY = done
	}
	return g.doneX && g.doneY
}
