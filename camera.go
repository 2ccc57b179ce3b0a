package dreamtable

import "math"

// Camera2D maps a space onto the screen:
//
//	screen = Rotate(Rotation) * Scale(Zoom) * (p - Target) + Offset
//
// Target is the point shown at Offset on screen. Rotation is in radians.
type Camera2D struct {
	Target   Vec2
	Offset   Vec2
	Rotation float64
	Zoom     float64
}

// Matrix returns the view matrix of the camera as {a, b, c, d, tx, ty},
// mapping (x, y) to (a*x + c*y + tx, b*x + d*y + ty).
//
//	[z*cos  -z*sin  ox - z*(cos*Tx - sin*Ty)]
//	[z*sin   z*cos  oy - z*(sin*Tx + cos*Ty)]
func (c Camera2D) Matrix() [6]float64 {
	cos := math.Cos(c.Rotation)
	sin := math.Sin(c.Rotation)
	z := c.Zoom
	tx := c.Offset.X - z*(cos*c.Target.X-sin*c.Target.Y)
	ty := c.Offset.Y - z*(sin*c.Target.X+cos*c.Target.Y)
	return [6]float64{z * cos, z * sin, -z * sin, z * cos, tx, ty}
}

// WorldToScreen converts a point of the camera's space to screen pixels.
func (c Camera2D) WorldToScreen(p Vec2) Vec2 {
	return transformPoint(c.Matrix(), p)
}

// ScreenToWorld converts screen pixels to the camera's space. A camera with
// zero zoom is singular and maps every point through the identity.
func (c Camera2D) ScreenToWorld(p Vec2) Vec2 {
	return transformPoint(invertAffine(c.Matrix()), p)
}

// VisibleBounds returns the axis-aligned rect of the camera's space that is
// visible on a screen of the given size.
func (c Camera2D) VisibleBounds(screen Vec2) Rect {
	inv := invertAffine(c.Matrix())
	p0 := transformPoint(inv, Vec2{0, 0})
	p1 := transformPoint(inv, Vec2{screen.X, 0})
	p2 := transformPoint(inv, screen)
	p3 := transformPoint(inv, Vec2{0, screen.Y})

	minX := math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X))
	minY := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	maxX := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	maxY := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MinZoom is the smallest zoom the spring can reach.
const MinZoom = 0.05

// stepZoom advances the damped zoom spring by one frame. The zoom moves
// proportionally to itself so zooming feels uniform at every scale.
func (c *Camera) stepZoom() {
	c.Zoom += c.ZoomVelocity * c.Zoom
	c.ZoomVelocity *= c.ZoomFriction
	if math.Abs(c.ZoomVelocity) < Epsilon {
		c.ZoomVelocity = 0
	}
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
		c.ZoomVelocity = max(c.ZoomVelocity, 0)
	}
}
