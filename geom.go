package dreamtable

import "math"

// Epsilon is the threshold under which velocities and zoom velocities are
// snapped to zero.
const Epsilon = 1e-5

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Div(s float64) Vec2   { return Vec2{v.X / s, v.Y / s} }
func (v Vec2) Floor() Vec2          { return Vec2{math.Floor(v.X), math.Floor(v.Y)} }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) Mul(o Vec2) Vec2      { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Length() float64      { return math.Hypot(v.X, v.Y) }
func (v Vec2) Equal(o Vec2) bool    { return v.X == o.X && v.Y == o.Y }
func (v Vec2) Near(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) < eps && math.Abs(v.Y-o.Y) < eps
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFrom builds a Rect from a position and a size.
func RectFrom(pos, size Vec2) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y}
}

func (r Rect) Pos() Vec2  { return Vec2{r.X, r.Y} }
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Contains reports whether p lies inside the rectangle. The right and bottom
// edges are exclusive, so adjacent rects never both contain a point.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects reports whether r and other overlap with a non-empty area.
// Rects sharing only an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// AABB returns the rect spanned by two corner points with the origin
// floor-snapped and the extent ceil-snapped to the snap grid. A zero snap
// component disables snapping on that axis.
//
//	AABB(V(10, 10), V(3, 27), V(8, 8)) == Rect{0, 8, 16, 24}
func AABB(a, b, snap Vec2) Rect {
	x1, x2 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y1, y2 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	x := floorTo(x1, snap.X)
	y := floorTo(y1, snap.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  ceilTo(x2-x, snap.X),
		Height: ceilTo(y2-y, snap.Y),
	}
}

func floorTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Floor(v/step) * step
}

func ceilTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step) * step
}

// RasterLine calls plot for every integer pixel on the Bresenham line from a
// to b, both ends included.
func RasterLine(a, b Vec2, plot func(x, y int)) {
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Floor(b.X)), int(math.Floor(b.Y))
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// --- Affine helpers ---
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |

var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

func transformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}
