package selection

import "fmt"

// Point is a position in screen space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Vec3 is a position in world space, the anchor an entity is projected from.
type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle in screen space.
// Rectangles built with NormalizeRect always have Min <= Max on both axes.
type Rect struct {
	Min, Max Point
}

// NormalizeRect returns the bounding box of a and b. The order of the arguments
// does not matter, so a drag in any direction yields the same rectangle.
func NormalizeRect(a, b Point) Rect {
	return Rect{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// Contains reports whether p lies inside r. Points on the edges count as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// IsZero reports whether r is the zero Rect, which the engine emits to hide the overlay.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Inset grows r by d on every side, or shrinks it when d is negative.
// The result is normalized again so it never inverts.
func (r Rect) Inset(d float64) Rect {
	if r.Width()+2*d < 0 || r.Height()+2*d < 0 {
		c := Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
		return Rect{Min: c, Max: c}
	}
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
