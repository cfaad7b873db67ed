package grid

import "fmt"

// Rect is an inclusive axis-aligned rectangle of cells.
// Min holds the smallest X and Y, Max the largest. The zero Rect is the single
// cell at the origin; use [Rect.Empty] on rectangles built by hand.
type Rect struct {
	Min Point
	Max Point
}

// NewRect returns the rectangle spanning a and b in any corner order.
func NewRect(a, b Point) Rect {
	return Rect{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// BoundsOf returns the smallest rectangle containing every point.
// The second result is false when points is empty.
func BoundsOf(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r = r.Expand(p)
	}
	return r, true
}

// String returns the rectangle as "[min..max]".
func (r Rect) String() string {
	return fmt.Sprintf("[%s..%s]", r.Min, r.Max)
}

// Empty reports whether Min lies beyond Max on either axis.
func (r Rect) Empty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width is the number of columns covered.
func (r Rect) Width() int64 {
	if r.Empty() {
		return 0
	}
	return int64(r.Max.X) - int64(r.Min.X) + 1
}

// Height is the number of rows covered.
func (r Rect) Height() int64 {
	if r.Empty() {
		return 0
	}
	return int64(r.Max.Y) - int64(r.Min.Y) + 1
}

// Area is the number of cells covered.
func (r Rect) Area() int64 {
	return r.Width() * r.Height()
}

// TopLeft returns the corner with the smallest X and largest Y.
func (r Rect) TopLeft() Point { return Point{X: r.Min.X, Y: r.Max.Y} }

// TopRight returns the corner with the largest X and Y.
func (r Rect) TopRight() Point { return r.Max }

// BottomRight returns the corner with the largest X and smallest Y.
func (r Rect) BottomRight() Point { return Point{X: r.Max.X, Y: r.Min.Y} }

// BottomLeft returns the corner with the smallest X and Y.
func (r Rect) BottomLeft() Point { return r.Min }

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft()}
}

// SpacesTaken enumerates every cell in r, rows from top to bottom and
// each row from left to right.
func (r Rect) SpacesTaken() []Point {
	if r.Empty() {
		return nil
	}
	out := make([]Point, 0, r.Area())
	for y := r.Max.Y; ; y-- {
		for x := r.Min.X; ; x++ {
			out = append(out, Point{X: x, Y: y})
			if x == r.Max.X {
				break
			}
		}
		if y == r.Min.Y {
			break
		}
	}
	return out
}

// Expand returns the smallest rectangle containing r and p.
func (r Rect) Expand(p Point) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, p.X), Y: min(r.Min.Y, p.Y)},
		Max: Point{X: max(r.Max.X, p.X), Y: max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return r.Expand(o.Min).Expand(o.Max)
}
