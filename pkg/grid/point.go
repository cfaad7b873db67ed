package grid

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Point is a cell coordinate on the grid.
type Point struct {
	X int32
	Y int32
}

// P is a convenience constructor for Point.
func P(x, y int32) Point {
	return Point{X: x, Y: y}
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// AddChecked returns p+q and false when either component would leave the
// int32 range.
func (p Point) AddChecked(q Point) (Point, bool) {
	x := int64(p.X) + int64(q.X)
	y := int64(p.Y) + int64(q.Y)
	if !fits32(x) || !fits32(y) {
		return Point{}, false
	}
	return Point{X: int32(x), Y: int32(y)}, true
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// SubChecked is the overflow-aware form of Sub.
func (p Point) SubChecked(q Point) (Point, bool) {
	x := int64(p.X) - int64(q.X)
	y := int64(p.Y) - int64(q.Y)
	if !fits32(x) || !fits32(y) {
		return Point{}, false
	}
	return Point{X: int32(x), Y: int32(y)}, true
}

// Scale multiplies both components by k.
func (p Point) Scale(k int32) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Neg returns the point mirrored through the origin.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of p and q. Used to project points onto a
// direction vector.
func (p Point) Dot(q Point) int64 {
	return int64(p.X)*int64(q.X) + int64(p.Y)*int64(q.Y)
}

// Equal reports whether p and q name the same cell.
func (p Point) Equal(q Point) bool {
	return p == q
}

// IsZero reports whether p is the origin. A zero point is not a valid direction.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// ChebyshevTo returns the king-move distance between p and q.
func (p Point) ChebyshevTo(q Point) int32 {
	return max(abs32(p.X-q.X), abs32(p.Y-q.Y))
}

// Unit reduces p to a direction with each component in {-1, 0, 1}.
func (p Point) Unit() Point {
	return Point{X: sign32(p.X), Y: sign32(p.Y)}
}

// CompareByDirection orders a and b by their projection onto dir.
// It returns a negative number when a lies "behind" b relative to dir.
func CompareByDirection(a, b, dir Point) int {
	return cmp.Compare(a.Dot(dir), b.Dot(dir))
}

// SortByDirection sorts points in place by ascending projection onto dir.
// Points with equal projection keep their relative order.
func SortByDirection(points []Point, dir Point) {
	slices.SortStableFunc(points, func(a, b Point) int {
		return CompareByDirection(a, b, dir)
	})
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func fits32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func sign32(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
