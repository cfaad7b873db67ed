package grid

import "math"

// Vec is a continuous position in world units, typically the pending position
// of a card that is being dragged.
type Vec struct {
	X float64
	Y float64
}

// Snap returns the grid cell nearest to v for the given cell size.
// Halves round away from zero. A non-positive cellSize is treated as 1.
// The result is false when v is not finite or its cell falls outside the
// int32 coordinate range.
func (v Vec) Snap(cellSize float64) (Point, bool) {
	if cellSize <= 0 {
		cellSize = 1
	}
	x, okX := snapAxis(v.X / cellSize)
	y, okY := snapAxis(v.Y / cellSize)
	if !okX || !okY {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

func snapAxis(f float64) (int32, bool) {
	r := math.Round(f)
	// NaN fails both comparisons.
	if !(r >= math.MinInt32 && r <= math.MaxInt32) {
		return 0, false
	}
	return int32(r), true
}

// VecOf returns the world position of the centre of cell p.
func VecOf(p Point, cellSize float64) Vec {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Vec{X: float64(p.X) * cellSize, Y: float64(p.Y) * cellSize}
}
