// Package ray walks a sheet along a direction and collects the occupants it
// meets.
//
// A [Ray] is a transient query built per call. [Cast] follows one direction;
// [Line] combines a ray with its mirror image to answer "which cards share
// this line". The shift engine uses StopAtFirstNull rays to find the
// contiguous chain that has to move together.
package ray

import (
	"slices"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/sheet"
)

// NullBehavior controls what a ray does when it reaches an empty cell.
type NullBehavior int

const (
	// StopAtFirstNull ends the walk at the first empty cell. Used to find a
	// contiguous chain starting at the ray origin.
	StopAtFirstNull NullBehavior = iota
	// ContinueThroughNulls visits every cell up to the distance limit and
	// collects only the occupied ones.
	ContinueThroughNulls
)

// String returns the behavior name.
func (b NullBehavior) String() string {
	if b == ContinueThroughNulls {
		return "continue"
	}
	return "stop"
}

// Ray describes a directional query over one layer of a sheet.
type Ray struct {
	Start     grid.Point
	Direction grid.Point
	Layer     grid.Layer
	// SheetID, when set, must match the sheet the ray is cast on.
	SheetID string
	// MaxDistance limits the number of steps. Zero or negative means the walk
	// continues until it leaves the sheet extent.
	MaxDistance  int
	Nulls        NullBehavior
	IncludeStart bool
}

// Validate checks the ray's preconditions.
func (r Ray) Validate() error {
	return errors.ValidateDirection(r.Direction)
}

// Reverse returns the mirror ray. The start cell is never included so that a
// ray and its reverse together count the start at most once.
func (r Ray) Reverse() Ray {
	r.Direction = r.Direction.Neg()
	r.IncludeStart = false
	return r
}

// Cast walks s along r and returns the occupants met, nearest first.
// A ray whose start lies outside the sheet extent yields nothing.
func Cast[T sheet.Keyed](s *sheet.Sheet[T], r Ray) ([]sheet.Entry[T], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.SheetID != "" && r.SheetID != s.ID() {
		return nil, errors.New(errors.ErrCodeInvalidSheet, "ray targets sheet %q, cast on %q", r.SheetID, s.ID())
	}
	if !s.InBounds(r.Start) {
		return nil, nil
	}

	var out []sheet.Entry[T]
	for p, k := r.Start, 0; ; k++ {
		if k > 0 || r.IncludeStart {
			if !s.InBounds(p) {
				break
			}
			item, ok := s.Get(p, r.Layer)
			if ok {
				out = append(out, sheet.Entry[T]{Item: item, Point: p, Layer: r.Layer})
			} else if r.Nulls == StopAtFirstNull {
				break
			}
		}
		if r.MaxDistance > 0 && k >= r.MaxDistance {
			break
		}
		next, ok := p.AddChecked(r.Direction)
		if !ok {
			break
		}
		p = next
	}
	return out, nil
}

// Line returns every occupant on the line through r.Start along r.Direction,
// ordered from the far end behind the start to the far end ahead of it. The
// start cell appears at most once, and only when r.IncludeStart is set.
func Line[T sheet.Keyed](s *sheet.Sheet[T], r Ray) ([]sheet.Entry[T], error) {
	ahead, err := Cast(s, r)
	if err != nil {
		return nil, err
	}
	behind, err := Cast(s, r.Reverse())
	if err != nil {
		return nil, err
	}
	slices.Reverse(behind)
	return append(behind, ahead...), nil
}
