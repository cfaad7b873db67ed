package grid

import (
	"fmt"
	"strings"
)

// Compass directions. Y grows upward.
var (
	North     = Point{X: 0, Y: 1}
	NorthEast = Point{X: 1, Y: 1}
	East      = Point{X: 1, Y: 0}
	SouthEast = Point{X: 1, Y: -1}
	South     = Point{X: 0, Y: -1}
	SouthWest = Point{X: -1, Y: -1}
	West      = Point{X: -1, Y: 0}
	NorthWest = Point{X: -1, Y: 1}
)

// Screen-style aliases.
var (
	Up    = North
	Down  = South
	Left  = West
	Right = East
)

// DefaultShiftDirection is the axis along which cards are pushed to make room.
var DefaultShiftDirection = Down

// Neighbors8 lists the eight neighbor offsets clockwise from north-west.
// The order is part of the contract: cluster traversal depends on it.
var Neighbors8 = [8]Point{NorthWest, North, NorthEast, East, SouthEast, South, SouthWest, West}

var directionNames = map[string]Point{
	"n": North, "north": North, "up": Up,
	"ne": NorthEast, "northeast": NorthEast,
	"e": East, "east": East, "right": Right,
	"se": SouthEast, "southeast": SouthEast,
	"s": South, "south": South, "down": Down,
	"sw": SouthWest, "southwest": SouthWest,
	"w": West, "west": West, "left": Left,
	"nw": NorthWest, "northwest": NorthWest,
}

// ParseDirection resolves a direction name such as "down", "ne" or "West".
func ParseDirection(name string) (Point, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if d, ok := directionNames[key]; ok {
		return d, nil
	}
	return Point{}, fmt.Errorf("unknown direction %q", name)
}

// DirectionName returns the compass name of a unit direction, or the point's
// string form when it is not one of the eight compass directions.
func DirectionName(d Point) string {
	switch d {
	case North:
		return "north"
	case NorthEast:
		return "northeast"
	case East:
		return "east"
	case SouthEast:
		return "southeast"
	case South:
		return "south"
	case SouthWest:
		return "southwest"
	case West:
		return "west"
	case NorthWest:
		return "northwest"
	}
	return d.String()
}
