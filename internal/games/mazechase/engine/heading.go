// Package engine implements the movement, collision and adversary-decision
// rules of Maze Chase. It is pure game logic: no rendering, no input polling,
// no timing. The caller drives it one tick at a time.
package engine

import "fmt"

// Heading is a cardinal direction of travel, or None.
type Heading int

const (
	None Heading = iota
	Up
	Down
	Left
	Right
)

// cardinals lists the headings an adversary considers, in evaluation order.
var cardinals = [...]Heading{Right, Left, Down, Up}

// Delta returns the unit grid vector for the heading.
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Reverse returns the opposite heading. None reverses to None.
func (h Heading) Reverse() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseHeading converts a name produced by String back into a Heading.
// An empty string parses as None.
func ParseHeading(s string) (Heading, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("engine: unknown heading %q", s)
}
