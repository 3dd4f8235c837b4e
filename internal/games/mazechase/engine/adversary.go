package engine

import "fmt"

// Rand is the random source used for adversary decisions. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// DeadEndPolicy decides what a blocked adversary does when no heading other
// than the reverse is open.
type DeadEndPolicy int

const (
	// DeadEndReverse turns the adversary around.
	DeadEndReverse DeadEndPolicy = iota
	// DeadEndWait leaves the adversary where it is.
	DeadEndWait
)

func (p DeadEndPolicy) String() string {
	switch p {
	case DeadEndReverse:
		return "reverse"
	case DeadEndWait:
		return "wait"
	default:
		return "unknown"
	}
}

// ParseDeadEndPolicy converts a config value into a policy. Empty means
// DeadEndReverse.
func ParseDeadEndPolicy(s string) (DeadEndPolicy, error) {
	switch s {
	case "reverse", "":
		return DeadEndReverse, nil
	case "wait":
		return DeadEndWait, nil
	}
	return DeadEndReverse, fmt.Errorf("engine: unknown dead-end policy %q", s)
}

// Adversary is an autonomous chaser. It keeps its heading until blocked, then
// picks a new one at random among the open, non-reversing headings.
type Adversary struct {
	Body
	Spawn        Point
	SpawnHeading Heading
	Speed        int
	Name         string
	Policy       DeadEndPolicy
}

// NewAdversary creates an adversary at its spawn cell.
func NewAdversary(spawn Point, heading Heading, name string, cellSize, speed int, policy DeadEndPolicy) *Adversary {
	return &Adversary{
		Body:         NewBody(spawn, cellSize, heading),
		Spawn:        spawn,
		SpawnHeading: heading,
		Speed:        speed,
		Name:         name,
		Policy:       policy,
	}
}

// Respawn returns the adversary to its spawn cell and heading.
func (a *Adversary) Respawn() {
	a.Body = NewBody(a.Spawn, a.Size, a.SpawnHeading)
}

// Step advances the adversary by one tick and reports whether it moved.
// A tick that changes heading never also moves.
func (a *Adversary) Step(g *Grid, rng Rand) bool {
	if _, _, moved := a.TryAdvance(a.Heading, a.Speed, g); moved {
		return true
	}

	if open := a.OpenHeadings(g); len(open) > 0 {
		a.Heading = open[rng.Intn(len(open))]
		return false
	}

	back := a.Heading.Reverse()
	if a.Policy == DeadEndReverse && back != None {
		if _, _, ok := a.Probe(back, a.Speed, g); ok {
			a.Heading = back
		}
	}
	return false
}

// OpenHeadings lists the legal headings other than the current one and its
// reverse.
func (a *Adversary) OpenHeadings(g *Grid) []Heading {
	back := a.Heading.Reverse()
	open := make([]Heading, 0, len(cardinals))
	for _, h := range cardinals {
		if h == a.Heading || h == back {
			continue
		}
		if _, _, ok := a.Probe(h, a.Speed, g); ok {
			open = append(open, h)
		}
	}
	return open
}
