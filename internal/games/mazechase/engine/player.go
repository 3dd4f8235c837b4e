package engine

// Player is the user-controlled agent. A queued heading is adopted the moment
// it becomes legal, which lets the player turn into a corridor without
// stopping at the cell center.
type Player struct {
	Body
	Spawn   Point
	Speed   int
	Desired Heading // Queued heading, None when nothing is pending
	Score   int
	Lives   int
}

// NewPlayer creates a player standing still at its spawn cell.
func NewPlayer(spawn Point, cellSize, speed, lives int) *Player {
	return &Player{
		Body:  NewBody(spawn, cellSize, None),
		Spawn: spawn,
		Speed: speed,
		Lives: lives,
	}
}

// Queue replaces any pending heading request with h.
func (p *Player) Queue(h Heading) {
	p.Desired = h
}

// Respawn returns the player to its spawn cell. Score and lives are untouched.
func (p *Player) Respawn() {
	p.Body = NewBody(p.Spawn, p.Size, None)
	p.Desired = None
}

// Step advances the player by one tick and reports whether a collectible was
// consumed. points is added to the score for each collectible.
func (p *Player) Step(g *Grid, points int) bool {
	if p.Desired != None {
		if _, _, ok := p.Probe(p.Desired, p.Speed, g); ok {
			p.Heading = p.Desired
			p.Desired = None
		}
	}

	if _, _, moved := p.TryAdvance(p.Heading, p.Speed, g); !moved {
		return false
	}

	c := p.CenterCell(g)
	if !g.ConsumeIfCollectible(c.X, c.Y) {
		return false
	}
	p.Score += points
	return true
}
