package engine

// AgentSnapshot is the externally visible state of one agent.
type AgentSnapshot struct {
	Name    string
	X, Y    int
	Cell    Point
	Heading Heading
}

// Snapshot captures the round for rendering, determinism tests and replays.
type Snapshot struct {
	Tick        uint64
	State       RoundState
	Score       int
	Lives       int
	Boards      int
	Remaining   int
	Player      AgentSnapshot
	Desired     Heading
	Adversaries []AgentSnapshot
}

// Snapshot returns the current state of the round.
func (r *Round) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      r.tick,
		State:     r.state,
		Score:     r.player.Score,
		Lives:     r.player.Lives,
		Boards:    r.boards,
		Remaining: r.grid.Remaining(),
		Player: AgentSnapshot{
			Name:    "player",
			X:       r.player.X,
			Y:       r.player.Y,
			Cell:    r.player.CenterCell(r.grid),
			Heading: r.player.Heading,
		},
		Desired:     r.player.Desired,
		Adversaries: make([]AgentSnapshot, len(r.adversaries)),
	}

	for i, a := range r.adversaries {
		snap.Adversaries[i] = AgentSnapshot{
			Name:    a.Name,
			X:       a.X,
			Y:       a.Y,
			Cell:    a.CenterCell(r.grid),
			Heading: a.Heading,
		}
	}
	return snap
}
