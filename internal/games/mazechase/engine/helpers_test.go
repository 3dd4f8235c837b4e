package engine

// classicCodes is the reference maze: 20×15 with a tunnel on row 8.
var classicCodes = [][]int{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 1},
	{1, 2, 1, 1, 2, 1, 1, 1, 2, 1, 1, 2, 1, 1, 1, 2, 1, 1, 2, 1},
	{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1},
	{1, 2, 1, 1, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, 2, 1, 1, 2, 1},
	{1, 2, 2, 2, 2, 1, 2, 2, 2, 1, 1, 2, 2, 2, 1, 2, 2, 2, 2, 1},
	{1, 1, 1, 1, 2, 1, 1, 1, 0, 1, 1, 0, 1, 1, 1, 2, 1, 1, 1, 1},
	{1, 1, 1, 1, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 1, 1, 1, 1},
	{0, 0, 0, 0, 2, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 2, 0, 0, 0, 0},
	{1, 1, 1, 1, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 1, 1, 1, 1},
	{1, 1, 1, 1, 2, 1, 0, 1, 1, 1, 1, 1, 1, 0, 1, 2, 1, 1, 1, 1},
	{1, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 1},
	{1, 2, 1, 1, 2, 1, 1, 1, 2, 1, 1, 2, 1, 1, 1, 2, 1, 1, 2, 1},
	{1, 2, 2, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 2, 2, 1},
	{1, 1, 2, 1, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, 2, 1, 2, 1, 1},
}

const classicTunnelRow = 8

func classicGrid() *Grid {
	g, err := NewGrid(classicCodes, []int{classicTunnelRow})
	if err != nil {
		panic(err)
	}
	return g
}

// classicLayout puts the player at (10,13) and the given adversaries on the
// classic maze.
func classicLayout(adversaries ...AdversarySpawn) Layout {
	return Layout{
		Codes:       classicCodes,
		TunnelRows:  []int{classicTunnelRow},
		Player:      Point{X: 10, Y: 13},
		Adversaries: adversaries,
	}
}

// seqRand returns a fixed sequence of choices, wrapping around.
type seqRand struct {
	picks []int
	i     int
}

func (r *seqRand) Intn(n int) int {
	if len(r.picks) == 0 {
		return 0
	}
	v := r.picks[r.i%len(r.picks)] % n
	r.i++
	return v
}
