package engine

import (
	"math/rand"
	"testing"
)

func TestLeftFromColumnZeroWraps(t *testing.T) {
	g := classicGrid()
	b := NewBody(Point{X: 0, Y: classicTunnelRow}, 40, Left)

	x, y, moved := b.TryAdvance(Left, 5, g)
	if !moved {
		t.Fatal("Moving left through the tunnel should succeed")
	}
	if x != 19*40 || y != classicTunnelRow*40 {
		t.Errorf("TryAdvance() = (%d, %d), expected (%d, %d)", x, y, 19*40, classicTunnelRow*40)
	}
	if b.X != x || b.Y != y {
		t.Error("TryAdvance should commit the move")
	}
}

func TestRightEdgeWrapsToZero(t *testing.T) {
	g := classicGrid()
	b := NewBody(Point{X: 19, Y: classicTunnelRow}, 40, Right)
	span := g.Width() * 40

	for i := 1; i <= 8; i++ {
		x, _, moved := b.TryAdvance(Right, 5, g)
		if !moved {
			t.Fatalf("Step %d should move through the tunnel", i)
		}
		if x < 0 || x >= span {
			t.Fatalf("Step %d left x=%d outside [0, %d)", i, x, span)
		}
	}
	if b.X != 0 {
		t.Errorf("After crossing the edge x = %d, expected 0", b.X)
	}
	if c := b.Cell(g); c.X != 0 || c.Y != classicTunnelRow {
		t.Errorf("Cell() = %+v, expected (0, %d)", c, classicTunnelRow)
	}
}

func TestWallBlocksMove(t *testing.T) {
	g := classicGrid()
	b := NewBody(Point{X: 10, Y: 13}, 40, None)

	x, y, moved := b.TryAdvance(Down, 5, g)
	if moved {
		t.Fatal("Moving into the wall below should fail")
	}
	if x != 400 || y != 520 || b.X != 400 || b.Y != 520 {
		t.Errorf("Blocked move changed position to (%d, %d)", b.X, b.Y)
	}
}

func TestCornerTestCoversPartialOverlap(t *testing.T) {
	g := classicGrid()
	// Halfway between (10,13) and (11,13); the cell above 11 is open but
	// the cell above 10 is a wall, so turning up must fail.
	b := Body{X: 420, Y: 520, Size: 40, Heading: Right}

	if _, _, ok := b.Probe(Up, 5, g); ok {
		t.Error("Probe should fail while any corner is over a wall")
	}

	b.X = 440
	if _, _, ok := b.Probe(Up, 5, g); !ok {
		t.Error("Probe should succeed once aligned with the opening")
	}
}

func TestVerticalNeverWraps(t *testing.T) {
	g, err := NewGrid([][]int{{0, 0}, {0, 0}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	top := NewBody(Point{X: 0, Y: 0}, 40, Up)
	if _, _, moved := top.TryAdvance(Up, 5, g); moved {
		t.Error("Moving above row 0 should be blocked")
	}

	bottom := NewBody(Point{X: 1, Y: 1}, 40, Down)
	if _, _, moved := bottom.TryAdvance(Down, 5, g); moved {
		t.Error("Moving below the last row should be blocked")
	}
}

func TestProbeDoesNotMove(t *testing.T) {
	g := classicGrid()
	b := NewBody(Point{X: 10, Y: 13}, 40, None)

	x, y, ok := b.Probe(Right, 5, g)
	if !ok || x != 405 || y != 520 {
		t.Errorf("Probe() = (%d, %d, %v), expected (405, 520, true)", x, y, ok)
	}
	if b.X != 400 || b.Y != 520 {
		t.Error("Probe should not change the position")
	}
}

func TestNoneHeadingDoesNotMove(t *testing.T) {
	g := classicGrid()
	b := NewBody(Point{X: 10, Y: 13}, 40, None)

	if _, _, moved := b.TryAdvance(None, 5, g); moved {
		t.Error("A None heading should never count as a move")
	}
}

func TestCenterCell(t *testing.T) {
	g := classicGrid()

	tests := []struct {
		x, y     int
		expected Point
	}{
		{400, 520, Point{10, 13}},
		{419, 520, Point{10, 13}},
		{420, 520, Point{11, 13}},
		{400, 501, Point{10, 13}},
		{400, 499, Point{10, 12}},
		{780, 320, Point{0, 8}}, // center past the right edge wraps
	}

	for _, tc := range tests {
		b := Body{X: tc.x, Y: tc.y, Size: 40}
		if got := b.CenterCell(g); got != tc.expected {
			t.Errorf("CenterCell() at (%d, %d) = %+v, expected %+v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRandomWalkKeepsInvariants(t *testing.T) {
	g := classicGrid()
	rng := rand.New(rand.NewSource(7))
	span := g.Width() * 40
	headings := []Heading{Up, Down, Left, Right}

	bodies := []Body{
		NewBody(Point{X: 10, Y: 13}, 40, None),
		NewBody(Point{X: 0, Y: classicTunnelRow}, 40, None),
		NewBody(Point{X: 1, Y: 1}, 40, None),
	}

	for i := range bodies {
		b := &bodies[i]
		for step := 0; step < 5000; step++ {
			h := headings[rng.Intn(len(headings))]
			speed := 4 + rng.Intn(2)
			b.TryAdvance(h, speed, g)

			if b.X < 0 || b.X >= span {
				t.Fatalf("Body %d step %d: x=%d outside [0, %d)", i, step, b.X, span)
			}
			if !b.Fits(g) {
				t.Fatalf("Body %d step %d: committed position (%d, %d) overlaps a wall", i, step, b.X, b.Y)
			}
		}
	}
}
