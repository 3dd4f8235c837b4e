package engine

import "testing"

func TestPlayerScoresFiveDistinctCollectibles(t *testing.T) {
	g := classicGrid()
	p := NewPlayer(Point{X: 10, Y: 13}, 40, 5, 3)
	p.Queue(Right)

	consumed := 0
	for i := 0; i < 30; i++ {
		if p.Step(g, 10) {
			consumed++
		}
	}

	if consumed != 5 {
		t.Errorf("Consumed %d collectibles, expected 5", consumed)
	}
	if p.Score != 50 {
		t.Errorf("Score = %d, expected 50", p.Score)
	}
}

func TestPlayerRevisitScoresNothing(t *testing.T) {
	g := classicGrid()
	p := NewPlayer(Point{X: 10, Y: 13}, 40, 5, 3)

	p.Queue(Right)
	for i := 0; i < 16; i++ {
		p.Step(g, 10)
	}
	score := p.Score

	p.Queue(Left)
	for i := 0; i < 16; i++ {
		p.Step(g, 10)
	}

	if p.X != 400 {
		t.Fatalf("Player should be back at x=400, got %d", p.X)
	}
	if p.Score != score {
		t.Errorf("Walking back over eaten cells changed score from %d to %d", score, p.Score)
	}
}

func TestPlayerTurnsAsSoonAsLegal(t *testing.T) {
	g := classicGrid()
	p := NewPlayer(Point{X: 10, Y: 13}, 40, 5, 3)

	p.Queue(Right)
	p.Step(g, 10)
	if p.Heading != Right || p.Desired != None {
		t.Fatalf("After first step heading=%v desired=%v, expected right/none", p.Heading, p.Desired)
	}

	// The cell above column 10 is a wall; the cell above 11 is open.
	p.Queue(Up)
	for i := 0; i < 7; i++ {
		p.Step(g, 10)
	}
	if p.X != 440 || p.Y != 520 {
		t.Fatalf("Expected to reach (440, 520), at (%d, %d)", p.X, p.Y)
	}
	if p.Heading != Right || p.Desired != Up {
		t.Fatalf("Turn should still be pending: heading=%v desired=%v", p.Heading, p.Desired)
	}

	p.Step(g, 10)
	if p.Heading != Up || p.Desired != None {
		t.Errorf("Turn should be taken at the opening: heading=%v desired=%v", p.Heading, p.Desired)
	}
	if p.X != 440 || p.Y != 515 {
		t.Errorf("Expected to move up to (440, 515), at (%d, %d)", p.X, p.Y)
	}
}

func TestPlayerQueueLastWriteWins(t *testing.T) {
	g := classicGrid()
	p := NewPlayer(Point{X: 10, Y: 13}, 40, 5, 3)

	p.Queue(Left)
	p.Queue(Right)
	p.Step(g, 10)

	if p.Heading != Right || p.X != 405 {
		t.Errorf("Only the latest request should apply: heading=%v x=%d", p.Heading, p.X)
	}
}

func TestPlayerKeepsMovingWhenTurnBlocked(t *testing.T) {
	g := classicGrid()
	p := NewPlayer(Point{X: 10, Y: 13}, 40, 5, 3)

	p.Queue(Right)
	p.Step(g, 10)
	p.Queue(Down) // wall below for the whole corridor stretch
	p.Step(g, 10)

	if p.Heading != Right || p.X != 410 {
		t.Errorf("Blocked turn should not stop movement: heading=%v x=%d", p.Heading, p.X)
	}
	if p.Desired != Down {
		t.Error("Blocked request should stay queued")
	}
}

func TestPlayerStopsAtWall(t *testing.T) {
	g := classicGrid()
	p := NewPlayer(Point{X: 10, Y: 13}, 40, 5, 3)
	p.Queue(Right)

	for i := 0; i < 100; i++ {
		p.Step(g, 10)
	}

	// Column 16 is a wall, so the box stops flush against it.
	if p.X != 600 {
		t.Errorf("Player should stop at x=600, got %d", p.X)
	}
	if p.Step(g, 10) {
		t.Error("A blocked step should never consume")
	}
}

func TestPlayerRespawnKeepsScoreAndLives(t *testing.T) {
	g := classicGrid()
	p := NewPlayer(Point{X: 10, Y: 13}, 40, 5, 3)
	p.Queue(Right)
	for i := 0; i < 10; i++ {
		p.Step(g, 10)
	}
	p.Queue(Up)
	p.Lives = 2
	score := p.Score

	p.Respawn()

	if p.X != 400 || p.Y != 520 || p.Heading != None || p.Desired != None {
		t.Errorf("Respawn left player at (%d, %d) heading=%v desired=%v", p.X, p.Y, p.Heading, p.Desired)
	}
	if p.Score != score || p.Lives != 2 {
		t.Errorf("Respawn changed score/lives to %d/%d", p.Score, p.Lives)
	}
}
