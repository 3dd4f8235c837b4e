package engine

import "github.com/vovakirdan/mazechase/internal/core"

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Body is the movement primitive shared by the player and the adversaries: a
// pixel position whose bounding box is one cell, and a current heading.
type Body struct {
	X, Y    int // Top-left corner in pixels
	Size    int // Box edge in pixels, equal to the cell size
	Heading Heading
}

// NewBody places a body at the top-left corner of a cell.
func NewBody(cell Point, size int, heading Heading) Body {
	return Body{
		X:       cell.X * size,
		Y:       cell.Y * size,
		Size:    size,
		Heading: heading,
	}
}

// Cell returns the cell holding the top-left corner of the box.
func (b Body) Cell(g *Grid) Point {
	return Point{
		X: g.WrapColumn(core.FloorDiv(b.X, b.Size)),
		Y: core.FloorDiv(b.Y, b.Size),
	}
}

// CenterCell returns the cell holding the center of the box.
func (b Body) CenterCell(g *Grid) Point {
	half := b.Size / 2
	return Point{
		X: g.WrapColumn(core.FloorDiv(b.X+half, b.Size)),
		Y: core.FloorDiv(b.Y+half, b.Size),
	}
}

// Probe computes where one step along h would land and whether that position
// is legal, without moving. A None heading is never legal.
func (b Body) Probe(h Heading, speed int, g *Grid) (x, y int, ok bool) {
	if h == None {
		return b.X, b.Y, false
	}

	dx, dy := h.Delta()
	x = b.X + dx*speed
	y = b.Y + dy*speed

	span := g.Width() * b.Size
	switch {
	case x < 0:
		x = (g.Width() - 1) * b.Size
	case x >= span:
		x = 0
	}

	return x, y, b.fits(x, y, g)
}

// TryAdvance moves the body one step along h if the corner test allows it.
func (b *Body) TryAdvance(h Heading, speed int, g *Grid) (x, y int, moved bool) {
	x, y, ok := b.Probe(h, speed, g)
	if !ok {
		return b.X, b.Y, false
	}
	b.X, b.Y = x, y
	return x, y, true
}

// Fits reports whether the box at its current position clears every wall.
func (b Body) Fits(g *Grid) bool {
	return b.fits(b.X, b.Y, g)
}

// fits runs the corner test: every corner of a box at (x, y) must lie on a
// non-wall cell inside the vertical bounds.
func (b Body) fits(x, y int, g *Grid) bool {
	far := b.Size - 1
	corners := [4][2]int{
		{x, y},
		{x + far, y},
		{x, y + far},
		{x + far, y + far},
	}

	for _, c := range corners {
		cell, err := g.CellAt(core.FloorDiv(c[0], b.Size), core.FloorDiv(c[1], b.Size))
		if err != nil || cell == Wall {
			return false
		}
	}
	return true
}
