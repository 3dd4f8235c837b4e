package engine

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mazechase/internal/core"
)

// CellState classifies a maze cell. The numeric values match the layout codes
// accepted by NewGrid.
type CellState uint8

const (
	Floor       CellState = 0
	Wall        CellState = 1
	Collectible CellState = 2
)

func (c CellState) String() string {
	switch c {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Collectible:
		return "collectible"
	default:
		return "unknown"
	}
}

var (
	// ErrOutOfRange is returned for a cell query outside the vertical bounds.
	ErrOutOfRange = errors.New("engine: cell out of range")

	// ErrInvalidLayout is returned when a layout cannot form a grid.
	ErrInvalidLayout = errors.New("engine: invalid layout")
)

// Grid is the maze: a fixed topology of walls and floors plus the mutable set
// of collectibles. Columns wrap around, rows do not.
type Grid struct {
	width    int
	height   int
	cells    []CellState
	template []CellState // collectible layout at construction, restored by ResetCollectibles
	tunnels  map[int]bool
}

// NewGrid builds a grid from rows of layout codes (0 floor, 1 wall,
// 2 collectible). Collectible codes on tunnel rows are loaded as floor.
func NewGrid(codes [][]int, tunnelRows []int) (*Grid, error) {
	if len(codes) == 0 || len(codes[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}

	g := &Grid{
		width:   len(codes[0]),
		height:  len(codes),
		tunnels: make(map[int]bool, len(tunnelRows)),
	}

	for _, row := range tunnelRows {
		if row < 0 || row >= g.height {
			return nil, fmt.Errorf("%w: tunnel row %d outside [0,%d)", ErrInvalidLayout, row, g.height)
		}
		g.tunnels[row] = true
	}

	g.cells = make([]CellState, g.width*g.height)
	for y, row := range codes {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidLayout, y, len(row), g.width)
		}
		for x, code := range row {
			state := CellState(code)
			switch {
			case code < 0 || code > int(Collectible):
				return nil, fmt.Errorf("%w: code %d at (%d, %d)", ErrInvalidLayout, code, x, y)
			case state == Collectible && g.tunnels[y]:
				state = Floor
			}
			g.cells[y*g.width+x] = state
		}
	}

	g.template = make([]CellState, len(g.cells))
	copy(g.template, g.cells)
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// IsTunnelRow reports whether row cy permits wraparound travel.
func (g *Grid) IsTunnelRow(cy int) bool {
	return g.tunnels[cy]
}

// WrapColumn normalizes a column index into [0, Width).
func (g *Grid) WrapColumn(cx int) int {
	return core.Mod(cx, g.width)
}

// CellAt returns the state of a cell. The column is normalized first, so only
// rows outside [0, Height) are out of range.
func (g *Grid) CellAt(cx, cy int) (CellState, error) {
	if cy < 0 || cy >= g.height {
		return Wall, fmt.Errorf("%w: row %d", ErrOutOfRange, cy)
	}
	return g.cells[cy*g.width+g.WrapColumn(cx)], nil
}

// ConsumeIfCollectible turns a collectible cell into floor and reports whether
// it did so.
func (g *Grid) ConsumeIfCollectible(cx, cy int) bool {
	if cy < 0 || cy >= g.height {
		return false
	}
	i := cy*g.width + g.WrapColumn(cx)
	if g.cells[i] != Collectible {
		return false
	}
	g.cells[i] = Floor
	return true
}

// ResetCollectibles restores the collectible layout the grid was built with.
func (g *Grid) ResetCollectibles() {
	copy(g.cells, g.template)
}

// Remaining returns the number of collectibles left on the grid.
func (g *Grid) Remaining() int {
	n := 0
	for _, c := range g.cells {
		if c == Collectible {
			n++
		}
	}
	return n
}

// Cells returns a copy of the grid as rows of cell states.
func (g *Grid) Cells() [][]CellState {
	rows := make([][]CellState, g.height)
	for y := range rows {
		rows[y] = make([]CellState, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}
