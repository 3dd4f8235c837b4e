package mazechase

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/mazechase/engine"
)

const (
	hudHeight    = 2 // Status line and separator
	footerHeight = 1
)

// adversaryColors assigns the classic colors by name; others cycle through
// the fallback palette in spawn order.
var adversaryColors = map[string]core.Color{
	"blinky": core.ColorRed,
	"pinky":  core.ColorPink,
	"inky":   core.ColorCyan,
	"clyde":  core.ColorOrange,
}

var fallbackColors = []core.Color{core.ColorMagenta, core.ColorBrightRed, core.ColorCyan, core.ColorOrange}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.round == nil {
		msg := "Maze unavailable"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.renderOverlay(dst, msg, "Press Q to quit")
		return
	}

	g.renderHUD(dst)

	minW, minH := g.MinSize()
	if dst.Width() < minW || dst.Height() < minH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	offsetX := (dst.Width() - minW) / 2
	offsetY := hudHeight

	g.renderMaze(dst, offsetX, offsetY)
	g.renderAgents(dst, offsetX, offsetY)
	g.renderFooter(dst, offsetY+g.level.Height())

	// Draw overlays
	switch {
	case g.round.State() == engine.GameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  Press R to restart", g.round.Player().Score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	p := g.round.Player()
	lives := strings.Repeat("C ", max(p.Lives, 0))
	hud := fmt.Sprintf(" %s  Score: %d  Board: %d  Left: %d  Lives: ",
		g.Title(), p.Score, g.round.Boards()+1, g.round.Grid().Remaining())
	dst.DrawText(0, 0, hud)
	dst.DrawTextColored(len([]rune(hud)), 0, lives, core.ColorYellow)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderMaze draws walls and collectibles, cellWidth columns per cell.
func (g *Game) renderMaze(dst *core.Screen, offsetX, offsetY int) {
	cw := g.cfg.Render.CellWidth
	for y, row := range g.round.Grid().Cells() {
		for x, cell := range row {
			sx := offsetX + x*cw
			sy := offsetY + y
			switch cell {
			case engine.Wall:
				for i := range cw {
					dst.SetColored(sx+i, sy, '█', core.ColorBlue)
				}
			case engine.Collectible:
				dst.SetColored(sx+(cw-1)/2, sy, '·', core.ColorWhite)
			}
		}
	}
}

// renderAgents draws adversaries first so the player stays visible when
// they overlap.
func (g *Game) renderAgents(dst *core.Screen, offsetX, offsetY int) {
	fallback := 0
	for _, a := range g.round.Adversaries() {
		c, ok := adversaryColors[a.Name]
		if !ok {
			c = fallbackColors[fallback%len(fallbackColors)]
			fallback++
		}
		g.renderBody(dst, a.Body, 'M', c, offsetX, offsetY)
	}
	g.renderBody(dst, g.round.Player().Body, 'C', core.ColorBrightYellow, offsetX, offsetY)
}

// renderBody maps a pixel position to terminal cells. Columns keep
// sub-cell precision, rows snap to the nearest cell.
func (g *Game) renderBody(dst *core.Screen, b engine.Body, glyph rune, c core.Color, offsetX, offsetY int) {
	cw := g.cfg.Render.CellWidth
	span := g.level.Width() * cw
	col := core.Mod((b.X*cw+b.Size/2)/b.Size, span)
	row := (b.Y + b.Size/2) / b.Size
	dst.SetColored(offsetX+col+(cw-1)/2, offsetY+row, glyph, c)
}

// renderFooter draws the transient banner or the controls line.
func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.bannerFor > 0 && g.banner != "" {
		dst.DrawTextCentered(y, g.banner, core.ColorBrightYellow)
		return
	}
	dst.DrawTextCentered(y, "Arrows/WASD/HJKL: Move  P: Pause  R: Restart  Q: Quit", core.ColorGray)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-5)/2, boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
