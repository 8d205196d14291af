package tetris

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

const (
	cellW     = 2 // screen columns per board column, keeps blocks square
	panelW    = 14
	slotRows  = 5 // tallest shape plus a gap
	statsRows = 7
)

// layout positions the board box and the side panel on the screen.
type layout struct {
	width, height int
	board         core.Rect
	panelX        int
	previewY      int
	previewSlots  int
	statsY        int
}

func computeLayout(rows, cols, preview int) layout {
	board := core.NewRect(0, 0, cols*cellW+2, rows+2)
	panelH := 1 + preview*slotRows + statsRows
	l := layout{
		width:        board.W + 1 + panelW,
		height:       max(board.H, panelH),
		board:        board,
		panelX:       board.Right() + 1,
		previewY:     1,
		previewSlots: preview,
	}
	l.statsY = l.previewY + 1 + preview*slotRows
	return l
}

// center shifts every element so the layout sits in the middle of a w×h
// screen.
func (l *layout) center(w, h int) {
	dx := max(0, (w-l.width)/2)
	dy := max(0, (h-l.height)/2)
	l.board.X += dx
	l.board.Y += dy
	l.panelX += dx
	l.previewY += dy
	l.statsY += dy
}

var familyColors = map[engine.Family]core.Color{
	engine.FamilyO: core.ColorYellow,
	engine.FamilyT: core.ColorPurple,
	engine.FamilyI: core.ColorCyan,
	engine.FamilyL: core.ColorOrange,
	engine.FamilyJ: core.ColorBlue,
	engine.FamilyZ: core.ColorRed,
	engine.FamilyS: core.ColorGreen,
}

// FamilyColor returns the display color of a piece family.
func FamilyColor(f engine.Family) core.Color {
	if c, ok := familyColors[f]; ok {
		return c
	}
	return core.ColorWhite
}

// FormatElapsed renders seconds as m:ss.
func FormatElapsed(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Render draws the board, the preview panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	if g.tooSmall {
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "Window too small")
		dst.DrawTextCentered(mid, fmt.Sprintf("Need %dx%d", g.layout.width, g.layout.height))
		return
	}

	snap := g.session.Snapshot()
	g.renderBoard(dst, snap)
	g.renderPanel(dst, snap)

	switch snap.State {
	case engine.StateNotStarted:
		g.renderOverlay(dst, "TETRIS", "", "Space/R to start")
	case engine.StatePaused:
		g.renderOverlay(dst, "PAUSED", "", "P to resume")
	case engine.StateOver:
		g.renderOverlay(dst, "GAME OVER",
			fmt.Sprintf("Lines %d", snap.Lines),
			fmt.Sprintf("Score %d", snap.Score),
			"Time "+FormatElapsed(snap.Elapsed),
			"",
			"R to play again",
		)
	}
}

func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot) {
	box := g.layout.board
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextColor(box.X+2, box.Y, " TETRIS ", core.ColorBrightWhite)

	inner := box.Inset(1)
	for r, row := range snap.Grid {
		for c, cell := range row {
			x := inner.X + c*cellW
			y := inner.Y + r
			if cell.Occupied {
				color := FamilyColor(cell.Family)
				dst.SetColor(x, y, '█', color)
				dst.SetColor(x+1, y, '█', color)
			} else {
				dst.SetColor(x, y, ' ', core.ColorDefault)
				dst.SetColor(x+1, y, '·', core.ColorGray)
			}
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, snap engine.Snapshot) {
	x := g.layout.panelX
	dst.DrawTextColor(x, g.layout.previewY, "NEXT", core.ColorBrightWhite)
	for i, fam := range snap.Preview {
		if i >= g.layout.previewSlots {
			break
		}
		drawShape(dst, x+1, g.layout.previewY+1+i*slotRows, fam)
	}

	y := g.layout.statsY
	stats := []struct{ label, value string }{
		{"SCORE", fmt.Sprintf("%d", snap.Score)},
		{"LINES", fmt.Sprintf("%d", snap.Lines)},
		{"TIME", FormatElapsed(snap.Elapsed)},
	}
	for i, s := range stats {
		dst.DrawTextColor(x, y+i*2, s.label, core.ColorGray)
		dst.DrawText(x, y+i*2+1, s.value)
	}
}

func drawShape(dst *core.Screen, x, y int, fam engine.Family) {
	if !fam.Valid() {
		return
	}
	shape := fam.Shape()
	color := FamilyColor(fam)
	for _, off := range shape.Offsets() {
		px := x + off.Col*cellW
		py := y + off.Row
		dst.SetColor(px, py, '█', color)
		dst.SetColor(px+1, py, '█', color)
	}
}

// renderOverlay draws a bordered message box centered on the board. The box
// never gets wider than the board frame; longer lines are wrapped.
func (g *Game) renderOverlay(dst *core.Screen, title string, lines ...string) {
	box := g.layout.board
	w := min(max(len(title), maxLen(lines))+4, box.W)
	textW := max(1, w-2)

	titleRows := wrapText(title, textW)
	var body []string
	for _, l := range lines {
		body = append(body, wrapText(l, textW)...)
	}
	if len(titleRows)+len(body)+3 > box.H {
		body = dropBlank(body)
	}

	h := len(titleRows) + len(body) + 3
	x := max(0, box.X+(box.W-w)/2)
	y := max(0, box.Y+(box.H-h)/2)
	area := core.NewRect(x, y, w, h)

	dst.DrawRect(area, ' ')
	dst.DrawBox(area, core.ColorBrightWhite)
	row := y + 1
	for _, t := range titleRows {
		dst.DrawTextColor(x+(w-len(t))/2, row, t, core.ColorBrightWhite)
		row++
	}
	for _, l := range body {
		dst.DrawText(x+(w-len(l))/2, row, l)
		row++
	}
}

// wrapText splits s into lines of at most width bytes, breaking at spaces
// and cutting words that are longer than a line.
func wrapText(s string, width int) []string {
	if len(s) <= width {
		return []string{s}
	}
	var out []string
	cur := ""
	for _, word := range strings.Fields(s) {
		for len(word) > width {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			out = append(out, word[:width])
			word = word[width:]
		}
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= width:
			cur += " " + word
		default:
			out = append(out, cur)
			cur = word
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func dropBlank(lines []string) []string {
	out := lines[:0:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func maxLen(lines []string) int {
	n := 0
	for _, l := range lines {
		n = max(n, len(l))
	}
	return n
}
