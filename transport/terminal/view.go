package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/knights-tour/game/engine"
)

const (
	cellWidth = 4
	originX   = 4 // room for row labels
	originY   = 2 // title and blank line
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleVisited = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleKnight  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHint    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWon     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLost    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// squareOrigin returns the top-left screen cell of a board square.
// Row 1 is drawn at the bottom, as on a chess board.
func squareOrigin(n int, pos engine.Coordinate) (x, y int) {
	return originX + pos.Col*cellWidth, originY + (n - 1 - pos.Row)
}

// squareAt maps a screen position back to a board square
func squareAt(n, x, y int) (engine.Coordinate, bool) {
	if x < originX || y < originY {
		return engine.Coordinate{}, false
	}
	pos := engine.Coordinate{
		Row: n - 1 - (y - originY),
		Col: (x - originX) / cellWidth,
	}
	if pos.Row < 0 || pos.Row >= n || pos.Col < 0 || pos.Col >= n {
		return engine.Coordinate{}, false
	}
	return pos, true
}

// Draw renders the model onto s and shows it
func Draw(s tcell.Screen, m *Model) {
	s.Clear()
	state := m.State()
	n := state.BoardSize

	drawText(s, 0, 0, styleTitle, fmt.Sprintf("Knight's Tour  %dx%d  [%s]", n, n, state.ConfigName))

	next := make(map[engine.Coordinate]bool, len(state.NextMoves))
	for _, pos := range state.NextMoves {
		next[pos] = true
	}

	for r := 0; r < n; r++ {
		_, y := squareOrigin(n, engine.Coordinate{Row: r})
		drawText(s, 0, y, styleLabel, fmt.Sprintf("%2d", r+1))

		for c := 0; c < n; c++ {
			pos := engine.Coordinate{Row: r, Col: c}
			mark, style := squareMark(state, pos, next[pos])
			if pos == m.Cursor() {
				style = style.Reverse(true)
			}
			x, y := squareOrigin(n, pos)
			drawText(s, x, y, style, fmt.Sprintf(" %3s", mark))
		}
	}

	labelY := originY + n
	for c := 0; c < n; c++ {
		x, _ := squareOrigin(n, engine.Coordinate{Col: c})
		drawText(s, x, labelY, styleLabel, fmt.Sprintf(" %3s", engine.ColumnLabel(c)))
	}

	y := labelY + 2
	drawText(s, 0, y, statusStyle(state), state.Message)
	y++
	summary := fmt.Sprintf("Visited %d/%d  Clicks %d  Cursor %s", state.StepCount, n*n, state.TotalClicks, engine.SquareName(m.Cursor()))
	if state.Mobility != "" {
		summary += "  Mobility " + state.Mobility
	}
	drawText(s, 0, y, styleDefault, summary)
	y++

	if comp := state.Competition; comp != nil {
		line := fmt.Sprintf("Competition level %d/%d  %s left  failures %d",
			comp.Level, len(comp.Levels), formatClock(comp.TimeLeftSeconds), comp.Failures)
		switch {
		case comp.Completed:
			line = fmt.Sprintf("Competition complete: %d levels, %d failures", len(comp.Levels), comp.Failures)
		case comp.TimedOut:
			line = fmt.Sprintf("Competition over at level %d/%d", comp.Level, len(comp.Levels))
		}
		drawText(s, 0, y, styleTitle, line)
		y++
	}

	y++
	drawText(s, 0, y, styleLabel, "arrows/hjkl move  enter/space click  r reset  t hints  +/- size  c competition  q quit")

	s.Show()
}

func squareMark(state *engine.GameState, pos engine.Coordinate, isNext bool) (string, tcell.Style) {
	cell := state.Board.At(pos)
	switch {
	case cell.IsCurrent:
		return "♘", styleKnight
	case cell.Visited:
		return fmt.Sprint(cell.Step), styleVisited
	case state.ShowHints && isNext:
		return "●", styleHint
	}
	return "·", styleDefault
}

func statusStyle(state *engine.GameState) tcell.Style {
	switch state.Status {
	case engine.Won:
		return styleWon
	case engine.Lost:
		return styleLost
	}
	return styleDefault
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
