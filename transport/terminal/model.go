package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/knights-tour/game/engine"
)

// Model is the terminal game: one local engine plus a cursor.
// It holds no screen and can be driven directly in tests.
type Model struct {
	engine *engine.GameEngine
	cursor engine.Coordinate
	quit   bool
}

// NewModel starts a game from cfg, or from the default 8x8 board when cfg is nil
func NewModel(cfg *engine.GameConfig) (*Model, error) {
	if cfg == nil {
		cfg = engine.DefaultConfig(engine.DefaultBoardSize)
	}
	e, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &Model{engine: e}, nil
}

// State returns the live game state
func (m *Model) State() *engine.GameState {
	return m.engine.GetState()
}

// Cursor returns the square under the cursor
func (m *Model) Cursor() engine.Coordinate {
	return m.cursor
}

// Done reports whether the player asked to quit
func (m *Model) Done() bool {
	return m.quit
}

// MoveCursor shifts the cursor, stopping at the board edge
func (m *Model) MoveCursor(dRow, dCol int) {
	n := m.State().BoardSize
	m.cursor.Row = clamp(m.cursor.Row+dRow, 0, n-1)
	m.cursor.Col = clamp(m.cursor.Col+dCol, 0, n-1)
}

// Click clicks the square under the cursor
func (m *Model) Click() bool {
	return m.ClickAt(m.cursor)
}

// ClickAt moves the cursor to pos and clicks it
func (m *Model) ClickAt(pos engine.Coordinate) bool {
	if m.State().Board.Contains(pos) {
		m.cursor = pos
	}
	return m.engine.Click(pos.Row, pos.Col)
}

// Reset starts a new tour on the same board
func (m *Model) Reset() {
	m.engine.Reset()
}

// Resize grows or shrinks the board by delta squares
func (m *Model) Resize(delta int) error {
	if err := m.engine.Resize(m.State().BoardSize + delta); err != nil {
		m.State().Message = err.Error()
		return err
	}
	m.MoveCursor(0, 0)
	return nil
}

// ToggleHints shows or hides the next-move markers
func (m *Model) ToggleHints() {
	m.engine.SetShowHints(!m.State().ShowHints)
}

// ToggleCompetition starts a default competition, or abandons the running one
func (m *Model) ToggleCompetition() error {
	if comp := m.engine.GetCompetition(); comp != nil && comp.Active {
		m.engine.StopCompetition()
		return nil
	}
	if err := m.engine.StartCompetition(nil, 0); err != nil {
		return err
	}
	m.MoveCursor(0, 0)
	return nil
}

// Tick advances the competition clock and reports whether time just ran out
func (m *Model) Tick() bool {
	return m.engine.Tick()
}

// HandleKey applies one key press and reports whether it changed anything
func (m *Model) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		m.quit = true
	case tcell.KeyUp:
		m.MoveCursor(1, 0)
	case tcell.KeyDown:
		m.MoveCursor(-1, 0)
	case tcell.KeyLeft:
		m.MoveCursor(0, -1)
	case tcell.KeyRight:
		m.MoveCursor(0, 1)
	case tcell.KeyEnter:
		m.Click()
	case tcell.KeyRune:
		return m.handleRune(ev.Rune())
	default:
		return false
	}
	return true
}

func (m *Model) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		m.quit = true
	case 'k':
		m.MoveCursor(1, 0)
	case 'j':
		m.MoveCursor(-1, 0)
	case 'h':
		m.MoveCursor(0, -1)
	case 'l':
		m.MoveCursor(0, 1)
	case ' ':
		m.Click()
	case 'r', 'R':
		m.Reset()
	case 't', 'T':
		m.ToggleHints()
	case '+', '=':
		m.Resize(1)
	case '-', '_':
		m.Resize(-1)
	case 'c', 'C':
		m.ToggleCompetition()
	default:
		return false
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
