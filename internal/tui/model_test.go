package tui

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hersh/tetrion/internal/game"
)

func newModel(t *testing.T) (Model, *game.Engine) {
	t.Helper()
	e, err := game.New(game.DefaultConfig(), rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	return NewModel("tester", e, log), e
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	next, _ := m.Update(keyMsg(key))
	return next.(Model)
}

func frame(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	next, cmd := m.Update(FrameMsg(at))
	assert.NotNil(t, cmd, "frames keep coming")
	return next.(Model)
}

func activeRow(e *game.Engine) int {
	return e.Snapshot().Active.Cells[0].Row
}

func activeCol(e *game.Engine) int {
	col := 1 << 30
	for _, c := range e.Snapshot().Active.Cells {
		col = min(col, c.Col)
	}
	return col
}

func TestWelcomeStartsGame(t *testing.T) {
	m, e := newModel(t)
	assert.Contains(t, m.View(), "T E T R I O N")

	m = press(t, m, "x")
	assert.Equal(t, ScreenWelcome, m.screen, "other keys do nothing")
	assert.Equal(t, game.PhaseReady, e.Phase())

	m = press(t, m, "enter")
	assert.Equal(t, ScreenPlaying, m.screen)
	assert.Equal(t, game.PhaseRunning, e.Phase())
	assert.Contains(t, m.View(), "TETRION")
	assert.Contains(t, m.View(), "NEXT")
}

func TestFramesDriveGravity(t *testing.T) {
	m, e := newModel(t)
	t0 := time.Now()
	m = frame(t, m, t0)
	m = press(t, m, "enter")
	row := activeRow(e)

	m = frame(t, m, t0.Add(400*time.Millisecond))
	assert.Equal(t, row, activeRow(e))
	frame(t, m, t0.Add(800*time.Millisecond))
	assert.Equal(t, row+1, activeRow(e))
}

func TestKeysQueueCommandsForNextFrame(t *testing.T) {
	m, e := newModel(t)
	t0 := time.Now()
	m = frame(t, m, t0)
	m = press(t, m, "enter")
	col := activeCol(e)

	m = press(t, m, "left")
	m = press(t, m, "h")
	assert.Equal(t, col, activeCol(e))

	frame(t, m, t0.Add(time.Millisecond))
	assert.Equal(t, col-2, activeCol(e))
}

func TestPauseToggle(t *testing.T) {
	m, e := newModel(t)
	t0 := time.Now()
	m = frame(t, m, t0)
	m = press(t, m, "enter")
	row := activeRow(e)

	m = press(t, m, "p")
	assert.Equal(t, game.PhasePaused, e.Phase())
	assert.Contains(t, m.View(), "PAUSED")

	m = frame(t, m, t0.Add(5*time.Second))
	assert.Equal(t, row, activeRow(e))

	m = press(t, m, "p")
	assert.Equal(t, game.PhaseRunning, e.Phase())
	frame(t, m, t0.Add(5*time.Second+100*time.Millisecond))
	assert.Equal(t, row, activeRow(e), "paused time is not replayed")
}

func TestGameOverAndRestart(t *testing.T) {
	m, e := newModel(t)
	t0 := time.Now()
	m = frame(t, m, t0)
	m = press(t, m, "enter")

	for i := 1; i < 200 && m.screen == ScreenPlaying; i++ {
		m = press(t, m, " ")
		m = frame(t, m, t0.Add(time.Duration(i)*time.Millisecond))
	}
	require.Equal(t, ScreenGameOver, m.screen)
	assert.Equal(t, game.PhaseGameOver, e.Phase())
	assert.Contains(t, m.View(), "GAME OVER")

	m = press(t, m, "enter")
	assert.Equal(t, ScreenWelcome, m.screen)
	assert.Equal(t, game.PhaseReady, e.Phase())

	m = press(t, m, "s")
	assert.Equal(t, ScreenPlaying, m.screen)
	assert.Equal(t, 0, e.Score())
}

func TestResetKey(t *testing.T) {
	m, e := newModel(t)
	t0 := time.Now()
	m = frame(t, m, t0)
	m = press(t, m, "enter")
	m = press(t, m, " ")
	m = frame(t, m, t0.Add(time.Millisecond))
	require.Equal(t, 1, e.Snapshot().Pieces)

	m = press(t, m, "r")
	assert.Equal(t, ScreenPlaying, m.screen)
	assert.Equal(t, game.PhaseRunning, e.Phase())
	assert.Equal(t, 0, e.Snapshot().Pieces)
	assert.Equal(t, 0, e.Score())
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderBoard(t *testing.T) {
	_, e := newModel(t)
	e.Start()
	for e.Move(game.Down) {
	}
	s := e.Snapshot()

	out := RenderBoard(s)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, s.Height+2, "rows plus top and bottom border")
	assert.Equal(t, 4, strings.Count(out, "██"), "only the active piece")
	assert.NotContains(t, out, "[]", "ghost hides under a landed piece")

	e.Reset()
	e.Start()
	out = RenderBoard(e.Snapshot())
	assert.Equal(t, 4, strings.Count(out, "[]"), "ghost on the floor")
}

func TestRenderPiece(t *testing.T) {
	assert.Equal(t, 4, strings.Count(RenderPiece(game.KindI), "██"))
	assert.NotContains(t, RenderPiece(game.KindI), "\n", "I previews as one row")
	assert.Len(t, strings.Split(RenderPiece(game.KindT), "\n"), 2)
}

func TestRenderInfoHold(t *testing.T) {
	s := game.Snapshot{}
	assert.Contains(t, RenderInfo(s, "ana"), "Empty")
	assert.Contains(t, RenderInfo(s, "ana"), "Player: ana")

	s.HasHold = true
	s.Hold = game.KindT
	assert.Contains(t, RenderInfo(s, "ana"), "T (used)")

	s.LastClear = game.ClearResult{Rows: []int{16, 17, 18, 19}, Points: 800}
	assert.Contains(t, RenderInfo(s, "ana"), "Tetris +800")
}
