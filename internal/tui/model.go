package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/hersh/tetrion/internal/game"
	"github.com/hersh/tetrion/internal/logging"
)

// --- Custom tea.Msg types ---

// FrameMsg drives the engine clock.
type FrameMsg time.Time

const frameInterval = 16 * time.Millisecond

// --- Screens ---

type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenPlaying
	ScreenGameOver
)

// --- Model ---

type Model struct {
	screen     Screen
	playerName string
	engine     *game.Engine
	log        logrus.FieldLogger
	width      int
	height     int

	// lastFrame is the time of the previous FrameMsg; the gap between
	// frames is what the engine is ticked by.
	lastFrame time.Time
}

// NewModel creates the terminal front end for engine, which must be in the
// Ready phase.
func NewModel(playerName string, engine *game.Engine, log logrus.FieldLogger) Model {
	return Model{
		screen:     ScreenWelcome,
		playerName: playerName,
		engine:     engine,
		log:        log,
	}
}

func (m Model) Init() tea.Cmd {
	return frameCmd()
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}
	return m, nil
}

// --- Key handlers ---

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.log.WithField("score", m.engine.Score()).Info("quit")
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenWelcome:
		return m.handleWelcomeKeys(msg)
	case ScreenPlaying:
		return m.handlePlayingKeys(msg)
	case ScreenGameOver:
		return m.handleGameOverKeys(msg)
	}
	return m, nil
}

func (m Model) handleWelcomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "s", "1":
		m.start()
	}
	return m, nil
}

func (m *Model) start() {
	if m.engine.Phase() != game.PhaseReady {
		m.engine.Reset()
	}
	m.engine.Start()
	m.screen = ScreenPlaying
	m.log.WithField("player", m.playerName).Info("game started")
	m.checkGameOver()
}

// keyCommands maps keys to engine commands. Commands are queued and applied
// at the start of the next frame.
var keyCommands = map[string]game.Command{
	"left":  game.MoveCmd(game.Left),
	"h":     game.MoveCmd(game.Left),
	"right": game.MoveCmd(game.Right),
	"l":     game.MoveCmd(game.Right),
	"down":  game.MoveCmd(game.Down),
	"j":     game.MoveCmd(game.Down),
	"up":    game.RotateCmd(game.Clockwise),
	"x":     game.RotateCmd(game.Clockwise),
	"z":     game.RotateCmd(game.CounterClockwise),
	" ":     game.HardDropCmd(),
	"c":     game.HoldCmd(),
}

func (m Model) handlePlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "p":
		if m.engine.Pause() {
			m.log.Info("paused")
		} else if m.engine.Resume() {
			m.log.Info("resumed")
		}
		return m, nil
	case "r":
		m.log.WithField("score", m.engine.Score()).Info("reset")
		m.start()
		return m, nil
	}

	if c, ok := keyCommands[key]; ok {
		m.engine.Enqueue(c)
	}
	return m, nil
}

func (m Model) handleGameOverKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.engine.Reset()
		m.screen = ScreenWelcome
	case "r":
		m.start()
	}
	return m, nil
}

// --- Frame handler ---

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.screen == ScreenPlaying && !m.lastFrame.IsZero() && m.engine.Phase() != game.PhaseReady {
		m.engine.Tick(now.Sub(m.lastFrame))
	}
	m.lastFrame = now
	logging.Events(m.log, m.engine.DrainEvents())
	m.checkGameOver()
	return m, frameCmd()
}

func (m *Model) checkGameOver() {
	if m.screen == ScreenPlaying && m.engine.Phase() == game.PhaseGameOver {
		s := m.engine.Snapshot()
		m.log.WithFields(logrus.Fields{
			"score":  s.Score,
			"level":  s.Level,
			"lines":  s.Lines,
			"pieces": s.Pieces,
		}).Info("game over")
		m.screen = ScreenGameOver
	}
}

// --- View ---

func (m Model) View() string {
	switch m.screen {
	case ScreenWelcome:
		return m.renderCentered(RenderWelcome())
	case ScreenPlaying:
		return m.renderPlaying()
	case ScreenGameOver:
		s := m.engine.Snapshot()
		return m.renderCentered(RenderGameOver(s) + "\n\nPress ENTER to continue, R to play again")
	}
	return ""
}

func (m Model) renderCentered(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m Model) renderPlaying() string {
	s := m.engine.Snapshot()

	leftPanel := lipgloss.NewStyle().
		Width(24).
		Render(RenderInfo(s, m.playerName))

	board := RenderBoard(s)
	if s.Phase == game.PhasePaused {
		board = RenderPaused(s.Width, s.Height)
	}
	centerPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(board)

	rightPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(RenderNext(s.Next) + "\n\n" + RenderControls())

	return m.renderCentered(lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		centerPanel,
		rightPanel,
	))
}
