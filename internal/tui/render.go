package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hersh/tetrion/internal/game"
)

var (
	// colors is indexed by game.Color.
	colors = []string{
		"0",
		"196", // Z
		"46",  // S
		"226", // O
		"21",  // J
		"201", // T
		"51",  // I
		"208", // L
	}

	ghostColor = "244"

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Align(lipgloss.Center)
)

func colorFor(c game.Color) string {
	if int(c) < len(colors) {
		return colors[c]
	}
	return "245"
}

func block(c game.Color) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorFor(c))).
		Render("██")
}

// RenderBoard draws the visible rows with the active piece and its ghost.
func RenderBoard(s game.Snapshot) string {
	var sb strings.Builder

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			switch c := s.ColorAt(y, x); {
			case c != game.Empty:
				sb.WriteString(block(c))
			case s.IsGhost(y, x):
				sb.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(ghostColor)).
					Render("[]"))
			default:
				sb.WriteString("  ")
			}
		}
		if y < s.Height-1 {
			sb.WriteString("\n")
		}
	}

	return boardStyle.Render(sb.String())
}

// RenderPaused draws a blank board-sized frame in place of the board.
func RenderPaused(width, height int) string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat("  ", width)
	}
	mid := height / 2
	lines[mid-1] = centerText("PAUSED", 2*width)
	lines[mid] = centerText("P to resume", 2*width)
	return boardStyle.Render(strings.Join(lines, "\n"))
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-pad-len(s))
}

// RenderPiece draws a kind in its spawn orientation.
func RenderPiece(k game.Kind) string {
	box := game.BoxSize(k)
	filled := map[game.Offset]bool{}
	minRow, maxRow := box, -1
	for _, o := range game.Offsets(k, 0) {
		filled[o] = true
		minRow = min(minRow, o.Row)
		maxRow = max(maxRow, o.Row)
	}

	var sb strings.Builder
	for y := minRow; y <= maxRow; y++ {
		for x := 0; x < box; x++ {
			if filled[game.Offset{Row: y, Col: x}] {
				sb.WriteString(block(k.Color()))
			} else {
				sb.WriteString("  ")
			}
		}
		if y < maxRow {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderNext draws the preview queue, soonest first.
func RenderNext(next []game.Kind) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("NEXT") + "\n")
	for i, k := range next {
		sb.WriteString(RenderPiece(k))
		if i < len(next)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func RenderInfo(s game.Snapshot, player string) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("TETRION") + "\n\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Player: %s", player)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Score: %d", s.Score)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Level: %d", s.Level)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Lines: %d", s.Lines)) + "\n")
	if n := len(s.LastClear.Rows); n > 0 {
		sb.WriteString(infoStyle.Render(fmt.Sprintf("Last: %s +%d", clearName(n), s.LastClear.Points)) + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(titleStyle.Render("HOLD") + "\n")
	switch {
	case !s.HasHold:
		sb.WriteString(dimStyle.Render("Empty"))
	case s.CanHold:
		sb.WriteString(RenderPiece(s.Hold))
	default:
		sb.WriteString(dimStyle.Render(s.Hold.String() + " (used)"))
	}
	sb.WriteString("\n")

	return sb.String()
}

func clearName(lines int) string {
	switch lines {
	case 1:
		return "Single"
	case 2:
		return "Double"
	case 3:
		return "Triple"
	case 4:
		return "Tetris"
	}
	return ""
}

func RenderWelcome() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("51")).
		Align(lipgloss.Center).
		Render(`
╔══════════════════════════════╗
║        T E T R I O N         ║
║      Falling blocks TUI      ║
╚══════════════════════════════╝

   Press ENTER or S to start
   Press Q to quit
`)
}

func RenderGameOver(s game.Snapshot) string {
	return gameOverStyle.Render(fmt.Sprintf(
		"\n\n\n     GAME OVER     \n     Score: %d     \n     Level: %d     \n     Lines: %d     \n\n\n",
		s.Score, s.Level, s.Lines))
}

func RenderControls() string {
	return infoStyle.Render(`Controls:
  ← →/H L  Move
  ↓/J      Soft drop
  Space    Hard drop
  ↑/X      Rotate right
  Z        Rotate left
  C        Hold
  P        Pause
  R        Restart
  Q        Quit`)
}
