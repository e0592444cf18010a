package game

import "time"

// ActivePiece is the renderer's view of the falling piece.
type ActivePiece struct {
	Kind     Kind
	Rotation int
	Cells    []Cell
}

// Snapshot is a deep copy of everything a renderer needs for one frame.
// Nothing in it aliases engine state.
type Snapshot struct {
	Width  int
	Height int

	// Board holds the visible rows, top to bottom.
	Board [][]Color

	// Active is nil when no piece is falling. Ghost is where it would land.
	Active *ActivePiece
	Ghost  []Cell
	Next   []Kind

	Hold    Kind
	HasHold bool
	CanHold bool

	Score  int
	Level  int
	Lines  int
	Pieces int

	Gravity   time.Duration
	Phase     Phase
	LastClear ClearResult
}

// Snapshot returns a read-only view of the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Width:   e.board.Width(),
		Height:  e.board.Height(),
		Board:   e.board.Rows(),
		Next:    e.seq.Preview(),
		Hold:    e.hold,
		HasHold: e.hasHold,
		CanHold: e.canHold && e.cfg.HoldEnabled,
		Score:   e.score,
		Level:   e.level,
		Lines:   e.lines,
		Pieces:  e.pieces,
		Gravity: e.cfg.GravityFor(e.level),
		Phase:   e.phase,
		LastClear: ClearResult{
			Rows:   append([]int(nil), e.lastClear.Rows...),
			Points: e.lastClear.Points,
		},
	}
	if e.active != nil {
		s.Active = &ActivePiece{
			Kind:     e.active.Kind,
			Rotation: e.active.Rotation,
			Cells:    e.active.Cells(),
		}
		ghost := e.active.GhostRow(e.board)
		s.Ghost = e.active.CellsAt(e.active.Rotation, ghost, e.active.Col)
	}
	return s
}

// ColorAt returns what a renderer should draw at a visible cell: the active
// piece if it covers the cell, otherwise the locked color.
func (s Snapshot) ColorAt(row, col int) Color {
	if s.Active != nil {
		for _, c := range s.Active.Cells {
			if c.Row == row && c.Col == col {
				return s.Active.Kind.Color()
			}
		}
	}
	if row < 0 || row >= len(s.Board) || col < 0 || col >= s.Width {
		return Empty
	}
	return s.Board[row][col]
}

// IsGhost reports whether the ghost piece covers a visible cell.
func (s Snapshot) IsGhost(row, col int) bool {
	for _, c := range s.Ghost {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}
