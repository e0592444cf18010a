package game

// Direction is a one-cell translation.
type Direction int

const (
	Left Direction = iota
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	}
	return "unknown"
}

func (d Direction) offset() Offset {
	switch d {
	case Left:
		return Offset{Col: -1}
	case Right:
		return Offset{Col: 1}
	default:
		return Offset{Row: 1}
	}
}

// Piece is the active, falling piece. Row and Col anchor the top-left corner
// of the kind's bounding box.
type Piece struct {
	Kind     Kind
	Rotation int
	Row, Col int
}

// CellsAt returns the board cells the piece would cover in the given
// rotation and anchor.
func (p *Piece) CellsAt(rotation, row, col int) []Cell {
	offs := Offsets(p.Kind, rotation)
	cells := make([]Cell, len(offs))
	anchor := Cell{Row: row, Col: col}
	for i, o := range offs {
		cells[i] = anchor.Add(o)
	}
	return cells
}

// Cells returns the board cells the piece currently covers.
func (p *Piece) Cells() []Cell {
	return p.CellsAt(p.Rotation, p.Row, p.Col)
}

// Fits reports whether the piece, shifted by (dRow, dCol), can be placed.
func (p *Piece) Fits(b *Board, dRow, dCol int) bool {
	return b.CanPlace(p.CellsAt(p.Rotation, p.Row+dRow, p.Col+dCol))
}

// TryMove shifts the piece one cell if the board allows it.
func (p *Piece) TryMove(b *Board, d Direction) bool {
	o := d.offset()
	if !p.Fits(b, o.Row, o.Col) {
		return false
	}
	p.Row += o.Row
	p.Col += o.Col
	return true
}

// TryRotate turns the piece a quarter turn. When the rotated piece collides,
// the kind's kicks are tried in order and the first legal one wins. On
// failure the piece is unchanged.
func (p *Piece) TryRotate(b *Board, d RotateDir) bool {
	next := normRotation(p.Rotation + d.step())
	if b.CanPlace(p.CellsAt(next, p.Row, p.Col)) {
		p.Rotation = next
		return true
	}
	for _, k := range Kicks(p.Kind, p.Rotation, d) {
		if b.CanPlace(p.CellsAt(next, p.Row+k.Row, p.Col+k.Col)) {
			p.Rotation = next
			p.Row += k.Row
			p.Col += k.Col
			return true
		}
	}
	return false
}

// Drop moves the piece down until it rests and returns the rows travelled.
func (p *Piece) Drop(b *Board) int {
	rows := 0
	for p.TryMove(b, Down) {
		rows++
	}
	return rows
}

// GhostRow returns the anchor row the piece would land on.
func (p *Piece) GhostRow(b *Board) int {
	d := 0
	for p.Fits(b, d+1, 0) {
		d++
	}
	return p.Row + d
}

// Grounded reports whether the piece cannot fall any further.
func (p *Piece) Grounded(b *Board) bool {
	return !p.Fits(b, 1, 0)
}

// Clone returns a copy of the piece.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}
