package game

import "fmt"

// Cell is a board coordinate. Row 0 is the top visible row; rows -Buffer..-1
// are the hidden spawn buffer above it.
type Cell struct {
	Row, Col int
}

// Add returns c translated by o.
func (c Cell) Add(o Offset) Cell {
	return Cell{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

// Board is the playfield. It only knows colors: once a piece is committed
// the kind that produced each cell is gone.
type Board struct {
	width  int
	height int
	buffer int
	// rows[0] is the topmost hidden row, i.e. board row -buffer.
	rows [][]Color
}

// NewBoard creates an empty width x height board with buffer hidden rows.
func NewBoard(width, height, buffer int) *Board {
	rows := make([][]Color, height+buffer)
	for i := range rows {
		rows[i] = make([]Color, width)
	}
	return &Board{
		width:  width,
		height: height,
		buffer: buffer,
		rows:   rows,
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) Buffer() int { return b.buffer }

func (b *Board) inBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < b.width && c.Row >= -b.buffer && c.Row < b.height
}

// At returns the color at c, or Empty if c is out of bounds.
func (b *Board) At(c Cell) Color {
	if !b.inBounds(c) {
		return Empty
	}
	return b.rows[c.Row+b.buffer][c.Col]
}

// Occupied reports whether a piece cell may not be at c. Walls, the floor
// and anything above the hidden buffer count as occupied.
func (b *Board) Occupied(c Cell) bool {
	if !b.inBounds(c) {
		return true
	}
	return b.rows[c.Row+b.buffer][c.Col] != Empty
}

// CanPlace reports whether every cell is in bounds and empty.
func (b *Board) CanPlace(cells []Cell) bool {
	for _, c := range cells {
		if b.Occupied(c) {
			return false
		}
	}
	return true
}

// Commit marks cells with color. Committing cells that cannot be placed is a
// caller bug and panics.
func (b *Board) Commit(cells []Cell, color Color) {
	if color == Empty {
		panic(&ProtocolError{Op: "commit", Msg: "empty color"})
	}
	if !b.CanPlace(cells) {
		panic(&ProtocolError{Op: "commit", Msg: fmt.Sprintf("cells %v are not placeable", cells)})
	}
	for _, c := range cells {
		b.rows[c.Row+b.buffer][c.Col] = color
	}
}

func rowFull(row []Color) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row in one pass and returns their board
// row indices in ascending order. Remaining rows keep their order and drop
// by the number of removed rows beneath them.
func (b *Board) ClearFullRows() []int {
	var cleared []int
	write := len(b.rows) - 1
	for read := len(b.rows) - 1; read >= 0; read-- {
		if rowFull(b.rows[read]) {
			cleared = append(cleared, read-b.buffer)
			continue
		}
		b.rows[write] = b.rows[read]
		write--
	}
	for ; write >= 0; write-- {
		b.rows[write] = make([]Color, b.width)
	}

	// Collected bottom-up.
	for i, j := 0, len(cleared)-1; i < j; i, j = i+1, j-1 {
		cleared[i], cleared[j] = cleared[j], cleared[i]
	}
	return cleared
}

// Rows returns a copy of the visible rows, top to bottom.
func (b *Board) Rows() [][]Color {
	out := make([][]Color, b.height)
	for y := 0; y < b.height; y++ {
		out[y] = make([]Color, b.width)
		copy(out[y], b.rows[y+b.buffer])
	}
	return out
}

// HiddenRows returns a copy of the buffer rows, top to bottom.
func (b *Board) HiddenRows() [][]Color {
	out := make([][]Color, b.buffer)
	for y := 0; y < b.buffer; y++ {
		out[y] = make([]Color, b.width)
		copy(out[y], b.rows[y])
	}
	return out
}

// Equal reports whether both boards have the same dimensions and colors,
// hidden rows included.
func (b *Board) Equal(o *Board) bool {
	if b.width != o.width || b.height != o.height || b.buffer != o.buffer {
		return false
	}
	for y := range b.rows {
		for x := range b.rows[y] {
			if b.rows[y][x] != o.rows[y][x] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := NewBoard(b.width, b.height, b.buffer)
	for y := range b.rows {
		copy(c.rows[y], b.rows[y])
	}
	return c
}
