package game

import "fmt"

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// NumKinds is the number of distinct piece kinds in a bag.
const NumKinds = 7

// AllKinds lists every kind in canonical order.
var AllKinds = [NumKinds]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

var kindNames = [NumKinds]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < NumKinds
}

// Color is the tag a locked cell keeps. Zero means empty.
type Color uint8

const Empty Color = 0

var kindColors = [NumKinds]Color{
	KindI: 6,
	KindO: 3,
	KindT: 5,
	KindS: 2,
	KindZ: 1,
	KindJ: 4,
	KindL: 7,
}

// Color returns the color tag cells of this kind are committed with.
func (k Kind) Color() Color {
	return kindColors[k]
}

// Offset is a (row, col) displacement. Rows grow downward.
type Offset struct {
	Row, Col int
}

// RotateDir is a rotation direction.
type RotateDir int

const (
	Clockwise RotateDir = iota
	CounterClockwise
)

func (d RotateDir) String() string {
	if d == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// step returns the rotation index delta for the direction.
func (d RotateDir) step() int {
	if d == CounterClockwise {
		return 3
	}
	return 1
}

// shape holds the four rotation states of a kind, each as cells inside a
// box-by-box square whose center is the rotation pivot.
type shape struct {
	box    int
	states [4][4]Offset
}

// Rotation states follow SRS orientation: state 0 is the spawn state, then
// R, 2 and L going clockwise.
var shapes = [NumKinds]shape{
	KindI: {box: 4, states: [4][4]Offset{
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	}},
	KindO: {box: 2, states: [4][4]Offset{
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}},
	KindT: {box: 3, states: [4][4]Offset{
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	}},
	KindS: {box: 3, states: [4][4]Offset{
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	}},
	KindZ: {box: 3, states: [4][4]Offset{
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	}},
	KindJ: {box: 3, states: [4][4]Offset{
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	}},
	KindL: {box: 3, states: [4][4]Offset{
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	}},
}

// Kick tables are indexed by [direction][from state]. They hold the SRS tests
// after the naive attempt, converted to (row, col) with rows growing down.
var jlstzKicks = [2][4][]Offset{
	Clockwise: {
		{{0, -1}, {-1, -1}, {2, 0}, {2, -1}},  // 0->R
		{{0, 1}, {1, 1}, {-2, 0}, {-2, 1}},    // R->2
		{{0, 1}, {-1, 1}, {2, 0}, {2, 1}},     // 2->L
		{{0, -1}, {1, -1}, {-2, 0}, {-2, -1}}, // L->0
	},
	CounterClockwise: {
		{{0, 1}, {-1, 1}, {2, 0}, {2, 1}},     // 0->L
		{{0, 1}, {1, 1}, {-2, 0}, {-2, 1}},    // R->0
		{{0, -1}, {-1, -1}, {2, 0}, {2, -1}},  // 2->R
		{{0, -1}, {1, -1}, {-2, 0}, {-2, -1}}, // L->2
	},
}

var iKicks = [2][4][]Offset{
	Clockwise: {
		{{0, -2}, {0, 1}, {1, -2}, {-2, 1}}, // 0->R
		{{0, -1}, {0, 2}, {-2, -1}, {1, 2}}, // R->2
		{{0, 2}, {0, -1}, {-1, 2}, {2, -1}}, // 2->L
		{{0, 1}, {0, -2}, {2, 1}, {-1, -2}}, // L->0
	},
	CounterClockwise: {
		{{0, -1}, {0, 2}, {-2, -1}, {1, 2}}, // 0->L
		{{0, 2}, {0, -1}, {-1, 2}, {2, -1}}, // R->0
		{{0, 1}, {0, -2}, {2, 1}, {-1, -2}}, // 2->R
		{{0, -2}, {0, 1}, {1, -2}, {-2, 1}}, // L->2
	},
}

func normRotation(r int) int {
	return ((r % 4) + 4) % 4
}

// Offsets returns the four cell offsets of kind k in the given rotation state,
// relative to the top-left of the kind's bounding box.
func Offsets(k Kind, rotation int) [4]Offset {
	return shapes[k].states[normRotation(rotation)]
}

// BoxSize returns the side of the square box the kind rotates within. The
// rotation pivot is the center of that box.
func BoxSize(k Kind) int {
	return shapes[k].box
}

// Kicks returns the wall-kick translations tried, in order, when rotating kind
// k out of state from in direction dir and the naive rotation is blocked.
// The returned slice must not be modified.
func Kicks(k Kind, from int, dir RotateDir) []Offset {
	from = normRotation(from)
	switch k {
	case KindO:
		return nil
	case KindI:
		return iKicks[dir][from]
	default:
		return jlstzKicks[dir][from]
	}
}
