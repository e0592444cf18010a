package game

import "fmt"

// Randomizer is the random source used to shuffle bags. *rand.Rand from
// math/rand/v2 satisfies it; a fixed seed gives a fixed piece sequence.
type Randomizer interface {
	IntN(n int) int
}

// Sequencer produces pieces using the 7-bag randomizer system and keeps a
// preview queue of upcoming kinds.
type Sequencer struct {
	rng     Randomizer
	bag     []Kind
	queue   []Kind
	preview int
}

// NewSequencer creates a sequencer whose queue always holds preview kinds.
func NewSequencer(rng Randomizer, preview int) *Sequencer {
	if preview < 1 {
		preview = 1
	}
	s := &Sequencer{
		rng:     rng,
		preview: preview,
	}
	s.fill()
	return s
}

// Next pops the head of the queue.
func (s *Sequencer) Next() Kind {
	k := s.queue[0]
	s.queue = s.queue[1:]
	s.fill()
	return k
}

// Peek returns the next kind without consuming it.
func (s *Sequencer) Peek() Kind {
	return s.queue[0]
}

// Preview returns a copy of the upcoming kinds, soonest first.
func (s *Sequencer) Preview() []Kind {
	out := make([]Kind, len(s.queue))
	copy(out, s.queue)
	return out
}

func (s *Sequencer) fill() {
	for len(s.queue) < s.preview {
		if len(s.bag) == 0 {
			s.refillBag()
		}
		s.queue = append(s.queue, s.bag[0])
		s.bag = s.bag[1:]
	}
}

func (s *Sequencer) refillBag() {
	bag := AllKinds
	// Fisher-Yates shuffle
	for i := len(bag) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	s.bag = bag[:]
}

// SpawnPosition returns the canonical spawn anchor for kind k: rotation 0,
// top row of the hidden buffer, horizontally centered.
func SpawnPosition(b *Board, k Kind) (row, col int) {
	return -b.Buffer(), (b.Width() - BoxSize(k)) / 2
}

// Spawn places a new piece of kind k at its spawn anchor. It returns false
// when the spawn cells are blocked, which is a top-out. It panics if k is
// not one of the seven kinds.
func Spawn(b *Board, k Kind) (*Piece, bool) {
	if !k.Valid() {
		panic(&ProtocolError{Op: "spawn", Msg: fmt.Sprintf("unknown piece kind %d", int(k))})
	}
	row, col := SpawnPosition(b, k)
	p := &Piece{Kind: k, Row: row, Col: col}
	if !b.CanPlace(p.Cells()) {
		return nil, false
	}
	return p, true
}

// Spawn draws the next kind and places it on b.
func (s *Sequencer) Spawn(b *Board) (*Piece, bool) {
	return Spawn(b, s.Next())
}
