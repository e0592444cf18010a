package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noShuffle keeps every bag in canonical order.
type noShuffle struct{}

func (noShuffle) IntN(n int) int { return n - 1 }

func TestBagContainsEachKindOncePerSeven(t *testing.T) {
	for _, preview := range []int{1, 3, 6, 14} {
		seq := NewSequencer(rand.New(rand.NewPCG(42, 99)), preview)
		const bags = 50
		counts := map[Kind]int{}
		for i := 0; i < bags*NumKinds; i++ {
			counts[seq.Next()]++
			if (i+1)%NumKinds == 0 {
				for _, k := range AllKinds {
					assert.Equal(t, (i+1)/NumKinds, counts[k], "preview %d after %d draws", preview, i+1)
				}
			}
		}
	}
}

func TestEachBagIsAPermutation(t *testing.T) {
	seq := NewSequencer(rand.New(rand.NewPCG(1, 2)), 3)
	for bag := 0; bag < 20; bag++ {
		seen := map[Kind]bool{}
		for i := 0; i < NumKinds; i++ {
			k := seq.Next()
			assert.False(t, seen[k], "kind %s repeated within bag %d", k, bag)
			seen[k] = true
		}
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	a := NewSequencer(rand.New(rand.NewPCG(5, 5)), 3)
	b := NewSequencer(rand.New(rand.NewPCG(5, 5)), 3)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Next(), b.Next(), "draw %d", i)
	}
}

func TestPreview(t *testing.T) {
	seq := NewSequencer(noShuffle{}, 3)
	assert.Equal(t, []Kind{KindI, KindO, KindT}, seq.Preview())
	assert.Equal(t, KindI, seq.Peek())

	assert.Equal(t, KindI, seq.Next())
	assert.Equal(t, []Kind{KindO, KindT, KindS}, seq.Preview())

	for i := 0; i < 5; i++ {
		seq.Next()
	}
	// The queue runs across the bag boundary.
	assert.Equal(t, []Kind{KindL, KindI, KindO}, seq.Preview())

	p := seq.Preview()
	p[0] = KindZ
	assert.Equal(t, KindL, seq.Peek(), "preview is a copy")
}

func TestPreviewLengthAtLeastOne(t *testing.T) {
	seq := NewSequencer(noShuffle{}, 0)
	assert.Len(t, seq.Preview(), 1)
}

func TestSequencerSpawn(t *testing.T) {
	b := NewBoard(10, 20, 2)
	seq := NewSequencer(noShuffle{}, 1)
	p, ok := seq.Spawn(b)
	require.True(t, ok)
	assert.Equal(t, KindI, p.Kind)
	assert.Equal(t, KindO, seq.Peek())
}
