package sim

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hersh/tetrion/internal/game"
)

// dropper hard drops on every frame.
type dropper struct{}

func (dropper) Next(game.Snapshot) (game.Command, bool) { return game.HardDropCmd(), true }

func TestPlayIsDeterministic(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := game.DefaultConfig()
	opts := Options{MaxFrames: 5000}

	a, err := Play(context.Background(), cfg, 11, NewRandomPolicy(11), opts, log)
	require.NoError(t, err)
	b, err := Play(context.Background(), cfg, 11, NewRandomPolicy(11), opts, log)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Greater(t, a.Pieces, 0)
}

func TestPlayStopsAtTopOut(t *testing.T) {
	log, _ := test.NewNullLogger()
	res, err := Play(context.Background(), game.DefaultConfig(), 3, dropper{}, Options{}, log)
	require.NoError(t, err)
	assert.True(t, res.ToppedOut)
	assert.Less(t, res.Frames, 200, "stacking in the middle fills up fast")
	assert.Equal(t, res.Frames, res.Pieces, "one piece per frame")

	require.Len(t, res.Board, game.DefaultConfig().Height)
	filled := 0
	for _, row := range res.Board {
		for _, c := range row {
			if c != game.Empty {
				filled++
			}
		}
	}
	assert.Greater(t, filled, 0, "final board keeps the stack")
	assert.LessOrEqual(t, filled, 4*res.Pieces)
}

func TestPlayStopsAtMaxFrames(t *testing.T) {
	log, _ := test.NewNullLogger()
	res, err := Play(context.Background(), game.DefaultConfig(), 3, NewRandomPolicy(3), Options{MaxFrames: 10}, log)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Frames)
	assert.False(t, res.ToppedOut)
}

func TestPlayHonorsContext(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Play(ctx, game.DefaultConfig(), 1, NewRandomPolicy(1), Options{}, log)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun(t *testing.T) {
	log, hook := test.NewNullLogger()
	cfg := game.DefaultConfig()
	opts := Options{Games: 6, Seed: 100, Frame: 50 * time.Millisecond, MaxFrames: 20000, Workers: 3}

	results, err := Run(context.Background(), cfg, opts, log)
	require.NoError(t, err)
	require.Len(t, results, 6)
	for i, r := range results {
		assert.Equal(t, i, r.Game)
		assert.Equal(t, uint64(100+i), r.Seed)
		assert.GreaterOrEqual(t, r.Level, cfg.StartLevel)
	}

	again, err := Play(context.Background(), cfg, 102, NewRandomPolicy(102), opts, log)
	require.NoError(t, err)
	again.Game = 2
	assert.Equal(t, results[2], again, "batch games match standalone runs")

	finished := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "game finished" {
			finished++
			assert.Equal(t, logrus.InfoLevel, e.Level)
		}
	}
	assert.Equal(t, 6, finished)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := game.DefaultConfig()
	cfg.LockDelay = 0
	_, err := Run(context.Background(), cfg, Options{}, log)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	s := Summarize([]Result{
		{Score: 100, Lines: 1, ToppedOut: true},
		{Score: 900, Lines: 5, Clears: [5]int{0, 1, 0, 0, 1}},
	})
	assert.Equal(t, 2, s.Games)
	assert.Equal(t, 1, s.TopOuts)
	assert.Equal(t, 900, s.BestScore)
	assert.InDelta(t, 500.0, s.MeanScore, 1e-9)
	assert.InDelta(t, 3.0, s.MeanLines, 1e-9)
	assert.Equal(t, 1, s.Tetrises)
}
