// Package sim plays headless games against a scripted input policy. It is
// used for soak runs and to tune configs without a terminal.
package sim

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hersh/tetrion/internal/game"
	"github.com/hersh/tetrion/internal/logging"
)

// Policy decides the input for one frame. ok is false when the policy
// presses nothing.
type Policy interface {
	Next(s game.Snapshot) (c game.Command, ok bool)
}

// RandomPolicy presses a random key on roughly one frame in four.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

var randomInputs = []game.Command{
	game.MoveCmd(game.Left),
	game.MoveCmd(game.Right),
	game.MoveCmd(game.Down),
	game.RotateCmd(game.Clockwise),
	game.RotateCmd(game.CounterClockwise),
	game.HardDropCmd(),
	game.HoldCmd(),
}

func (p *RandomPolicy) Next(game.Snapshot) (game.Command, bool) {
	if p.rng.IntN(4) != 0 {
		return game.Command{}, false
	}
	return randomInputs[p.rng.IntN(len(randomInputs))], true
}

// Options control a batch of games. Game i is seeded with Seed+i.
type Options struct {
	Games     int
	Seed      uint64
	Frame     time.Duration
	MaxFrames int
	Workers   int
}

func (o Options) withDefaults() Options {
	if o.Games <= 0 {
		o.Games = 1
	}
	if o.Frame <= 0 {
		o.Frame = 16 * time.Millisecond
	}
	if o.MaxFrames <= 0 {
		o.MaxFrames = 100_000
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// Result is the final state of one game.
type Result struct {
	Game      int
	Seed      uint64
	Score     int
	Lines     int
	Level     int
	Pieces    int
	Frames    int
	ToppedOut bool

	// Clears counts line clears by size; Clears[4] is the number of tetrises.
	Clears [5]int

	// Board is the visible playfield when the game ended.
	Board [][]game.Color
}

// Fields returns r as log fields.
func (r Result) Fields() logrus.Fields {
	return logrus.Fields{
		"game":       r.Game,
		"seed":       r.Seed,
		"score":      r.Score,
		"lines":      r.Lines,
		"level":      r.Level,
		"pieces":     r.Pieces,
		"frames":     r.Frames,
		"topped_out": r.ToppedOut,
		"tetrises":   r.Clears[4],
	}
}

// Play runs one game until it tops out, MaxFrames pass or ctx is done.
// Each frame asks the policy for input, queues it and ticks one frame.
func Play(ctx context.Context, cfg game.Config, seed uint64, policy Policy, opts Options, log logrus.FieldLogger) (Result, error) {
	opts = opts.withDefaults()
	e, err := game.New(cfg, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return Result{}, err
	}
	e.Start()

	res := Result{Seed: seed}
	for res.Frames < opts.MaxFrames && e.Phase() == game.PhaseRunning {
		if res.Frames%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		if c, ok := policy.Next(e.Snapshot()); ok {
			e.Enqueue(c)
		}
		e.Tick(opts.Frame)
		res.Frames++

		events := e.DrainEvents()
		for _, ev := range events {
			if ev.Type == game.EventLinesCleared {
				res.Clears[len(ev.Rows)]++
			}
		}
		logging.Events(log, events)
	}

	s := e.Snapshot()
	res.Score = s.Score
	res.Lines = s.Lines
	res.Level = s.Level
	res.Pieces = s.Pieces
	res.ToppedOut = s.Phase == game.PhaseGameOver
	res.Board = s.Board
	return res, nil
}

// Run plays opts.Games games with RandomPolicy, at most opts.Workers at a
// time, and returns the results in game order. Every engine stays on the
// goroutine that created it.
func Run(ctx context.Context, cfg game.Config, opts Options, log logrus.FieldLogger) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	results := make([]Result, opts.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < opts.Games; i++ {
		g.Go(func() error {
			seed := opts.Seed + uint64(i)
			gameLog := log.WithFields(logrus.Fields{"game": i, "seed": seed})
			res, err := Play(ctx, cfg, seed, NewRandomPolicy(seed), opts, gameLog)
			if err != nil {
				return errors.Wrapf(err, "game %d", i)
			}
			res.Game = i
			results[i] = res
			log.WithFields(res.Fields()).Info("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch.
type Summary struct {
	Games     int
	TopOuts   int
	BestScore int
	MeanScore float64
	MeanLines float64
	Tetrises  int
}

func Summarize(results []Result) Summary {
	s := Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}
	var score, lines int
	for _, r := range results {
		score += r.Score
		lines += r.Lines
		s.Tetrises += r.Clears[4]
		if r.ToppedOut {
			s.TopOuts++
		}
		if r.Score > s.BestScore {
			s.BestScore = r.Score
		}
	}
	s.MeanScore = float64(score) / float64(len(results))
	s.MeanLines = float64(lines) / float64(len(results))
	return s
}
