package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/hersh/tetrion/internal/config"
	"github.com/hersh/tetrion/internal/logging"
	"github.com/hersh/tetrion/internal/sim"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := config.Flags("simulate")
	games := flags.Int("games", 10, "number of games to play")
	frame := flags.Duration("frame", 16*time.Millisecond, "simulated time per frame")
	maxFrames := flags.Int("max-frames", 100_000, "frame limit per game")
	workers := flags.Int("workers", 4, "games played at once")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	settings, err := config.Load(flags)
	if err != nil {
		return err
	}
	log, err := logging.New(os.Stderr, settings.LogLevel)
	if err != nil {
		return err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	entry := log.WithFields(logrus.Fields{
		"component": "simulate",
		"seed":      seed,
	})
	entry.WithField("games", *games).Info("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sim.Run(ctx, settings.Game, sim.Options{
		Games:     *games,
		Seed:      seed,
		Frame:     *frame,
		MaxFrames: *maxFrames,
		Workers:   *workers,
	}, entry)
	if err != nil {
		return err
	}

	sum := sim.Summarize(results)
	entry.WithFields(logrus.Fields{
		"games":      sum.Games,
		"top_outs":   sum.TopOuts,
		"best_score": sum.BestScore,
		"mean_score": fmt.Sprintf("%.1f", sum.MeanScore),
		"mean_lines": fmt.Sprintf("%.1f", sum.MeanLines),
		"tetrises":   sum.Tetrises,
		"elapsed":    time.Since(start).Round(time.Millisecond),
	}).Info("done")
	return nil
}
