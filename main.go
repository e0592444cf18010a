package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/hersh/tetrion/internal/config"
	"github.com/hersh/tetrion/internal/game"
	"github.com/hersh/tetrion/internal/logging"
	"github.com/hersh/tetrion/internal/tui"
)

// This is the terminal entry point. A bare argument sets the player name:
//   go run . Alice
// For headless batches, use:
//   go run ./cmd/simulate --games 100

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := config.Flags("tetrion")
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
	if flags.NArg() > 0 {
		settings.Player = flags.Arg(0)
	}

	logFile := logging.File(settings.LogFile)
	defer logFile.Close()
	log, err := logging.New(logFile, settings.LogLevel)
	if err != nil {
		return err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	engine, err := game.New(settings.Game, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return err
	}

	entry := log.WithFields(logrus.Fields{
		"component": "tui",
		"seed":      seed,
		"player":    settings.Player,
	})
	entry.Info("starting")

	p := tea.NewProgram(
		tui.NewModel(settings.Player, engine, entry),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		entry.WithError(err).Error("terminal program failed")
		return errors.Wrap(err, "run terminal program")
	}
	entry.Info("exited")
	return nil
}
