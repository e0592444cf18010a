// Package logging builds the logrus loggers hosts write to and turns engine
// events into log entries.
package logging

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hersh/tetrion/internal/game"
)

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})
	return log, nil
}

// File opens a size-rotated log file. The terminal host cannot log to
// stderr while bubbletea owns the screen.
func File(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

// Events logs drained engine events. Locks and holds are debug noise;
// clears, level changes and top-outs are info.
func Events(log logrus.FieldLogger, events []game.Event) {
	for _, ev := range events {
		entry := log.WithFields(logrus.Fields{
			"event": ev.Type.String(),
			"score": ev.Score,
			"level": ev.Level,
			"lines": ev.Lines,
		})
		switch ev.Type {
		case game.EventLinesCleared:
			entry.WithFields(logrus.Fields{
				"rows":   ev.Rows,
				"points": ev.Points,
			}).Info("lines cleared")
		case game.EventLevelUp:
			entry.Info("level up")
		case game.EventTopOut:
			entry.WithField("kind", ev.Kind.String()).Info("top out")
		default:
			entry.WithField("kind", ev.Kind.String()).Debug(ev.Type.String())
		}
	}
}
