package game

import (
	"fmt"
	"time"
)

const (
	BoardWidth  = 10
	BoardHeight = 20

	// HiddenRows is the default spawn buffer above the visible field.
	HiddenRows = 2
)

// Config tunes an Engine. It is copied at construction and never changes
// for the life of the engine.
type Config struct {
	Width  int
	Height int
	Buffer int

	// Gravity holds the fall interval per level, starting at level 0. Levels
	// past the end use the last entry, which is the speed floor.
	Gravity []time.Duration

	// LockDelay is how long a landed piece waits before locking.
	LockDelay time.Duration

	// MaxLockResets caps how many successful moves or rotations may restart
	// the lock delay for a single piece. Zero disables move reset.
	MaxLockResets int

	// LineClearScores is indexed by lines cleared in one lock (1..4) and is
	// multiplied by level+1.
	LineClearScores [5]int

	// SoftDropPoints and HardDropPoints are awarded per row dropped. Both
	// default to zero so a lock scores only its line clear; 1 and 2 give
	// the classic drop bonuses.
	SoftDropPoints int
	HardDropPoints int

	PreviewLength int
	LinesPerLevel int
	StartLevel    int
	HoldEnabled   bool
}

// DefaultGravity is the fall interval table by level.
func DefaultGravity() []time.Duration {
	return []time.Duration{
		800 * time.Millisecond,
		720 * time.Millisecond,
		630 * time.Millisecond,
		550 * time.Millisecond,
		470 * time.Millisecond,
		380 * time.Millisecond,
		300 * time.Millisecond,
		220 * time.Millisecond,
		130 * time.Millisecond,
		100 * time.Millisecond,
		80 * time.Millisecond,
		80 * time.Millisecond,
		80 * time.Millisecond,
		70 * time.Millisecond,
		70 * time.Millisecond,
		70 * time.Millisecond,
		50 * time.Millisecond,
		50 * time.Millisecond,
		50 * time.Millisecond,
		30 * time.Millisecond,
	}
}

// DefaultLineClearScores is the classic single/double/triple/tetris table.
var DefaultLineClearScores = [5]int{0, 100, 300, 500, 800}

func DefaultConfig() Config {
	return Config{
		Width:           BoardWidth,
		Height:          BoardHeight,
		Buffer:          HiddenRows,
		Gravity:         DefaultGravity(),
		LockDelay:       500 * time.Millisecond,
		MaxLockResets:   15,
		LineClearScores: DefaultLineClearScores,
		SoftDropPoints:  0,
		HardDropPoints:  0,
		PreviewLength:   3,
		LinesPerLevel:   10,
		StartLevel:      0,
		HoldEnabled:     true,
	}
}

// Validate checks that the config describes a playable game.
func (c Config) Validate() error {
	if c.Width < 4 {
		return fmt.Errorf("%w: width %d is narrower than the I piece", ErrInvalidConfig, c.Width)
	}
	if c.Height < 4 {
		return fmt.Errorf("%w: height %d is too short", ErrInvalidConfig, c.Height)
	}
	if c.Buffer < 2 {
		return fmt.Errorf("%w: hidden buffer needs at least 2 rows, got %d", ErrInvalidConfig, c.Buffer)
	}
	if len(c.Gravity) == 0 {
		return fmt.Errorf("%w: gravity table is empty", ErrInvalidConfig)
	}
	for i, d := range c.Gravity {
		if d <= 0 {
			return fmt.Errorf("%w: gravity[%d] must be positive, got %s", ErrInvalidConfig, i, d)
		}
		if i > 0 && d > c.Gravity[i-1] {
			return fmt.Errorf("%w: gravity[%d]=%s is slower than the level before it", ErrInvalidConfig, i, d)
		}
	}
	if c.LockDelay <= 0 {
		return fmt.Errorf("%w: lock delay must be positive, got %s", ErrInvalidConfig, c.LockDelay)
	}
	if c.MaxLockResets < 0 {
		return fmt.Errorf("%w: max lock resets cannot be negative", ErrInvalidConfig)
	}
	for n := 1; n < len(c.LineClearScores); n++ {
		if c.LineClearScores[n] < 0 {
			return fmt.Errorf("%w: score for %d lines is negative", ErrInvalidConfig, n)
		}
	}
	if c.SoftDropPoints < 0 || c.HardDropPoints < 0 {
		return fmt.Errorf("%w: drop points cannot be negative", ErrInvalidConfig)
	}
	if c.PreviewLength < 1 {
		return fmt.Errorf("%w: preview length must be at least 1, got %d", ErrInvalidConfig, c.PreviewLength)
	}
	if c.LinesPerLevel < 1 {
		return fmt.Errorf("%w: lines per level must be at least 1, got %d", ErrInvalidConfig, c.LinesPerLevel)
	}
	if c.StartLevel < 0 {
		return fmt.Errorf("%w: start level cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// GravityFor returns the fall interval at level.
func (c Config) GravityFor(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	if level >= len(c.Gravity) {
		return c.Gravity[len(c.Gravity)-1]
	}
	return c.Gravity[level]
}

func (c Config) clone() Config {
	out := c
	out.Gravity = append([]time.Duration(nil), c.Gravity...)
	return out
}
