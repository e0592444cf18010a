// Package config loads tetrion settings. Later sources win: built-in
// defaults, an optional config file, TETRION_* environment variables (a .env
// file in the working directory is loaded first), then command-line flags.
package config

import (
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hersh/tetrion/internal/game"
)

const EnvPrefix = "TETRION"

// Settings is everything a host needs to run games.
type Settings struct {
	Game game.Config

	// Seed drives the piece randomizer. Zero means the host picks one.
	Seed   uint64
	Player string

	LogFile  string
	LogLevel string
}

// flagKeys maps flag names to viper keys.
var flagKeys = map[string]string{
	"config":    "config",
	"seed":      "seed",
	"level":     "start_level",
	"preview":   "preview",
	"hold":      "hold",
	"player":    "player",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// Flags returns a flag set with every flag Load understands. Hosts may add
// their own flags before parsing.
func Flags(name string) *pflag.FlagSet {
	d := game.DefaultConfig()
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "config file (yaml, toml or json)")
	flags.Uint64("seed", 0, "randomizer seed, 0 picks one from the clock")
	flags.Int("level", d.StartLevel, "starting level")
	flags.Int("preview", d.PreviewLength, "number of upcoming pieces shown")
	flags.Bool("hold", d.HoldEnabled, "enable the hold slot")
	flags.String("player", "Player", "player name")
	flags.String("log-file", "tetrion.log", "log file")
	flags.String("log-level", "info", "log level")
	return flags
}

// Load resolves settings. flags may be nil; flags it does not know are
// ignored.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return decode(v)
}

func setDefaults(v *viper.Viper) {
	d := game.DefaultConfig()
	gravity := make([]string, len(d.Gravity))
	for i, g := range d.Gravity {
		gravity[i] = g.String()
	}

	v.SetDefault("board.width", d.Width)
	v.SetDefault("board.height", d.Height)
	v.SetDefault("board.buffer", d.Buffer)
	v.SetDefault("gravity", gravity)
	v.SetDefault("lock_delay", d.LockDelay)
	v.SetDefault("max_lock_resets", d.MaxLockResets)
	v.SetDefault("scores", d.LineClearScores[:])
	v.SetDefault("soft_drop_points", d.SoftDropPoints)
	v.SetDefault("hard_drop_points", d.HardDropPoints)
	v.SetDefault("preview", d.PreviewLength)
	v.SetDefault("lines_per_level", d.LinesPerLevel)
	v.SetDefault("start_level", d.StartLevel)
	v.SetDefault("hold", d.HoldEnabled)

	v.SetDefault("seed", 0)
	v.SetDefault("player", "Player")
	v.SetDefault("log.file", "tetrion.log")
	v.SetDefault("log.level", "info")
}

func decode(v *viper.Viper) (*Settings, error) {
	gravity, err := parseDurations(v.GetStringSlice("gravity"))
	if err != nil {
		return nil, errors.Wrap(err, "gravity")
	}
	scores := v.GetIntSlice("scores")
	if len(scores) != len(game.DefaultLineClearScores) {
		return nil, errors.Wrapf(game.ErrInvalidConfig, "scores: want %d entries, got %d",
			len(game.DefaultLineClearScores), len(scores))
	}

	cfg := game.Config{
		Width:          v.GetInt("board.width"),
		Height:         v.GetInt("board.height"),
		Buffer:         v.GetInt("board.buffer"),
		Gravity:        gravity,
		LockDelay:      v.GetDuration("lock_delay"),
		MaxLockResets:  v.GetInt("max_lock_resets"),
		SoftDropPoints: v.GetInt("soft_drop_points"),
		HardDropPoints: v.GetInt("hard_drop_points"),
		PreviewLength:  v.GetInt("preview"),
		LinesPerLevel:  v.GetInt("lines_per_level"),
		StartLevel:     v.GetInt("start_level"),
		HoldEnabled:    v.GetBool("hold"),
	}
	copy(cfg.LineClearScores[:], scores)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "game config")
	}

	return &Settings{
		Game:     cfg,
		Seed:     v.GetUint64("seed"),
		Player:   v.GetString("player"),
		LogFile:  v.GetString("log.file"),
		LogLevel: v.GetString("log.level"),
	}, nil
}

func parseDurations(in []string) ([]time.Duration, error) {
	out := make([]time.Duration, 0, len(in))
	for _, s := range in {
		d, err := time.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Wrapf(game.ErrInvalidConfig, "%q: %v", s, err)
		}
		out = append(out, d)
	}
	return out, nil
}
