// Package game is a renderer-agnostic Tetris engine. A host drives it with
// Tick and input commands and draws it from Snapshot; the engine never
// starts goroutines or timers of its own and must be used from a single
// goroutine.
package game

import (
	"fmt"
	"time"
)

// Engine owns the board, the sequencer and the active piece, and runs the
// gravity, lock delay, line clear and scoring rules.
type Engine struct {
	cfg Config
	rng Randomizer

	board  *Board
	seq    *Sequencer
	active *Piece

	hold    Kind
	hasHold bool
	canHold bool

	phase  Phase
	score  int
	level  int
	lines  int
	pieces int

	// fall accumulates elapsed time toward the next gravity step.
	fall time.Duration

	// landed is set once a down move has failed; lockTimer then counts
	// toward LockDelay.
	landed     bool
	lockTimer  time.Duration
	lockResets int
	lowestRow  int

	queue     []Command
	events    []Event
	lastClear ClearResult
}

// New builds an engine in the Ready phase. rng shuffles every bag for the
// life of the engine, resets included.
func New(cfg Config, rng Randomizer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil randomizer", ErrInvalidConfig)
	}
	e := &Engine{
		cfg: cfg.clone(),
		rng: rng,
	}
	e.rebuild()
	return e, nil
}

func (e *Engine) rebuild() {
	e.board = NewBoard(e.cfg.Width, e.cfg.Height, e.cfg.Buffer)
	e.seq = NewSequencer(e.rng, e.cfg.PreviewLength)
	e.active = nil
	e.hold = 0
	e.hasHold = false
	e.canHold = true
	e.phase = PhaseReady
	e.score = 0
	e.level = e.cfg.StartLevel
	e.lines = 0
	e.pieces = 0
	e.fall = 0
	e.resetLock()
	e.queue = nil
	e.events = nil
	e.lastClear = ClearResult{}
}

func (e *Engine) resetLock() {
	e.landed = false
	e.lockTimer = 0
	e.lockResets = 0
	e.lowestRow = 0
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config { return e.cfg.clone() }

func (e *Engine) Phase() Phase { return e.phase }
func (e *Engine) Score() int   { return e.score }
func (e *Engine) Level() int   { return e.level }
func (e *Engine) Lines() int   { return e.lines }

// Start spawns the first piece and begins play. It returns false outside
// the Ready phase.
func (e *Engine) Start() bool {
	next, ok := transition(e.phase, evStart)
	if !ok {
		return false
	}
	e.phase = next
	e.spawn(e.seq.Next())
	return true
}

// Pause suspends gravity, lock delay and input until Resume.
func (e *Engine) Pause() bool {
	return e.fire(evPause)
}

func (e *Engine) Resume() bool {
	return e.fire(evResume)
}

// Reset discards the game and returns a fresh engine in the Ready phase.
// It is accepted in every phase.
func (e *Engine) Reset() {
	if _, ok := transition(e.phase, evReset); !ok {
		panic(&ProtocolError{Op: "reset", Phase: e.phase})
	}
	e.rebuild()
}

func (e *Engine) fire(ev phaseEvent) bool {
	next, ok := transition(e.phase, ev)
	if !ok {
		return false
	}
	e.phase = next
	return true
}

// playable panics if gameplay is driven before Start and reports whether
// the command can act on a live piece.
func (e *Engine) playable(op string) bool {
	if e.phase == PhaseReady {
		panic(&ProtocolError{Op: op, Phase: e.phase})
	}
	return e.phase == PhaseRunning && e.active != nil
}

// Move shifts the active piece one cell. A successful Down is a soft drop.
// A failed Down lands the piece and starts the lock delay.
func (e *Engine) Move(d Direction) bool {
	if !e.playable("move") {
		return false
	}
	if !e.active.TryMove(e.board, d) {
		if d == Down {
			e.land()
		}
		return false
	}
	if d == Down {
		e.score += e.cfg.SoftDropPoints
		e.descended()
	} else {
		e.adjusted()
	}
	return true
}

// Rotate turns the active piece a quarter turn, using wall kicks if needed.
func (e *Engine) Rotate(r RotateDir) bool {
	if !e.playable("rotate") {
		return false
	}
	if !e.active.TryRotate(e.board, r) {
		return false
	}
	e.adjusted()
	return true
}

// HardDrop drops the active piece as far as it goes and locks it at once,
// skipping the lock delay. It returns the rows dropped.
func (e *Engine) HardDrop() int {
	if !e.playable("hard_drop") {
		return 0
	}
	rows := e.active.Drop(e.board)
	e.score += rows * e.cfg.HardDropPoints
	e.lock()
	return rows
}

// Hold swaps the active piece into the hold slot, once per piece.
func (e *Engine) Hold() bool {
	if !e.playable("hold") {
		return false
	}
	if !e.cfg.HoldEnabled || !e.canHold {
		return false
	}
	current := e.active.Kind
	var next Kind
	if e.hasHold {
		next = e.hold
	} else {
		next = e.seq.Next()
	}
	e.hold = current
	e.hasHold = true
	e.canHold = false
	e.emit(Event{Type: EventHold, Kind: current})
	e.spawn(next)
	return true
}

// Apply runs a command immediately and reports whether it changed anything.
func (e *Engine) Apply(c Command) bool {
	switch c.Type {
	case CmdMove:
		return e.Move(c.Dir)
	case CmdRotate:
		return e.Rotate(c.Rotate)
	case CmdHardDrop:
		if !e.playable("hard_drop") {
			return false
		}
		e.HardDrop()
		return true
	case CmdHold:
		return e.Hold()
	}
	return false
}

// Enqueue stores a command for the next Tick. Commands sent while paused or
// after game over are dropped.
func (e *Engine) Enqueue(c Command) {
	if !e.playable("enqueue") {
		return
	}
	e.queue = append(e.queue, c)
}

// Tick advances the game by elapsed: queued commands first, then lock
// delay, then gravity. Nothing advances unless the engine is running.
func (e *Engine) Tick(elapsed time.Duration) {
	if !e.playable("tick") {
		return
	}

	queued := e.queue
	e.queue = nil
	for _, c := range queued {
		if e.phase != PhaseRunning {
			return
		}
		e.Apply(c)
	}
	if e.phase != PhaseRunning || elapsed <= 0 {
		return
	}

	if e.landed {
		if !e.active.Grounded(e.board) {
			e.landed = false
			e.lockTimer = 0
		} else {
			e.lockTimer += elapsed
			if e.lockTimer >= e.cfg.LockDelay {
				e.lock()
			}
			return
		}
	}

	e.fall += elapsed
	interval := e.cfg.GravityFor(e.level)
	for e.fall >= interval {
		e.fall -= interval
		if e.active.TryMove(e.board, Down) {
			e.descended()
			continue
		}
		e.land()
		e.fall = 0
		break
	}
}

func (e *Engine) land() {
	if e.landed {
		return
	}
	e.landed = true
	e.lockTimer = 0
}

// descended resets the lock state after the piece moves down. Reaching a
// new lowest row also restores the move-reset allowance.
func (e *Engine) descended() {
	e.landed = false
	e.lockTimer = 0
	if e.active.Row > e.lowestRow {
		e.lowestRow = e.active.Row
		e.lockResets = 0
	}
}

// adjusted handles a successful shift or rotation.
func (e *Engine) adjusted() {
	if !e.landed {
		return
	}
	if !e.active.Grounded(e.board) {
		e.landed = false
		e.lockTimer = 0
		return
	}
	if e.lockResets < e.cfg.MaxLockResets {
		e.lockResets++
		e.lockTimer = 0
	}
}

func (e *Engine) lock() {
	p := e.active
	e.board.Commit(p.Cells(), p.Kind.Color())
	e.active = nil
	e.pieces++

	rows := e.board.ClearFullRows()
	points := e.cfg.lineClearScore(len(rows), e.level)
	e.score += points
	e.lines += len(rows)
	e.lastClear = ClearResult{Rows: rows, Points: points}
	e.emit(Event{Type: EventLocked, Kind: p.Kind})
	if len(rows) > 0 {
		e.emit(Event{Type: EventLinesCleared, Kind: p.Kind, Rows: append([]int(nil), rows...), Points: points})
	}

	if lvl := e.cfg.levelFor(e.lines, e.level); lvl != e.level {
		e.level = lvl
		e.emit(Event{Type: EventLevelUp})
	}

	e.canHold = true
	e.spawn(e.seq.Next())
}

func (e *Engine) spawn(k Kind) {
	p, ok := Spawn(e.board, k)
	e.fall = 0
	e.resetLock()
	if !ok {
		e.topOut(k)
		return
	}
	e.active = p
	e.lowestRow = p.Row
}

func (e *Engine) topOut(k Kind) {
	next, ok := transition(e.phase, evTopOut)
	if !ok {
		panic(&ProtocolError{Op: "top_out", Phase: e.phase})
	}
	e.phase = next
	e.active = nil
	e.queue = nil
	e.emit(Event{Type: EventTopOut, Kind: k})
}

func (e *Engine) emit(ev Event) {
	ev.Score = e.score
	ev.Level = e.level
	ev.Lines = e.lines
	e.events = append(e.events, ev)
}

// DrainEvents returns the events recorded since the last call.
func (e *Engine) DrainEvents() []Event {
	out := e.events
	e.events = nil
	return out
}
