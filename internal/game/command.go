package game

import "fmt"

type CommandType int

const (
	CmdMove CommandType = iota
	CmdRotate
	CmdHardDrop
	CmdHold
)

// Command is a discrete input, either applied immediately with Apply or
// queued with Enqueue for the next Tick.
type Command struct {
	Type   CommandType
	Dir    Direction
	Rotate RotateDir
}

func MoveCmd(d Direction) Command   { return Command{Type: CmdMove, Dir: d} }
func RotateCmd(r RotateDir) Command { return Command{Type: CmdRotate, Rotate: r} }
func HardDropCmd() Command          { return Command{Type: CmdHardDrop} }
func HoldCmd() Command              { return Command{Type: CmdHold} }

func (c Command) String() string {
	switch c.Type {
	case CmdMove:
		return "move " + c.Dir.String()
	case CmdRotate:
		return "rotate " + c.Rotate.String()
	case CmdHardDrop:
		return "hard_drop"
	case CmdHold:
		return "hold"
	}
	return fmt.Sprintf("Command(%d)", int(c.Type))
}

// EventType identifies an Event.
type EventType int

const (
	EventLocked EventType = iota
	EventLinesCleared
	EventLevelUp
	EventHold
	EventTopOut
)

func (t EventType) String() string {
	switch t {
	case EventLocked:
		return "locked"
	case EventLinesCleared:
		return "lines_cleared"
	case EventLevelUp:
		return "level_up"
	case EventHold:
		return "hold"
	case EventTopOut:
		return "top_out"
	}
	return "unknown"
}

// Event records something the engine did during a command or tick. Hosts
// drain them with DrainEvents, typically once per frame.
type Event struct {
	Type   EventType
	Kind   Kind
	Rows   []int
	Points int
	Score  int
	Level  int
	Lines  int
}
