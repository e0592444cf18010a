package game

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

type phaseEvent int

const (
	evStart phaseEvent = iota
	evPause
	evResume
	evTopOut
	evReset
)

var transitions = map[Phase]map[phaseEvent]Phase{
	PhaseReady: {
		evStart: PhaseRunning,
		evReset: PhaseReady,
	},
	PhaseRunning: {
		evPause:  PhasePaused,
		evTopOut: PhaseGameOver,
		evReset:  PhaseReady,
	},
	PhasePaused: {
		evResume: PhaseRunning,
		evReset:  PhaseReady,
	},
	PhaseGameOver: {
		evReset: PhaseReady,
	},
}

// transition returns the phase reached from p on ev, and false if ev is not
// accepted in p.
func transition(p Phase, ev phaseEvent) (Phase, bool) {
	next, ok := transitions[p][ev]
	return next, ok
}
