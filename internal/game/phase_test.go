package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitions(t *testing.T) {
	tests := []struct {
		from   Phase
		ev     phaseEvent
		want   Phase
		wantOK bool
	}{
		{PhaseReady, evStart, PhaseRunning, true},
		{PhaseReady, evPause, 0, false},
		{PhaseRunning, evStart, 0, false},
		{PhaseRunning, evPause, PhasePaused, true},
		{PhaseRunning, evTopOut, PhaseGameOver, true},
		{PhasePaused, evResume, PhaseRunning, true},
		{PhasePaused, evTopOut, 0, false},
		{PhaseGameOver, evResume, 0, false},
		{PhaseGameOver, evStart, 0, false},
	}
	for _, tt := range tests {
		got, ok := transition(tt.from, tt.ev)
		assert.Equal(t, tt.wantOK, ok, "%s on %d", tt.from, tt.ev)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "%s on %d", tt.from, tt.ev)
		}
	}

	for _, p := range []Phase{PhaseReady, PhaseRunning, PhasePaused, PhaseGameOver} {
		got, ok := transition(p, evReset)
		assert.True(t, ok, "reset from %s", p)
		assert.Equal(t, PhaseReady, got)
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "game_over", PhaseGameOver.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
