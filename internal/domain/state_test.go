package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_Cycle(t *testing.T) {
	cycle := []State{
		StatePrompting,
		StateWorking,
		StatePausedWorking,
		StateWorking,
		StateAlerting,
		StateLogging,
		StateBreaking,
		StatePausedBreaking,
		StateBreaking,
		StatePrompting,
	}

	for i := 1; i < len(cycle); i++ {
		assert.True(t, CanTransition(cycle[i-1], cycle[i]), "%s -> %s", cycle[i-1], cycle[i])
	}
}

func TestCanTransition_Rejects(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{StatePrompting, StateBreaking},
		{StateWorking, StateLogging},
		{StateAlerting, StateBreaking},
		{StateLogging, StatePrompting},
		{StatePausedWorking, StateAlerting},
		{StateBreaking, StateWorking},
		{StatePausedBreaking, StatePrompting},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.False(t, CanTransition(tt.from, tt.to))
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "PROMPTING", StatePrompting.String())
	assert.Equal(t, "PAUSED_BREAKING", StatePausedBreaking.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}

func TestState_IsPaused(t *testing.T) {
	assert.True(t, StatePausedWorking.IsPaused())
	assert.True(t, StatePausedBreaking.IsPaused())
	assert.False(t, StateWorking.IsPaused())
	assert.False(t, StateAlerting.IsPaused())
}

func TestPhase(t *testing.T) {
	assert.True(t, PhaseWork.Logged())
	assert.False(t, PhaseShortBreak.Logged())
	assert.False(t, PhaseLongBreak.Logged())

	assert.True(t, PhaseLongBreak.IsBreak())
	assert.False(t, PhaseWork.IsBreak())

	assert.Equal(t, StateWorking, PhaseWork.RunningState())
	assert.Equal(t, StatePausedWorking, PhaseWork.PausedState())
	assert.Equal(t, StateBreaking, PhaseShortBreak.RunningState())
	assert.Equal(t, StatePausedBreaking, PhaseLongBreak.PausedState())

	assert.Equal(t, "Long Break", PhaseLongBreak.String())
}
