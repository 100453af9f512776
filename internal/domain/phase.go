package domain

// Phase identifies which kind of interval a countdown is timing.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Logged reports whether finishing this phase appends a session record.
// Only work is logged.
func (p Phase) Logged() bool {
	return p == PhaseWork
}

// IsBreak reports whether the phase is a rest interval.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// String returns a display name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return string(p)
	}
}

// RunningState is the loop state while this phase counts down.
func (p Phase) RunningState() State {
	if p.IsBreak() {
		return StateBreaking
	}
	return StateWorking
}

// PausedState is the loop state while this phase is paused.
func (p Phase) PausedState() State {
	if p.IsBreak() {
		return StatePausedBreaking
	}
	return StatePausedWorking
}
