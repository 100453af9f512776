package domain

// State is a step of the session loop.
type State int

const (
	StatePrompting State = iota
	StateWorking
	StatePausedWorking
	StateAlerting
	StateLogging
	StateBreaking
	StatePausedBreaking
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePrompting:
		return "PROMPTING"
	case StateWorking:
		return "WORKING"
	case StatePausedWorking:
		return "PAUSED_WORKING"
	case StateAlerting:
		return "ALERTING"
	case StateLogging:
		return "LOGGING"
	case StateBreaking:
		return "BREAKING"
	case StatePausedBreaking:
		return "PAUSED_BREAKING"
	default:
		return "UNKNOWN"
	}
}

// IsPaused reports whether the countdown is frozen in this state.
func (s State) IsPaused() bool {
	return s == StatePausedWorking || s == StatePausedBreaking
}

var transitions = map[State][]State{
	StatePrompting:      {StateWorking},
	StateWorking:        {StatePausedWorking, StateAlerting},
	StatePausedWorking:  {StateWorking},
	StateAlerting:       {StateLogging},
	StateLogging:        {StateBreaking},
	StateBreaking:       {StatePausedBreaking, StatePrompting},
	StatePausedBreaking: {StateBreaking},
}

// CanTransition reports whether the loop may move from one state to the next.
// There is no terminal state: the process only stops on an external interrupt.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
