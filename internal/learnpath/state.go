package learnpath

// ModuleState is a module's position relative to the learner.
type ModuleState int

const (
	StateLocked     ModuleState = iota // Previous module not yet complete
	StateInProgress                    // Unlocked, at least one task open
	StateComplete                      // Every task done
)

// Icon returns the display icon for a module state.
func (s ModuleState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateInProgress:
		return "📖"
	case StateComplete:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a module state.
func (s ModuleState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateInProgress:
		return "In progress"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

func (s ModuleState) String() string {
	return s.Label()
}

// ModuleTransition records a module state change caused by a task toggle.
type ModuleTransition struct {
	ModuleID string
	Title    string
	From     ModuleState
	To       ModuleState
}
