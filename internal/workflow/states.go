package workflow

// LoadState tracks route resolution for a session: Idle -> Loading -> Ready.
type LoadState int

const (
	Idle LoadState = iota
	Loading
	Ready
)

func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// SelectionState tracks the operator's pick: NoSelection -> Selected -> Confirmed.
// Confirmation does not lock the pick; a new selection may be made at any time.
type SelectionState int

const (
	NoSelection SelectionState = iota
	Selected
	Confirmed
)

func (s SelectionState) String() string {
	switch s {
	case NoSelection:
		return "none"
	case Selected:
		return "selected"
	case Confirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}
