package state

// Phase is the pointer state carried between ticks.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressed:
		return "pressed"
	case PhaseCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Input is the host's input snapshot for one tick.
type Input struct {
	Down   bool  // primary button is held
	Pos    Point // pointer position in local coordinates
	Cancel bool  // escape was typed while the area had keyboard focus
	Quit   bool  // the user asked to close the window
}

// ActionKind classifies what a tick's input means for the active stroke.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionCancel
	ActionPress
	ActionDrag
	ActionRelease
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionCancel:
		return "cancel"
	case ActionPress:
		return "press"
	case ActionDrag:
		return "drag"
	case ActionRelease:
		return "release"
	}
	return "unknown"
}

// Action is the result of classifying one input snapshot.
// Pos is only meaningful for press and drag.
type Action struct {
	Kind ActionKind
	Pos  Point
}

// Classify maps the previous phase and the current input to at most one action.
// A cancel beats any pointer activity in the same tick, and a press while
// cancelled is swallowed until the button is released.
func Classify(prev Phase, in Input) Action {
	if in.Cancel {
		return Action{Kind: ActionCancel}
	}
	if in.Down {
		switch prev {
		case PhaseCancelled:
			return Action{}
		case PhasePressed:
			return Action{Kind: ActionDrag, Pos: in.Pos}
		default:
			return Action{Kind: ActionPress, Pos: in.Pos}
		}
	}
	if prev == PhasePressed || prev == PhaseCancelled {
		return Action{Kind: ActionRelease}
	}
	return Action{}
}

// Next returns the phase that follows prev once a is applied.
func (a Action) Next(prev Phase) Phase {
	switch a.Kind {
	case ActionCancel:
		return PhaseCancelled
	case ActionPress, ActionDrag:
		return PhasePressed
	case ActionRelease:
		return PhaseIdle
	}
	return prev
}
