package engine

// Intent is a discrete player request for one tick.
type Intent uint8

const (
	IntentRotateCW Intent = iota
	IntentMoveLeft
	IntentMoveRight
	IntentSoftDrop
	IntentHardDrop
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentRotateCW:
		return "RotateCW"
	case IntentMoveLeft:
		return "MoveLeft"
	case IntentMoveRight:
		return "MoveRight"
	case IntentSoftDrop:
		return "SoftDrop"
	case IntentHardDrop:
		return "HardDrop"
	default:
		return "Unknown"
	}
}

// Signal is a timer event delivered by the host.
type Signal uint8

const (
	SignalNone Signal = iota
	// SignalGravity is the periodic forced descent. It behaves like SoftDrop.
	SignalGravity
	// SignalClearRows is the one-shot timer armed when rows become full.
	SignalClearRows
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "None"
	case SignalGravity:
		return "GravityTick"
	case SignalClearRows:
		return "ClearRowsFired"
	default:
		return "Unknown"
	}
}

// Input is everything the engine consumes in one tick: a set of intents and
// at most one timer signal.
type Input struct {
	intents uint8
	Signal  Signal
}

// NewInput builds an input from a list of intents.
func NewInput(intents ...Intent) Input {
	var in Input
	for _, i := range intents {
		in = in.With(i)
	}
	return in
}

// With returns a copy of the input with the intent added.
func (in Input) With(i Intent) Input {
	in.intents |= 1 << i
	return in
}

// WithSignal returns a copy of the input carrying the given signal.
func (in Input) WithSignal(s Signal) Input {
	in.Signal = s
	return in
}

// Has reports whether the intent is present.
func (in Input) Has(i Intent) bool {
	return in.intents&(1<<i) != 0
}

// Empty reports whether the input carries no intents and no signal.
func (in Input) Empty() bool {
	return in.intents == 0 && in.Signal == SignalNone
}
