package blocks

import "github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"

// Timers converts millisecond intervals into tick counts and emits at most
// one engine signal per tick: a periodic gravity step and a one-shot clear
// that is armed when rows fill.
type Timers struct {
	gravityEvery int
	gravityCount int
	clearDelay   int
	clearLeft    int // 0 when disarmed
}

// ticksFor rounds ms up to whole ticks. The result is at least one tick, so a
// zero delay fires on the tick after it was armed.
func ticksFor(ms, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	n := (ms*tickRate + 999) / 1000
	if n < 1 {
		return 1
	}
	return n
}

// NewTimers builds timers for the given intervals at tickRate ticks per second.
func NewTimers(gravityMS, clearDelayMS, tickRate int) Timers {
	return Timers{
		gravityEvery: ticksFor(gravityMS, tickRate),
		clearDelay:   ticksFor(clearDelayMS, tickRate),
	}
}

// ArmClear schedules a single SignalClearRows. Re-arming restarts the delay.
func (t *Timers) ArmClear() {
	t.clearLeft = t.clearDelay
}

// ClearArmed reports whether a clear signal is scheduled.
func (t *Timers) ClearArmed() bool {
	return t.clearLeft > 0
}

// GravityEvery returns the gravity period in ticks.
func (t *Timers) GravityEvery() int {
	return t.gravityEvery
}

// Next advances both timers by one tick and returns the signal to deliver.
// A due clear takes the slot; gravity that falls due on the same tick is
// delivered on the following one.
func (t *Timers) Next() engine.Signal {
	if t.clearLeft > 0 {
		t.clearLeft--
		if t.clearLeft == 0 {
			return engine.SignalClearRows
		}
	}
	if t.gravityCount < t.gravityEvery {
		t.gravityCount++
	}
	if t.gravityCount >= t.gravityEvery {
		t.gravityCount = 0
		return engine.SignalGravity
	}
	return engine.SignalNone
}
