package blocks

import (
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

func TestTicksFor(t *testing.T) {
	tests := []struct {
		ms, rate, want int
	}{
		{1000, 60, 60},
		{300, 60, 18},
		{700, 60, 42},
		{10, 60, 1},
		{0, 60, 1},
		{1000, 0, 60},
		{1001, 60, 61},
	}
	for _, tt := range tests {
		if got := ticksFor(tt.ms, tt.rate); got != tt.want {
			t.Errorf("ticksFor(%d, %d) = %d, want %d", tt.ms, tt.rate, got, tt.want)
		}
	}
}

func TestTimersGravityPeriod(t *testing.T) {
	tm := NewTimers(1000, 300, 60)
	for i := 1; i <= 180; i++ {
		sig := tm.Next()
		want := engine.SignalNone
		if i%60 == 0 {
			want = engine.SignalGravity
		}
		if sig != want {
			t.Fatalf("tick %d: got %v, want %v", i, sig, want)
		}
	}
}

func TestTimersClearFiresOnce(t *testing.T) {
	tm := NewTimers(100000, 300, 60)
	tm.ArmClear()
	if !tm.ClearArmed() {
		t.Fatal("clear should be armed")
	}

	fired := 0
	for i := 1; i <= 100; i++ {
		if tm.Next() == engine.SignalClearRows {
			fired++
			if i != 18 {
				t.Errorf("clear fired on tick %d, want 18", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("clear fired %d times, want 1", fired)
	}
	if tm.ClearArmed() {
		t.Error("clear should be disarmed after firing")
	}
}

func TestTimersClearTakesPrecedence(t *testing.T) {
	// Gravity every 2 ticks, clear after 2 ticks: both due on tick 2.
	tm := NewTimers(2000, 2000, 1)
	tm.ArmClear()

	got := []engine.Signal{tm.Next(), tm.Next(), tm.Next()}
	want := []engine.Signal{engine.SignalNone, engine.SignalClearRows, engine.SignalGravity}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tick %d: got %v, want %v", i+1, got[i], want[i])
		}
	}
}
