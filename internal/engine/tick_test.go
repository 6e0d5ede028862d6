package engine

import "testing"

func TestEngineStep(t *testing.T) {
	eng := NewEngine()

	var ticks []uint64
	var days []uint64
	eng.OnTick = func(tick uint64) { ticks = append(ticks, tick) }
	eng.OnDay = func(tick uint64) { days = append(days, tick) }

	for i := 0; i < TicksPerDay*2; i++ {
		eng.Step()
	}

	if eng.Tick != TicksPerDay*2 {
		t.Errorf("tick counter = %d, want %d", eng.Tick, TicksPerDay*2)
	}
	if len(ticks) != TicksPerDay*2 {
		t.Errorf("OnTick fired %d times, want %d", len(ticks), TicksPerDay*2)
	}
	if len(days) != 2 {
		t.Fatalf("OnDay fired %d times, want 2", len(days))
	}
	if days[0] != TicksPerDay || days[1] != TicksPerDay*2 {
		t.Errorf("OnDay fired at ticks %v, want day boundaries", days)
	}
}

func TestEngineStepNilCallbacks(t *testing.T) {
	eng := NewEngine()
	for i := 0; i < TicksPerDay; i++ {
		eng.Step() // must not panic without callbacks
	}
	if eng.Tick != TicksPerDay {
		t.Errorf("tick counter = %d, want %d", eng.Tick, TicksPerDay)
	}
}

func TestSimTime(t *testing.T) {
	tests := []struct {
		tick uint64
		want string
	}{
		{0, "Day 1, 00:00"},
		{1, "Day 1, 01:00"},
		{23, "Day 1, 23:00"},
		{24, "Day 2, 00:00"},
		{25, "Day 2, 01:00"},
		{49, "Day 3, 01:00"},
	}
	for _, tt := range tests {
		if got := SimTime(tt.tick); got != tt.want {
			t.Errorf("SimTime(%d) = %q, want %q", tt.tick, got, tt.want)
		}
	}
}
