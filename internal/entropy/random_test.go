package entropy

import (
	"math"
	"testing"
)

func TestSeededDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		if av, bv := a.Float64(), b.Float64(); av != bv {
			t.Fatalf("draw %d diverged: %v vs %v", i, av, bv)
		}
	}
}

func TestSeededDifferentSeedsDiverge(t *testing.T) {
	a := NewSeeded(1)
	b := NewSeeded(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestBetweenRange(t *testing.T) {
	s := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := s.Between(0.0700, 0.0735)
		if v < 0.0700 || v >= 0.0735 {
			t.Fatalf("Between returned %v outside [0.0700, 0.0735)", v)
		}
	}
}

func TestIntnRange(t *testing.T) {
	s := NewSeeded(7)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.Intn(4)
		if v < 0 || v >= 4 {
			t.Fatalf("Intn(4) returned %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("Intn(4) only produced %d distinct values in 1000 draws", len(seen))
	}
}

func TestFixedReplaysAndCycles(t *testing.T) {
	f := &Fixed{Values: []float64{0.1, 0.9}}

	want := []float64{0.1, 0.9, 0.1, 0.9}
	for i, w := range want {
		if got := f.Float64(); got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestFixedEmptyDefaults(t *testing.T) {
	f := &Fixed{}
	if got := f.Float64(); got != 0.5 {
		t.Errorf("empty Fixed returned %v, want 0.5", got)
	}
	if got := f.Between(0, 10); got != 5 {
		t.Errorf("empty Fixed Between(0, 10) = %v, want 5", got)
	}
	if got := f.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
}

func TestFixedBetweenMapsValues(t *testing.T) {
	f := &Fixed{Values: []float64{0.5}}
	if got := f.Between(0.0700, 0.0735); math.Abs(got-0.07175) > 1e-12 {
		t.Errorf("Between = %v, want 0.07175", got)
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed error: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed error: %v", err)
	}
	if a == b {
		t.Error("two fresh seeds were identical")
	}
}
