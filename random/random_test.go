package random

import "testing"

func TestNewDeterministic(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 20; i++ {
		gotA := a.Float64()
		gotB := b.Float64()
		if gotA != gotB {
			t.Fatalf("expected deterministic sequence, mismatch at %d: %v != %v", i, gotA, gotB)
		}
	}
}

func TestSeedWordChangesWithSalt(t *testing.T) {
	if seedWord(99, "a") == seedWord(99, "b") {
		t.Fatalf("expected different seed words for different salts")
	}
}

func TestIntNBounds(t *testing.T) {
	tests := []struct {
		name string
		draw float64
		n    int
		want int
	}{
		{"zero draw", 0, 5, 0},
		{"middle", 0.5, 5, 2},
		{"top", 0.9999, 5, 4},
		{"clamped", 1.0, 5, 4},
		{"single", 0.7, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntN(Constant(tt.draw), tt.n); got != tt.want {
				t.Errorf("IntN(%v, %d) = %d, want %d", tt.draw, tt.n, got, tt.want)
			}
		})
	}
}

func TestIntNEmptyDoesNotDraw(t *testing.T) {
	s := Constant(0.3)
	if got := IntN(s, 0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
	if s.Drawn() != 0 {
		t.Fatalf("expected no draw for n=0, got %d", s.Drawn())
	}
}

func TestIntRange(t *testing.T) {
	if got := IntRange(Constant(0), 25, 75); got != 25 {
		t.Fatalf("IntRange low = %d, want 25", got)
	}
	if got := IntRange(Constant(0.999), 25, 75); got != 74 {
		t.Fatalf("IntRange high = %d, want 74", got)
	}
}

func TestScriptCycles(t *testing.T) {
	s := NewScript(0.1, 0.2)
	want := []float64{0.1, 0.2, 0.1}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Fatalf("draw %d = %v, want %v", i, got, w)
		}
	}
	if s.Drawn() != 3 {
		t.Fatalf("Drawn() = %d, want 3", s.Drawn())
	}
}
