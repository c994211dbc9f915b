package game

import (
	"testing"
	"time"
)

func TestFixedStepAdvance(t *testing.T) {
	f := newFixedStep(60)
	step := time.Second / 60

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"less than a tick", step / 2, 0},
		{"remainder carries over", step / 2, 1},
		{"exact tick", step, 1},
		{"two and a half", 5 * step / 2, 2},
		{"carried half completes", step / 2, 1},
		{"negative ignored", -step, 0},
	}

	for _, tt := range tests {
		if got := f.Advance(tt.elapsed); got != tt.want {
			t.Errorf("%s: Advance(%v) = %d, want %d", tt.name, tt.elapsed, got, tt.want)
		}
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	f := newFixedStep(60)
	step := time.Second / 60

	if got := f.Advance(20 * step); got != maxCatchUp {
		t.Errorf("Advance(stall) = %d, want %d", got, maxCatchUp)
	}
	if f.dropped != 20-maxCatchUp {
		t.Errorf("dropped = %d, want %d", f.dropped, 20-maxCatchUp)
	}
	// The backlog is gone, not deferred.
	if got := f.Advance(0); got != 0 {
		t.Errorf("Advance(0) after stall = %d, want 0", got)
	}
}
