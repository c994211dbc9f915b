package game

import "time"

// maxCatchUp caps the ticks run in one frame after a stall.
const maxCatchUp = 5

// fixedStep turns wall-clock frame time into a whole number of
// simulation ticks.
type fixedStep struct {
	step    time.Duration
	acc     time.Duration
	dropped int // ticks discarded by the catch-up cap
}

func newFixedStep(rate int) *fixedStep {
	return &fixedStep{step: time.Second / time.Duration(rate)}
}

// Advance adds elapsed time and returns how many ticks are due. Any
// backlog beyond maxCatchUp ticks is discarded.
func (f *fixedStep) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		f.acc += elapsed
	}
	n := int(f.acc / f.step)
	f.acc -= time.Duration(n) * f.step
	if n > maxCatchUp {
		f.dropped += n - maxCatchUp
		n = maxCatchUp
	}
	return n
}
