package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ResetTimer counts running frame time toward the next ensemble reset.
// A zero interval never fires.
type ResetTimer struct {
	Interval time.Duration
	elapsed  time.Duration
}

func NewResetTimer(interval time.Duration) *ResetTimer {
	return &ResetTimer{Interval: interval}
}

// Advance adds a frame of dt seconds and reports whether the interval has
// run out. The caller resets and then calls Restart.
func (t *ResetTimer) Advance(dt float32) bool {
	t.elapsed += time.Duration(float64(dt) * float64(time.Second))
	return t.Interval > 0 && t.elapsed >= t.Interval
}

func (t *ResetTimer) Restart() { t.elapsed = 0 }

func (t *ResetTimer) Remaining() time.Duration {
	if t.elapsed >= t.Interval {
		return 0
	}
	return t.Interval - t.elapsed
}

// VariantForKey maps the number keys to particle shapes.
func VariantForKey(k int32) (int, bool) {
	switch k {
	case rl.KeyOne:
		return 0, true
	case rl.KeyTwo:
		return 1, true
	case rl.KeyThree:
		return 2, true
	}
	return 0, false
}
