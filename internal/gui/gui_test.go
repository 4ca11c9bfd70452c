package gui

import (
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

func TestResetTimer(t *testing.T) {
	tm := NewResetTimer(100 * time.Millisecond)
	if tm.Advance(0.06) {
		t.Fatal("fired early")
	}
	if !tm.Advance(0.05) {
		t.Fatal("did not fire after interval")
	}
	tm.Restart()
	if tm.Remaining() != 100*time.Millisecond {
		t.Errorf("remaining after restart = %v", tm.Remaining())
	}

	never := NewResetTimer(0)
	if never.Advance(1000) {
		t.Error("zero interval fired")
	}
}

func TestVariantForKey(t *testing.T) {
	tests := []struct {
		key  int32
		want int
		ok   bool
	}{
		{rl.KeyOne, 0, true},
		{rl.KeyTwo, 1, true},
		{rl.KeyThree, 2, true},
		{rl.KeyFour, 0, false},
	}
	for _, tt := range tests {
		got, ok := VariantForKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("VariantForKey(%d) = %d, %v", tt.key, got, ok)
		}
	}
}

func TestToColor(t *testing.T) {
	c := ToColor(colorful.Color{R: 1, G: 0.5, B: 0}, 0.5)
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 128 {
		t.Errorf("ToColor = %+v", c)
	}
	if ToColor(colorful.Color{}, 2).A != 255 {
		t.Error("alpha not clamped")
	}
}
