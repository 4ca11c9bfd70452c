package palette

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestArmSpansTheWheel(t *testing.T) {
	tests := []struct {
		hue  float64
		want string
	}{
		{0, "#ff0000"},
		{HueRange / 3, "#00ff00"},
		{HueRange * 2 / 3, "#0000ff"},
		{HueRange, "#ff0000"},
	}
	for _, tt := range tests {
		if got := Arm(tt.hue).Hex(); got != tt.want {
			t.Errorf("Arm(%v) = %s, want %s", tt.hue, got, tt.want)
		}
		if Arm(tt.hue) != Particle(tt.hue) {
			t.Errorf("arm and particle colours differ at hue %v", tt.hue)
		}
	}
}

func TestParticleSpansTheWheel(t *testing.T) {
	if got := Particle(0).Hex(); got != "#ff0000" {
		t.Errorf("Particle(0) = %s", got)
	}
	if got := Particle(HueRange / 2).Hex(); got != "#00ffff" {
		t.Errorf("Particle(127.5) = %s", got)
	}
	if got := Particle(HueRange).Hex(); got != "#ff0000" {
		t.Errorf("Particle(255) should wrap to red, got %s", got)
	}
}

func TestNonFiniteHue(t *testing.T) {
	if got := Arm(math.NaN()).Hex(); got != "#ff0000" {
		t.Errorf("NaN hue should render as hue 0, got %s", got)
	}
}

func TestFadeAndRGBA8(t *testing.T) {
	black := colorful.Color{}
	white := colorful.Color{R: 1, G: 1, B: 1}

	if got := Fade(white, black, 0).Hex(); got != "#000000" {
		t.Errorf("alpha 0 should give the background, got %s", got)
	}
	if got := Fade(white, black, 2).Hex(); got != "#ffffff" {
		t.Errorf("alpha is clamped to 1, got %s", got)
	}

	r, g, b, a := RGBA8(white, 0.5)
	if r != 255 || g != 255 || b != 255 || a != 128 {
		t.Errorf("unexpected rgba %d %d %d %d", r, g, b, a)
	}
}
