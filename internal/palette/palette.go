// Package palette maps pendulum hues to colors.
//
// Hues are in [0, 255] and span the whole color wheel, so 0 and 255 are
// both red.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const HueRange = 255.0

// Wheel maps a hue in [0, HueRange] to a fully saturated color.
func Wheel(hue float64) colorful.Color {
	return colorful.Hsv(wrapDegrees(hue/HueRange*360), 1, 1)
}

// Arm is the color of arms, bobs and trails.
func Arm(hue float64) colorful.Color { return Wheel(hue) }

// Particle is the color of particle fills before fading.
func Particle(hue float64) colorful.Color { return Wheel(hue) }

// Fade blends c toward bg by 1-alpha; used where the target has no alpha.
func Fade(c, bg colorful.Color, alpha float64) colorful.Color {
	return bg.BlendRgb(c, clamp01(alpha)).Clamped()
}

// RGBA8 returns 8-bit channels with the given alpha.
func RGBA8(c colorful.Color, alpha float64) (r, g, b, a uint8) {
	r, g, b = c.Clamped().RGB255()
	return r, g, b, uint8(math.Round(clamp01(alpha) * 255))
}

func wrapDegrees(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
