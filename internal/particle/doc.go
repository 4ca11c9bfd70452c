// Package particle implements the decaying particles trailing each pendulum
// tip and the [Emitter] that owns them.
//
// Physics is one shared routine for every particle. The [Shape] tag only
// selects the rendered footprint (disc, equilateral triangle or square) and
// is fixed when the particle is spawned.
package particle
