// Package physics integrates the chaotic double pendulum that drives each
// particle stream.
//
// A [DoublePendulum] advances with a fixed unit timestep using semi-implicit
// Euler: velocities integrate the accelerations first, then the angles
// integrate the updated velocities. The discretisation is part of the visual
// signature, so it is not pluggable.
//
// After every [DoublePendulum.Update] the pendulum records its tip in its
// trail, moves its emitter to the tip and spawns one particle coloured by the
// current hue:
//
//	p, _ := physics.New(physics.DefaultParams(), emitter)
//	for {
//	    p.Step(viewport)
//	}
//
// # Singular configurations
//
// The denominators of the equations of motion can reach zero. No error is
// raised; NaN and Inf propagate through the state and the tip simply stops
// being renderable.
package physics
