// Package dynamo provides the primitives shared by the pendulum simulation.
//
// The package defines the small value types every other layer builds on:
//
//   - [Vec2]: 2D vector used for positions, velocities and forces
//   - [Bounds]: viewport rectangle supplied by the rendering host
//   - [Remap]: linear range mapping used for hue and particle size
//   - [WrapAngle]: folds an angle into [0, 2π)
//
// # Special values
//
// Nothing in this package guards against NaN or Inf. A chaotic system may
// briefly approach a singular configuration and the values are allowed to
// propagate; callers that need to render a point check [Vec2.IsFinite].
package dynamo
