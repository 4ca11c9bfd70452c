// Package viz hosts a pendulum ensemble in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live host that owns the frame clock and the reset timer
//   - [Canvas]: braille canvas with one colour per cell
//   - [Renderer]: draws arms, trails and particle shapes onto a canvas
//   - a preset picker ([RunInteractive]) that edits a config before starting
//
// # Key Bindings
//
//	1 2 3 - Discs, triangles, squares for new particles
//	R     - Reset the ensemble
//	V     - Show or hide the arms
//	Space - Pause/Resume
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Full help
//
// # Recording
//
// Frames are captured while recording and written to pendulums.gif in the
// current directory when recording stops or the program quits.
package viz
