// Package analysis turns recorded ensemble runs into numbers that describe
// the chaos on screen.
//
//   - [DivergenceExponent]: growth rate of the tip spread, fitted on ln(spread)
//   - [PowerSpectrum] and [DominantFrequency]: FFT of a sampled angle series
//   - [SweepPerturbation]: final and peak spread for a range of perturbations
//   - [PhasePortrait]: (a1, a2) trajectory of one pendulum as ASCII art
//
// A positive exponent means nearby pendulums separate exponentially:
//
//	lambda := analysis.DivergenceExponent(result.Ticks(), spread)
//	if lambda > 0 {
//	    // the ensemble is diverging
//	}
package analysis
