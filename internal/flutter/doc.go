// Package flutter defines the core result and error types shared by the
// panel-flutter solver packages:
//
//   - [Result]: outcome of a flutter analysis (speed, frequency, mode,
//     correction factors, uncertainty band)
//   - [Method]: which unsteady-aerodynamic theory produced the result
//   - [Mode]: (p, q) half-wave index pair identifying a panel mode
//
// A Result is constructed once per analysis and is read-only afterwards;
// downstream consumers (plots, exports, cross-checks) copy, never mutate.
//
// "No flutter in the searched range" is a valid terminal state, not an
// error: Found is false and Speed holds [SpeedNotFound].
package flutter
