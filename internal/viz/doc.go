// Package viz renders a live terminal view of the flutter sweep: damping
// samples stream in one velocity at a time, the damping trace is plotted,
// and the final result summary appears once the sweep completes. It is a
// read-only consumer of solver output.
package viz
