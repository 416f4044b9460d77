// Package simtime defines the simulated-time value used throughout the
// copper core. Simulated time is a plain float64 number of seconds,
// matching the host kernel convention this module's spec treats as an
// external collaborator (§6 of spec.md): a monotonic, non-decreasing
// clock supplied by whatever discrete-event kernel embeds this module.
package simtime

// Time is a point in simulated time, in seconds.
type Time = float64

// Never is a sentinel "no event scheduled" timestamp, far enough in the
// future it will never be reached by a real simulation run.
const Never Time = 1e18
