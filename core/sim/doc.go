// Package sim advances a twin.SimulationState minute by minute under a
// chosen fluid and infusion rate. Step is pure: it takes a state and
// returns a new one, never mutating its argument. Run drives Step in a
// fixed 1-minute loop, shrinking dt only when accepting the next minute
// whole would violate a twin invariant, and stops early on a hard safety
// condition (package core/safety classifies the soft alerts; Run itself
// owns the abort/reassess thresholds that are stateful across minutes).
package sim
