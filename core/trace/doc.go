// Package trace provides trajectory recording for a simulated run: pure
// data types plus aggregate statistics. It has no dependency on core/sim —
// core/sim produces the Point values this package stores and
// summarizes.
package trace
