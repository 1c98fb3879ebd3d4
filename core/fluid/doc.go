// Package fluid is the pharmacopoeia: a closed registry of the IV and oral
// fluids the engine knows how to model, and the physical properties (sodium
// load, oncotic pull, intravascular distribution fraction) that drive
// core/sim's Starling filtration and mass-balance math. It has no dependency on any other
// core package.
package fluid
