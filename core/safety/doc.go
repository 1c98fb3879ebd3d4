// Package safety classifies a twin.SimulationState into the fixed set of
// clinical risk flags a bedside reviewer needs to see. It is stateless and
// has no dependency on core/sim — core/sim's driver loop owns the
// stateful hard-stop/reassessment logic that actually halts a run; this
// package only answers "what does this single snapshot look like".
package safety
