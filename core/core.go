// Package core is the public entry point for the fluid resuscitation
// digital twin: build a calibrated patient model, initialize its starting
// state, and drive it forward one step or one whole bolus at a time. It is
// a thin façade over core/calibrate, core/sim, core/safety, and core/fluid
// — callers that only need the top-level workflow should depend on this
// package and twin/fluid's exported types, not on the calibration or
// stepping internals directly.
package core

import (
	"github.com/pediaflow/twinsim/core/calibrate"
	"github.com/pediaflow/twinsim/core/fluid"
	"github.com/pediaflow/twinsim/core/safety"
	"github.com/pediaflow/twinsim/core/sim"
	"github.com/pediaflow/twinsim/core/twin"
)

// BuildParams validates a bedside patient snapshot and calibrates the
// individualized physiological parameters it implies.
func BuildParams(in twin.PatientInput) (*twin.PhysiologicalParams, twin.Warnings, error) {
	return calibrate.BuildParams(in)
}

// InitState derives the starting hemodynamic and metabolic state consistent
// with the patient's T=0 vitals and labs and the params BuildParams
// returned for them. warnings should be the twin.Warnings BuildParams
// produced for the same patient; InitState annotates it further (e.g.
// LactateEstimated) rather than returning a second, disconnected warning set.
func InitState(in twin.PatientInput, p *twin.PhysiologicalParams, warnings *twin.Warnings) (*twin.SimulationState, error) {
	return calibrate.InitState(in, p, warnings)
}

// Step advances state by dt minutes under a constant infusion rate of the
// named fluid. It is pure: state is never mutated, only a new value
// returned.
func Step(state *twin.SimulationState, p *twin.PhysiologicalParams, infusionMlHr float64, tag fluid.Tag, dt float64) *twin.SimulationState {
	return sim.Step(state, p, infusionMlHr, tag, dt)
}

// Run drives Step across durationMin one-minute intervals, delivering
// volumeMl total of the named fluid, recording a trajectory when record is
// true.
func Run(initial *twin.SimulationState, p *twin.PhysiologicalParams, tag fluid.Tag, volumeMl float64, durationMin int, record bool) sim.RunResult {
	return sim.Run(initial, p, tag, volumeMl, durationMin, record)
}

// Evaluate classifies a single state snapshot against the patient's
// baseline and calibrated params, producing the closed set of clinical
// safety flags core/safety defines.
func Evaluate(state *twin.SimulationState, p *twin.PhysiologicalParams, input *twin.PatientInput) safety.Alerts {
	return safety.Evaluate(state, p, input)
}
