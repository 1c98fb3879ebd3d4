// Package calibrate builds a per-patient twin.PhysiologicalParams from a
// validated twin.PatientInput (BuildParams), and derives the T=0
// twin.SimulationState from that twin (InitState). Every coefficient core/sim
// reads while stepping the simulation is fixed once here and never
// recomputed mid-run.
package calibrate
