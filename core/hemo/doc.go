// Package hemo computes the calibration-time building blocks of a patient's
// digital twin: body surface area, compartment sizing, baseline
// hemodynamics (contractility, viscosity, systemic vascular resistance),
// renal maturity, and insensible losses. Every function here is pure and
// depends only on twin.PatientInput (or a few of its scalar fields); it has
// no notion of simulated time. core/calibrate composes these into a full
// twin.PhysiologicalParams; core/sim steps the state forward using the
// result.
package hemo
