// Package twin defines the shared data model for the pediatric fluid
// resuscitation digital twin: patient inputs, calibrated physiological
// parameters, the time-varying simulation state, and the closed tag unions
// (diagnosis, ongoing-loss severity, IV set) that the rest of core/ consumes.
//
// No logic beyond validation and invariant-checking lives here. The
// calculation packages (core/hemo, core/calibrate, core/sim, core/safety)
// import twin; twin imports none of them.
package twin
