package twin

// Warnings collects non-critical provenance and quality notes produced while
// building a digital twin. Every estimate path in core/calibrate returns one
// of these alongside the PhysiologicalParams so a caller can see which
// inputs were measured versus inferred.
type Warnings struct {
	// HctAutocorrected is non-nil when a caller-supplied hematocrit disagreed
	// with 3*Hb by more than 15 points; holds (reported, derived).
	HctAutocorrected *HctCorrection

	// AlbuminEstimated is true when plasma albumin was inferred from MUAC
	// rather than measured; AlbuminUncertaintyGdL on PhysiologicalParams
	// carries the +/- band.
	AlbuminEstimated bool

	// LactateEstimated is true when lactate was inferred from capillary
	// refill time rather than measured.
	LactateEstimated bool

	// SAMShockConflict flags MUAC<11.5 co-occurring with a shock diagnosis
	// (septic or dengue) — a valid but high-risk combination the caller
	// should be aware the engine is modeling via compounded penalties.
	SAMShockConflict bool

	// CongestionModeled is true when hypoxia, severe tachypnea, or
	// hepatomegaly forced the calibrator to assume an elevated starting CVP.
	CongestionModeled bool

	// NeonatalColloidRisk flags age<1 month with a shock diagnosis, where
	// colloid administration carries added contraindication risk.
	NeonatalColloidRisk bool

	// ReducedPreloadTolerance is true when baseline hepatomegaly reduced the
	// calibrated optimal preload.
	ReducedPreloadTolerance bool

	// SVRSolverConverged is false when the fixed-point SVR solver did not
	// converge within its iteration budget and the calibrator fell back to
	// the last damped estimate.
	SVRSolverConverged bool

	// Confidence is a 0..1 score that rises with each optional measured
	// input present (albumin, lactate, platelets, height); 0.6 base.
	Confidence float64
}

// HctCorrection records a disagreement between a reported hematocrit and the
// value derived from hemoglobin (3*Hb), per spec.md section 9's Hb/Hct
// consistency decision: Hb is canonical, Hct is always derived.
type HctCorrection struct {
	Reported float64
	Derived  float64
}
