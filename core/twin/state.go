package twin

// SimulationState is the time-varying state vector. It is produced at T=0 by
// core/calibrate.InitState and advanced only by core/sim.Step, which returns
// a new value rather than mutating its receiver — no field is ever carried
// through a step without appearing explicitly in the returned value.
type SimulationState struct {
	TMinutes float64

	// Volumes.
	VBloodL        float64
	VInterstitialL float64
	VIntracellularL float64

	// Pressures.
	MapMmHg          float64
	CvpMmHg          float64
	PcwpMmHg         float64
	PInterstitialMmHg float64

	// Instantaneous fluxes from the last step.
	QInfusionMlMin float64
	QLeakMlMin     float64
	QUrineMlMin    float64
	QLymphMlMin    float64
	QOsmoticMlMin  float64

	// Metabolites.
	SodiumMeqL    float64
	PotassiumMeqL float64
	GlucoseMgDl   float64
	HemoglobinGdL float64
	HematocritPct float64
	LactateMmolL  float64

	// Loss rates.
	QOngoingLossMlMin   float64
	QInsensibleLossMlMin float64

	// Integrators.
	TotalInfusedMl    float64
	TotalSodiumLoadMeq float64

	// Bolus counters.
	BolusCount            int
	MinutesSinceLastBolus float64

	// Dynamic weight (tracks fluid accumulation).
	WeightKg float64

	// SoftNaN is set by core/sim.Step when a post-step invariant check
	// clamps an offending field rather than letting it diverge. core/sim.Run
	// retries that minute with a smaller dt; if the flag is still set after
	// its last halving, Run carries the clamped state forward and does not
	// abort, and core/safety does not read the flag.
	SoftNaN bool
}
