package fluid

import "github.com/sirupsen/logrus"

// Properties describes how one fluid behaves once infused: its solute load
// and how much of the infused volume stays intravascular versus leaking into
// the interstitium before the next step.
type Properties struct {
	Name string

	SodiumMeqL    float64
	PotassiumMeqL float64
	GlucoseGL     float64

	// OncoticPressureMmHg is the colloid "pull" the fluid itself exerts on
	// the capillary membrane once infused (0 for crystalloids).
	OncoticPressureMmHg float64

	// VolDistributionIntravascular is the fraction of the infused volume
	// that core/sim.Step treats as landing in the blood compartment; the
	// remainder is attributed to the interstitium on the same step.
	VolDistributionIntravascular float64

	IsColloid  bool
	OsmolarityMOsmL float64
}

// library is the closed set of fluids this engine can administer. Every
// numeric value here is a clinical constant, not a tunable.
var library = map[Tag]Properties{
	RingerLactate: {
		Name: "Ringer Lactate",
		SodiumMeqL: 130, PotassiumMeqL: 4.0, GlucoseGL: 0,
		OncoticPressureMmHg: 0, VolDistributionIntravascular: 0.25,
		OsmolarityMOsmL: 273.0,
	},
	NormalSaline: {
		Name: "Normal Saline",
		SodiumMeqL: 154, PotassiumMeqL: 0.0, GlucoseGL: 0,
		OncoticPressureMmHg: 0, VolDistributionIntravascular: 0.25,
		OsmolarityMOsmL: 308.0,
	},
	ReSoMal: {
		Name: "ReSoMal",
		SodiumMeqL: 45, PotassiumMeqL: 40.0, GlucoseGL: 25,
		OncoticPressureMmHg: 0, VolDistributionIntravascular: 0.20,
		OsmolarityMOsmL: 280.0,
	},
	D5NormalSaline: {
		Name: "D5 Normal Saline",
		SodiumMeqL: 154, PotassiumMeqL: 0.0, GlucoseGL: 50,
		OncoticPressureMmHg: 0, VolDistributionIntravascular: 0.20,
		OsmolarityMOsmL: 560.0,
	},
	Albumin5Percent: {
		Name: "Albumin 5%",
		SodiumMeqL: 145, PotassiumMeqL: 0.0, GlucoseGL: 0,
		OncoticPressureMmHg: 20.0, VolDistributionIntravascular: 1.0,
		IsColloid: true, OsmolarityMOsmL: 308.0,
	},
	PackedRBC: {
		Name: "Packed Red Blood Cells",
		SodiumMeqL: 140, PotassiumMeqL: 4.0, GlucoseGL: 0,
		OncoticPressureMmHg: 25.0, VolDistributionIntravascular: 1.0,
		IsColloid: true, OsmolarityMOsmL: 300.0,
	},
	OralRehydration: {
		Name: "Oral Rehydration Solution",
		SodiumMeqL: 75, PotassiumMeqL: 20.0, GlucoseGL: 13.5,
		OncoticPressureMmHg: 0, VolDistributionIntravascular: 0.20,
		OsmolarityMOsmL: 280.0,
	},
	HalfNormalSaline: {
		Name: "Half Normal Saline (0.45%)",
		SodiumMeqL: 77.0, PotassiumMeqL: 0.0, GlucoseGL: 0,
		OncoticPressureMmHg: 0, VolDistributionIntravascular: 0.15,
		OsmolarityMOsmL: 154.0,
	},
	D5HalfNormalSaline: {
		Name: "D5 Half NS",
		SodiumMeqL: 77.0, PotassiumMeqL: 0.0, GlucoseGL: 50.0,
		OncoticPressureMmHg: 0, VolDistributionIntravascular: 0.15,
		OsmolarityMOsmL: 432.0,
	},
}

// Lookup returns the properties for t. An unrecognized tag is a caller bug
// that should have been caught by Tag.IsValid during input validation;
// rather than propagate an error this deep into the hot path, Lookup logs a
// warning and falls back to Ringer Lactate, the engine's default crystalloid.
func Lookup(t Tag) Properties {
	if p, ok := library[t]; ok {
		return p
	}
	logrus.Warnf("fluid: unrecognized tag %q, falling back to ringer lactate", t)
	return library[RingerLactate]
}
