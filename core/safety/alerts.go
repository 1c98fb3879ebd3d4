package safety

// AlertName is the closed set of safety classifications core/safety can
// raise. Downstream UIs key directly on these identifiers, so they are
// part of the external contract and never change shape.
type AlertName string

const (
	PulmonaryEdemaRisk    AlertName = "risk_pulmonary_edema"
	VolumeOverloadRisk    AlertName = "risk_volume_overload"
	CerebralEdemaRisk     AlertName = "risk_cerebral_edema"
	HypoglycemiaRisk      AlertName = "risk_hypoglycemia"
	SAMHeartWarning       AlertName = "sam_heart_warning"
	KetoacidosisRisk      AlertName = "risk_ketoacidosis"
	DengueLeakWarning     AlertName = "dengue_leak_warning"
	HydrocortisoneNeeded  AlertName = "hydrocortisone_needed"
	AnemiaDilutionWarning AlertName = "anemia_dilution_warning"
)

// Alerts is the full set of safety flags evaluated for one state snapshot.
type Alerts struct {
	PulmonaryEdema bool
	VolumeOverload bool
	CerebralEdema  bool
	Hypoglycemia   bool
	SAMHeart       bool
	Ketoacidosis   bool
	DengueLeak     bool
	Hydrocortisone bool
	AnemiaDilution bool
}

// Active returns the set AlertName values, in the fixed declaration order
// above, for easy iteration by a caller building a UI list.
func (a Alerts) Active() []AlertName {
	var names []AlertName
	if a.PulmonaryEdema {
		names = append(names, PulmonaryEdemaRisk)
	}
	if a.VolumeOverload {
		names = append(names, VolumeOverloadRisk)
	}
	if a.CerebralEdema {
		names = append(names, CerebralEdemaRisk)
	}
	if a.Hypoglycemia {
		names = append(names, HypoglycemiaRisk)
	}
	if a.SAMHeart {
		names = append(names, SAMHeartWarning)
	}
	if a.Ketoacidosis {
		names = append(names, KetoacidosisRisk)
	}
	if a.DengueLeak {
		names = append(names, DengueLeakWarning)
	}
	if a.Hydrocortisone {
		names = append(names, HydrocortisoneNeeded)
	}
	if a.AnemiaDilution {
		names = append(names, AnemiaDilutionWarning)
	}
	return names
}
