package twin

import "fmt"

// CheckInvariants reports every spec.md section 3 invariant violated by s,
// given the patient's calibrated params (needed for the blood-volume floor,
// which is expressed relative to VBloodNormalL). An empty slice means all
// invariants hold.
func CheckInvariants(s *SimulationState, p *PhysiologicalParams) []string {
	var violations []string
	check := func(ok bool, msg string) {
		if !ok {
			violations = append(violations, msg)
		}
	}

	check(s.VBloodL >= 0.4*p.VBloodNormalL, fmt.Sprintf("v_blood_l %.4f below floor %.4f", s.VBloodL, 0.4*p.VBloodNormalL))
	check(s.VInterstitialL >= 0.1, "v_interstitial_l below 0.1 L floor")
	check(s.VIntracellularL >= 0.1, "v_intracellular_l below 0.1 L floor")
	check(s.MapMmHg >= 30 && s.MapMmHg <= 160, "map_mmhg out of [30,160]")
	check(s.CvpMmHg >= 1 && s.CvpMmHg <= 25, "cvp_mmhg out of [1,25]")
	check(s.PInterstitialMmHg >= -2, "p_interstitial_mmhg below -2 floor")
	check(s.SodiumMeqL >= 110 && s.SodiumMeqL <= 180, "sodium_meq_l out of [110,180]")
	check(s.PotassiumMeqL >= 1.5 && s.PotassiumMeqL <= 9, "potassium_meq_l out of [1.5,9]")
	check(s.GlucoseMgDl >= 10 && s.GlucoseMgDl <= 800, "glucose_mg_dl out of [10,800]")
	check(s.HematocritPct >= 5 && s.HematocritPct <= 70, "hematocrit_pct out of [5,70]")
	check(s.LactateMmolL >= 0.1 && s.LactateMmolL <= 25, "lactate_mmol_l out of [0.1,25]")

	return violations
}

// Clamp returns a copy of s with every field clamped into its section-3
// invariant range and SoftNaN set, the "impossible by construction" fallback
// of spec.md section 7: the core never panics on unusual physiology, it
// clamps and flags.
func Clamp(s SimulationState, p *PhysiologicalParams) SimulationState {
	s.VBloodL = clampf(s.VBloodL, 0.4*p.VBloodNormalL, s.VBloodL)
	s.VInterstitialL = clampf(s.VInterstitialL, 0.1, s.VInterstitialL)
	s.VIntracellularL = clampf(s.VIntracellularL, 0.1, s.VIntracellularL)
	s.MapMmHg = clampRange(s.MapMmHg, 30, 160)
	s.CvpMmHg = clampRange(s.CvpMmHg, 1, 25)
	s.PInterstitialMmHg = clampf(s.PInterstitialMmHg, -2, s.PInterstitialMmHg)
	s.SodiumMeqL = clampRange(s.SodiumMeqL, 110, 180)
	s.PotassiumMeqL = clampRange(s.PotassiumMeqL, 1.5, 9)
	s.GlucoseMgDl = clampRange(s.GlucoseMgDl, 10, 800)
	s.HematocritPct = clampRange(s.HematocritPct, 5, 70)
	s.LactateMmolL = clampRange(s.LactateMmolL, 0.1, 25)
	s.SoftNaN = true
	return s
}

func clampf(v, floor, fallback float64) float64 {
	if v < floor {
		return floor
	}
	return fallback
}

func clampRange(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
