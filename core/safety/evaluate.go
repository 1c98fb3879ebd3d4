package safety

import (
	"github.com/sirupsen/logrus"

	"github.com/pediaflow/twinsim/core/twin"
)

// Evaluate classifies one state snapshot against the patient's baseline
// input and calibrated params. It never mutates state and never aborts a
// run — that is core/sim.Run's responsibility.
func Evaluate(state *twin.SimulationState, p *twin.PhysiologicalParams, input *twin.PatientInput) Alerts {
	var a Alerts

	if state.PInterstitialMmHg > 5.0 {
		a.PulmonaryEdema = true
	}

	safeLimit := input.WeightKg * 40.0
	if state.TotalInfusedMl > safeLimit {
		a.VolumeOverload = true
	}

	if state.TotalInfusedMl > 0 {
		fluidNaConc := (state.TotalSodiumLoadMeq * 1000.0) / state.TotalInfusedMl
		if input.SodiumMeqL > 145 && fluidNaConc < 130 {
			a.CerebralEdema = true
		}
		if fluidNaConc < input.SodiumMeqL-15 {
			a.CerebralEdema = true
		}
	}

	if state.GlucoseMgDl < 54.0 {
		a.Hypoglycemia = true
	}

	isSAMClinical := input.IsSAM() || input.Diagnosis == twin.SAMDehydration
	if p.CardiacContractility < 0.6 || isSAMClinical {
		a.SAMHeart = true
	}

	isDKARisk := input.GlucoseMgDl > 250.0
	isMetabolicStress := input.LactateMmolL != nil && *input.LactateMmolL > 5.0 && state.GlucoseMgDl > 180
	if isDKARisk || isMetabolicStress {
		a.Ketoacidosis = true
	}

	if input.Diagnosis == twin.DengueShock {
		hctRising := state.HematocritPct > input.HematocritPct
		isLeakingActive := state.QLeakMlMin > 0.1
		if hctRising || isLeakingActive {
			a.DengueLeak = true
		}
	}

	if input.LactateMmolL != nil && *input.LactateMmolL > 7.0 {
		a.Hydrocortisone = true
		logrus.Debugf("safety: hydrocortisone flagged, lactate=%.1f", *input.LactateMmolL)
	}

	if input.HemoglobinGdL > 4.0 && input.HemoglobinGdL < 7.0 {
		a.AnemiaDilution = true
	}

	return a
}
