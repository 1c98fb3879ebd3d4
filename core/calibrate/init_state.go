package calibrate

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/pediaflow/twinsim/core/hemo"
	"github.com/pediaflow/twinsim/core/twin"
)

// InitState computes the T=0 twin.SimulationState for a calibrated patient:
// input blood pressure is ground truth, CVP and blood volume are
// back-calculated from it (subject to the hepatomegaly congestion override),
// and interstitial pressure/metabolites are seeded from measured-or-estimated
// labs. Returns a *twin.DegenerateGeometryError if the derived intracellular
// volume collapses below the floor this engine can simulate. warnings is the
// same twin.Warnings BuildParams returned for this patient; when lactate is
// inferred from capillary refill rather than measured, LactateEstimated is
// set on it here, mirroring resolveAlbumin's AlbuminEstimated in
// build_params.go.
func InitState(in twin.PatientInput, p *twin.PhysiologicalParams, warnings *twin.Warnings) (*twin.SimulationState, error) {
	vols := hemo.CompartmentVolumes(in)
	if vols.VIntracellularL < 0.1 {
		return nil, &twin.DegenerateGeometryError{ICFLiters: vols.VIntracellularL}
	}

	currentVInter := p.VInterNormalL
	var baselineEdemaML float64
	switch in.Diagnosis {
	case twin.SAMDehydration:
		baselineEdemaML = in.WeightKg * 15
	case twin.SepticShock:
		baselineEdemaML = in.WeightKg * 5
	}
	if baselineEdemaML > 0 {
		currentVInter += baselineEdemaML / 1000.0
	}

	startMAP := in.MeanArterialPressure()

	coEst := p.MaxCardiacOutputLMin * p.CardiacContractility * 0.75
	if in.Diagnosis == twin.SepticShock {
		coEst *= 1.2
	}
	pressureDrop := (coEst * p.SVRResistance) / 80.0
	estimatedCVP := startMAP - pressureDrop
	startCVP := math.Max(1.0, math.Min(estimatedCVP, 18.0))
	if in.BaselineHepatomegaly {
		startCVP = math.Max(startCVP, 10.0)
	}

	volExcessML := (startCVP - 3.0) * p.VenousComplianceMlMmHg
	currentVBlood := p.VBloodNormalL + volExcessML/1000.0
	currentVBlood = math.Max(currentVBlood, p.VBloodNormalL*0.35)

	if startCVP > 8.0 {
		equilibriumPInter := (startCVP - 8.0) * 0.5
		if equilibriumPInter > 0 {
			requiredExcessVol := (equilibriumPInter * p.InterstitialComplianceMlMmHg) / 1000.0
			currentVInter += requiredExcessVol
		}
	}
	interExcessML := (currentVInter - p.VInterNormalL) * 1000
	startPInter := math.Max(-2.0, interExcessML/p.InterstitialComplianceMlMmHg)

	startGlucose := in.GlucoseMgDl
	if startGlucose == 0 {
		startGlucose = 90.0
	}
	if in.Diagnosis == twin.SepticShock && in.GlucoseMgDl == 0 {
		startGlucose = 65.0
	}

	startSodium := in.SodiumMeqL
	if startSodium == 0 {
		startSodium = 140.0
	}
	if p.IsSAM && in.SodiumMeqL == 0 {
		startSodium = 132.0
	}

	startLactate := 2.0
	if in.LactateMmolL != nil {
		startLactate = *in.LactateMmolL
	} else {
		warnings.LactateEstimated = true
		switch {
		case in.CapillaryRefillSec > 4:
			startLactate = 6.0
		case in.CapillaryRefillSec > 2:
			startLactate = 3.5
		}
	}

	startPotassium := 4.2
	if p.IsSAM {
		startPotassium = 3.8
	}

	logrus.Debugf("calibrate: init state p_interstitial=%.2f baseline_edema_ml=%.1f interstitial_compliance=%.1f",
		startPInter, baselineEdemaML, p.InterstitialComplianceMlMmHg)

	state := &twin.SimulationState{
		TMinutes: 0,

		VBloodL:         currentVBlood,
		VInterstitialL:  math.Max(currentVInter, 0.1),
		VIntracellularL: vols.VIntracellularL,

		CvpMmHg:           startCVP,
		PInterstitialMmHg: startPInter,
		MapMmHg:           startMAP,
		PcwpMmHg:          startCVP * 1.25,

		SodiumMeqL:    startSodium,
		PotassiumMeqL: startPotassium,
		GlucoseMgDl:   startGlucose,
		HemoglobinGdL: firstNonZero(in.HemoglobinGdL, 11.0),
		HematocritPct: in.HemoglobinGdL * 3.0,
		LactateMmolL:  startLactate,

		QOngoingLossMlMin:    (in.WeightKg * in.OngoingLosses.PerMinuteMlPerKg()),
		QInsensibleLossMlMin: p.InsensibleLossMlMin,

		MinutesSinceLastBolus: 999.0,
		WeightKg:              in.WeightKg,
	}
	return state, nil
}

func firstNonZero(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
