package calibrate

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/pediaflow/twinsim/core/hemo"
	"github.com/pediaflow/twinsim/core/twin"
)

// BuildParams composes core/hemo's calibration-time calculators, the
// dengue/sepsis vascular-leak table, and the fixed-point SVR solver into a
// complete twin.PhysiologicalParams for one patient. It never returns a nil
// params on success; it calls twin.PatientInput.Validate first and returns
// that error unchanged, with nil params, when validation fails.
func BuildParams(in twin.PatientInput) (*twin.PhysiologicalParams, twin.Warnings, error) {
	if err := in.Validate(); err != nil {
		return nil, twin.Warnings{}, err
	}

	warnings := twin.Warnings{Confidence: 0.6}
	if derived := in.HemoglobinGdL * 3.0; math.Abs(in.HematocritPct-derived) > 15 {
		warnings.HctAutocorrected = &twin.HctCorrection{Reported: in.HematocritPct, Derived: derived}
	}
	isSAM := in.IsSAM()

	bsa := hemo.BSA(in.WeightKg, in.HeightCM)
	insensibleRate := hemo.InsensibleLoss(in, bsa)
	vols := hemo.CompartmentVolumes(in)
	contractility := hemo.Contractility(in)
	viscosity := hemo.Viscosity(in.HematocritPct)
	baselineSVR := hemo.BaselineSVR(in, viscosity)
	renalFactor := hemo.RenalMaturity(in.AgeMonths, in.TimeSinceLastUrineHours)

	sigma, kfBase := leakParameters(in)

	albumin, albuminUncertainty := resolveAlbumin(in, &warnings)
	oncotic := hemo.OncoticPressure(albumin)

	glucoseBurn := 0.15
	if in.AgeMonths > 12 {
		glucoseBurn = 0.12
	}
	if in.Diagnosis == twin.SepticShock {
		glucoseBurn *= 1.5
	}

	tissueCompliance, interstitialCompliance, capillaryRecruitmentBase := tissueMechanics(isSAM)
	if in.Diagnosis == twin.SepticShock && in.SpO2Percent < 90 {
		interstitialCompliance = 40.0
	}
	sodiumBias := 1.0
	if isSAM {
		sodiumBias = 1.2
	}

	targetMAP := 65.0
	if in.AgeMonths < 12 {
		targetMAP = 55.0
	}
	baseMaxHR := 160
	if in.AgeMonths <= 12 {
		baseMaxHR = 180
	}
	feverBuffer := 0
	if in.TempCelsius > 37.5 {
		feverBuffer = int((in.TempCelsius - 37.5) * 15)
	}
	maxHR := int(math.Min(float64(baseMaxHR+feverBuffer), 220))
	stopRR := hemo.SafeRRLimit(in.AgeMonths, in.RespiratoryRateBpm)

	if in.AgeMonths < 1 && in.Diagnosis.IsShock() {
		warnings.NeonatalColloidRisk = true
	}

	afterloadSens := 0.2
	if isSAM || in.TempCelsius < 36.0 {
		afterloadSens = 0.5
	}

	var baseCapillaryP float64
	switch {
	case in.CapillaryRefillSec > 4:
		baseCapillaryP = 15.0
	case in.CapillaryRefillSec > 2:
		baseCapillaryP = 20.0
	default:
		baseCapillaryP = 25.0
	}

	optPreload := vols.VBloodL * 1000.0 * 1.15
	if in.BaselineHepatomegaly {
		optPreload *= 0.85
		warnings.ReducedPreloadTolerance = true
	}

	deficit := deficitFactor(in)
	volLossL := in.WeightKg * deficit
	currentVBloodEst := vols.VBloodL - volLossL*0.25
	startMAP := in.MeanArterialPressure()

	preloadRatio := (currentVBloodEst * 1000.0) / math.Max(optPreload, 10.0)
	preloadEfficiency := calibrationPreloadEfficiency(preloadRatio)
	baseCO := in.WeightKg * 0.15 * contractility * preloadEfficiency

	assumedCVP := 5.0
	if deficit > 0 {
		assumedCVP = 2.0
	}
	rrLimit := 40
	switch {
	case in.AgeMonths < 2:
		rrLimit = 60
	case in.AgeMonths < 12:
		rrLimit = 50
	}
	isHypoxic := in.SpO2Percent < 90
	if in.Diagnosis == twin.SepticShock {
		isHypoxic = in.SpO2Percent < 85
	}
	isExtremeTachypnea := in.RespiratoryRateBpm > int(float64(rrLimit)*1.4)
	isDryLungDiagnosis := in.Diagnosis == twin.SevereDehydration || in.Diagnosis == twin.SAMDehydration ||
		in.Diagnosis == twin.SepticShock || in.Diagnosis == twin.DengueShock
	hasWetLungs := isHypoxic || (isExtremeTachypnea && !isDryLungDiagnosis)

	if hasWetLungs {
		assumedCVP = math.Max(assumedCVP, 16.0)
		warnings.CongestionModeled = true
	} else if in.BaselineHepatomegaly {
		assumedCVP = math.Max(assumedCVP, 8.0)
		warnings.CongestionModeled = true
	}

	svr, converged := solveSVR(startMAP, assumedCVP, baseCO, afterloadSens, baselineSVR)
	warnings.SVRSolverConverged = converged
	if !converged {
		logrus.Warnf("calibrate: SVR solver did not converge for weight=%.1fkg diagnosis=%s, using damped estimate %.0f",
			in.WeightKg, in.Diagnosis, svr)
	}
	finalSVR := math.Max(200.0, math.Min(svr, 20000.0))
	finalSens := afterloadSens
	if finalSVR > 3000 {
		finalSens = afterloadSens * 0.5
	}

	if in.Diagnosis.IsShock() && isSAM {
		warnings.SAMShockConflict = true
	}
	if in.AlbuminGdL != nil {
		warnings.Confidence += 0.15
	} else {
		warnings.Confidence += 0
	}
	if in.LactateMmolL != nil {
		warnings.Confidence += 0.1
	}
	if in.PlateletCount != nil {
		warnings.Confidence += 0.1
	}
	if in.HeightCM != nil {
		warnings.Confidence += 0.05
	}
	warnings.Confidence = math.Min(warnings.Confidence, 1.0)

	params := &twin.PhysiologicalParams{
		VBloodNormalL:        vols.VBloodL,
		VInterNormalL:        vols.VInterstitialL,
		CardiacContractility: contractility,
		HeartStiffnessK:      4.0,

		SVRResistance:              finalSVR,
		CapillaryFiltrationK:       kfBase,
		BloodViscosityEta:          viscosity,
		ReflectionCoefficientSigma: sigma,

		TissueComplianceFactor:       tissueCompliance,
		InterstitialComplianceMlMmHg: interstitialCompliance,
		CapillaryRecruitmentBase:     capillaryRecruitmentBase,

		RenalMaturityFactor: renalFactor,

		MaxCardiacOutputLMin:       in.WeightKg * 0.15,
		VenousComplianceMlMmHg:     in.WeightKg * 1.5,
		OsmoticConductanceK:        0.5,
		LymphaticDrainageCapacityMlMin: in.WeightKg * 0.03,

		IntracellularSodiumBias:    sodiumBias,
		TargetMapMmHg:              targetMAP,
		TargetHeartRateUpperLimit:  maxHR,
		TargetRespiratoryRateLimit: stopRR,
		TargetCvpMmHg:              assumedCVP,

		InsensibleLossMlMin:       insensibleRate,
		PlasmaOncoticPressureMmHg: oncotic,
		GlucoseUtilizationMgKgMin: glucoseBurn,
		AlbuminUncertaintyGdL:     albuminUncertainty,
		WeightKg:                  in.WeightKg,

		AfterloadSensitivity:      finalSens,
		BaselineCapillaryPressure: baseCapillaryP,
		OptimalPreloadMl:          optPreload,

		IsSAM:                     isSAM,
		IsShockPhysiology:         in.Diagnosis.IsShock(),
		FinalStartingBloodVolumeL: currentVBloodEst,
	}

	return params, warnings, nil
}

// deficitFactor is the estimated fractional intravascular volume deficit
// used both to adjust baseline contractility (core/hemo.Contractility) and
// to estimate the starting blood volume fed into the SVR solver.
func deficitFactor(in twin.PatientInput) float64 {
	switch in.Diagnosis {
	case twin.SevereDehydration:
		if in.CapillaryRefillSec > 4 {
			return 0.15
		}
		return 0.10
	case twin.SAMDehydration:
		return 0.08
	default:
		return 0.0
	}
}

// leakParameters returns the capillary reflection coefficient (sigma) and
// base filtration coefficient (k_f) for the patient's vascular-leak regime:
// dengue's day-banded leak course, or septic shock's persistent high-leak
// state, or the default tight-vessel baseline.
func leakParameters(in twin.PatientInput) (sigma, kfBase float64) {
	sigma, kfBase = 0.9, 0.01
	if in.Diagnosis == twin.DengueShock {
		day := 1
		if in.IllnessDay != nil {
			day = *in.IllnessDay
		}
		switch {
		case day <= 3:
			sigma = 0.9
		case day <= 6:
			sigma, kfBase = 0.3, 0.025
		default:
			sigma = 0.7
		}
	}
	if in.Diagnosis == twin.SepticShock {
		sigma, kfBase = 0.35, 0.035
	}
	return sigma, kfBase
}

// resolveAlbumin returns a measured or MUAC-estimated plasma albumin
// (g/dL) and the uncertainty band on the estimate (0 if measured).
func resolveAlbumin(in twin.PatientInput, warnings *twin.Warnings) (albumin, uncertainty float64) {
	if in.AlbuminGdL != nil {
		return *in.AlbuminGdL, 0.0
	}
	warnings.AlbuminEstimated = true
	switch {
	case in.MUACcm < 11.5:
		albumin = 2.5
	case in.MUACcm > 12.5:
		albumin = 4.0
	default:
		albumin = 2.5 + (in.MUACcm-11.5)*1.5
	}
	if in.Diagnosis == twin.SepticShock {
		albumin = math.Min(albumin*0.85, 3.5)
	}
	return albumin, 0.8
}

// tissueMechanics returns the tissue compliance factor, interstitial
// compliance, and capillary recruitment base for a normally-nourished or
// severely malnourished patient.
func tissueMechanics(isSAM bool) (tissueCompliance, interstitialCompliance, capillaryRecruitmentBase float64) {
	if isSAM {
		return 0.3, 30.0, 0.7
	}
	return 1.0, 100.0, 1.0
}

// calibrationPreloadEfficiency is the simplified Frank-Starling curve used
// only to estimate baseline cardiac output while calibrating SVR; core/sim
// uses a more detailed curve (with compensatory tachycardia) for the
// minute-by-minute simulation itself.
func calibrationPreloadEfficiency(preloadRatio float64) float64 {
	switch {
	case preloadRatio <= 1.0:
		return preloadRatio
	case preloadRatio <= 1.2:
		return 1.0
	default:
		overstretch := preloadRatio - 1.2
		return math.Max(0.4, 1.0-overstretch*1.5)
	}
}
