package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/pediaflow/twinsim/core/fluid"
	"github.com/pediaflow/twinsim/core/twin"
)

// fluxes are the instantaneous per-minute flows derived from a state
// snapshot: how much plasma is leaking into the interstitium, how much
// urine is being made, how much lymph is draining back, how much free
// water is shifting osmotically into cells, and the MAP that emerges from
// this minute's cardiac output and resistance.
type fluxes struct {
	QLeak      float64
	QUrine     float64
	QLymph     float64
	QOsmotic   float64
	DerivedMAP float64
}

// derive computes one minute's fluxes from the current state, the
// patient's fixed params, the fluid being infused, and its rate
// (ml/min). It is the Frank-Starling + Starling-filtration + renal +
// osmotic physics core; Step calls it twice per minute (once on the prior
// state to get the fluxes that move volume, once on the updated volumes to
// get the MAP those volumes now support).
func derive(state *twin.SimulationState, p *twin.PhysiologicalParams, fl fluid.Properties, infusionRateMlMin float64) fluxes {
	currentBloodML := state.VBloodL * 1000.0
	safePreloadML := math.Max(p.OptimalPreloadMl, 10.0)
	preloadRatio := currentBloodML / safePreloadML

	var preloadEfficiency float64
	switch {
	case preloadRatio <= 1.0:
		if preloadRatio < 0.8 && !p.IsSAM {
			maxBoost := 0.3 * p.CardiacContractility
			compensatoryBoost := 1.0 + (0.8-preloadRatio)*maxBoost
			preloadEfficiency = preloadRatio * compensatoryBoost
		} else {
			preloadEfficiency = preloadRatio
		}
	case preloadRatio <= 1.3:
		preloadEfficiency = 1.0
	default:
		overstretch := preloadRatio - 1.3
		preloadEfficiency = math.Max(0.85, 1.0-overstretch*0.3)
	}

	afterloadFactor := afterloadFactorFor(p.SVRResistance, p.AfterloadSensitivity)

	safeCVP := math.Max(0.1, state.CvpMmHg)
	potentialSVR := p.SVRResistance * math.Pow(p.TargetCvpMmHg/safeCVP, 0.3)

	isHypotensive := state.MapMmHg < p.TargetMapMmHg-5.0
	isEmptyHeart := preloadRatio < 0.95

	var targetSVR float64
	if isHypotensive || isEmptyHeart {
		targetSVR = p.SVRResistance
	} else {
		targetSVR = math.Min(potentialSVR, p.SVRResistance)
	}

	trueCOEst := math.Max(0.01, p.MaxCardiacOutputLMin*p.CardiacContractility*preloadEfficiency*afterloadFactor)
	currentSVREst := (state.MapMmHg - state.CvpMmHg) * 80 / trueCOEst

	inertia := 0.999
	if isHypotensive {
		inertia = 0.995
	}
	svrDynamic := currentSVREst*inertia + targetSVR*(1-inertia)

	if p.IsSAM {
		svrDynamic = math.Min(svrDynamic, p.SVRResistance*1.2)
		svrDynamic = math.Max(svrDynamic, p.SVRResistance*0.6)
	}
	svrDynamic = math.Max(200.0, math.Min(svrDynamic, 20000.0))

	afterloadFactorUpdated := afterloadFactorFor(svrDynamic, p.AfterloadSensitivity)
	coLMin := p.MaxCardiacOutputLMin * p.CardiacContractility * preloadEfficiency * afterloadFactorUpdated
	derivedMAP := coLMin*svrDynamic/80.0 + state.CvpMmHg
	derivedMAP = math.Max(30.0, math.Min(derivedMAP, 160.0))

	logrus.Debugf("sim: t=%.0fmin map=%.1f glucose=%.1f infusion=%.1fml/min vblood=%.0fml co=%.3fL/min svr=%.0f",
		state.TMinutes, state.MapMmHg, state.GlucoseMgDl, infusionRateMlMin, currentBloodML, coLMin, svrDynamic)

	pCapillary := p.BaselineCapillaryPressure * (derivedMAP / p.TargetMapMmHg)
	dilution := p.VBloodNormalL / state.VBloodL
	currentPiC := p.PlasmaOncoticPressureMmHg * dilution
	if fl.IsColloid {
		currentPiC += 2.0
	}

	hydrostaticNet := pCapillary - state.PInterstitialMmHg
	oncoticNet := p.ReflectionCoefficientSigma * (currentPiC - 5.0)

	effectiveKf := p.CapillaryFiltrationK
	if fl.IsColloid && p.ReflectionCoefficientSigma < 0.6 {
		effectiveKf *= 0.5
	}

	var capillaryRecruitment float64
	switch {
	case derivedMAP < 50:
		capillaryRecruitment = 2.0
	case preloadRatio < 0.8:
		capillaryRecruitment = 0.5
	default:
		capillaryRecruitment = 1.0
	}
	capillaryRecruitment *= p.CapillaryRecruitmentBase
	if p.IsSAM {
		capillaryRecruitment = math.Min(capillaryRecruitment, 0.8)
	}
	effectiveKf *= capillaryRecruitment

	qLeak := math.Max(0.0, effectiveKf*(hydrostaticNet-oncoticNet))

	lymphDrive := math.Min(3.0, 0.2+math.Max(0.0, (state.PInterstitialMmHg+2.0)/4.0))
	lymphaticEfficiency := 1.0
	if p.IsSAM {
		lymphaticEfficiency = 0.4
	}
	qLymph := p.LymphaticDrainageCapacityMlMin * lymphDrive * lymphaticEfficiency

	perfusionP := derivedMAP - state.CvpMmHg
	baselineGFR := 2.1 * (p.WeightKg / 10.0) * p.RenalMaturityFactor
	var qUrine float64
	switch {
	case perfusionP < 30:
		qUrine = 0.0
	case perfusionP < 60:
		sigmoid := 1.0 / (1.0 + math.Exp(-(perfusionP-45)/5))
		qUrine = (perfusionP - 30) * 0.03 * p.RenalMaturityFactor * sigmoid
	case perfusionP < 100:
		qUrine = baselineGFR
	default:
		qUrine = baselineGFR * (1 + (perfusionP-100)*0.01)
	}

	ecfVolumeL := state.VBloodL + state.VInterstitialL
	var qOsmotic float64
	if infusionRateMlMin > 0 && ecfVolumeL > 0 {
		tonicDiff := state.SodiumMeqL - fl.SodiumMeqL
		qOsmotic = (infusionRateMlMin / 1000.0) * tonicDiff * (p.OsmoticConductanceK * 0.005) * p.IntracellularSodiumBias
		if fl.GlucoseGL > 0 {
			qOsmotic += infusionRateMlMin * 0.5
		}
	}

	return fluxes{QLeak: qLeak, QUrine: qUrine, QLymph: qLymph, QOsmotic: qOsmotic, DerivedMAP: derivedMAP}
}

func afterloadFactorFor(svr, afterloadSensitivity float64) float64 {
	normalizedSVR := svr / 1000.0
	denom := 1.0 + (normalizedSVR-1.0)*afterloadSensitivity
	raw := 1.0 / math.Max(0.1, denom)
	return math.Max(0.5, raw)
}
