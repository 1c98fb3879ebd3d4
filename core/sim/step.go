package sim

import (
	"math"

	"github.com/pediaflow/twinsim/core/fluid"
	"github.com/pediaflow/twinsim/core/twin"
)

// Step advances state by dt minutes under a constant infusion of tag at
// infusionMlHr ml/hr. It is pure — state is never mutated, and the
// returned value is always non-nil and has SoftNaN set if any invariant
// had to be clamped rather than satisfied exactly. Step never errors:
// spec.md's "impossible by construction" design means any physiologically
// extreme input is absorbed by a clamp, not a failure.
func Step(state *twin.SimulationState, p *twin.PhysiologicalParams, infusionMlHr float64, tag fluid.Tag, dt float64) *twin.SimulationState {
	fl := fluid.Lookup(tag)
	rateMlMin := infusionMlHr / 60.0

	flux := derive(state, p, fl, rateMlMin)
	volDist := fl.VolDistributionIntravascular

	dvBloodML := (rateMlMin*volDist)*dt +
		flux.QLymph*dt -
		flux.QLeak*dt -
		flux.QUrine*dt -
		(state.QOngoingLossMlMin*0.25)*dt

	dvInterML := flux.QLeak*dt +
		(rateMlMin*(1-volDist))*dt -
		flux.QLymph*dt -
		(state.QOngoingLossMlMin*0.75)*dt -
		state.QInsensibleLossMlMin*dt -
		flux.QOsmotic*dt

	dvICFML := flux.QOsmotic * dt

	newVBlood := math.Max(state.VBloodL+dvBloodML/1000, p.VBloodNormalL*0.4)
	newVInter := math.Max(state.VInterstitialL+dvInterML/1000, 0.1)
	newVICF := math.Max(state.VIntracellularL+dvICFML/1000, 0.1)

	bloodExcessML := (newVBlood - p.VBloodNormalL) * 1000
	newCVP := math.Max(1.0, math.Min(3.0+bloodExcessML/p.VenousComplianceMlMmHg, 25.0))

	interExcessML := (newVInter - p.VInterNormalL) * 1000
	newPInter := math.Max(-2.0, interExcessML/p.InterstitialComplianceMlMmHg)

	interim := *state
	interim.VBloodL = newVBlood
	interim.VInterstitialL = newVInter
	interim.CvpMmHg = newCVP
	interim.PInterstitialMmHg = newPInter
	finalFlux := derive(&interim, p, fl, rateMlMin)
	newMAP := state.MapMmHg*0.7 + finalFlux.DerivedMAP*0.3

	stepInfusionL := (rateMlMin * dt) / 1000.0

	currentHbMassG := state.HemoglobinGdL * state.VBloodL * 10.0
	hbConcInFluid := 0.0
	if tag == fluid.PackedRBC {
		hbConcInFluid = 22.0
	}
	hbInfluxG := hbConcInFluid * stepInfusionL * 10.0
	newHemoglobin := math.Max(2.0, math.Min((currentHbMassG+hbInfluxG)/(newVBlood*10.0), 26.0))
	newHematocrit := newHemoglobin * 3.0

	ecfVolL := newVBlood + newVInter
	currentNaMass := state.SodiumMeqL * (state.VBloodL + state.VInterstitialL)
	naInflux := fl.SodiumMeqL * stepInfusionL

	var urineNaConc float64
	switch {
	case state.SodiumMeqL > 145:
		urineNaConc = 100.0
	case state.SodiumMeqL < 130:
		urineNaConc = 10.0
	default:
		urineNaConc = 60.0
	}
	if p.IsSAM {
		urineNaConc = math.Min(urineNaConc, 20.0)
	} else if p.ReflectionCoefficientSigma < 0.6 {
		urineNaConc = math.Max(urineNaConc, 80.0)
	}
	naEfflux := (flux.QUrine / 1000.0 * dt) * urineNaConc
	newSodium := math.Max(110.0, math.Min((currentNaMass+naInflux-naEfflux)/ecfVolL, 180.0))
	naInMeqMin := (rateMlMin / 1000.0) * fl.SodiumMeqL

	currentKMass := state.PotassiumMeqL * (state.VBloodL + state.VInterstitialL)
	kInflux := fl.PotassiumMeqL * stepInfusionL
	kEfflux := (flux.QUrine / 1000.0 * dt) * 40.0
	kShiftLoss := 0.0
	if p.ReflectionCoefficientSigma < 0.6 {
		kShiftLoss = 0.005 * dt
	}
	newPotassium := math.Max(1.5, math.Min((currentKMass+kInflux-kEfflux-kShiftLoss)/ecfVolL, 9.0))

	currentECFdL := (state.VBloodL + state.VInterstitialL) * 10.0
	currentGlucMassMg := state.GlucoseMgDl * currentECFdL
	glucInfluxMg := (fl.GlucoseGL * 1000.0) * stepInfusionL
	burnRate := p.GlucoseUtilizationMgKgMin
	if p.IsShockPhysiology || p.ReflectionCoefficientSigma < 0.6 {
		burnRate *= 1.5
	}
	if p.IsSAM {
		burnRate *= 0.7
	}
	glucConsumptionMg := (p.WeightKg * burnRate) * dt

	glycosuriaMg := 0.0
	if state.GlucoseMgDl > 180.0 {
		urineVolDl := (flux.QUrine / 1000.0 * dt) * 10.0
		glycosuriaMg = (state.GlucoseMgDl - 180.0) * urineVolDl
	}

	gluconeogenesisMg := 0.0
	if p.IsShockPhysiology {
		gluconeogenesisMg = 3.0 * p.WeightKg * dt
		if state.GlucoseMgDl > 180.0 {
			gluconeogenesisMg *= 1.5
		}
	}

	newECFdL := (newVBlood + newVInter) * 10.0
	newGlucose := math.Max(10.0, math.Min((currentGlucMassMg+glucInfluxMg-glucConsumptionMg-glycosuriaMg+gluconeogenesisMg)/newECFdL, 800.0))

	perfusionP := newMAP - newCVP
	clearanceK := 0.08 * (perfusionP / 65.0)
	if p.ReflectionCoefficientSigma < 0.6 {
		clearanceK = 0.02
	}
	newLactate := state.LactateMmolL * (1.0 - clearanceK*dt)
	if perfusionP < 35.0 {
		newLactate += 0.15 * dt
	}
	newLactate = math.Max(0.1, math.Min(newLactate, 25.0))

	totalFluidChangeL := (dvBloodML + dvInterML + dvICFML) / 1000.0
	newWeight := state.WeightKg + totalFluidChangeL

	stepInfusedVolML := rateMlMin * dt
	newTimeSinceBolus := state.MinutesSinceLastBolus + dt
	if stepInfusedVolML > 0.1 {
		newTimeSinceBolus = 0.0
	}

	next := twin.SimulationState{
		TMinutes: state.TMinutes + dt,

		VBloodL:         newVBlood,
		VInterstitialL:  newVInter,
		VIntracellularL: newVICF,

		MapMmHg:           newMAP,
		CvpMmHg:           newCVP,
		PInterstitialMmHg: newPInter,
		PcwpMmHg:          newCVP * 1.2,

		QInfusionMlMin: rateMlMin,
		QLeakMlMin:     flux.QLeak,
		QUrineMlMin:    flux.QUrine,
		QLymphMlMin:    flux.QLymph,
		QOsmoticMlMin:  flux.QOsmotic,

		SodiumMeqL:    newSodium,
		PotassiumMeqL: newPotassium,
		GlucoseMgDl:   newGlucose,
		HemoglobinGdL: newHemoglobin,
		HematocritPct: newHematocrit,
		LactateMmolL:  newLactate,

		QOngoingLossMlMin:    state.QOngoingLossMlMin,
		QInsensibleLossMlMin: state.QInsensibleLossMlMin,

		TotalInfusedMl:     state.TotalInfusedMl + rateMlMin*dt,
		TotalSodiumLoadMeq: state.TotalSodiumLoadMeq + naInMeqMin*dt,

		BolusCount:            state.BolusCount,
		MinutesSinceLastBolus: newTimeSinceBolus,

		WeightKg: newWeight,
	}

	if violations := twin.CheckInvariants(&next, p); len(violations) > 0 {
		next = twin.Clamp(next, p)
	}
	return &next
}
