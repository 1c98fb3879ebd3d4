package hemo

import (
	"math"

	"github.com/pediaflow/twinsim/core/twin"
)

// Viscosity approximates relative blood viscosity from hematocrit using a
// Poiseuille-style power law above 20%, falling back to a linear
// approximation for severe anemia to avoid the curve inverting. Clamped to
// [0.8, 3.0] so downstream SVR math can never explode or divide by zero.
func Viscosity(hematocritPct float64) float64 {
	var v float64
	if hematocritPct < 20.0 {
		v = 1.5 + 0.05*hematocritPct
	} else {
		v = math.Pow(hematocritPct/45.0, 2.5)
	}
	return math.Max(0.8, math.Min(v, 3.0))
}

// Contractility returns the baseline cardiac contractility multiplier (1.0
// normal), applying the SAM "flabby heart" penalty, the septic myocardial
// depression penalty, platelet-driven bleeding-risk limitation, and the
// compensated-shock boost for severe dehydration / SAM dehydration.
func Contractility(in twin.PatientInput) float64 {
	c := 1.0
	isSAM := in.Diagnosis == twin.SAMDehydration || in.IsSAM()
	if isSAM {
		c *= 0.9
	}
	if in.Diagnosis == twin.SepticShock {
		c *= 0.7
	}

	var deficitFactor float64
	switch in.Diagnosis {
	case twin.SevereDehydration:
		if in.CapillaryRefillSec > 4 {
			deficitFactor = 0.15
		} else {
			deficitFactor = 0.10
		}
	case twin.SAMDehydration:
		deficitFactor = 0.08
	}
	if deficitFactor > 0 {
		boost := 1.2
		if deficitFactor >= 0.10 {
			boost = 1.4
		}
		if isSAM {
			boost = 1.05
		}
		c *= boost
	}

	if in.PlateletCount != nil && *in.PlateletCount < 20000 {
		c *= 0.5
	}
	return c
}

// BaselineSVR estimates systemic vascular resistance (dyn.s.cm^-5) from
// age-based norms, body size, blood viscosity, and temperature.
func BaselineSVR(in twin.PatientInput, viscosity float64) float64 {
	var base float64
	switch {
	case in.AgeMonths < 1:
		base = 1800.0
	case in.AgeMonths < 12:
		base = 1400.0
	default:
		base = 1000.0
	}
	sizeFactor := math.Sqrt(10.0 / in.WeightKg)
	base *= sizeFactor

	tempFactor := 1.0
	switch {
	case in.TempCelsius < 36.0:
		tempFactor = 1.5
	case in.TempCelsius > 38.5:
		tempFactor = 0.8
	}
	return base * viscosity * tempFactor
}

// RenalMaturity returns the 0..1 renal maturity factor: linear from 0.3 at
// birth to 1.0 at 24 months, then shut down by oliguria/anuria duration.
func RenalMaturity(ageMonths int, timeSinceUrineHours float64) float64 {
	maturity := 1.0
	if ageMonths < 24 {
		maturity = 0.3 + 0.029*float64(ageMonths)
		if maturity > 1.0 {
			maturity = 1.0
		}
	}
	switch {
	case timeSinceUrineHours > 6.0:
		maturity *= 0.1
	case timeSinceUrineHours > 4.0:
		maturity *= 0.5
	}
	return maturity
}

// InsensibleLoss returns baseline evaporative loss in ml/min, scaled for
// fever and tachypneic work of breathing.
func InsensibleLoss(in twin.PatientInput, bsa float64) float64 {
	const minutesPerDay = 1440.0
	dailyLossML := 400 * bsa
	if in.TempCelsius > 38.0 {
		dailyLossML *= 1 + 0.12*(in.TempCelsius-38.0)
	}
	if in.RespiratoryRateBpm > 50 {
		dailyLossML *= 1.10
	}
	return dailyLossML / minutesPerDay
}

// OncoticPressure returns plasma colloid oncotic pressure (mmHg) from
// albumin concentration (g/dL) via the Landis-Pappenheimer polynomial.
func OncoticPressure(albuminGdL float64) float64 {
	return 2.1*albuminGdL + 0.16*albuminGdL*albuminGdL + 0.009*albuminGdL*albuminGdL*albuminGdL
}

// SafeRRLimit returns the respiratory-rate safety-stop threshold (bpm): the
// WHO age-banded severe threshold plus 10, or 15% above the patient's own
// baseline when that baseline already exceeds the severe threshold.
func SafeRRLimit(ageMonths, baselineRR int) int {
	var severeLimit int
	switch {
	case ageMonths < 2:
		severeLimit = 60
	case ageMonths < 12:
		severeLimit = 50
	case ageMonths < 60:
		severeLimit = 40
	default:
		severeLimit = 30
	}
	if baselineRR > severeLimit {
		return int(float64(baselineRR) * 1.15)
	}
	return severeLimit + 10
}
