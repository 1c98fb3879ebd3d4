package twin

import "math"

// PatientInput is the validated bedside snapshot the engine is built from.
// It is immutable after Validate succeeds; callers should treat it as a
// value type (pass by value or take a pointer only to avoid copying, never
// mutate a shared instance across goroutines — see core/sim package doc for
// the single-threaded, functional-update contract the rest of the core
// follows).
type PatientInput struct {
	// Demographics.
	AgeMonths int
	WeightKg  float64
	Sex       string // "M" or "F"
	HeightCM  *float64

	// Vulnerability markers.
	MUACcm        float64
	TempCelsius   float64
	HemoglobinGdL float64

	// Vitals (T=0 snapshot).
	SystolicBP          int
	DiastolicBP         *int
	HeartRate           int
	CapillaryRefillSec  int
	SpO2Percent         int
	RespiratoryRateBpm  int

	// Labs.
	SodiumMeqL    float64
	GlucoseMgDl   float64
	HematocritPct float64
	AlbuminGdL    *float64
	LactateMmolL  *float64
	PlateletCount *int

	// Context.
	Diagnosis                Diagnosis
	IllnessDay               *int // mandatory, [1,14], when Diagnosis == DengueShock
	OngoingLosses            OngoingLossSeverity
	BaselineHepatomegaly     bool
	TimeSinceLastUrineHours  float64
	IVSet                    IVSet
}

// IsSAM reports the MUAC-based severe acute malnutrition threshold used
// throughout core/hemo and core/calibrate.
func (p PatientInput) IsSAM() bool { return p.MUACcm < 11.5 }

// MeanArterialPressure returns the observed MAP used as ground truth by the
// calibrator and initializer: DBP + (SBP-DBP)/3 when diastolic is known,
// else the 0.65*SBP approximation.
func (p PatientInput) MeanArterialPressure() float64 {
	if p.DiastolicBP != nil {
		dbp := float64(*p.DiastolicBP)
		return dbp + (float64(p.SystolicBP)-dbp)/3.0
	}
	return float64(p.SystolicBP) * 0.65
}

// Validate checks PatientInput against the domain ranges and hard clinical
// stops of spec.md section 6. It returns a *CriticalConditionError for
// vitals beyond the tool's competence, and a *InvalidInputError for any
// other domain violation.
func (p PatientInput) Validate() error {
	if p.SystolicBP < 40 {
		return NewCriticalCondition("systolic BP <40 mmHg: immediate escalation required")
	}
	if p.SpO2Percent < 80 {
		return NewCriticalCondition("SpO2 <80%: priority is oxygenation, not fluid calculation")
	}
	if p.HemoglobinGdL < 4.0 {
		return NewCriticalCondition("Hb <4.0 g/dL: immediate transfusion required before crystalloids")
	}

	if p.Sex != "M" && p.Sex != "F" {
		return NewInvalidInput("sex", "must be \"M\" or \"F\"")
	}
	if p.DiastolicBP != nil {
		d := *p.DiastolicBP
		if d < 20 || d > 150 {
			return NewInvalidInput("diastolic_bp", "out of range [20,150]")
		}
		if d >= p.SystolicBP {
			return NewInvalidInput("diastolic_bp", "must be less than systolic BP")
		}
	}
	if p.RespiratoryRateBpm < 0 || p.RespiratoryRateBpm > 200 {
		return NewInvalidInput("respiratory_rate_bpm", "physiologically impossible")
	}
	if !p.Diagnosis.IsValid() {
		return NewInvalidInput("diagnosis", "unrecognized diagnosis tag")
	}
	if p.Diagnosis == DengueShock {
		if p.IllnessDay == nil {
			return NewInvalidInput("illness_day", "mandatory for dengue shock diagnosis")
		}
		if *p.IllnessDay < 1 || *p.IllnessDay > 14 {
			return NewInvalidInput("illness_day", "out of range [1,14]")
		}
	}
	if !p.OngoingLosses.IsValid() {
		return NewInvalidInput("ongoing_losses_severity", "unrecognized loss band")
	}
	if p.IVSet != 0 && !p.IVSet.IsValid() {
		return NewInvalidInput("iv_set", "out of range [10,100] gtt/mL")
	}

	if p.AgeMonths < 0 || p.AgeMonths > 216 {
		return NewInvalidInput("age_months", "out of range [0,216]")
	}
	if p.WeightKg < 0.5 || p.WeightKg > 100.0 {
		return NewInvalidInput("weight_kg", "out of range [0.5,100.0]")
	}
	if p.MUACcm < 5.0 || p.MUACcm > 35.0 {
		return NewInvalidInput("muac_cm", "out of range [5.0,35.0]")
	}
	if p.TempCelsius < 25.0 || p.TempCelsius > 42.0 {
		return NewInvalidInput("temp_celsius", "out of range [25.0,42.0]")
	}
	if p.HemoglobinGdL < 1.0 || p.HemoglobinGdL > 25.0 {
		return NewInvalidInput("hemoglobin_g_dl", "out of range [1.0,25.0]")
	}
	if p.SystolicBP < 30 || p.SystolicBP > 240 {
		return NewInvalidInput("systolic_bp", "out of range [30,240]")
	}
	if p.HeartRate < 30 || p.HeartRate > 300 {
		return NewInvalidInput("heart_rate", "out of range [30,300]")
	}
	if p.RespiratoryRateBpm < 10 || p.RespiratoryRateBpm > 120 {
		return NewInvalidInput("respiratory_rate_bpm", "out of range [10,120]")
	}

	if p.HeightCM != nil && *p.HeightCM > 0 {
		bmi := p.WeightKg / math.Pow(*p.HeightCM/100.0, 2)
		if bmi < 10.0 || bmi > 35.0 {
			return NewInvalidInput("height_cm", "implausible BMI given weight_kg")
		}
	}

	return nil
}
