package scenario

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pediaflow/twinsim/core/fluid"
	"github.com/pediaflow/twinsim/core/twin"
)

// PatientSpec is the YAML-facing shape of a twin.PatientInput. Pointer
// fields mean "not set in the file" and are left nil rather than defaulted
// here — ToPatientInput is the only place a zero value is substituted for
// an unset optional.
type PatientSpec struct {
	AgeMonths int      `yaml:"age_months"`
	WeightKg  float64  `yaml:"weight_kg"`
	Sex       string   `yaml:"sex"`
	HeightCM  *float64 `yaml:"height_cm"`

	MUACcm        float64 `yaml:"muac_cm"`
	TempCelsius   float64 `yaml:"temp_celsius"`
	HemoglobinGdL float64 `yaml:"hemoglobin_g_dl"`

	SystolicBP         int  `yaml:"systolic_bp"`
	DiastolicBP        *int `yaml:"diastolic_bp"`
	HeartRate          int  `yaml:"heart_rate"`
	CapillaryRefillSec int  `yaml:"capillary_refill_sec"`
	SpO2Percent        int  `yaml:"spo2_percent"`
	RespiratoryRateBpm int  `yaml:"respiratory_rate_bpm"`

	SodiumMeqL    float64  `yaml:"sodium_meq_l"`
	GlucoseMgDl   float64  `yaml:"glucose_mg_dl"`
	HematocritPct float64  `yaml:"hematocrit_pct"`
	AlbuminGdL    *float64 `yaml:"albumin_g_dl"`
	LactateMmolL  *float64 `yaml:"lactate_mmol_l"`
	PlateletCount *int     `yaml:"platelet_count"`

	Diagnosis               string  `yaml:"diagnosis"`
	IllnessDay              *int    `yaml:"illness_day"`
	OngoingLossesSeverity   string  `yaml:"ongoing_losses_severity"`
	BaselineHepatomegaly    bool    `yaml:"baseline_hepatomegaly"`
	TimeSinceLastUrineHours float64 `yaml:"time_since_last_urine_hours"`
	IVSetGttPerML           int     `yaml:"iv_set_gtt_per_ml"`
}

// RunSpec is the fluid-administration plan for one simulated run.
type RunSpec struct {
	FluidTag    string  `yaml:"fluid_tag"`
	VolumeMl    float64 `yaml:"volume_ml"`
	DurationMin int     `yaml:"duration_min"`
}

// Bundle is a complete scenario: one patient snapshot plus one run plan.
type Bundle struct {
	Patient PatientSpec `yaml:"patient"`
	Run     RunSpec     `yaml:"run"`
}

var validOngoingLosses = map[string]twin.OngoingLossSeverity{
	"":         twin.LossNone,
	"none":     twin.LossNone,
	"mild":     twin.LossMild,
	"moderate": twin.LossModerate,
	"severe":   twin.LossSevere,
}

// LoadBundle reads and strictly parses a YAML scenario file, rejecting
// unrecognized keys the way the teacher's LoadPolicyBundle rejects typos.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var b Bundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&b); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return &b, nil
}

// Validate checks tag fields against the engine's closed registries and
// numeric fields for obviously-broken values, before any conversion to a
// twin.PatientInput is attempted.
func (b *Bundle) Validate() error {
	if !twin.Diagnosis(b.Patient.Diagnosis).IsValid() {
		return fmt.Errorf("unknown diagnosis %q; valid options: %s", b.Patient.Diagnosis, joinStrings(twin.ValidDiagnoses()))
	}
	if _, ok := validOngoingLosses[b.Patient.OngoingLossesSeverity]; !ok {
		return fmt.Errorf("unknown ongoing_losses_severity %q; valid options: none, mild, moderate, severe", b.Patient.OngoingLossesSeverity)
	}
	if !fluid.Tag(b.Run.FluidTag).IsValid() {
		names := make([]string, 0, len(fluid.ValidTags()))
		for _, t := range fluid.ValidTags() {
			names = append(names, string(t))
		}
		return fmt.Errorf("unknown fluid_tag %q; valid options: %s", b.Run.FluidTag, joinStrings(names))
	}
	if err := validateFloat("run.volume_ml", &b.Run.VolumeMl); err != nil {
		return err
	}
	if b.Run.DurationMin <= 0 {
		return fmt.Errorf("run.duration_min must be positive, got %d", b.Run.DurationMin)
	}
	if err := validateFloat("patient.weight_kg", &b.Patient.WeightKg); err != nil {
		return err
	}
	return nil
}

// ToPatientInput converts the YAML-facing spec into the engine's
// twin.PatientInput, substituting the zero value of each closed enum for
// an unset optional tag field.
func (b *Bundle) ToPatientInput() twin.PatientInput {
	loss := validOngoingLosses[b.Patient.OngoingLossesSeverity]

	var ivSet twin.IVSet
	if b.Patient.IVSetGttPerML > 0 {
		ivSet = twin.IVSet(b.Patient.IVSetGttPerML)
	}

	return twin.PatientInput{
		AgeMonths:               b.Patient.AgeMonths,
		WeightKg:                b.Patient.WeightKg,
		Sex:                     b.Patient.Sex,
		HeightCM:                b.Patient.HeightCM,
		MUACcm:                  b.Patient.MUACcm,
		TempCelsius:             b.Patient.TempCelsius,
		HemoglobinGdL:           b.Patient.HemoglobinGdL,
		SystolicBP:              b.Patient.SystolicBP,
		DiastolicBP:             b.Patient.DiastolicBP,
		HeartRate:               b.Patient.HeartRate,
		CapillaryRefillSec:      b.Patient.CapillaryRefillSec,
		SpO2Percent:             b.Patient.SpO2Percent,
		RespiratoryRateBpm:      b.Patient.RespiratoryRateBpm,
		SodiumMeqL:              b.Patient.SodiumMeqL,
		GlucoseMgDl:             b.Patient.GlucoseMgDl,
		HematocritPct:           b.Patient.HematocritPct,
		AlbuminGdL:              b.Patient.AlbuminGdL,
		LactateMmolL:            b.Patient.LactateMmolL,
		PlateletCount:           b.Patient.PlateletCount,
		Diagnosis:               twin.Diagnosis(b.Patient.Diagnosis),
		IllnessDay:              b.Patient.IllnessDay,
		OngoingLosses:           loss,
		BaselineHepatomegaly:    b.Patient.BaselineHepatomegaly,
		TimeSinceLastUrineHours: b.Patient.TimeSinceLastUrineHours,
		IVSet:                   ivSet,
	}
}

func validateFloat(name string, val *float64) error {
	if val == nil {
		return nil
	}
	if math.IsNaN(*val) || math.IsInf(*val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, *val)
	}
	if *val < 0 {
		return fmt.Errorf("%s must be non-negative, got %f", name, *val)
	}
	return nil
}

func joinStrings(xs []string) string {
	sorted := append([]string(nil), xs...)
	sort.Strings(sorted)
	out := ""
	for i, s := range sorted {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
