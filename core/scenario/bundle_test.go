package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pediaflow/twinsim/core/twin"
)

const validYAML = `
patient:
  age_months: 24
  weight_kg: 10.0
  sex: "F"
  muac_cm: 13.0
  temp_celsius: 37.5
  hemoglobin_g_dl: 11.0
  systolic_bp: 90
  heart_rate: 120
  capillary_refill_sec: 2
  spo2_percent: 97
  respiratory_rate_bpm: 30
  sodium_meq_l: 138
  glucose_mg_dl: 95
  hematocrit_pct: 33
  diagnosis: severe_dehydration
  ongoing_losses_severity: moderate
run:
  fluid_tag: ringer_lactate
  volume_ml: 200
  duration_min: 30
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadBundle_ValidFileRoundTrips(t *testing.T) {
	path := writeTemp(t, validYAML)
	b, err := LoadBundle(path)
	require.NoError(t, err)
	require.NoError(t, b.Validate())

	in := b.ToPatientInput()
	assert.Equal(t, twin.SevereDehydration, in.Diagnosis)
	assert.Equal(t, twin.LossModerate, in.OngoingLosses)
	assert.NoError(t, in.Validate())
}

func TestLoadBundle_UnknownKeyRejected(t *testing.T) {
	path := writeTemp(t, validYAML+"\nbogus_top_level_field: true\n")
	_, err := LoadBundle(path)
	assert.Error(t, err)
}

func TestValidate_RejectsUnknownDiagnosis(t *testing.T) {
	b := Bundle{}
	b.Patient.Diagnosis = "not_a_real_diagnosis"
	b.Patient.OngoingLossesSeverity = "none"
	b.Run.FluidTag = "ringer_lactate"
	b.Run.DurationMin = 30
	err := b.Validate()
	assert.ErrorContains(t, err, "unknown diagnosis")
}

func TestValidate_RejectsUnknownFluidTag(t *testing.T) {
	b := Bundle{}
	b.Patient.Diagnosis = string(twin.SevereDehydration)
	b.Patient.OngoingLossesSeverity = "none"
	b.Run.FluidTag = "not_a_real_fluid"
	b.Run.DurationMin = 30
	err := b.Validate()
	assert.ErrorContains(t, err, "unknown fluid_tag")
}

func TestValidate_RejectsNonPositiveDuration(t *testing.T) {
	b := Bundle{}
	b.Patient.Diagnosis = string(twin.SevereDehydration)
	b.Patient.OngoingLossesSeverity = "none"
	b.Run.FluidTag = "ringer_lactate"
	b.Run.DurationMin = 0
	err := b.Validate()
	assert.ErrorContains(t, err, "duration_min")
}
