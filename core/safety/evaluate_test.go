package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pediaflow/twinsim/core/twin"
)

func baseState() *twin.SimulationState {
	return &twin.SimulationState{
		MapMmHg: 70, CvpMmHg: 6, PInterstitialMmHg: 0,
		SodiumMeqL: 140, GlucoseMgDl: 100, HematocritPct: 33,
	}
}

func baseInput() *twin.PatientInput {
	return &twin.PatientInput{
		WeightKg: 10, HemoglobinGdL: 11, SodiumMeqL: 140, GlucoseMgDl: 100,
		HematocritPct: 33, Diagnosis: twin.SevereDehydration, MUACcm: 13,
	}
}

func baseParams() *twin.PhysiologicalParams {
	return &twin.PhysiologicalParams{CardiacContractility: 1.0}
}

func TestEvaluate_PulmonaryEdema(t *testing.T) {
	s := baseState()
	s.PInterstitialMmHg = 6.0
	a := Evaluate(s, baseParams(), baseInput())
	assert.True(t, a.PulmonaryEdema)
}

func TestEvaluate_VolumeOverload(t *testing.T) {
	s := baseState()
	s.TotalInfusedMl = 500
	a := Evaluate(s, baseParams(), baseInput())
	assert.True(t, a.VolumeOverload)
}

func TestEvaluate_Hypoglycemia(t *testing.T) {
	s := baseState()
	s.GlucoseMgDl = 40
	a := Evaluate(s, baseParams(), baseInput())
	assert.True(t, a.Hypoglycemia)
}

func TestEvaluate_SAMHeartWarning_LowContractility(t *testing.T) {
	s := baseState()
	p := baseParams()
	p.CardiacContractility = 0.5
	a := Evaluate(s, p, baseInput())
	assert.True(t, a.SAMHeart)
}

func TestEvaluate_AnemiaDilutionWindow(t *testing.T) {
	in := baseInput()
	in.HemoglobinGdL = 6.0
	a := Evaluate(baseState(), baseParams(), in)
	assert.True(t, a.AnemiaDilution)

	in.HemoglobinGdL = 8.0
	a = Evaluate(baseState(), baseParams(), in)
	assert.False(t, a.AnemiaDilution)
}

func TestEvaluate_DengueLeakWarning(t *testing.T) {
	in := baseInput()
	in.Diagnosis = twin.DengueShock
	in.HematocritPct = 33
	s := baseState()
	s.HematocritPct = 40
	a := Evaluate(s, baseParams(), in)
	assert.True(t, a.DengueLeak)
}

func TestEvaluate_HydrocortisoneNeeded(t *testing.T) {
	lactate := 8.0
	in := baseInput()
	in.LactateMmolL = &lactate
	a := Evaluate(baseState(), baseParams(), in)
	assert.True(t, a.Hydrocortisone)
}

func TestEvaluate_Active_ReturnsOnlySetFlags(t *testing.T) {
	s := baseState()
	s.PInterstitialMmHg = 6.0
	a := Evaluate(s, baseParams(), baseInput())
	active := a.Active()
	assert.Contains(t, active, PulmonaryEdemaRisk)
	assert.NotContains(t, active, HydrocortisoneNeeded)
}
