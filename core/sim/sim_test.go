package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pediaflow/twinsim/core/calibrate"
	"github.com/pediaflow/twinsim/core/fluid"
	"github.com/pediaflow/twinsim/core/twin"
)

func testTwin(t *testing.T) (twin.PatientInput, *twin.PhysiologicalParams, *twin.SimulationState) {
	t.Helper()
	in := twin.PatientInput{
		AgeMonths: 24, WeightKg: 10.0, Sex: "F",
		MUACcm: 13.0, TempCelsius: 37.5, HemoglobinGdL: 11.0,
		SystolicBP: 90, HeartRate: 120, CapillaryRefillSec: 2, SpO2Percent: 97,
		RespiratoryRateBpm: 30,
		SodiumMeqL:         138, GlucoseMgDl: 95, HematocritPct: 33,
		Diagnosis:     twin.SevereDehydration,
		OngoingLosses: twin.LossModerate,
	}
	p, warnings, err := calibrate.BuildParams(in)
	require.NoError(t, err)
	s, err := calibrate.InitState(in, p, &warnings)
	require.NoError(t, err)
	return in, p, s
}

func TestStep_IsPureAndAdvancesTime(t *testing.T) {
	_, p, s := testTwin(t)
	next := Step(s, p, 200, fluid.RingerLactate, 1.0)

	assert.Equal(t, 0.0, s.TMinutes, "Step must not mutate its argument")
	assert.Equal(t, 1.0, next.TMinutes)
	assert.NotSame(t, s, next)
}

func TestStep_NeverPanicsOnExtremeInfusion(t *testing.T) {
	_, p, s := testTwin(t)
	assert.NotPanics(t, func() {
		Step(s, p, 1_000_000, fluid.NormalSaline, 1.0)
	})
}

func TestStep_VolumeFloorsRespected(t *testing.T) {
	_, p, s := testTwin(t)
	current := s
	for i := 0; i < 500; i++ {
		current = Step(current, p, 0, fluid.RingerLactate, 1.0)
	}
	assert.GreaterOrEqual(t, current.VBloodL, p.VBloodNormalL*0.4-1e-6)
	assert.GreaterOrEqual(t, current.VInterstitialL, 0.1-1e-6)
	assert.GreaterOrEqual(t, current.VIntracellularL, 0.1-1e-6)
}

func TestStep_GlycosuriaLossAboveGlucoseThreshold(t *testing.T) {
	_, p, s := testTwin(t)

	normal := *s
	normal.GlucoseMgDl = 150
	hyperglycemic := *s
	hyperglycemic.GlucoseMgDl = 300

	nextNormal := Step(&normal, p, 0, fluid.RingerLactate, 1.0)
	nextHyper := Step(&hyperglycemic, p, 0, fluid.RingerLactate, 1.0)

	require.Greater(t, nextHyper.QUrineMlMin, 0.0, "test is only meaningful with nonzero urine flow")

	// Compare glucose mass (mg/dL x ECF dL), not concentration: the water a
	// step removes concentrates plasma glucose in proportion to its level,
	// which outweighs the glycosuria term in a concentration comparison.
	ecfDl := func(st *twin.SimulationState) float64 { return (st.VBloodL + st.VInterstitialL) * 10.0 }
	normalDrop := normal.GlucoseMgDl*ecfDl(&normal) - nextNormal.GlucoseMgDl*ecfDl(nextNormal)
	hyperDrop := hyperglycemic.GlucoseMgDl*ecfDl(&hyperglycemic) - nextHyper.GlucoseMgDl*ecfDl(nextHyper)
	assert.Greater(t, hyperDrop, normalDrop, "glycosuria above 180 mg/dL should remove more glucose mass than the same burn rate alone would")
}

func TestStep_GluconeogenesisRaisesGlucoseUnderShockPhysiology(t *testing.T) {
	_, p, s := testTwin(t)

	noShock := *p
	noShock.IsShockPhysiology = false
	shock := *p
	shock.IsShockPhysiology = true

	nextNoShock := Step(s, &noShock, 0, fluid.RingerLactate, 1.0)
	nextShock := Step(s, &shock, 0, fluid.RingerLactate, 1.0)

	assert.Greater(t, nextShock.GlucoseMgDl, nextNoShock.GlucoseMgDl, "stress gluconeogenesis under shock physiology should add glucose relative to an identical non-shock twin")
}

func TestRun_CompletesWithinDuration(t *testing.T) {
	_, p, s := testTwin(t)
	result := Run(s, p, fluid.RingerLactate, 200, 60, true)
	assert.True(t, result.Completed)
	assert.Equal(t, StopCompleted, result.StopReason)
	assert.Len(t, result.Trajectory, 61)
}

func TestRun_AbortsOnPreexistingCongestion(t *testing.T) {
	_, p, s := testTwin(t)
	congested := *s
	congested.PInterstitialMmHg = 6.0
	result := Run(&congested, p, fluid.RingerLactate, 200, 60, false)
	assert.False(t, result.Completed)
	assert.Equal(t, StopPreexistingCongestion, result.StopReason)
	assert.Same(t, &congested, result.FinalState)
}

func TestRun_DeterministicGivenSameInputs(t *testing.T) {
	_, p, s := testTwin(t)
	r1 := Run(s, p, fluid.RingerLactate, 300, 120, true)
	r2 := Run(s, p, fluid.RingerLactate, 300, 120, true)
	require.Equal(t, len(r1.Trajectory), len(r2.Trajectory))
	for i := range r1.Trajectory {
		assert.Equal(t, r1.Trajectory[i], r2.Trajectory[i])
	}
}

func TestRun_ReassessmentAdvisoryAtTenMlPerKg(t *testing.T) {
	_, p, s := testTwin(t)
	result := Run(s, p, fluid.RingerLactate, 100, 10, false)
	found := false
	for _, a := range result.Advisories {
		if a != "" {
			found = true
		}
	}
	assert.True(t, found || result.FinalState.TotalInfusedMl < p.WeightKg*10.0)
}
