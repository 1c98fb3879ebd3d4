package sim

import (
	"math"

	"github.com/pediaflow/twinsim/core/fluid"
	"github.com/pediaflow/twinsim/core/trace"
	"github.com/pediaflow/twinsim/core/twin"
)

// StopReason is the closed set of reasons a Run can end before its
// requested duration elapses.
type StopReason string

const (
	StopCompleted             StopReason = "completed"
	StopPreexistingCongestion StopReason = "preexisting_pulmonary_congestion"
	StopPulmonaryEdema        StopReason = "pulmonary_edema"
	StopCriticalHemodilution  StopReason = "critical_hemodilution"
)

// RunResult is the outcome of driving Step across a bounded horizon.
type RunResult struct {
	FinalState *twin.SimulationState
	Completed  bool
	StopReason StopReason

	// Advisories are non-fatal triggers raised during the run (volume
	// overload warnings, the 10ml/kg reassessment prompt) — the run
	// continues past these, it only aborts on StopPulmonaryEdema and
	// StopCriticalHemodilution.
	Advisories []string

	Trajectory            trace.Trajectory
	PredictedMapRiseMmHg  float64
	FluidLeakedPercentage float64
}

// maxDtHalvings bounds how many times Run will shrink dt within a single
// minute before accepting a clamped state, per spec.md's "smaller dt is
// allowed and required if any invariant would be violated".
const maxDtHalvings = 4

// Run drives Step across durationMin one-minute intervals (shrinking dt
// within a minute when an invariant would otherwise be violated), applying
// the same hard-stop and advisory thresholds as the reference driver: abort
// on pre-existing or emergent pulmonary congestion, abort on critical
// hemodilution, warn on volume overload, and flag the 10ml/kg reassessment
// point once per run.
func Run(initial *twin.SimulationState, p *twin.PhysiologicalParams, tag fluid.Tag, volumeMl float64, durationMin int, record bool) RunResult {
	if initial.PInterstitialMmHg >= 4.0 {
		return RunResult{
			FinalState: initial,
			Completed:  false,
			StopReason: StopPreexistingCongestion,
		}
	}

	rateMlHr := (volumeMl / float64(durationMin)) * 60.0
	current := initial
	var traj trace.Trajectory
	var advisories []string
	reassessed := false

	if record {
		traj = append(traj, pointFrom(initial, 0))
	}

	result := RunResult{Completed: true, StopReason: StopCompleted}

	for t := 1; t <= durationMin; t++ {
		current = advanceMinute(current, p, rateMlHr, tag)

		if record {
			traj = append(traj, pointFrom(current, float64(t)))
		}

		if current.PInterstitialMmHg > 5.0 {
			result.Completed = false
			result.StopReason = StopPulmonaryEdema
			break
		}

		safeLimitMl := p.VBloodNormalL * 1000 * 0.8
		if current.TotalInfusedMl > safeLimitMl {
			advisories = append(advisories, "volume exceeds 80% of normal blood volume; reassess")
		}

		if current.HematocritPct < 20.0 {
			result.Completed = false
			result.StopReason = StopCriticalHemodilution
			break
		}

		bolusThresholdMl := p.WeightKg * 10.0
		if current.TotalInfusedMl >= bolusThresholdMl && !reassessed {
			advisories = append(advisories, "10ml/kg delivered; reassess vitals and liver span")
			current = withBolusCounted(current)
			reassessed = true
		}
	}

	result.FinalState = current
	result.Advisories = advisories
	result.Trajectory = traj
	result.PredictedMapRiseMmHg = current.MapMmHg - initial.MapMmHg
	if rateMlHr > 0 {
		result.FluidLeakedPercentage = (current.QLeakMlMin / (rateMlHr / 60.0)) * 100.0
	}
	return result
}

// advanceMinute steps state forward by one minute, halving dt up to
// maxDtHalvings times if the full-minute step would otherwise have an
// invariant clamped.
func advanceMinute(state *twin.SimulationState, p *twin.PhysiologicalParams, rateMlHr float64, tag fluid.Tag) *twin.SimulationState {
	steps := 1
	for halving := 0; ; halving++ {
		dt := 1.0 / float64(steps)
		cur := state
		clamped := false
		for i := 0; i < steps; i++ {
			cur = Step(cur, p, rateMlHr, tag, dt)
			if cur.SoftNaN {
				clamped = true
			}
		}
		if !clamped || halving >= maxDtHalvings {
			return cur
		}
		steps *= 2
	}
}

func withBolusCounted(s *twin.SimulationState) *twin.SimulationState {
	next := *s
	next.BolusCount = 1
	return &next
}

func pointFrom(s *twin.SimulationState, t float64) trace.Point {
	lungWater := s.PInterstitialMmHg
	if t == 0 {
		// Visual-only floor: a negative interstitial pressure at the starting
		// snapshot reads as "dry lungs", not a literal negative water column.
		lungWater = math.Max(0, lungWater)
	}
	return trace.Point{
		TimeMinutes:   t,
		MapMmHg:       s.MapMmHg,
		LungWaterMmHg: lungWater,
		LeakRateMlMin: s.QLeakMlMin,
		UrineMlMin:    s.QUrineMlMin,
		SodiumMeqL:    s.SodiumMeqL,
		PotassiumMeqL: s.PotassiumMeqL,
		GlucoseMgDl:   s.GlucoseMgDl,
		HemoglobinGdL: s.HemoglobinGdL,
		HematocritPct: s.HematocritPct,
	}
}
