package trace

import "github.com/pediaflow/twinsim/core/internal/numeric"

// Summary aggregates descriptive statistics over a recorded Trajectory.
// Safe for a nil or empty trajectory (returns zero-value fields).
type Summary struct {
	PointCount       int
	MeanMapMmHg      float64
	StdDevMapMmHg    float64
	MinMapMmHg       float64
	MaxMapMmHg       float64
	MeanLeakMlMin    float64
	PeakLungWaterMmHg float64
}

// Summarize computes aggregate statistics from a recorded trajectory.
func Summarize(traj Trajectory) Summary {
	var s Summary
	s.PointCount = len(traj)
	if len(traj) == 0 {
		return s
	}

	maps := make([]float64, len(traj))
	leaks := make([]float64, len(traj))
	for i, p := range traj {
		maps[i] = p.MapMmHg
		leaks[i] = p.LeakRateMlMin
		if p.LungWaterMmHg > s.PeakLungWaterMmHg {
			s.PeakLungWaterMmHg = p.LungWaterMmHg
		}
	}

	s.MinMapMmHg, s.MaxMapMmHg = numeric.MinMax(maps)
	s.MeanMapMmHg, s.StdDevMapMmHg = numeric.MeanStdDev(maps)
	s.MeanLeakMlMin, _ = numeric.MeanStdDev(leaks)
	return s
}
