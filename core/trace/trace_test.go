package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pediaflow/twinsim/core/internal/testutil"
)

func sampleTrajectory() Trajectory {
	return Trajectory{
		{TimeMinutes: 0, MapMmHg: 60, LungWaterMmHg: 0, LeakRateMlMin: 0},
		{TimeMinutes: 1, MapMmHg: 65, LungWaterMmHg: 1.5, LeakRateMlMin: 2},
		{TimeMinutes: 2, MapMmHg: 70, LungWaterMmHg: 0.5, LeakRateMlMin: 1},
	}
}

func TestSummarize_EmptyTrajectory(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.PointCount)
	assert.Zero(t, s.MeanMapMmHg)
}

func TestSummarize_ComputesAggregates(t *testing.T) {
	s := Summarize(sampleTrajectory())
	assert.Equal(t, 3, s.PointCount)
	assert.Equal(t, 60.0, s.MinMapMmHg)
	assert.Equal(t, 70.0, s.MaxMapMmHg)
	assert.InDelta(t, 65.0, s.MeanMapMmHg, 1e-9)
	assert.InDelta(t, 1.5, s.PeakLungWaterMmHg, 1e-9)
	assert.InDelta(t, 1.0, s.MeanLeakMlMin, 1e-9)
	assert.Greater(t, s.StdDevMapMmHg, 0.0)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trajectory.csv")

	err := WriteCSV(sampleTrajectory(), path)
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "time_min,map_mmhg")
	assert.Contains(t, string(contents), "1,65.00")
}

func TestWriteCSV_InvalidPathReturnsError(t *testing.T) {
	err := WriteCSV(sampleTrajectory(), "/nonexistent-dir/does-not-exist/out.csv")
	assert.Error(t, err)
}

// TestWriteCSV_MatchesGoldenTrajectory guards the on-disk trace format itself:
// a change to column order, rounding, or a new field appended to Point would
// pass TestWriteCSV_RoundTrip's substring checks but should fail here against
// the checked-in fixture.
func TestWriteCSV_MatchesGoldenTrajectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trajectory.csv")

	err := WriteCSV(sampleTrajectory(), path)
	require.NoError(t, err)

	err = testutil.CompareGoldenCSV(path, filepath.Join("testdata", "trajectory_golden.csv"), 1e-6)
	assert.NoError(t, err)
}
