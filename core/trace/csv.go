package trace

import (
	"bufio"
	"fmt"
	"os"
)

// WriteCSV dumps a trajectory to fileName for offline inspection. Unlike
// the teacher's SavetoFile, this returns an error instead of calling
// logrus.Fatalf — a library function must not terminate the process; the
// cmd/ call site decides whether a write failure is fatal.
func WriteCSV(traj Trajectory, fileName string) error {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating trajectory file %s: %w", fileName, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err := fmt.Fprintln(w, "time_min,map_mmhg,lung_water_mmhg,leak_ml_min,urine_ml_min,sodium_meq_l,potassium_meq_l,glucose_mg_dl,hemoglobin_g_dl,hematocrit_pct"); err != nil {
		return fmt.Errorf("writing trajectory header: %w", err)
	}
	for _, p := range traj {
		if _, err := fmt.Fprintf(w, "%.0f,%.2f,%.2f,%.3f,%.3f,%.1f,%.2f,%.0f,%.1f,%.1f\n",
			p.TimeMinutes, p.MapMmHg, p.LungWaterMmHg, p.LeakRateMlMin, p.UrineMlMin,
			p.SodiumMeqL, p.PotassiumMeqL, p.GlucoseMgDl, p.HemoglobinGdL, p.HematocritPct); err != nil {
			return fmt.Errorf("writing trajectory row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing trajectory file %s: %w", fileName, err)
	}
	return nil
}
