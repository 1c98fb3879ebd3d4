package trace

// Point captures one accepted minute of a simulated run: the fields a
// clinician reviewing a trajectory graph wants, stored unrounded; WriteCSV
// rounds only the text it writes out.
type Point struct {
	TimeMinutes   float64
	MapMmHg       float64
	LungWaterMmHg float64
	LeakRateMlMin float64
	UrineMlMin    float64
	SodiumMeqL    float64
	PotassiumMeqL float64
	GlucoseMgDl   float64
	HemoglobinGdL float64
	HematocritPct float64
}

// Trajectory is the ordered sequence of recorded points for one run,
// starting at t=0 with the patient's input state.
type Trajectory []Point
