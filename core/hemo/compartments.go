package hemo

import (
	"math"

	"github.com/pediaflow/twinsim/core/twin"
)

const (
	neonateTBW      = 0.80
	infantTBW       = 0.70
	childTBW        = 0.60
	samHydrationAdd = 0.05

	plasmaFraction = 0.25 // fraction of ECF held intravascularly
)

// Compartments holds the T=0 (or baseline) volume split across the three
// tanks, derived from age-based total-body-water ratios and SAM hydration
// correction.
type Compartments struct {
	TBWFraction     float64
	VBloodL         float64
	VInterstitialL  float64
	VIntracellularL float64
	ICFRatio        float64
}

// CompartmentVolumes partitions a patient's weight into blood, interstitial,
// and intracellular volumes based on age and nutritional status.
func CompartmentVolumes(in twin.PatientInput) Compartments {
	var tbwRatio, ecfRatio float64
	switch {
	case in.AgeMonths < 1:
		tbwRatio, ecfRatio = neonateTBW, 0.45
	case in.AgeMonths < 12:
		tbwRatio, ecfRatio = infantTBW, 0.30
	default:
		tbwRatio, ecfRatio = childTBW, 0.25
	}

	if in.MUACcm < 11.5 {
		tbwRatio += samHydrationAdd
		ecfRatio += samHydrationAdd
	}

	icfRatio := math.Max(tbwRatio-ecfRatio, 0.3)
	vIntracellular := in.WeightKg * icfRatio
	ecfTotal := in.WeightKg * ecfRatio

	return Compartments{
		TBWFraction:     tbwRatio,
		VBloodL:         ecfTotal * plasmaFraction,
		VInterstitialL:  ecfTotal * (1 - plasmaFraction),
		VIntracellularL: vIntracellular,
		ICFRatio:        icfRatio,
	}
}
