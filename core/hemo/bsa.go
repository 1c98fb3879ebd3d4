package hemo

import "math"

// BSA returns body surface area in m^2 using the Mosteller formula when
// height is known, falling back to a weight-only approximation otherwise.
func BSA(weightKg float64, heightCM *float64) float64 {
	if weightKg <= 0 {
		return 0.1
	}
	if heightCM != nil && *heightCM > 0 {
		return math.Sqrt((weightKg * *heightCM) / 3600.0)
	}
	return (4*weightKg + 7) / (weightKg + 90)
}
