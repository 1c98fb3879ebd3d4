package calibrate

import "math"

const svrSolverIterations = 15

// solveSVR finds the systemic vascular resistance that reconciles a target
// MAP with an assumed CVP and cardiac output, via damped fixed-point
// iteration: SVR = (MAP-CVP)*80/CO, where CO itself depends on SVR through
// the afterload curve. Returns the converged (or best-effort) value and
// whether the residual fell within tolerance on the final iteration.
func solveSVR(startMap, assumedCVP, baseCO, afterloadSensitivity, initialGuess float64) (svr float64, converged bool) {
	guess := initialGuess
	var prev float64
	for i := 0; i < svrSolverIterations; i++ {
		prev = guess
		afterloadFactor := afterloadFactorFor(guess, afterloadSensitivity)
		effectiveCO := math.Max(0.01, baseCO*afterloadFactor)
		requiredSVR := (startMap - assumedCVP) * 80.0 / effectiveCO
		guess = (guess + requiredSVR) / 2.0
	}
	residual := math.Abs(guess-prev) / math.Max(1.0, prev)
	return guess, residual < 0.01
}

// afterloadFactorFor returns the fraction of baseline cardiac output
// achievable against a given SVR, given the patient's afterload
// sensitivity (how much a weak heart gives up flow as resistance rises).
func afterloadFactorFor(svr, afterloadSensitivity float64) float64 {
	normalizedSVR := svr / 1000.0
	denom := 1.0 + (normalizedSVR-1.0)*afterloadSensitivity
	raw := 1.0 / math.Max(0.1, denom)
	return math.Max(0.3, raw)
}
