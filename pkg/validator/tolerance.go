package validator

import "math"

// Floating tolerance shared by every approximate comparison in the package.
// Resolution ratios and vertical gaps both go through approxEqual, so a
// single policy keeps the checks consistent with each other.
const (
	relTolerance = 1e-8
	absTolerance = 1e-9
)

// approxEqual reports whether a and b are equal within the package
// tolerance policy.
func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= math.Max(absTolerance, relTolerance*math.Max(math.Abs(a), math.Abs(b)))
}

// IsOffResolution reports whether value is not an integer multiple of the
// declared resolution step, within floating tolerance.
//
// Zero is always on resolution, regardless of the declared step. For atom
// coordinates this exempts the origin from resolution checking entirely;
// whether the hardware intends the origin as a fixed reference point or this
// is an oversight in the published rule set is unknown, and the behavior is
// kept as published.
func IsOffResolution(resolution, value float64) bool {
	if value == 0 {
		return false
	}
	ratio := math.Abs(value) / resolution
	return !approxEqual(math.Round(ratio), ratio)
}

// roundSig rounds x to the given number of significant digits. Derived
// waveform quantities (minimum time step, maximum slope) are rounded to 14
// significant digits before comparison so that artifacts of float64
// subtraction do not trip strict limit comparisons.
func roundSig(x float64, digits int) float64 {
	if x == 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	exp := math.Ceil(math.Log10(math.Abs(x)))
	mag := math.Pow(10, float64(digits)-exp)
	return math.Round(x*mag) / mag
}
