package common

// peakEpsilon keeps all-zero signals finite under PeakNormalize
const peakEpsilon = 1e-12

// PeakNormalize scales signal so its largest absolute sample is ~1.
// Returns a new slice; the input is left untouched.
func PeakNormalize(signal []float64) []float64 {
	normalized := make([]float64, len(signal))
	if len(signal) == 0 {
		return normalized
	}

	scale := 1.0 / (MaxAbs(signal) + peakEpsilon)
	for i, val := range signal {
		normalized[i] = val * scale
	}

	return normalized
}
