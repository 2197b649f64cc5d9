package filters

import (
	"math"
	"math/cmplx"
)

// Convolve returns the "same"-mode linear convolution of signal and taps:
// len(signal) outputs, with the centre tap aligned to each input sample and
// zeros assumed outside the signal.
func Convolve(signal, taps []float64) []float64 {
	n, m := len(signal), len(taps)
	out := make([]float64, n)
	if n == 0 || m == 0 {
		return out
	}

	// out[i] is full[i+offset] of the full n+m-1 convolution
	offset := (m - 1) / 2

	for i := range n {
		j := i + offset
		kStart := max(0, j-(n-1))
		kEnd := min(m-1, j)

		var acc float64
		for k := kStart; k <= kEnd; k++ {
			acc += taps[k] * signal[j-k]
		}
		out[i] = acc
	}

	return out
}

// ApplyFIR filters signal with taps in "same" mode
func ApplyFIR(signal, taps []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(taps) == 0 {
		return nil, ErrEmptyKernel
	}
	return Convolve(signal, taps), nil
}

// FrequencyResponse evaluates H(e^jw) = sum h[k] e^{-jwk} at freqHz and
// returns its magnitude (linear) and phase (radians).
func FrequencyResponse(taps []float64, freqHz, sampleRate float64) (magnitude, phase float64) {
	w := 2.0 * math.Pi * freqHz / sampleRate

	var h complex128
	for k, c := range taps {
		h += complex(c, 0) * cmplx.Rect(1, -w*float64(k))
	}

	return cmplx.Abs(h), cmplx.Phase(h)
}
