package spectral

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Spectrum holds the non-negative frequency half of a real signal's FFT as
// aligned frequency / magnitude / phase sequences of length FFTSize/2+1.
type Spectrum struct {
	Frequencies    []float64 `json:"frequencies" yaml:"frequencies"`         // Bin centre frequencies (Hz)
	Magnitudes     []float64 `json:"magnitudes" yaml:"magnitudes"`           // |X[k]|
	Phases         []float64 `json:"phases" yaml:"phases"`                   // arg X[k] (radians)
	FFTSize        int       `json:"fft_size" yaml:"fft_size"`               // Padded transform length
	SampleRate     float64   `json:"sample_rate" yaml:"sample_rate"`         // Sample rate (Hz)
	FreqResolution float64   `json:"freq_resolution" yaml:"freq_resolution"` // Hz per bin
}

// RealFFT returns the first N/2+1 bins of the FFT of a real signal, where N
// is the input length rounded up to a power of two.
func RealFFT(x []float64) ([]complex128, error) {
	full, err := Forward(toComplex(x))
	if err != nil {
		return nil, err
	}

	half := make([]complex128, len(full)/2+1)
	copy(half, full)
	return half, nil
}

// RFFTFreq returns the bin centre frequencies k/(n*d) for k in [0, n/2],
// where d is the sample spacing in seconds.
func RFFTFreq(n int, d float64) []float64 {
	if n <= 0 || d <= 0 {
		return []float64{}
	}

	freqs := make([]float64, n/2+1)
	span := float64(n) * d
	for k := range freqs {
		freqs[k] = float64(k) / span
	}

	return freqs
}

// NewSpectrum builds a Spectrum from RealFFT output.
// fftSize must be the padded transform length that produced half.
func NewSpectrum(half []complex128, fftSize int, sampleRate float64) *Spectrum {
	s := &Spectrum{
		Frequencies: RFFTFreq(fftSize, 1.0/sampleRate),
		Magnitudes:  make([]float64, len(half)),
		Phases:      make([]float64, len(half)),
		FFTSize:     fftSize,
		SampleRate:  sampleRate,
	}
	if fftSize > 0 {
		s.FreqResolution = sampleRate / float64(fftSize)
	}

	for i, z := range half {
		s.Magnitudes[i] = cmplx.Abs(z)
		s.Phases[i] = cmplx.Phase(z)
	}

	return s
}

// ComputeSpectrum runs RealFFT on x and wraps the result as a Spectrum.
func ComputeSpectrum(x []float64, sampleRate float64) (*Spectrum, error) {
	half, err := RealFFT(x)
	if err != nil {
		return nil, err
	}

	return NewSpectrum(half, NextPowerOfTwo(len(x)), sampleRate), nil
}

// Bins returns the number of frequency bins
func (s *Spectrum) Bins() int {
	return len(s.Magnitudes)
}

// Peak returns the index and frequency of the largest magnitude bin.
func (s *Spectrum) Peak() (int, float64) {
	if len(s.Magnitudes) == 0 {
		return -1, 0
	}

	idx := floats.MaxIdx(s.Magnitudes)
	if idx < len(s.Frequencies) {
		return idx, s.Frequencies[idx]
	}
	return idx, 0
}
