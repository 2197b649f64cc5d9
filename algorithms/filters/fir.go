package filters

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
)

// Errors returned by the FIR designer and applier.
var (
	ErrInvalidBand   = errors.New("filters: low cutoff must be below high cutoff")
	ErrMissingCutoff = errors.New("filters: wrong number of cutoff frequencies")
	ErrUnknownFilter = errors.New("filters: unknown filter type")
	ErrEmptyInput    = errors.New("filters: empty input")
	ErrEmptyKernel   = errors.New("filters: empty kernel")
)

const (
	// DefaultNumTaps is the conventional tap count for single-edge designs
	DefaultNumTaps = 101

	// sincEpsilon is the |x| below which sinc(x) is taken as 1
	sincEpsilon = 1e-8

	// bandpassSumEpsilon gates the bandpass renormalization
	bandpassSumEpsilon = 1e-8
)

// FIRType represents the windowed-sinc design families
type FIRType string

const (
	FIRNone  FIRType = ""
	Lowpass  FIRType = "lowpass"
	Highpass FIRType = "highpass"
	Bandpass FIRType = "bandpass"
)

var folder = cases.Fold()

// ParseFIRType maps a filter name to its FIRType, ignoring case and
// surrounding whitespace. Unrecognized names map to FIRNone.
func ParseFIRType(name string) FIRType {
	switch t := FIRType(folder.String(strings.TrimSpace(name))); t {
	case Lowpass, Highpass, Bandpass:
		return t
	default:
		return FIRNone
	}
}

// FIRSpec describes one filter design request.
//
// Lowpass and Highpass use Cutoffs[0]; Bandpass needs exactly
// [low, high]. All frequencies are in Hz.
type FIRSpec struct {
	Type       FIRType   `json:"type" yaml:"type"`
	Cutoffs    []float64 `json:"cutoffs" yaml:"cutoffs"`
	SampleRate float64   `json:"sample_rate" yaml:"sample_rate"`
	NumTaps    int       `json:"num_taps" yaml:"num_taps"`
}

// Design synthesizes the taps described by spec
func Design(spec FIRSpec) ([]float64, error) {
	switch spec.Type {
	case Lowpass, Highpass:
		if len(spec.Cutoffs) < 1 {
			return nil, fmt.Errorf("%s needs one cutoff: %w", spec.Type, ErrMissingCutoff)
		}
		if spec.Type == Lowpass {
			return DesignLowpass(spec.Cutoffs[0], spec.SampleRate, spec.NumTaps), nil
		}
		return DesignHighpass(spec.Cutoffs[0], spec.SampleRate, spec.NumTaps), nil

	case Bandpass:
		if len(spec.Cutoffs) != 2 {
			return nil, fmt.Errorf("bandpass needs two cutoffs, got %d: %w", len(spec.Cutoffs), ErrMissingCutoff)
		}
		return DesignBandpass(spec.Cutoffs[0], spec.Cutoffs[1], spec.SampleRate, spec.NumTaps)

	default:
		return nil, fmt.Errorf("%q: %w", spec.Type, ErrUnknownFilter)
	}
}

// Sinc returns the normalized sinc sin(pi*x)/(pi*x), with Sinc(0) = 1
func Sinc(x float64) float64 {
	if math.Abs(x) < sincEpsilon {
		return 1.0
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// DesignLowpass designs a Hann-windowed sinc lowpass with unity DC gain.
//
// A cutoff <= 0 yields all-zero taps; a cutoff at or above Nyquist yields a
// unit impulse at the centre tap.
func DesignLowpass(cutoffHz, sampleRate float64, numTaps int) []float64 {
	if numTaps <= 0 {
		return []float64{}
	}

	taps := make([]float64, numTaps)
	if cutoffHz <= 0 {
		return taps
	}
	if cutoffHz >= sampleRate/2 {
		taps[numTaps/2] = 1.0
		return taps
	}

	fc := cutoffHz / sampleRate
	mid := float64(numTaps-1) / 2
	window := windowing.Generate(windowing.Hann, numTaps)

	for i := range taps {
		n := float64(i) - mid
		taps[i] = 2 * fc * Sinc(2*fc*n) * window[i]
	}

	// Hann zeroes both ends, so two taps sum to zero and stay unnormalized
	if sum := floats.Sum(taps); sum != 0 {
		floats.Scale(1/sum, taps)
	}

	return taps
}

// DesignHighpass designs a highpass by spectral inversion of the lowpass at
// the same cutoff.
func DesignHighpass(cutoffHz, sampleRate float64, numTaps int) []float64 {
	taps := DesignLowpass(cutoffHz, sampleRate, numTaps)
	if len(taps) == 0 {
		return taps
	}

	floats.Scale(-1, taps)
	taps[numTaps/2] += 1.0
	return taps
}

// DesignBandpass designs a bandpass as lowpass(high) - lowpass(low).
// The taps are renormalized to unit sum only when that sum is not ~0.
func DesignBandpass(lowHz, highHz, sampleRate float64, numTaps int) ([]float64, error) {
	if lowHz >= highHz {
		return nil, fmt.Errorf("band [%g, %g] Hz: %w", lowHz, highHz, ErrInvalidBand)
	}

	taps := DesignLowpass(highHz, sampleRate, numTaps)
	floats.Sub(taps, DesignLowpass(lowHz, sampleRate, numTaps))

	if sum := floats.Sum(taps); math.Abs(sum) > bandpassSumEpsilon {
		floats.Scale(1/sum, taps)
	}

	return taps, nil
}
