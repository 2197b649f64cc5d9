package spectral

import (
	"fmt"
	"math/cmplx"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/RyanBlaney/sonido-spectra/logging"
)

// STFT provides Short-Time Fourier Transform functionality
type STFT struct {
	fft    *FFT
	logger logging.Logger
}

// STFTResult holds the result of STFT analysis
type STFTResult struct {
	Magnitude      [][]float64    `json:"magnitude" yaml:"magnitude"`             // Time x Frequency magnitude matrix
	Phase          [][]float64    `json:"phase" yaml:"phase"`                     // Time x Frequency phase matrix
	Complex        [][]complex128 `json:"-" yaml:"-"`                             // Raw complex spectrogram (not serialized)
	TimeFrames     int            `json:"time_frames" yaml:"time_frames"`         // Number of time frames
	FreqBins       int            `json:"freq_bins" yaml:"freq_bins"`             // Number of frequency bins
	SampleRate     float64        `json:"sample_rate" yaml:"sample_rate"`         // Sample rate
	WindowSize     int            `json:"window_size" yaml:"window_size"`         // Analysis window length
	FFTSize        int            `json:"fft_size" yaml:"fft_size"`               // Padded transform length
	HopSize        int            `json:"hop_size" yaml:"hop_size"`               // Hop size between frames
	FreqResolution float64        `json:"freq_resolution" yaml:"freq_resolution"` // Frequency resolution (Hz/bin)
	TimeResolution float64        `json:"time_resolution" yaml:"time_resolution"` // Time resolution (seconds/frame)
}

// Window interface for windowing functions
type Window interface {
	ApplyInPlace(signal []float64) error
}

// NewSTFT creates a new STFT calculator
func NewSTFT() *STFT {
	return &STFT{
		fft: NewFFT(),
		logger: logging.WithFields(logging.Fields{
			"component": "stft",
		}),
	}
}

// ComputeWithWindow computes the STFT of signal. Each frame of windowSize
// samples is windowed, zero-padded to a power of two and transformed; frames
// start every hopSize samples. A nil window means rectangular.
func (s *STFT) ComputeWithWindow(signal []float64, windowSize, hopSize int, sampleRate float64, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive: %w", ErrInvalidFrame)
	}

	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive: %w", ErrInvalidFrame)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive: %w", ErrInvalidFrame)
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	if len(signal) < windowSize || numFrames <= 0 {
		return nil, fmt.Errorf("signal of %d samples too short for window %d: %w", len(signal), windowSize, ErrInvalidFrame)
	}

	fftSize := NextPowerOfTwo(windowSize)
	freqBins := fftSize/2 + 1

	magnitude := make([][]float64, numFrames)
	phase := make([][]float64, numFrames)
	complexSpectrum := make([][]complex128, numFrames)

	numWorkers := s.getOptimalWorkerCount(numFrames)
	s.logger.Debug("Computing STFT", logging.Fields{
		"frames":   numFrames,
		"fft_size": fftSize,
		"workers":  numWorkers,
	})

	p := pool.New().WithErrors().WithMaxGoroutines(numWorkers)

	for frameIdx := range numFrames {
		p.Go(func() error {
			start := frameIdx * hopSize

			frame := make([]float64, windowSize)
			copy(frame, signal[start:start+windowSize])

			if window != nil {
				if err := window.ApplyInPlace(frame); err != nil {
					return fmt.Errorf("frame %d: %w", frameIdx, err)
				}
			}

			half, err := RealFFT(frame)
			if err != nil {
				return fmt.Errorf("frame %d: %w", frameIdx, err)
			}

			mags := make([]float64, freqBins)
			phases := make([]float64, freqBins)
			for i, z := range half {
				mags[i] = cmplx.Abs(z)
				phases[i] = cmplx.Phase(z)
			}

			// Each goroutine owns exactly one row.
			magnitude[frameIdx] = mags
			phase[frameIdx] = phases
			complexSpectrum[frameIdx] = half
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return &STFTResult{
		Magnitude:      magnitude,
		Phase:          phase,
		Complex:        complexSpectrum,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sampleRate,
		WindowSize:     windowSize,
		FFTSize:        fftSize,
		HopSize:        hopSize,
		FreqResolution: sampleRate / float64(fftSize),
		TimeResolution: float64(hopSize) / sampleRate,
	}, nil
}

// ComputeSingleFrame computes the spectrum of the whole signal as one frame
func (s *STFT) ComputeSingleFrame(signal []float64, sampleRate float64) (*STFTResult, error) {
	return s.ComputeWithWindow(signal, len(signal), len(signal), sampleRate, nil)
}

// getOptimalWorkerCount determines the optimal number of workers based on workload
func (s *STFT) getOptimalWorkerCount(numFrames int) int {
	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if numFrames < 100 {
		return max(1, min(numCPU/2, numFrames))
	}

	if numFrames < 1000 {
		return min(numCPU, 8)
	}

	return numCPU
}
