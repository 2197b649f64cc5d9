package analyzers

import (
	"fmt"

	"github.com/RyanBlaney/sonido-spectra/algorithms/common"
	"github.com/RyanBlaney/sonido-spectra/algorithms/filters"
	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/config"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// SpectrumAnalyzer runs the filter -> window -> real FFT pipeline
type SpectrumAnalyzer struct {
	config     config.AnalysisConfig
	windowType windowing.Type
	window     windowing.Window
	filter     *filters.FIRFilter // nil when no filter is configured
	fft        *spectral.FFT
	stft       *spectral.STFT
	logger     logging.Logger
}

// SpectrumResult holds one analysis
type SpectrumResult struct {
	Spectrum      *spectral.Spectrum `json:"spectrum" yaml:"spectrum"`
	WindowSize    int                `json:"window_size" yaml:"window_size"`
	WindowType    windowing.Type     `json:"window_type" yaml:"window_type"`
	FilterType    filters.FIRType    `json:"filter_type,omitempty" yaml:"filter_type,omitempty"`
	FilterCutoffs []float64          `json:"filter_cutoffs,omitempty" yaml:"filter_cutoffs,omitempty"`
	Peaks         []spectral.Peak    `json:"peaks" yaml:"peaks"`                       // Largest first
	Processed     []float64          `json:"processed_signal" yaml:"processed_signal"` // Filtered time-domain signal
}

// MaxReportedPeaks bounds SpectrumResult.Peaks
const MaxReportedPeaks = 5

// NewSpectrumAnalyzer creates an analyzer for cfg.
//
// Unknown filter names, missing cutoffs and a bandpass without exactly two
// cutoffs all mean "no filter". A bandpass with low >= high is an error.
func NewSpectrumAnalyzer(cfg config.AnalysisConfig) (*SpectrumAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	filter, err := newPreFilter(cfg)
	if err != nil {
		return nil, err
	}

	windowType := windowing.ParseType(cfg.WindowType)

	sa := &SpectrumAnalyzer{
		config:     cfg,
		windowType: windowType,
		window:     windowing.New(windowType, cfg.WindowSize),
		filter:     filter,
		fft:        spectral.NewFFT(),
		stft:       spectral.NewSTFT(),
		logger: logging.WithFields(logging.Fields{
			"component":   "spectrum_analyzer",
			"sample_rate": cfg.SampleRate,
			"window_size": cfg.WindowSize,
			"window_type": string(windowType),
		}),
	}

	return sa, nil
}

func newPreFilter(cfg config.AnalysisConfig) (*filters.FIRFilter, error) {
	firType := filters.ParseFIRType(cfg.Filter.Type)
	cutoffs := cfg.Filter.Cutoffs

	numTaps := cfg.Filter.SingleEdgeTaps
	switch {
	case firType == filters.FIRNone || len(cutoffs) == 0:
		return nil, nil
	case firType == filters.Bandpass:
		if len(cutoffs) != 2 {
			return nil, nil
		}
		numTaps = cfg.Filter.BandpassTaps
	}

	filter, err := filters.NewFIRFilter(filters.FIRSpec{
		Type:       firType,
		Cutoffs:    cutoffs,
		SampleRate: cfg.SampleRate,
		NumTaps:    numTaps,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to design %s filter: %w", firType, err)
	}

	return filter, nil
}

// WindowType returns the resolved window type
func (sa *SpectrumAnalyzer) WindowType() windowing.Type {
	return sa.windowType
}

// Filter returns the pre-filter, or nil when none is configured
func (sa *SpectrumAnalyzer) Filter() *filters.FIRFilter {
	return sa.filter
}

// Preprocess applies the configured FIR filter to a copy of signal
func (sa *SpectrumAnalyzer) Preprocess(signal []float64) []float64 {
	if sa.filter == nil {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out
	}
	return sa.filter.ProcessBuffer(signal)
}

// Analyze filters signal, takes its first WindowSize samples (zero-padded
// when shorter), applies the window and returns the one-sided spectrum.
func (sa *SpectrumAnalyzer) Analyze(signal []float64) (*SpectrumResult, error) {
	if len(signal) == 0 {
		return nil, spectral.ErrEmptyInput
	}

	logger := sa.logger.WithFields(logging.Fields{
		"function":      "Analyze",
		"signal_length": len(signal),
	})

	processed := sa.Preprocess(signal)

	segment := make([]float64, sa.config.WindowSize)
	copy(segment, processed)
	if err := sa.window.ApplyInPlace(segment); err != nil {
		return nil, fmt.Errorf("failed to apply window: %w", err)
	}

	half, err := spectral.RealFFT(segment)
	if err != nil {
		return nil, fmt.Errorf("failed to compute FFT: %w", err)
	}

	fftSize := spectral.NextPowerOfTwo(len(segment))
	spectrum := spectral.NewSpectrum(half, fftSize, sa.config.SampleRate)

	result := &SpectrumResult{
		Spectrum:   spectrum,
		WindowSize: sa.config.WindowSize,
		WindowType: sa.windowType,
		Peaks:      spectrum.Peaks(spectral.PeakOptions{MaxPeaks: MaxReportedPeaks}),
		Processed:  processed,
	}
	if sa.filter != nil {
		spec := sa.filter.GetSpec()
		result.FilterType = spec.Type
		result.FilterCutoffs = spec.Cutoffs
	}

	_, peakHz := spectrum.Peak()
	logger.Debug("Spectrum analysis completed", logging.Fields{
		"fft_size":  fftSize,
		"bins":      spectrum.Bins(),
		"peak_hz":   peakHz,
		"filtered":  sa.filter != nil,
		"zero_pad":  max(0, sa.config.WindowSize-len(signal)),
		"freq_step": spectrum.FreqResolution,
	})

	return result, nil
}

// Reconstruct returns the real part of the inverse transform of a full
// power-of-two length spectrum.
func (sa *SpectrumAnalyzer) Reconstruct(full []complex128) ([]float64, error) {
	return sa.fft.ComputeInverseReal(full)
}

// RoundTrip transforms signal forward and back, returning the reconstruction
// truncated to the input length.
func (sa *SpectrumAnalyzer) RoundTrip(signal []float64) ([]float64, error) {
	full, err := sa.fft.Compute(signal)
	if err != nil {
		return nil, err
	}

	reconstructed, err := sa.Reconstruct(full)
	if err != nil {
		return nil, err
	}

	return reconstructed[:len(signal)], nil
}

// RoundTripError returns the largest absolute difference between the peak
// normalized signal and its peak normalized reconstruction.
func (sa *SpectrumAnalyzer) RoundTripError(signal []float64) (float64, error) {
	reconstructed, err := sa.RoundTrip(signal)
	if err != nil {
		return 0, err
	}

	diff := common.MaxAbsDiff(common.PeakNormalize(signal), common.PeakNormalize(reconstructed))
	sa.logger.Debug("Round trip completed", logging.Fields{
		"function":      "RoundTripError",
		"signal_length": len(signal),
		"max_error":     diff,
	})

	return diff, nil
}

// Spectrogram filters signal and computes its STFT with the configured
// window, window size and hop.
func (sa *SpectrumAnalyzer) Spectrogram(signal []float64) (*spectral.STFTResult, error) {
	if len(signal) == 0 {
		return nil, spectral.ErrEmptyInput
	}

	return sa.stft.ComputeWithWindow(
		sa.Preprocess(signal),
		sa.config.WindowSize,
		sa.config.HopSize,
		sa.config.SampleRate,
		sa.window,
	)
}
