package filters

// FIRFilter holds a designed tap set and applies it to whole buffers.
//
// Unlike a streaming filter it carries no delay-line state: every
// ProcessBuffer call is an independent "same"-mode convolution, so one
// FIRFilter can be shared between goroutines.
type FIRFilter struct {
	spec FIRSpec
	taps []float64
}

// NewFIRFilter designs the filter described by spec.
//
// A spec with NumTaps <= 0 uses DefaultNumTaps.
func NewFIRFilter(spec FIRSpec) (*FIRFilter, error) {
	if spec.NumTaps <= 0 {
		spec.NumTaps = DefaultNumTaps
	}

	taps, err := Design(spec)
	if err != nil {
		return nil, err
	}

	return &FIRFilter{spec: spec, taps: taps}, nil
}

// ProcessBuffer applies the filter to an entire buffer of samples.
func (f *FIRFilter) ProcessBuffer(input []float64) []float64 {
	return Convolve(input, f.taps)
}

// GetFrequencyResponse computes the magnitude and phase response at given frequency.
func (f *FIRFilter) GetFrequencyResponse(frequency float64) (magnitude, phase float64) {
	return FrequencyResponse(f.taps, frequency, f.spec.SampleRate)
}

// GetCoefficients returns a copy of the filter taps.
func (f *FIRFilter) GetCoefficients() []float64 {
	taps := make([]float64, len(f.taps))
	copy(taps, f.taps)
	return taps
}

// GetSpec returns the design parameters.
func (f *FIRFilter) GetSpec() FIRSpec {
	return f.spec
}
