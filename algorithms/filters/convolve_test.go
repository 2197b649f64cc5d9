package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullConvolution is the textbook O(N*M) definition used as a reference.
func fullConvolution(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			out[i+j] += a[i] * b[j]
		}
	}
	return out
}

func TestConvolveSameMode(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		taps   []float64
		want   []float64
	}{
		{"identity", []float64{1, 2, 3}, []float64{0, 1, 0}, []float64{1, 2, 3}},
		{"moving sum", []float64{1, 2, 3, 4}, []float64{1, 1, 1}, []float64{3, 6, 9, 7}},
		{"even kernel", []float64{1, 2, 3}, []float64{0, 1}, []float64{0, 1, 2}},
		{"single tap", []float64{1, -1}, []float64{2}, []float64{2, -2}},
		{"kernel longer than signal", []float64{1, 2}, []float64{1, 1, 1, 1, 1}, []float64{3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tt.want, Convolve(tt.signal, tt.taps), 1e-12)
		})
	}
}

func TestConvolveMatchesCentredFullConvolution(t *testing.T) {
	signal := make([]float64, 97)
	for i := range signal {
		signal[i] = math.Sin(0.3*float64(i)) + 0.1*float64(i%7)
	}

	for _, m := range []int{1, 2, 5, 8, 31, 96} {
		taps := make([]float64, m)
		for i := range taps {
			taps[i] = 1.0 / float64(i+1)
		}

		full := fullConvolution(signal, taps)
		start := (m - 1) / 2
		assert.InDeltaSlice(t, full[start:start+len(signal)], Convolve(signal, taps), 1e-12, "m=%d", m)
	}
}

func TestConvolveDoesNotMutate(t *testing.T) {
	signal := []float64{1, 2, 3}
	taps := []float64{0.5, 0.5}

	Convolve(signal, taps)
	assert.Equal(t, []float64{1, 2, 3}, signal)
	assert.Equal(t, []float64{0.5, 0.5}, taps)
}

func TestApplyFIRErrors(t *testing.T) {
	_, err := ApplyFIR(nil, []float64{1})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ApplyFIR([]float64{1}, nil)
	assert.ErrorIs(t, err, ErrEmptyKernel)

	out, err := ApplyFIR([]float64{1, 2}, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, out)
}

func TestFIRFilterRemovesHighTone(t *testing.T) {
	fs := 8000.0
	n := 2000
	mixed := make([]float64, n)
	low := make([]float64, n)
	for i := range mixed {
		ti := float64(i) / fs
		low[i] = math.Sin(2 * math.Pi * 200 * ti)
		mixed[i] = low[i] + math.Sin(2*math.Pi*3000*ti)
	}

	f, err := NewFIRFilter(FIRSpec{Type: Lowpass, Cutoffs: []float64{1000}, SampleRate: fs})
	require.NoError(t, err)
	assert.Equal(t, DefaultNumTaps, f.GetSpec().NumTaps)
	assert.Len(t, f.GetCoefficients(), DefaultNumTaps)

	out := f.ProcessBuffer(mixed)
	require.Len(t, out, n)

	// same-mode output is time aligned; skip the zero-padded edges
	for i := DefaultNumTaps; i < n-DefaultNumTaps; i++ {
		require.InDelta(t, low[i], out[i], 0.02, "sample %d", i)
	}

	mag, _ := f.GetFrequencyResponse(3000)
	assert.Less(t, mag, 0.01)
}

func TestNewFIRFilterErrors(t *testing.T) {
	_, err := NewFIRFilter(FIRSpec{Type: Bandpass, Cutoffs: []float64{2000, 100}, SampleRate: 8000})
	assert.ErrorIs(t, err, ErrInvalidBand)

	_, err = NewFIRFilter(FIRSpec{Type: FIRNone, SampleRate: 8000})
	assert.ErrorIs(t, err, ErrUnknownFilter)
}
