package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestSinc(t *testing.T) {
	assert.Equal(t, 1.0, Sinc(0))
	assert.Equal(t, 1.0, Sinc(1e-10))
	assert.InDelta(t, 0, Sinc(1), 1e-12)
	assert.InDelta(t, 0, Sinc(-3), 1e-12)
	assert.InDelta(t, 2/math.Pi, Sinc(0.5), 1e-12)
	assert.InDelta(t, Sinc(0.3), Sinc(-0.3), 1e-15)
}

func TestParseFIRType(t *testing.T) {
	assert.Equal(t, Lowpass, ParseFIRType("lowpass"))
	assert.Equal(t, Highpass, ParseFIRType(" HighPass"))
	assert.Equal(t, Bandpass, ParseFIRType("BANDPASS"))
	assert.Equal(t, FIRNone, ParseFIRType("notch"))
	assert.Equal(t, FIRNone, ParseFIRType(""))
}

func TestLowpassEdgeCases(t *testing.T) {
	blocked := DesignLowpass(0, 8000, 101)
	require.Len(t, blocked, 101)
	assert.Zero(t, floats.Sum(blocked))
	for _, v := range blocked {
		assert.Zero(t, v)
	}

	assert.Zero(t, floats.Sum(DesignLowpass(-10, 8000, 11)))

	for _, cutoff := range []float64{4000, 5000} {
		pass := DesignLowpass(cutoff, 8000, 101)
		require.Len(t, pass, 101)
		for i, v := range pass {
			if i == 50 {
				assert.Equal(t, 1.0, v)
			} else {
				assert.Zero(t, v)
			}
		}
	}

	assert.Empty(t, DesignLowpass(1000, 8000, 0))
}

func TestLowpassDesign(t *testing.T) {
	fs := 8000.0
	taps := DesignLowpass(1000, fs, 101)
	require.Len(t, taps, 101)

	assert.InDelta(t, 1.0, floats.Sum(taps), 1e-9)
	for i := range taps {
		assert.InDelta(t, taps[i], taps[len(taps)-1-i], 1e-12)
	}

	// Hann endpoints vanish
	assert.InDelta(t, 0, taps[0], 1e-15)

	dc, _ := FrequencyResponse(taps, 0, fs)
	assert.InDelta(t, 1.0, dc, 1e-9)

	pass, _ := FrequencyResponse(taps, 300, fs)
	assert.InDelta(t, 1.0, pass, 0.01)

	stop, _ := FrequencyResponse(taps, 2500, fs)
	assert.Less(t, stop, 0.01)
}

func TestLowpassSingleTap(t *testing.T) {
	assert.InDeltaSlice(t, []float64{1}, DesignLowpass(1000, 8000, 1), 1e-12)
}

func TestHighpassDesign(t *testing.T) {
	fs := 8000.0
	taps := DesignHighpass(1000, fs, 101)
	lp := DesignLowpass(1000, fs, 101)
	require.Len(t, taps, 101)

	for i := range taps {
		want := -lp[i]
		if i == 50 {
			want += 1
		}
		assert.InDelta(t, want, taps[i], 1e-15)
	}

	assert.InDelta(t, 0, floats.Sum(taps), 1e-9)

	nyquist, _ := FrequencyResponse(taps, fs/2, fs)
	assert.InDelta(t, 1.0, nyquist, 0.01)

	stop, _ := FrequencyResponse(taps, 300, fs)
	assert.Less(t, stop, 0.02)
}

func TestHighpassEdgeCases(t *testing.T) {
	allPass := DesignHighpass(0, 8000, 11)
	assert.Equal(t, 1.0, allPass[5])
	assert.Equal(t, 1.0, floats.Sum(allPass))

	blocked := DesignHighpass(4000, 8000, 11)
	for _, v := range blocked {
		assert.Zero(t, v)
	}

	assert.Empty(t, DesignHighpass(100, 8000, -1))
}

func TestBandpassInvalidBand(t *testing.T) {
	_, err := DesignBandpass(2000, 1000, 8000, 201)
	assert.ErrorIs(t, err, ErrInvalidBand)

	_, err = DesignBandpass(1000, 1000, 8000, 201)
	assert.ErrorIs(t, err, ErrInvalidBand)
}

func TestBandpassRenormalizes(t *testing.T) {
	// lowpass(0) is all zero, so the unnormalized sum is ~1 and gets rescaled
	taps, err := DesignBandpass(0, 1500, 8000, 201)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, floats.Sum(taps), 1e-6)
}

func TestBandpassDesign(t *testing.T) {
	fs := 8000.0
	taps, err := DesignBandpass(500, 1500, fs, 401)
	require.NoError(t, err)
	require.Len(t, taps, 401)

	// Two unit-sum lowpasses cancel at DC; the sum stays below the
	// renormalization threshold and the taps are left as designed.
	assert.InDelta(t, 0, floats.Sum(taps), 1e-8)

	want := DesignLowpass(1500, fs, 401)
	floats.Sub(want, DesignLowpass(500, fs, 401))
	assert.InDeltaSlice(t, want, taps, 1e-15)

	center, _ := FrequencyResponse(taps, 1000, fs)
	assert.InDelta(t, 1.0, center, 0.01)

	low, _ := FrequencyResponse(taps, 100, fs)
	assert.Less(t, low, 0.01)

	high, _ := FrequencyResponse(taps, 3000, fs)
	assert.Less(t, high, 0.01)
}

func TestDesign(t *testing.T) {
	taps, err := Design(FIRSpec{Type: Lowpass, Cutoffs: []float64{1000}, SampleRate: 8000, NumTaps: 51})
	require.NoError(t, err)
	assert.Equal(t, DesignLowpass(1000, 8000, 51), taps)

	taps, err = Design(FIRSpec{Type: Highpass, Cutoffs: []float64{1000, 99}, SampleRate: 8000, NumTaps: 51})
	require.NoError(t, err)
	assert.Equal(t, DesignHighpass(1000, 8000, 51), taps)

	_, err = Design(FIRSpec{Type: Lowpass, SampleRate: 8000, NumTaps: 51})
	assert.ErrorIs(t, err, ErrMissingCutoff)

	_, err = Design(FIRSpec{Type: Bandpass, Cutoffs: []float64{100}, SampleRate: 8000, NumTaps: 51})
	assert.ErrorIs(t, err, ErrMissingCutoff)

	_, err = Design(FIRSpec{Type: Bandpass, Cutoffs: []float64{900, 100}, SampleRate: 8000, NumTaps: 51})
	assert.ErrorIs(t, err, ErrInvalidBand)

	_, err = Design(FIRSpec{Type: "notch", Cutoffs: []float64{100}, SampleRate: 8000, NumTaps: 51})
	assert.ErrorIs(t, err, ErrUnknownFilter)
}
