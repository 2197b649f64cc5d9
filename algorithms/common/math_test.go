package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff([]float64{1}))
	assert.Equal(t, []float64{1, 2, -4}, Diff([]float64{0, 1, 3, -1}))
}

func TestMaxAbs(t *testing.T) {
	assert.Zero(t, MaxAbs(nil))
	assert.Equal(t, 7.0, MaxAbs([]float64{1, -7, 3}))
	assert.Equal(t, 3.0, MaxAbs([]float64{1, -2, 3}))
}

func TestMaxAbsDiff(t *testing.T) {
	assert.Zero(t, MaxAbsDiff(nil, []float64{1}))
	assert.InDelta(t, 0.5, MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 3, 100}), 1e-12)
}

func TestPeakNormalize(t *testing.T) {
	in := []float64{0.5, -2, 1}
	out := PeakNormalize(in)

	assert.InDeltaSlice(t, []float64{0.25, -1, 0.5}, out, 1e-9)
	assert.Equal(t, []float64{0.5, -2, 1}, in)

	assert.Equal(t, []float64{0, 0}, PeakNormalize([]float64{0, 0}))
	assert.Empty(t, PeakNormalize(nil))
}
