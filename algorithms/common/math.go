package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic helpers shared by the analyzers, using gonum for reductions

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Diff returns the first differences data[i+1]-data[i]
func Diff(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}

	d := make([]float64, len(data)-1)
	floats.SubTo(d, data[1:], data[:len(data)-1])
	return d
}

// MaxAbs returns the largest absolute value in data
func MaxAbs(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return math.Max(math.Abs(floats.Max(data)), math.Abs(floats.Min(data)))
}

// MaxAbsDiff returns max |a[i]-b[i]| over the shorter of the two slices
func MaxAbsDiff(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0.0
	}
	return floats.Distance(a[:n], b[:n], math.Inf(1))
}
