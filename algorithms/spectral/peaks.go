package spectral

import (
	"cmp"
	"math"
	"slices"
)

// Peak is a local maximum of a magnitude spectrum
type Peak struct {
	Bin       int     `json:"bin" yaml:"bin"`
	Frequency float64 `json:"frequency" yaml:"frequency"` // Parabolic estimate (Hz)
	Magnitude float64 `json:"magnitude" yaml:"magnitude"` // Parabolic estimate
	Phase     float64 `json:"phase" yaml:"phase"`         // Phase of the peak bin
}

// PeakOptions bounds peak detection
type PeakOptions struct {
	MaxPeaks      int     // 0 means no limit
	MinMagnitude  float64 // Peaks below this are ignored
	MinDistanceHz float64 // Closer peaks keep only the larger one
}

// Peaks returns the strictly local maxima of the magnitude spectrum, largest
// first, refined to sub-bin accuracy by parabolic interpolation.
func (s *Spectrum) Peaks(opts PeakOptions) []Peak {
	mags := s.Magnitudes
	if len(mags) < 3 {
		return []Peak{}
	}

	minDistance := 1
	if s.FreqResolution > 0 {
		minDistance = max(1, int(opts.MinDistanceHz/s.FreqResolution))
	}

	var candidates []int
	for i := 1; i < len(mags)-1; i++ {
		if mags[i] > mags[i-1] && mags[i] > mags[i+1] && mags[i] >= opts.MinMagnitude {
			candidates = append(candidates, i)
		}
	}

	// Largest first, so a kept peak always dominates its neighbourhood
	slices.SortStableFunc(candidates, func(a, b int) int {
		return cmp.Compare(mags[b], mags[a])
	})

	var kept []int
	for _, c := range candidates {
		if slices.ContainsFunc(kept, func(k int) bool { return abs(c-k) < minDistance }) {
			continue
		}
		kept = append(kept, c)
		if opts.MaxPeaks > 0 && len(kept) == opts.MaxPeaks {
			break
		}
	}

	peaks := make([]Peak, len(kept))
	for i, bin := range kept {
		peaks[i] = s.refine(bin)
	}

	return peaks
}

// refine fits a parabola through bin and its neighbours
func (s *Spectrum) refine(bin int) Peak {
	y1, y2, y3 := s.Magnitudes[bin-1], s.Magnitudes[bin], s.Magnitudes[bin+1]

	p := Peak{
		Bin:       bin,
		Frequency: float64(bin) * s.FreqResolution,
		Magnitude: y2,
		Phase:     s.Phases[bin],
	}

	denom := 2.0 * (2.0*y2 - y1 - y3)
	if math.Abs(denom) > 1e-10 {
		offset := (y3 - y1) / denom
		a := 0.5 * (y1 - 2.0*y2 + y3)
		b := 0.5 * (y3 - y1)

		p.Frequency = (float64(bin) + offset) * s.FreqResolution
		p.Magnitude = y2 + a*offset*offset + b*offset
	}

	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
